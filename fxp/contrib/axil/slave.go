// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package axil

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/dot"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/vec"
)

// MaxWordWidth is the widest input or output format the port can carry in
// one register.
const MaxWordWidth = 32

var (
	// ErrOutstanding reports a Submit while a previous access has not been
	// acknowledged.
	ErrOutstanding = errors.New("axil: transaction outstanding")

	// ErrDecode is the cause of every DECERR response.
	ErrDecode = errors.New("axil: decode error")

	// ErrDirection reports a read of a write-only register or a write of a
	// read-only one.
	ErrDirection = errors.New("axil: wrong access direction")

	// ErrAccessDuringCompute reports an operand or CONTROL write while the
	// pipeline is computing.
	ErrAccessDuringCompute = errors.New("axil: access during compute")

	// ErrStaleOperand reports a start whose operands were not rewritten
	// since the previous start.
	ErrStaleOperand = errors.New("axil: stale operand")

	// ErrStaleRead marks a RESULT read outside DONE.
	ErrStaleRead = errors.New("axil: stale result read")
)

// Options configures a Slave. The zero value is valid: it discards logs and
// uses zero as the result sentinel.
type Options struct {
	// Logger receives one Debug record per access and per pipeline
	// transition.
	Logger *slog.Logger

	// ResultSentinel is returned by RESULT reads before the first
	// completion.
	ResultSentinel uint32
}

// DefaultOptions returns Options with a discarding logger and
// DefaultResultSentinel.
func DefaultOptions() Options {
	return Options{
		Logger:         slog.New(slog.DiscardHandler),
		ResultSentinel: DefaultResultSentinel,
	}
}

// Stats counts port activity since construction or Reset.
type Stats struct {
	Reads          uint64
	AcceptedWrites uint64
	RejectedWrites uint64
	StaleReads     uint64
	DecodeErrors   uint64
	Starts         uint64
}

// Slave is the bus port and its dot.Pipeline. It is advanced only by Tick
// and is not safe for concurrent use.
type Slave struct {
	cfg      dot.Config
	regs     Map
	pipe     *dot.Pipeline
	log      *slog.Logger
	sentinel uint32

	// Operand registers, A then B. written is cleared by every accepted
	// start; touched only by Reset.
	operands []fxp.Number
	written  []bool
	touched  []bool

	pending    Request
	hasPending bool
	resp       Response
	hasResp    bool

	// Published by the pipeline side at the end of each Tick.
	pipeStatus uint32
	result     uint32
	hasResult  bool

	// Owned by the bus side.
	defaulted bool
	accessErr bool

	stats Stats
}

// NewSlave returns a reset port around a new pipeline for cfg.
func NewSlave(cfg dot.Config, opts Options) (*Slave, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Input.Width() > MaxWordWidth || cfg.Output.Width() > MaxWordWidth {
		return nil, fmt.Errorf("%w: input %s and output %s must be at most %d bits wide",
			dot.ErrConfig, cfg.Input, cfg.Output, MaxWordWidth)
	}
	regs, err := NewMap(cfg.N)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dot.ErrConfig, err)
	}
	pipe, err := dot.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Slave{
		cfg:      cfg,
		regs:     regs,
		pipe:     pipe,
		log:      log,
		sentinel: opts.ResultSentinel,
	}
	s.Reset()
	return s, nil
}

// Config returns the pipeline configuration.
func (s *Slave) Config() dot.Config { return s.cfg }

// Map returns the register layout.
func (s *Slave) Map() Map { return s.regs }

// Pipeline returns the underlying pipeline for inspection.
func (s *Slave) Pipeline() *dot.Pipeline { return s.pipe }

// Stats returns the activity counters.
func (s *Slave) Stats() Stats { return s.stats }

// Reset returns the port and pipeline to their power-on state.
func (s *Slave) Reset() {
	n := 2 * s.cfg.N
	s.pipe.Reset()
	s.operands = make([]fxp.Number, n)
	for i := range s.operands {
		s.operands[i] = fxp.Zero(s.cfg.Input)
	}
	s.written = make([]bool, n)
	s.touched = make([]bool, n)
	s.pending, s.hasPending = Request{}, false
	s.resp, s.hasResp = Response{}, false
	s.pipeStatus, s.result, s.hasResult = 0, 0, false
	s.defaulted, s.accessErr = false, false
	s.stats = Stats{}
}

// Submit presents req on the port. Only one access may be in flight: a
// second Submit before the Response has been taken fails with
// ErrOutstanding.
func (s *Slave) Submit(req Request) error {
	if s.hasPending || s.hasResp {
		return ErrOutstanding
	}
	s.pending, s.hasPending = req, true
	return nil
}

// Response takes the acknowledgment of the last serviced access.
func (s *Slave) Response() (Response, bool) {
	if !s.hasResp {
		return Response{}, false
	}
	r := s.resp
	s.resp, s.hasResp = Response{}, false
	return r, true
}

// Access submits req, clocks the port once and returns the response. A
// port that still holds an earlier access answers SLVERR with
// ErrOutstanding and is not clocked.
func (s *Slave) Access(req Request) Response {
	if err := s.Submit(req); err != nil {
		return Response{Resp: RespSlvErr, Write: req.Write, Cause: err}
	}
	s.Tick()
	r, _ := s.Response()
	return r
}

// Tick advances one clock: the pending access is serviced, the pipeline
// steps, and STATUS and RESULT are republished from the pipeline.
func (s *Slave) Tick() {
	if s.hasPending {
		req := s.pending
		s.hasPending = false
		s.resp, s.hasResp = s.service(req), true
	}

	before := s.pipe.State()
	s.pipe.Tick()
	if after := s.pipe.State(); after != before {
		s.log.Debug("axil pipeline", "from", before, "to", after, "cycle", s.pipe.Cycles())
	}
	s.publish()
}

func (s *Slave) publish() {
	s.pipeStatus = 0
	if s.pipe.Busy() {
		s.pipeStatus |= StatusBusy
	}
	if s.pipe.Done() {
		s.pipeStatus |= StatusDone
	}
	if r, ok := s.pipe.Result(); ok {
		s.result = uint32(int32(r.Raw()))
		s.hasResult = true
	}
}

func (s *Slave) status() uint32 {
	st := s.pipeStatus
	if s.defaulted {
		st |= StatusDefaulted
	}
	if s.accessErr {
		st |= StatusError
	}
	return st
}

func (s *Slave) service(req Request) Response {
	resp := s.dispatch(req)
	resp.Write = req.Write
	if resp.Resp != RespOkay {
		s.accessErr = true
		if req.Write && resp.Resp == RespSlvErr {
			s.stats.RejectedWrites++
		}
	}
	s.log.Debug("axil access",
		"addr", fmt.Sprintf("0x%02x", req.Addr),
		"write", req.Write,
		"data", fmt.Sprintf("0x%08x", req.Data),
		"resp", resp.Resp,
		"state", s.pipe.State())
	return resp
}

func (s *Slave) dispatch(req Request) Response {
	reg, err := s.regs.Decode(req.Addr)
	if err != nil {
		s.stats.DecodeErrors++
		return Response{Resp: RespDecErr, Cause: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	if req.Write != (reg.Kind.Access() == WriteOnly) {
		return Response{Resp: RespSlvErr, Cause: fmt.Errorf("%w: %s is %s", ErrDirection, reg.Name(), reg.Kind.Access())}
	}
	if !req.Write {
		s.stats.Reads++
		return s.read(reg)
	}
	if s.pipe.Busy() {
		return Response{Resp: RespSlvErr, Cause: fmt.Errorf("%w: %s", ErrAccessDuringCompute, reg.Name())}
	}
	if reg.Kind == Control {
		return s.control(req.Data)
	}
	return s.writeOperand(reg, req.Data)
}

func (s *Slave) read(reg Register) Response {
	if reg.Kind == Status {
		return Response{Data: s.status()}
	}
	if s.pipeStatus&StatusDone != 0 {
		return Response{Data: s.result}
	}
	s.stats.StaleReads++
	if !s.hasResult {
		return Response{Data: s.sentinel, Cause: ErrStaleRead}
	}
	return Response{Data: s.result, Cause: ErrStaleRead}
}

func (s *Slave) slot(reg Register) int {
	if reg.Kind == OperandB {
		return s.cfg.N + reg.Index
	}
	return reg.Index
}

func (s *Slave) writeOperand(reg Register, data uint32) Response {
	x, overflowed := fxp.FromRawPolicy(int64(int32(data)), s.cfg.Input, s.cfg.Overflow)
	if overflowed {
		s.log.Debug("axil operand out of range", "reg", reg.Name(), "data", int32(data), "stored", x)
	}
	i := s.slot(reg)
	s.operands[i] = x
	s.written[i] = true
	s.touched[i] = true
	s.pipe.Acknowledge()
	s.stats.AcceptedWrites++
	return Response{}
}

func (s *Slave) control(data uint32) Response {
	if data&ControlStart == 0 {
		s.stats.AcceptedWrites++
		return Response{}
	}
	defaulted := false
	for i := range s.operands {
		if s.written[i] {
			continue
		}
		if s.touched[i] {
			return Response{Resp: RespSlvErr, Cause: fmt.Errorf("%w: %s", ErrStaleOperand, s.slotName(i))}
		}
		defaulted = true
	}
	a, err := vec.New(s.operands[:s.cfg.N]...)
	var b vec.Vector
	if err == nil {
		b, err = vec.New(s.operands[s.cfg.N:]...)
	}
	if err == nil {
		err = s.pipe.Start(a, b)
	}
	if err != nil {
		return Response{Resp: RespSlvErr, Cause: err}
	}
	clear(s.written)
	s.defaulted = defaulted
	s.accessErr = false
	s.stats.AcceptedWrites++
	s.stats.Starts++
	return Response{}
}

func (s *Slave) slotName(i int) string {
	if i < s.cfg.N {
		return Register{Kind: OperandA, Index: i}.Name()
	}
	return Register{Kind: OperandB, Index: i - s.cfg.N}.Name()
}
