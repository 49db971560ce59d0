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

package dot

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/vec"
)

// ErrBusy reports a Start while a computation is in flight.
var ErrBusy = errors.New("dot: pipeline busy")

// State is the pipeline control state.
type State uint8

const (
	// Idle accepts operands and Start.
	Idle State = iota

	// Computing folds products; Start is rejected.
	Computing

	// Done holds the result until the next Start.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Computing:
		return "COMPUTING"
	case Done:
		return "DONE"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Pipeline is a single-clock-domain model of the dot-product datapath.
// It is advanced only by Tick and is not safe for concurrent use.
type Pipeline struct {
	cfg    Config
	accFmt fxp.Format

	state State
	a, b  vec.Vector
	acc   fxp.Number
	next  int

	result    fxp.Number
	hasResult bool

	cycles    uint64
	completed uint64
}

// NewPipeline returns an Idle pipeline for cfg.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	accFmt, _ := cfg.Accumulator()
	return &Pipeline{cfg: cfg, accFmt: accFmt, acc: fxp.Zero(accFmt)}, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// State returns the current control state.
func (p *Pipeline) State() State { return p.state }

// Busy reports whether the pipeline is Computing.
func (p *Pipeline) Busy() bool { return p.state == Computing }

// Done reports whether a result is being held.
func (p *Pipeline) Done() bool { return p.state == Done }

// Start latches a and b and enters Computing. It is accepted in Idle and
// Done and rejected with ErrBusy while Computing.
func (p *Pipeline) Start(a, b vec.Vector) error {
	if p.state == Computing {
		return ErrBusy
	}
	for _, v := range []vec.Vector{a, b} {
		if v.Len() != p.cfg.N {
			return fmt.Errorf("dot: %w: operand length %d, pipeline N %d", vec.ErrDimensionMismatch, v.Len(), p.cfg.N)
		}
		if v.Format() != p.cfg.Input {
			return fmt.Errorf("dot: operand is %s, pipeline input is %s: %w", v.Format(), p.cfg.Input, fxp.ErrFormatMismatch)
		}
	}
	p.a, p.b = a, b
	p.acc = fxp.Zero(p.accFmt)
	p.next = 0
	p.state = Computing
	return nil
}

// Tick advances one clock. While Computing it folds up to Lanes products in
// ascending index order; after the last one it resizes the accumulator to
// the output format and enters Done.
func (p *Pipeline) Tick() {
	p.cycles++
	if p.state != Computing {
		return
	}
	for lane := 0; lane < p.cfg.Lanes && p.next < p.cfg.N; lane++ {
		p.mac(p.next)
		p.next++
	}
	if p.next == p.cfg.N {
		p.result = fxp.Resize(p.acc, p.cfg.Output, p.cfg.Rounding, p.cfg.Overflow)
		p.hasResult = true
		p.completed++
		p.state = Done
	}
}

func (p *Pipeline) mac(i int) {
	x, _ := p.a.At(i)
	y, _ := p.b.At(i)
	prod, err := fxp.MulExact(x, y)
	if err == nil {
		p.acc, err = vec.Accumulate(p.acc, prod)
	}
	if err != nil {
		// Formats were checked by NewPipeline and Start.
		panic(fmt.Errorf("dot: lane %d: %w", i, err))
	}
}

// Acknowledge returns a Done pipeline to Idle, keeping the held result.
// It has no effect in other states.
func (p *Pipeline) Acknowledge() {
	if p.state == Done {
		p.state = Idle
	}
}

// Result returns the most recently completed result. The bool is false
// until the first computation completes.
func (p *Pipeline) Result() (fxp.Number, bool) {
	return p.result, p.hasResult
}

// Accumulator returns the running accumulator at accumulator precision.
func (p *Pipeline) Accumulator() fxp.Number { return p.acc }

// Operands returns the latched operand vectors.
func (p *Pipeline) Operands() (a, b vec.Vector) { return p.a, p.b }

// Progress returns how many products have been folded into the accumulator.
func (p *Pipeline) Progress() int { return p.next }

// Cycles returns the number of ticks since construction or Reset.
func (p *Pipeline) Cycles() uint64 { return p.cycles }

// Completed returns the number of finished computations.
func (p *Pipeline) Completed() uint64 { return p.completed }

// Reset returns the pipeline to its power-on state.
func (p *Pipeline) Reset() {
	*p = Pipeline{cfg: p.cfg, accFmt: p.accFmt, acc: fxp.Zero(p.accFmt)}
}
