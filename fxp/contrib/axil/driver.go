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

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/dot"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/vec"
)

var (
	// ErrResponse reports a non-OKAY response without a more specific cause.
	ErrResponse = errors.New("axil: error response")

	// ErrTimeout reports a pipeline that did not reach DONE within the
	// allowed number of polls. It always indicates a design bug.
	ErrTimeout = errors.New("axil: timed out waiting for done")
)

// Port is the host-visible side of a Slave.
type Port interface {
	Access(req Request) Response
	Map() Map
	Config() dot.Config
}

// Driver issues register-level transactions against a Port, the way a
// testbench or device driver would.
type Driver struct {
	port Port
}

// NewDriver returns a Driver for p.
func NewDriver(p Port) *Driver {
	return &Driver{port: p}
}

func responseErr(op string, addr uint32, r Response) error {
	cause := r.Cause
	if cause == nil {
		cause = ErrResponse
	}
	return fmt.Errorf("axil: %s 0x%02x: %s: %w", op, addr, r.Resp, cause)
}

// Write writes one word.
func (d *Driver) Write(addr, data uint32) error {
	r := d.port.Access(Request{Addr: addr, Data: data, Write: true})
	if !r.OK() {
		return responseErr("write", addr, r)
	}
	return nil
}

// Read reads one word. A stale RESULT read returns the word together with
// an error wrapping ErrStaleRead.
func (d *Driver) Read(addr uint32) (uint32, error) {
	r := d.port.Access(Request{Addr: addr})
	if !r.OK() {
		return r.Data, responseErr("read", addr, r)
	}
	if r.Cause != nil {
		return r.Data, fmt.Errorf("axil: read 0x%02x: %w", addr, r.Cause)
	}
	return r.Data, nil
}

// Status reads STATUS.
func (d *Driver) Status() (uint32, error) {
	return d.Read(OffsetStatus)
}

// WaitDone polls STATUS until the done bit is set and returns the number of
// polls it took.
func (d *Driver) WaitDone(maxPolls int) (int, error) {
	for polls := 1; polls <= maxPolls; polls++ {
		st, err := d.Status()
		if err != nil {
			return polls, err
		}
		if st&StatusDone != 0 {
			return polls, nil
		}
	}
	return maxPolls, fmt.Errorf("%w after %d polls", ErrTimeout, maxPolls)
}

// LoadOperands writes every OPERAND_A and OPERAND_B register.
func (d *Driver) LoadOperands(a, b vec.Vector) error {
	m := d.port.Map()
	in := d.port.Config().Input
	for _, v := range []vec.Vector{a, b} {
		if v.Len() != m.N() {
			return fmt.Errorf("axil: %w: operand length %d, port N %d", vec.ErrDimensionMismatch, v.Len(), m.N())
		}
		if v.Format() != in {
			return fmt.Errorf("axil: operand is %s, port input is %s: %w", v.Format(), in, fxp.ErrFormatMismatch)
		}
	}
	for i, raw := range a.Raws() {
		if err := d.Write(m.OperandA(i), uint32(int32(raw))); err != nil {
			return err
		}
	}
	for i, raw := range b.Raws() {
		if err := d.Write(m.OperandB(i), uint32(int32(raw))); err != nil {
			return err
		}
	}
	return nil
}

// Start writes the start strobe.
func (d *Driver) Start() error {
	return d.Write(OffsetControl, ControlStart)
}

// Result reads RESULT and interprets it at the port's output format.
func (d *Driver) Result() (fxp.Number, error) {
	out := d.port.Config().Output
	w, err := d.Read(d.port.Map().ResultOffset())
	if err != nil {
		return fxp.Zero(out), err
	}
	return fxp.FromRaw(int64(int32(w)), out)
}

// Run loads a and b, starts the pipeline, waits for DONE and returns the
// result.
func (d *Driver) Run(a, b vec.Vector, maxPolls int) (fxp.Number, error) {
	out := d.port.Config().Output
	if err := d.LoadOperands(a, b); err != nil {
		return fxp.Zero(out), err
	}
	if err := d.Start(); err != nil {
		return fxp.Zero(out), err
	}
	if _, err := d.WaitDone(maxPolls); err != nil {
		return fxp.Zero(out), err
	}
	return d.Result()
}
