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

	"github.com/samber/lo"
)

// WordBytes is the size of every register and every bus access.
const WordBytes = 4

// Fixed register offsets. Operand and result offsets depend on N; see Map.
const (
	OffsetControl  uint32 = 0x00
	OffsetStatus   uint32 = 0x04
	OffsetOperands uint32 = 0x08
)

// CONTROL bits.
const ControlStart uint32 = 1 << 0

// STATUS bits. Busy and Done mirror the pipeline; Defaulted and Error are
// set by the port.
const (
	StatusBusy      uint32 = 1 << 0
	StatusDone      uint32 = 1 << 1
	StatusDefaulted uint32 = 1 << 2
	StatusError     uint32 = 1 << 3
)

// DefaultResultSentinel is returned by RESULT reads before any computation
// has completed.
const DefaultResultSentinel uint32 = 0xDEADBEEF

var (
	// ErrUnaligned reports an address that is not a multiple of WordBytes.
	ErrUnaligned = errors.New("axil: unaligned address")

	// ErrUnmapped reports an aligned address outside the register map.
	ErrUnmapped = errors.New("axil: unmapped address")
)

// Kind identifies a register or register array.
type Kind uint8

const (
	Control Kind = iota
	Status
	OperandA
	OperandB
	Result
)

var kindNames = [...]string{"CONTROL", "STATUS", "OPERAND_A", "OPERAND_B", "RESULT"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Access is the direction a register may be accessed in.
type Access uint8

const (
	ReadOnly Access = iota + 1
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "R"
	case WriteOnly:
		return "W"
	}
	return fmt.Sprintf("Access(%d)", uint8(a))
}

// Access returns the direction k may be accessed in.
func (k Kind) Access() Access {
	if k == Status || k == Result {
		return ReadOnly
	}
	return WriteOnly
}

// Register is a decoded address. Index is the element index for operand
// registers and zero otherwise.
type Register struct {
	Kind  Kind
	Index int
}

// Name returns the register name, e.g. "STATUS" or "OPERAND_B[3]".
func (r Register) Name() string {
	if r.Kind == OperandA || r.Kind == OperandB {
		return fmt.Sprintf("%s[%d]", r.Kind, r.Index)
	}
	return r.Kind.String()
}

// RegisterInfo describes one register of a Map.
type RegisterInfo struct {
	Register
	Name        string
	Offset      uint32
	Access      Access
	Description string
}

// Map is the register layout for vectors of length N.
type Map struct {
	n int
}

// NewMap returns the layout for length-n operand vectors.
func NewMap(n int) (Map, error) {
	if n < 1 {
		return Map{}, fmt.Errorf("axil: vector length must be >= 1, got %d", n)
	}
	if uint64(OffsetOperands)+uint64(2*n+1)*WordBytes > 1<<32 {
		return Map{}, fmt.Errorf("axil: vector length %d does not fit a 32-bit address space", n)
	}
	return Map{n: n}, nil
}

// N returns the operand vector length.
func (m Map) N() int { return m.n }

// OperandA returns the offset of OPERAND_A[i].
func (m Map) OperandA(i int) uint32 {
	return OffsetOperands + uint32(i)*WordBytes
}

// OperandB returns the offset of OPERAND_B[i].
func (m Map) OperandB(i int) uint32 {
	return OffsetOperands + uint32(m.n+i)*WordBytes
}

// ResultOffset returns the offset of RESULT.
func (m Map) ResultOffset() uint32 {
	return OffsetOperands + uint32(2*m.n)*WordBytes
}

// Size returns the number of bytes spanned by the map.
func (m Map) Size() uint32 {
	return m.ResultOffset() + WordBytes
}

// Decode maps a byte address to a register.
func (m Map) Decode(addr uint32) (Register, error) {
	if addr%WordBytes != 0 {
		return Register{}, fmt.Errorf("%w: 0x%x", ErrUnaligned, addr)
	}
	switch {
	case addr == OffsetControl:
		return Register{Kind: Control}, nil
	case addr == OffsetStatus:
		return Register{Kind: Status}, nil
	case addr == m.ResultOffset():
		return Register{Kind: Result}, nil
	case addr >= OffsetOperands && addr < m.ResultOffset():
		i := int((addr - OffsetOperands) / WordBytes)
		if i < m.n {
			return Register{Kind: OperandA, Index: i}, nil
		}
		return Register{Kind: OperandB, Index: i - m.n}, nil
	}
	return Register{}, fmt.Errorf("%w: 0x%x", ErrUnmapped, addr)
}

// Offset returns the address of r.
func (m Map) Offset(r Register) uint32 {
	switch r.Kind {
	case Control:
		return OffsetControl
	case Status:
		return OffsetStatus
	case OperandA:
		return m.OperandA(r.Index)
	case OperandB:
		return m.OperandB(r.Index)
	}
	return m.ResultOffset()
}

// Registers lists every register in address order.
func (m Map) Registers() []RegisterInfo {
	info := func(r Register, desc string) RegisterInfo {
		return RegisterInfo{
			Register:    r,
			Name:        r.Name(),
			Offset:      m.Offset(r),
			Access:      r.Kind.Access(),
			Description: desc,
		}
	}
	regs := []RegisterInfo{
		info(Register{Kind: Control}, "bit0 start strobe"),
		info(Register{Kind: Status}, "bit0 busy, bit1 done, bit2 operands defaulted, bit3 access error"),
	}
	regs = append(regs, lo.Times(m.n, func(i int) RegisterInfo {
		return info(Register{Kind: OperandA, Index: i}, fmt.Sprintf("operand A element %d, signed raw value", i))
	})...)
	regs = append(regs, lo.Times(m.n, func(i int) RegisterInfo {
		return info(Register{Kind: OperandB, Index: i}, fmt.Sprintf("operand B element %d, signed raw value", i))
	})...)
	return append(regs, info(Register{Kind: Result}, "dot product at output precision, sign-extended"))
}

// Resp is an AXI response code.
type Resp uint8

const (
	RespOkay   Resp = 0
	RespSlvErr Resp = 2
	RespDecErr Resp = 3
)

func (r Resp) String() string {
	switch r {
	case RespOkay:
		return "OKAY"
	case RespSlvErr:
		return "SLVERR"
	case RespDecErr:
		return "DECERR"
	}
	return fmt.Sprintf("Resp(%d)", uint8(r))
}

// Request is one single-word bus access.
type Request struct {
	Addr  uint32
	Data  uint32
	Write bool
}

// Response acknowledges a Request. Cause explains a non-OKAY response and
// marks stale RESULT reads.
type Response struct {
	Data  uint32
	Resp  Resp
	Write bool
	Cause error
}

// OK reports whether the access completed with OKAY.
func (r Response) OK() bool { return r.Resp == RespOkay }
