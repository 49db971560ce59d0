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


// Package axil models a minimal AXI-Lite style slave port in front of a
// dot.Pipeline.
//
// The port accepts one word-sized, word-aligned access at a time. The host
// stages operand vectors into OPERAND_A and OPERAND_B, writes the start
// strobe to CONTROL, polls STATUS and reads RESULT:
//
//	Offset        Name          Access  Meaning
//	0x00          CONTROL       W       bit0 start strobe
//	0x04          STATUS        R       bit0 busy, bit1 done,
//	                                    bit2 operands defaulted, bit3 access error
//	0x08 + 4i     OPERAND_A[i]  W       raw value, signed 32-bit word
//	0x08 + 4N+4i  OPERAND_B[i]  W       raw value, signed 32-bit word
//	0x08 + 8N     RESULT        R       raw value at output precision, sign-extended
//
// # Access policies
//
// Operand and CONTROL writes while the pipeline is computing are answered
// with SLVERR, leave the in-flight inputs untouched and set STATUS bit3.
// Unmapped or unaligned addresses are answered with DECERR; reading a
// write-only register or writing a read-only one is answered with SLVERR.
//
// A start is accepted when every operand slot has either been written since
// the previous accepted start or has never been written since reset. Slots
// in the second group read as zero and set STATUS bit2. A start that would
// reuse operands from an earlier job is refused with SLVERR.
//
// RESULT reads have no side effects. Before the first completion they
// return the configured sentinel (0xDEADBEEF by default). After that, a
// read outside DONE returns the most recent result and is counted as a
// stale read.
//
// # Example Usage
//
//	s, err := axil.NewSlave(dot.DefaultConfig(), axil.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	d := axil.NewDriver(s)
//	got, err := d.Run(a, b, 100)
package axil
