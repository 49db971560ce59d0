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


package main

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/dot"
)

// writeInfo reports the host and the widths a configuration derives, so a
// simulation run can be matched to the machine it ran on.
func writeInfo(w io.Writer, cfg dot.Config) error {
	acc, err := cfg.Accumulator()
	if err != nil {
		return err
	}
	prod, err := fxp.Product(cfg.Input, cfg.Input)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "GOOS: %s\n", runtime.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(w, "NumCPU: %d\n", runtime.NumCPU())
	fmt.Fprintf(w, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintln(w)

	switch runtime.GOARCH {
	case "arm64":
		fmt.Fprintln(w, "=== golang.org/x/sys/cpu.ARM64 ===")
		fmt.Fprintf(w, "  HasASIMD:   %v\n", cpu.ARM64.HasASIMD)
		fmt.Fprintf(w, "  HasSVE:     %v\n", cpu.ARM64.HasSVE)
		fmt.Fprintf(w, "  HasATOMICS: %v\n", cpu.ARM64.HasATOMICS)
	case "amd64":
		fmt.Fprintln(w, "=== golang.org/x/sys/cpu.X86 ===")
		fmt.Fprintf(w, "  HasAVX2:    %v\n", cpu.X86.HasAVX2)
		fmt.Fprintf(w, "  HasBMI2:    %v\n", cpu.X86.HasBMI2)
		fmt.Fprintf(w, "  HasPOPCNT:  %v\n", cpu.X86.HasPOPCNT)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "N:           %d (%d lanes, %d ticks)\n", cfg.N, cfg.Lanes, cfg.Latency())
	fmt.Fprintf(w, "Input:       %s\n", cfg.Input)
	fmt.Fprintf(w, "Product:     %s\n", prod)
	fmt.Fprintf(w, "Accumulator: %s\n", acc)
	fmt.Fprintf(w, "Output:      %s (%s, %s)\n", cfg.Output, cfg.Rounding, cfg.Overflow)
	return nil
}
