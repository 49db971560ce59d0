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


// Command axilgen renders the register map of a fixed-point dot-product
// port as a C header, Go constants or a Markdown table.
//
// Usage:
//
//	axilgen header   -n 8 --width 16 --frac 8 -o fxdot_regs.h
//	axilgen gocode   -n 8 --package regs -o regs/fxdot_regs.go
//	axilgen markdown -n 8
//	axilgen info
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-fxaccel/fxp"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/dot"
)

type options struct {
	n, lanes          int
	width, frac       int
	outWidth, outFrac int
	prefix, pkg       string
	output            string
}

func (o *options) config() (dot.Config, error) {
	in, err := fxp.NewFormat(o.width, o.frac)
	if err != nil {
		return dot.Config{}, fmt.Errorf("input format: %w", err)
	}
	out, err := fxp.NewFormat(o.outWidth, o.outFrac)
	if err != nil {
		return dot.Config{}, fmt.Errorf("output format: %w", err)
	}
	cfg := dot.DefaultConfig()
	cfg.N, cfg.Lanes, cfg.Input, cfg.Output = o.n, o.lanes, in, out
	return cfg, cfg.Validate()
}

func (o *options) generator() (*Generator, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return &Generator{Config: cfg, Prefix: o.prefix, Package: o.pkg}, nil
}

func (o *options) write(data []byte, stdout io.Writer) error {
	if o.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", o.output, err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "axilgen",
		Short:         "Generate register map artifacts for the fixed-point dot-product port",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	def := dot.DefaultConfig()
	pf := root.PersistentFlags()
	pf.IntVarP(&o.n, "n", "n", def.N, "operand vector length")
	pf.IntVar(&o.lanes, "lanes", def.Lanes, "products folded per tick")
	pf.IntVar(&o.width, "width", def.Input.Width(), "operand width in bits")
	pf.IntVar(&o.frac, "frac", def.Input.Frac(), "operand fractional bits")
	pf.IntVar(&o.outWidth, "out-width", def.Output.Width(), "result width in bits")
	pf.IntVar(&o.outFrac, "out-frac", def.Output.Frac(), "result fractional bits")
	pf.StringVar(&o.prefix, "prefix", "fxdot", "identifier prefix")
	pf.StringVarP(&o.output, "output", "o", "", "output file (default stdout)")

	render := func(use, short string, fn func(*Generator) ([]byte, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				g, err := o.generator()
				if err != nil {
					return err
				}
				data, err := fn(g)
				if err != nil {
					return err
				}
				return o.write(data, cmd.OutOrStdout())
			},
		}
	}

	gocode := render("gocode", "Go constants and offset helpers", (*Generator).GoCode)
	gocode.Flags().StringVar(&o.pkg, "package", "regs", "package clause of the generated file")

	root.AddCommand(
		render("header", "C header with register offsets and bits", (*Generator).Header),
		gocode,
		render("markdown", "Markdown register table", (*Generator).Markdown),
		&cobra.Command{
			Use:   "info",
			Short: "Print host CPU features and derived datapath widths",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := o.config()
				if err != nil {
					return err
				}
				return writeInfo(cmd.OutOrStdout(), cfg)
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "axilgen: %v\n", err)
		os.Exit(1)
	}
}
