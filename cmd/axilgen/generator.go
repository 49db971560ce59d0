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
	"bytes"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"github.com/ajroetker/go-fxaccel/fxp/contrib/axil"
	"github.com/ajroetker/go-fxaccel/fxp/contrib/dot"
)

// Generator renders the register map of one port configuration.
type Generator struct {
	Config  dot.Config // Pipeline configuration; N sizes the map
	Prefix  string     // Identifier prefix, e.g. "fxdot"
	Package string     // Package clause for Go output
}

func (g *Generator) regs() (axil.Map, error) {
	if err := g.Config.Validate(); err != nil {
		return axil.Map{}, err
	}
	if g.Config.Input.Width() > axil.MaxWordWidth || g.Config.Output.Width() > axil.MaxWordWidth {
		return axil.Map{}, fmt.Errorf("%w: formats wider than %d bits do not fit a register",
			dot.ErrConfig, axil.MaxWordWidth)
	}
	return axil.NewMap(g.Config.N)
}

// goName converts a register kind name like "OPERAND_A" to "OperandA".
func goName(s string) string {
	title := cases.Title(language.English)
	parts := strings.Split(strings.ToLower(s), "_")
	return strings.Join(lo.Map(parts, func(p string, _ int) string {
		return title.String(p)
	}), "")
}

func (g *Generator) cName(s string) string {
	return strings.ToUpper(g.Prefix) + "_" + s
}

func (g *Generator) goIdent(s string) string {
	return goName(g.Prefix) + goName(s)
}

// Header renders a C header with register offsets, STATUS bits and the
// data formats.
func (g *Generator) Header() ([]byte, error) {
	m, err := g.regs()
	if err != nil {
		return nil, err
	}
	guard := g.cName("REGS_H")
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by axilgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "#ifndef %s\n#define %s\n\n", guard, guard)
	fmt.Fprintf(&buf, "#define %-24s %d\n", g.cName("N"), m.N())
	fmt.Fprintf(&buf, "#define %-24s 0x%02x\n", g.cName("SIZE"), m.Size())
	fmt.Fprintf(&buf, "#define %-24s 0x%02x\n", g.cName("CONTROL"), axil.OffsetControl)
	fmt.Fprintf(&buf, "#define %-24s 0x%02x\n", g.cName("STATUS"), axil.OffsetStatus)
	fmt.Fprintf(&buf, "#define %-24s (0x%02x + %d * (i))\n", g.cName("OPERAND_A(i)"), m.OperandA(0), axil.WordBytes)
	fmt.Fprintf(&buf, "#define %-24s (0x%02x + %d * (i))\n", g.cName("OPERAND_B(i)"), m.OperandB(0), axil.WordBytes)
	fmt.Fprintf(&buf, "#define %-24s 0x%02x\n\n", g.cName("RESULT"), m.ResultOffset())

	for _, b := range statusBits {
		fmt.Fprintf(&buf, "#define %-24s 0x%xu\n", g.cName(b.name), b.mask)
	}
	fmt.Fprintf(&buf, "#define %-24s 0x%xu\n", g.cName("CONTROL_START"), axil.ControlStart)
	fmt.Fprintf(&buf, "#define %-24s 0x%08xu\n\n", g.cName("RESULT_SENTINEL"), axil.DefaultResultSentinel)

	fmt.Fprintf(&buf, "/* operands %s, result %s */\n", g.Config.Input, g.Config.Output)
	fmt.Fprintf(&buf, "#define %-24s %d\n", g.cName("INPUT_WIDTH"), g.Config.Input.Width())
	fmt.Fprintf(&buf, "#define %-24s %d\n", g.cName("INPUT_FRAC"), g.Config.Input.Frac())
	fmt.Fprintf(&buf, "#define %-24s %d\n", g.cName("OUTPUT_WIDTH"), g.Config.Output.Width())
	fmt.Fprintf(&buf, "#define %-24s %d\n", g.cName("OUTPUT_FRAC"), g.Config.Output.Frac())
	fmt.Fprintf(&buf, "\n#endif /* %s */\n", guard)
	return buf.Bytes(), nil
}

var statusBits = []struct {
	name string
	mask uint32
}{
	{"STATUS_BUSY", axil.StatusBusy},
	{"STATUS_DONE", axil.StatusDone},
	{"STATUS_DEFAULTED", axil.StatusDefaulted},
	{"STATUS_ERROR", axil.StatusError},
}

// GoCode renders a Go file declaring the same constants as Header. The
// output is formatted with goimports.
func (g *Generator) GoCode() ([]byte, error) {
	m, err := g.regs()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by axilgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", g.Package)
	fmt.Fprintf(&buf, "// Register offsets for a %d-element port.\n", m.N())
	fmt.Fprintf(&buf, "const (\n")
	fmt.Fprintf(&buf, "%s = %d\n", g.goIdent("N"), m.N())
	fmt.Fprintf(&buf, "%s uint32 = 0x%02x\n", g.goIdent("SIZE"), m.Size())
	for _, r := range m.Registers() {
		if r.Kind == axil.OperandA || r.Kind == axil.OperandB {
			continue
		}
		fmt.Fprintf(&buf, "%s uint32 = 0x%02x // %s\n", g.goIdent(r.Kind.String()), r.Offset, r.Description)
	}
	fmt.Fprintf(&buf, ")\n\n")

	fmt.Fprintf(&buf, "// STATUS and CONTROL bits.\nconst (\n")
	for _, b := range statusBits {
		fmt.Fprintf(&buf, "%s uint32 = 0x%x\n", g.goIdent(b.name), b.mask)
	}
	fmt.Fprintf(&buf, "%s uint32 = 0x%x\n", g.goIdent("CONTROL_START"), axil.ControlStart)
	fmt.Fprintf(&buf, "%s uint32 = 0x%08x\n", g.goIdent("RESULT_SENTINEL"), axil.DefaultResultSentinel)
	fmt.Fprintf(&buf, ")\n\n")

	fmt.Fprintf(&buf, "// Data formats: operands %s, result %s.\nconst (\n", g.Config.Input, g.Config.Output)
	fmt.Fprintf(&buf, "%s = %d\n", g.goIdent("INPUT_WIDTH"), g.Config.Input.Width())
	fmt.Fprintf(&buf, "%s = %d\n", g.goIdent("INPUT_FRAC"), g.Config.Input.Frac())
	fmt.Fprintf(&buf, "%s = %d\n", g.goIdent("OUTPUT_WIDTH"), g.Config.Output.Width())
	fmt.Fprintf(&buf, "%s = %d\n", g.goIdent("OUTPUT_FRAC"), g.Config.Output.Frac())
	fmt.Fprintf(&buf, ")\n\n")

	for _, k := range []axil.Kind{axil.OperandA, axil.OperandB} {
		name := g.goIdent(k.String())
		base := m.OperandA(0)
		if k == axil.OperandB {
			base = m.OperandB(0)
		}
		fmt.Fprintf(&buf, "// %s returns the offset of %s[i].\n", name, k)
		fmt.Fprintf(&buf, "func %s(i int) uint32 { return 0x%02x + %d*uint32(i) }\n\n", name, base, axil.WordBytes)
	}

	out, err := imports.Process(g.Prefix+"_regs.go", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting generated Go: %w", err)
	}
	return out, nil
}

// Markdown renders the register table.
func (g *Generator) Markdown() ([]byte, error) {
	m, err := g.regs()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s register map\n\n", strings.ToUpper(g.Prefix))
	fmt.Fprintf(&buf, "N = %d, operands %s, result %s, %d-byte words.\n\n",
		m.N(), g.Config.Input, g.Config.Output, axil.WordBytes)
	fmt.Fprintf(&buf, "| Offset | Name | Access | Description |\n")
	fmt.Fprintf(&buf, "|---|---|---|---|\n")
	for _, r := range m.Registers() {
		fmt.Fprintf(&buf, "| 0x%02x | %s | %s | %s |\n", r.Offset, r.Name, r.Access, r.Description)
	}
	return buf.Bytes(), nil
}
