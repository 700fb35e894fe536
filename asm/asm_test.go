// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

package asm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	code := `
// comment only
	push   constant 17	// trailing comment
pop local 2
label a.b$c:1
	if-goto a.b$c:1
function Foo.bar 3
call Math.multiply 2
return
`
	instrs, err := asm.Parse("parse", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	exp := []vm.Instruction{
		{Op: vm.OpPush, Segment: vm.SegConstant, Index: 17, Line: 3},
		{Op: vm.OpPop, Segment: vm.SegLocal, Index: 2, Line: 4},
		{Op: vm.OpLabel, Name: "a.b$c:1", Line: 5},
		{Op: vm.OpIfGoto, Name: "a.b$c:1", Line: 6},
		{Op: vm.OpFunction, Name: "Foo.bar", Index: 3, Line: 7},
		{Op: vm.OpCall, Name: "Math.multiply", Index: 2, Line: 8},
		{Op: vm.OpReturn, Line: 9},
	}
	if len(instrs) != len(exp) {
		t.Fatalf("expected %d instructions, got %d", len(exp), len(instrs))
	}
	for i := range exp {
		exp[i].File = "parse"
		if instrs[i] != exp[i] {
			t.Errorf("instruction %d: expected %+v, got %+v", i, exp[i], instrs[i])
		}
	}
}

// check that errors point at the correct line.
func TestAssemble_errors(t *testing.T) {
	var data = []struct {
		code string
		line int
	}{
		{"push constant 1\nfoo", 2},
		{"push constant", 1},
		{"add 1", 1},
		{"\n\npush heap 1", 3},
		{"push constant x", 1},
		{"push constant -1", 1},
		{"push constant 32768", 1},
		{"push constant 99999999999999999999", 1},
		{"label 1abc", 1},
		{"goto", 1},
		{"function Foo.bar", 1},
		{"function Foo.bar -1", 1},
		{"call 3 0", 1},
		{"pop constant 1", 1},
		{"push pointer 2", 1},
		{"pop temp 8", 1},
		{"function A.f 0\nfunction A.f 0", 2},
		{"function A.f 0\nlabel X\nlabel X", 3},
		{"function A.f 0\nlabel X\nfunction A.g 0\nif-goto X", 4},
	}
	for _, d := range data {
		_, err := asm.Assemble("errors", strings.NewReader(d.code))
		errs, ok := err.(vm.LoadErrors)
		if !ok {
			t.Errorf("%q: expected vm.LoadErrors, got %T (%v)", d.code, err, err)
			continue
		}
		if len(errs) != 1 {
			t.Errorf("%q: expected 1 error, got %d: %v", d.code, len(errs), errs)
		}
		if errs[0].Name != "errors" || errs[0].Line != d.line {
			t.Errorf("%q: error %v reported at wrong place, expected line %d", d.code, errs[0], d.line)
		}
	}
}

func TestAssemble_maxErrors(t *testing.T) {
	code := strings.Repeat("bogus\n", 20)
	_, err := asm.Assemble("max", strings.NewReader(code))
	errs, ok := err.(vm.LoadErrors)
	if !ok {
		t.Fatalf("unexpected error %v", err)
	}
	if len(errs) != vm.MaxLoadErrors {
		t.Errorf("expected %d errors, got %d", vm.MaxLoadErrors, len(errs))
	}
	if !strings.HasPrefix(errs.Error(), "max:1: unknown instruction \"bogus\": bogus\nmax:2:") {
		t.Errorf("unexpected error message %q", errs.Error())
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken") }

func TestAssemble_ioError(t *testing.T) {
	_, err := asm.Assemble("io", errReader{})
	if err == nil || errors.Cause(err).Error() != "broken" {
		t.Errorf("unexpected error %v", err)
	}
	if _, ok := err.(vm.LoadErrors); ok {
		t.Error("I/O error reported as load error")
	}
}

func TestAssembleFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, code string) string {
		fn := filepath.Join(dir, name)
		if err := os.WriteFile(fn, []byte(code), 0644); err != nil {
			t.Fatal(err)
		}
		return fn
	}
	main := write("Main.vm", "function Main.main 0\npush constant 5\ncall Foo.twice 1\nreturn\n")
	foo := write("Foo.vm", "function Foo.twice 0\npush argument 0\npush argument 0\nadd\nreturn\n")
	c, err := asm.AssembleFiles("prog", main, foo)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "prog" || c.Functions["Foo.twice"] == nil || c.Instructions[2].Target != 4 {
		t.Fatalf("bad link: %+v", c.Functions)
	}
	if c.Instructions[5].File != foo || c.Instructions[5].Line != 2 {
		t.Errorf("bad source position %s:%d", c.Instructions[5].File, c.Instructions[5].Line)
	}
	i, err := vm.New(c)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = i.Run(-1, 0); err != nil {
		t.Fatal(err)
	}
	if s := i.Stack(); len(s) != 1 || s[0] != 10 {
		t.Errorf("unexpected result %v", s)
	}

	// errors from all files are reported
	bad := write("Bad.vm", "function Bad.f 0\npush nowhere 0\n")
	dup := write("Dup.vm", "function Foo.twice 0\nreturn\n")
	_, err = asm.AssembleFiles("prog", main, bad, foo)
	errs, ok := err.(vm.LoadErrors)
	if !ok || len(errs) != 1 || errs[0].Name != bad || errs[0].Line != 2 {
		t.Errorf("unexpected error %v", err)
	}
	_, err = asm.AssembleFiles("prog", main, foo, dup)
	errs, ok = err.(vm.LoadErrors)
	if !ok || len(errs) != 1 || errs[0].Name != dup || errs[0].Line != 1 {
		t.Errorf("unexpected error %v", err)
	}
	if _, err = asm.AssembleFiles("prog", filepath.Join(dir, "missing.vm")); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestDisassemble(t *testing.T) {
	c, err := asm.Assemble("dis", strings.NewReader("push constant 1\npop static 3\nlabel L\ngoto L"))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	for _, d := range []struct {
		pc  int
		exp string
	}{
		{0, "         0\t    push constant 1"},
		{1, "         1\t    pop static 3\t// @19"},
		{2, "         2\t  label L"},
		{3, "         3\t    goto L\t// -> 2"},
		{4, "         4\t???"},
		{-1, "        -1\t???"},
	} {
		b.Reset()
		if err := asm.Disassemble(&b, c, d.pc); err != nil {
			t.Fatal(err)
		}
		if b.String() != d.exp {
			t.Errorf("pc %d: expected %q, got %q", d.pc, d.exp, b.String())
		}
	}
	b.Reset()
	if err := asm.DisassembleAll(&b, c, 2, -1); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(b.String(), "\n"); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
}
