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

package vm_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/vm"
)

type C []vm.Word

func load(name, code string, opts ...vm.Option) (*vm.Instance, error) {
	c, err := asm.Assemble(name, strings.NewReader(code))
	if err != nil {
		return nil, err
	}
	return vm.New(c, opts...)
}

func setup(t *testing.T, name, code string, opts ...vm.Option) *vm.Instance {
	i, err := load(name, code, opts...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return i
}

func check(t *testing.T, testName string, i *vm.Instance, stack C) bool {
	_, err := i.Run(-1, 0)
	if err != nil {
		t.Errorf("%s: %+v", testName, err)
		return false
	}
	if !i.Finished() {
		t.Errorf("%s: not finished", testName)
		return false
	}
	stk := i.Stack()
	diff := len(stk) != len(stack)
	if !diff {
		for i := range stack {
			if stack[i] != stk[i] {
				diff = true
				break
			}
		}
	}
	if diff {
		t.Errorf("%v", fmt.Errorf("%s: Stack error: expected %d, got %d", testName, stack, stk))
		return false
	}
	return true
}

var tests = [...]struct {
	name string
	code string
	data []vm.Word
}{
	{"push", "push constant 7\npush constant 8", C{7, 8}},
	{"add", "push constant 2\npush constant 3\nadd", C{5}},
	{"add wraps", "push constant 32767\npush constant 1\nadd", C{-32768}},
	{"sub", "push constant 3\npush constant 5\nsub\npush constant 5\npush constant 3\nsub", C{-2, 2}},
	{"neg", "push constant 5\nneg\npush constant 0\nneg", C{-5, 0}},
	{"neg wraps", "push constant 32767\nneg\npush constant 1\nsub\nneg", C{-32768}},
	{"eq", "push constant 4\npush constant 4\neq\npush constant 4\npush constant 5\neq", C{-1, 0}},
	{"lt", "push constant 5\npush constant 3\nlt\npush constant 3\npush constant 5\nlt", C{0, -1}},
	{"gt", "push constant 5\npush constant 3\ngt\npush constant 3\npush constant 5\ngt", C{-1, 0}},
	{"signed gt", "push constant 1\nneg\npush constant 1\ngt", C{0}},
	{"and", "push constant 12\npush constant 10\nand", C{8}},
	{"or", "push constant 12\npush constant 10\nor", C{14}},
	{"not", "push constant 0\nnot\npush constant 21845\nnot", C{-1, -21846}},
	{"temp", "push constant 9\npop temp 3\npush temp 3", C{9}},
	{"pointer", `push constant 3000
		pop pointer 0
		push constant 42
		pop this 2
		push pointer 0
		push this 2`, C{3000, 42}},
	{"that", `push constant 4000
		pop pointer 1
		push constant 7
		pop that 0
		push that 0
		push pointer 1`, C{7, 4000}},
	{"static", "push constant 11\npop static 0\npush static 0", C{11}},
	{"goto", "push constant 1\ngoto SKIP\npush constant 2\nlabel SKIP\npush constant 3", C{1, 3}},
	{"if-goto", `push constant 0
		if-goto A
		push constant 1
		label A
		push constant 1
		if-goto B
		push constant 2
		label B`, C{1}},
	{"loop", `push constant 0
		pop temp 0
		push constant 5
		pop temp 1
		label LOOP
		push temp 0
		push temp 1
		add
		pop temp 0
		push temp 1
		push constant 1
		sub
		pop temp 1
		push temp 1
		if-goto LOOP
		push temp 0`, C{15}},
	{"call", `push constant 10
		push constant 3
		call Foo.diff 2
		label END
		goto END
		function Foo.diff 1
		push argument 0
		push argument 1
		sub
		pop local 0
		push local 0
		return`, C{7}},
	{"locals are zeroed", `push constant 1
		push constant 1
		push constant 1
		pop temp 0
		pop temp 0
		pop temp 0
		call Foo.f 0
		label END
		goto END
		function Foo.f 3
		push local 0
		push local 1
		or
		push local 2
		or
		return`, C{0}},
	{"recursion", fact, C{120}},
	{"statics per class", `function Main.main 0
		push constant 1
		pop static 0
		call Foo.set 0
		pop temp 0
		push static 0
		return
		function Foo.set 0
		push constant 2
		pop static 0
		push constant 0
		return`, C{1}},
}

var fact = `
// recursive factorial, multiplication by repeated addition
function Main.main 0
	push constant 5
	call Main.fact 1
	return
function Main.fact 0
	push argument 0
	push constant 1
	gt
	if-goto REC
	push constant 1
	return
label REC
	push argument 0
	push argument 0
	push constant 1
	sub
	call Main.fact 1
	call Main.mul 2
	return
function Main.mul 2
	push constant 0
	pop local 0
	push argument 1
	pop local 1
label LOOP
	push local 1
	if-goto BODY
	push local 0
	return
label BODY
	push local 0
	push argument 0
	add
	pop local 0
	push local 1
	push constant 1
	sub
	pop local 1
	goto LOOP
`

func TestCore(t *testing.T) {
	for _, test := range tests {
		c, err := asm.Assemble(test.name, strings.NewReader(test.code))
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		i, err := vm.New(c)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if !check(t, test.name, i, test.data) {
			var b bytes.Buffer
			b.WriteString(test.name)
			b.WriteString(":\n")
			asm.DisassembleAll(&b, c, 0, -1)
			t.Log(b.String())
		}
	}
}

func TestStatics(t *testing.T) {
	c, err := asm.Assemble("statics", strings.NewReader(tests[len(tests)-1].code))
	if err != nil {
		t.Fatal(err)
	}
	if c.Statics["Main"] != vm.StaticBase || c.Statics["Foo"] != vm.StaticBase+1 {
		t.Errorf("bad static allocation: %v", c.Statics)
	}
	i, _ := vm.New(c)
	i.Run(-1, 0)
	ram := i.RAM()
	if ram[vm.StaticBase] != 1 || ram[vm.StaticBase+1] != 2 {
		t.Errorf("bad static values: %v", ram[vm.StaticBase:vm.StaticBase+2])
	}
}

// push seg idx followed by pop seg idx must leave memory and SP untouched.
func TestPushPop(t *testing.T) {
	for _, seg := range []string{"local", "argument", "this", "that", "pointer", "temp", "static"} {
		i := setup(t, seg, fmt.Sprintf("push %s 1\npop %s 1", seg, seg),
			vm.Registers(vm.StackBase, 300, 400, 3000, 4000))
		ram := i.RAM()
		ram[301], ram[401], ram[3001], ram[4001] = 11, 22, 33, 44
		ram[vm.TempBase+1], ram[vm.StaticBase+1] = 55, 66
		before := append([]vm.Word(nil), ram...)
		if _, err := i.Run(-1, 0); err != nil {
			t.Errorf("%s: %v", seg, err)
			continue
		}
		for a := range ram {
			if a == vm.StackBase {
				// dead stack slot
				continue
			}
			if ram[a] != before[a] {
				t.Errorf("%s: RAM[%d] changed from %d to %d", seg, a, before[a], ram[a])
			}
		}
	}
	if _, err := load("pop constant", "push constant 1\npop constant 1"); err == nil {
		t.Error("pop constant: expected error")
	}
}

func TestCallReturnBalance(t *testing.T) {
	i := setup(t, "balance", `
		push constant 1
		push constant 2
		push constant 3
		call F.g 2
		label H
		goto H
		function F.g 3
		push constant 5000
		pop pointer 0
		push constant 6000
		pop pointer 1
		push argument 1
		return`, vm.Registers(vm.StackBase, 300, 400, 3000, 4000))
	if _, err := i.Run(3, 0); err != nil {
		t.Fatal(err)
	}
	var regs [5]vm.Word
	copy(regs[:], i.RAM())
	if _, err := i.Step(0); err != nil {
		t.Fatal(err)
	}
	if i.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", i.Depth())
	}
	if arg := i.RAM()[vm.RegARG]; arg != regs[vm.RegSP]-2 {
		t.Errorf("ARG = %d, expected %d", arg, regs[vm.RegSP]-2)
	}
	for i.Depth() > 0 {
		if _, err := i.Step(0); err != nil {
			t.Fatal(err)
		}
	}
	ram := i.RAM()
	if ram[vm.RegSP] != regs[vm.RegSP]-2+1 {
		t.Errorf("SP = %d, expected %d", ram[vm.RegSP], regs[vm.RegSP]-1)
	}
	for r := vm.RegLCL; r <= vm.RegTHAT; r++ {
		if ram[r] != regs[r] {
			t.Errorf("RAM[%d] = %d, expected %d", r, ram[r], regs[r])
		}
	}
	if stk := i.Stack(); len(stk) != 2 || stk[0] != 1 || stk[1] != 3 {
		t.Errorf("bad stack %v", stk)
	}
}

var fib = `
function Main.main 0
	push constant 20
	call Main.fib 1
	return
function Main.fib 0
	push argument 0
	push constant 2
	lt
	if-goto BASE
	push argument 0
	push constant 1
	sub
	call Main.fib 1
	push argument 0
	push constant 2
	sub
	call Main.fib 1
	add
	return
label BASE
	push argument 0
	return
`

func BenchmarkFib(b *testing.B) {
	c, err := asm.Assemble("fib", strings.NewReader(fib))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		i, _ := vm.New(c)
		if _, err = i.Run(-1, 0); err != nil {
			b.Fatal(err)
		}
		if s := i.Stack(); len(s) != 1 || s[0] != 6765 {
			b.Fatalf("bad result %v", s)
		}
	}
}
