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
	"fmt"
	"strings"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/vm"
)

// Shows how to assemble a program and step through it.
func ExampleInstance_Step() {
	code, err := asm.Assemble("example", strings.NewReader(`
		// draws a 16 pixels wide line at the top left of the screen
		function Sys.init 0
		push constant 16384
		pop pointer 1
		push constant 0
		not
		pop that 0
		label HALT
		goto HALT`))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(code)
	if err != nil {
		panic(err)
	}
	for !i.Finished() {
		in, _ := i.Current()
		changed, err := i.Step(0)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-20s changed=%v\n", in, changed)
	}
	fmt.Println(vm.Pixel(i.Display(), 15, 0), vm.Pixel(i.Display(), 16, 0))

	// Output:
	// function Sys.init 0  changed=false
	// push constant 16384  changed=false
	// pop pointer 1        changed=false
	// push constant 0      changed=false
	// not                  changed=false
	// pop that 0           changed=true
	// goto HALT            changed=false
	// true false
}

// Shows how to implement a function natively.
func ExampleBindNative() {
	maxFn := func(i *vm.Instance, args []vm.Word) (vm.Word, error) {
		if args[0] > args[1] {
			return args[0], nil
		}
		return args[1], nil
	}
	code, err := asm.Assemble("max", strings.NewReader(`
		push constant 7
		neg
		push constant 3
		call Math.max 2`))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(code, vm.BindNative("Math.max", maxFn))
	if err != nil {
		panic(err)
	}
	if _, err = i.Run(-1, 0); err != nil {
		panic(err)
	}
	fmt.Println(i.Stack())

	// Output:
	// [3]
}

// Shows how runtime errors are reported.
func ExampleError() {
	code, err := asm.Assemble("crash.vm", strings.NewReader(`
		function Main.main 0
		push constant 1
		add
		return`))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(code)
	if err != nil {
		panic(err)
	}
	_, err = i.Run(-1, 0)
	fmt.Println(err)
	fmt.Println(i.Finished(), i.InstructionCount())

	// Output:
	// stack underflow at 2 (crash.vm:4): add
	// true 2
}
