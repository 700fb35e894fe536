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

// Package jack provides the Jack operating system for programs compiled to VM
// code, as well as helpers to load and run them.
//
// The OS is split in two parts. Native functions, bound by Natives, implement
// Math, Screen, Output, Keyboard.keyPressed, Memory.peek and Memory.poke,
// String constants and Sys. Everything that needs heap allocation (Memory.alloc
// and Memory.deAlloc, Array, String objects) and the blocking Keyboard
// functions are VM code, linked on demand by Link.
package jack

import (
	"io"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/vm"
)

// Natives returns the options binding all the native OS functions provided by
// this package. Each call returns functions with their own state (the screen
// color and the text cursor), so the result must not be shared between
// instances.
func Natives() []vm.Option {
	s := &screen{color: true}
	o := &output{}
	opts := make([]vm.Option, 0, len(natives)+len(screenNatives)+len(outputNatives))
	for _, n := range natives {
		opts = append(opts, vm.BindNative(n.name, n.fn))
	}
	for _, n := range screenNatives {
		opts = append(opts, s.bind(n.name, n.argc, n.fn(s)))
	}
	for _, n := range outputNatives {
		opts = append(opts, o.bind(n.name, n.argc, n.fn))
	}
	return opts
}

// Load assembles VM code read from r, links it with the OS library, binds the
// native OS functions and returns a new instance ready to run. Additional
// options are applied after the natives have been bound, so they can override
// or unbind them.
func Load(name string, r io.Reader, opts ...vm.Option) (*vm.Instance, error) {
	instrs, err := asm.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return load(name, instrs, opts)
}

// LoadFiles works like Load but assembles the code from the given files.
func LoadFiles(name string, files []string, opts ...vm.Option) (*vm.Instance, error) {
	instrs, err := asm.ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	return load(name, instrs, opts)
}

func load(name string, instrs []vm.Instruction, opts []vm.Option) (*vm.Instance, error) {
	c, err := Link(name, instrs)
	if err != nil {
		return nil, err
	}
	return vm.New(c, append(Natives(), opts...)...)
}
