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


package jack

import (
	"bytes"
	"embed"
	"io/fs"
	"sync"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

//go:embed os/*.vm
var osFiles embed.FS

// class is a class of the bytecode OS library.
type class struct {
	instrs []vm.Instruction
	funcs  map[string]bool
}

var (
	libOnce sync.Once
	lib     []*class
	libErr  error
)

func library() ([]*class, error) {
	libOnce.Do(func() {
		files, err := fs.Glob(osFiles, "os/*.vm")
		if err != nil {
			libErr = err
			return
		}
		for _, fn := range files {
			b, err := osFiles.ReadFile(fn)
			if err != nil {
				libErr = err
				return
			}
			instrs, err := asm.Parse(fn, bytes.NewReader(b))
			if err != nil {
				libErr = errors.Wrap(err, "OS library")
				return
			}
			c := &class{instrs: instrs, funcs: make(map[string]bool)}
			for k := range instrs {
				if instrs[k].Op == vm.OpFunction {
					c.funcs[instrs[k].Name] = true
				}
			}
			lib = append(lib, c)
		}
	})
	return lib, libErr
}

// needed reports whether c must be linked to a program that defines the
// functions in defined and calls the functions in calls.
func (c *class) needed(defined map[string]bool, calls []string) bool {
	for f := range c.funcs {
		if defined[f] {
			return false
		}
	}
	for _, f := range calls {
		if c.funcs[f] {
			return true
		}
	}
	return false
}

// Link links instrs together with the classes of the bytecode OS library that
// the program needs (Memory, Array, String and the blocking Keyboard
// functions). A library class is linked when the program calls one of its
// functions without defining any of them itself, so that a program can bring
// its own implementation of a whole class.
//
// Library code is appended after the program: programs made of top-level code
// rather than functions must halt before reaching it.
func Link(name string, instrs []vm.Instruction) (*vm.Code, error) {
	classes, err := library()
	if err != nil {
		return nil, err
	}
	defined := make(map[string]bool)
	var calls []string
	scan := func(ins []vm.Instruction) {
		for k := range ins {
			switch ins[k].Op {
			case vm.OpFunction:
				defined[ins[k].Name] = true
			case vm.OpCall:
				calls = append(calls, ins[k].Name)
			}
		}
	}
	scan(instrs)
	all := instrs[:len(instrs):len(instrs)]
	linked := make([]bool, len(classes))
	for more := true; more; {
		more = false
		for k, c := range classes {
			if linked[k] || !c.needed(defined, calls) {
				continue
			}
			linked[k], more = true, true
			all = append(all, c.instrs...)
			scan(c.instrs)
		}
	}
	return vm.Link(name, all)
}
