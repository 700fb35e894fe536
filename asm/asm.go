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

package asm

import (
	"io"
	"os"

	"github.com/db47h/hackvm/internal/hvi"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

// Assemble parses VM code read from the supplied io.Reader and links it. It
// returns the resulting code and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, is either an I/O error or a vm.LoadErrors
// value that will contain up to 10 entries. No code is returned on error.
func Assemble(name string, r io.Reader) (*vm.Code, error) {
	instrs, err := Parse(name, r)
	if err != nil {
		return nil, err
	}
	return vm.Link(name, instrs)
}

// AssembleFiles parses the given files in order and links them together into a
// single program named name.
func AssembleFiles(name string, files ...string) (*vm.Code, error) {
	instrs, err := ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	return vm.Link(name, instrs)
}

// ParseFiles parses the given files in order and returns their concatenated
// instructions. Parse errors from all files are collected in a single
// vm.LoadErrors value.
func ParseFiles(files ...string) ([]vm.Instruction, error) {
	var (
		all  []vm.Instruction
		errs vm.LoadErrors
	)
	for _, fn := range files {
		instrs, err := parseFile(fn)
		if err != nil {
			le, ok := err.(vm.LoadErrors)
			if !ok {
				return nil, err
			}
			for _, e := range le {
				errs.Add(e.Name, e.Line, e.Text, e.Msg)
			}
			continue
		}
		all = append(all, instrs...)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

func parseFile(name string) ([]vm.Instruction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return Parse(name, f)
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given code to the specified io.Writer and returns any write error.
func Disassemble(w io.Writer, c *vm.Code, pc int) error {
	ew := hvi.NewErrWriter(w)
	if pc < 0 || pc >= len(c.Instructions) {
		ew.Printf("% 10d\t???", pc)
		return ew.Err
	}
	in := &c.Instructions[pc]
	ew.Printf("% 10d\t", pc)
	switch in.Op {
	case vm.OpFunction:
	case vm.OpLabel:
		ew.WriteString("  ")
	default:
		ew.WriteString("    ")
	}
	ew.WriteString(in.String())
	switch in.Op {
	case vm.OpGoto, vm.OpIfGoto:
		ew.Printf("\t// -> %d", in.Target)
	case vm.OpCall:
		if in.Target >= 0 {
			ew.Printf("\t// -> %d", in.Target)
		} else {
			ew.WriteString("\t// native")
		}
	case vm.OpPush, vm.OpPop:
		if in.Segment == vm.SegStatic {
			ew.Printf("\t// @%d", in.Target)
		}
	}
	return ew.Err
}

// DisassembleAll writes a disassembly of n instructions starting at position
// pc to the specified io.Writer. If n < 0, the disassembly goes on until the
// end of the code. It will return any write error.
func DisassembleAll(w io.Writer, c *vm.Code, pc, n int) error {
	ew := hvi.NewErrWriter(w)
	if pc < 0 {
		pc = 0
	}
	for ; pc < len(c.Instructions) && n != 0; pc, n = pc+1, n-1 {
		Disassemble(ew, c, pc)
		ew.WriteByte('\n')
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
