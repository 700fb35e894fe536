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
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

func isIdentRune(ch rune, i int) bool {
	return ch == '_' || ch == '.' || ch == ':' || ch == '$' || unicode.IsLetter(ch) || (unicode.IsDigit(ch) && i > 0)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r, i) {
			return false
		}
	}
	return true
}

type parser struct {
	name   string
	line   int
	text   string
	instrs []vm.Instruction
	errs   vm.LoadErrors
}

func (p *parser) error(msg string) {
	p.errs.Add(p.name, p.line, p.text, msg)
}

func (p *parser) number(s, what string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			p.error(what + " out of range: " + s)
		} else {
			p.error("invalid " + what + ": " + s)
		}
		return 0, false
	}
	if n < 0 || n > vm.MaxConstant {
		p.error(what + " out of range [0, " + strconv.Itoa(vm.MaxConstant) + "]: " + s)
		return 0, false
	}
	return n, true
}

// parseLine parses a single source line and appends the resulting instruction,
// if any.
func (p *parser) parseLine(s string) {
	if c := strings.Index(s, "//"); c >= 0 {
		s = s[:c]
	}
	f := strings.Fields(s)
	if len(f) == 0 {
		return
	}
	p.text = strings.Join(f, " ")

	op, ok := vm.LookupOpcode(f[0])
	if !ok {
		p.error("unknown instruction " + strconv.Quote(f[0]))
		return
	}
	if n := len(f) - 1; n != op.Arity() {
		p.error(op.String() + " expects " + strconv.Itoa(op.Arity()) + " operand(s), got " + strconv.Itoa(n))
		return
	}

	in := vm.Instruction{Op: op, File: p.name, Line: p.line}
	switch op {
	case vm.OpPush, vm.OpPop:
		seg, ok := vm.LookupSegment(f[1])
		if !ok {
			p.error("unknown segment " + strconv.Quote(f[1]))
			return
		}
		in.Segment = seg
		if in.Index, ok = p.number(f[2], "index"); !ok {
			return
		}
	case vm.OpLabel, vm.OpGoto, vm.OpIfGoto:
		if !isIdent(f[1]) {
			p.error("invalid label name " + strconv.Quote(f[1]))
			return
		}
		in.Name = f[1]
	case vm.OpFunction, vm.OpCall:
		if !isIdent(f[1]) {
			p.error("invalid function name " + strconv.Quote(f[1]))
			return
		}
		in.Name = f[1]
		what := "local variable count"
		if op == vm.OpCall {
			what = "argument count"
		}
		if in.Index, ok = p.number(f[2], what); !ok {
			return
		}
	}
	p.instrs = append(p.instrs, in)
}

// Parse reads VM instructions from the supplied io.Reader, one instruction per
// line, and returns them unlinked. Use Assemble or vm.Link to get runnable
// code.
//
// The name parameter is used in error messages to name the source of the
// error and is recorded as the File of each instruction. If the io.Reader is a
// file, name should be the file name.
//
// The returned error, if not nil, is either an I/O error or a vm.LoadErrors
// value.
func Parse(name string, r io.Reader) ([]vm.Instruction, error) {
	p := &parser{name: name}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	for s.Scan() {
		p.line++
		p.parseLine(s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return p.instrs, nil
}
