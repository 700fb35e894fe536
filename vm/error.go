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

package vm

import (
	"strconv"
	"strings"
)

// Errno describes the reason of a runtime failure.
type Errno int

// Runtime failures.
const (
	StackUnderflow Errno = iota + 1
	StackOverflow
	FrameUnderflow
	UnresolvedCall
	OutOfBounds
	IllegalInstruction
	NativeFailure
)

var strError = [...]string{
	StackUnderflow:     "stack underflow",
	StackOverflow:      "stack overflow",
	FrameUnderflow:     "return without a frame",
	UnresolvedCall:     "unresolved call",
	OutOfBounds:        "address out of bounds",
	IllegalInstruction: "illegal instruction",
	NativeFailure:      "native function failed",
}

func (e Errno) Error() string {
	if e > 0 && int(e) < len(strError) {
		return strError[e]
	}
	return "errno " + strconv.Itoa(int(e))
}

// Error describes the cause and the context of a runtime failure.
type Error struct {
	Errno Errno       // nature of the failure
	Err   error       // native function error when Errno is NativeFailure
	PC    int         // index of the failing instruction
	Instr Instruction // failing instruction
	Addr  int         // offending address when Errno is OutOfBounds, StackOverflow or StackUnderflow
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Errno.Error())
	switch e.Errno {
	case OutOfBounds:
		b.WriteString(" " + strconv.Itoa(e.Addr))
	case UnresolvedCall:
		b.WriteString(" to " + e.Instr.Name)
	case NativeFailure:
		b.WriteString(": " + e.Err.Error())
	}
	b.WriteString(" at " + strconv.Itoa(e.PC))
	if e.Instr.Line > 0 {
		b.WriteString(" (" + e.Instr.File + ":" + strconv.Itoa(e.Instr.Line) + ")")
	}
	b.WriteString(": " + e.Instr.String())
	return b.String()
}

// Unwrap returns the native function error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func (i *Instance) fail(errno Errno, addr int) error {
	e := &Error{Errno: errno, PC: i.pc, Addr: addr}
	if i.pc >= 0 && i.pc < len(i.code.Instructions) {
		e.Instr = i.code.Instructions[i.pc]
	}
	return e
}

func (i *Instance) failErr(errno Errno, err error) error {
	e := i.fail(errno, 0).(*Error)
	e.Err = err
	return e
}

// LoadError reports an invalid instruction found while loading a program.
type LoadError struct {
	Name string // source name
	Line int    // source line, 1 based
	Text string // offending instruction text
	Msg  string
}

func (e *LoadError) Error() string {
	s := e.Name + ":" + strconv.Itoa(e.Line) + ": " + e.Msg
	if e.Text != "" {
		s += ": " + e.Text
	}
	return s
}

// LoadErrors is a list of load errors. Loaders stop collecting errors after
// MaxLoadErrors entries.
type LoadErrors []*LoadError

// MaxLoadErrors is the maximum number of errors reported by a loader.
const MaxLoadErrors = 10

func (l LoadErrors) Error() string {
	s := make([]string, len(l))
	for i, e := range l {
		s[i] = e.Error()
	}
	return strings.Join(s, "\n")
}

// Add appends a new LoadError to the list unless it is already full. It
// returns false if the error was dropped.
func (l *LoadErrors) Add(name string, line int, text, msg string) bool {
	if len(*l) >= MaxLoadErrors {
		return false
	}
	*l = append(*l, &LoadError{Name: name, Line: line, Text: text, Msg: msg})
	return true
}

// Err returns l as an error, or nil if l is empty.
func (l LoadErrors) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
