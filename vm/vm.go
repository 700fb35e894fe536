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
	"io"

	"github.com/db47h/hackvm/internal/hvi"
	"github.com/pkg/errors"
)

// Word is the raw type stored in a memory location: a 16 bits two's complement
// integer. Arithmetic on Words wraps around.
type Word int16

// Instance represents a Hack VM instance.
type Instance struct {
	code       *Code
	ram        []Word
	pc         int
	frames     []Frame
	floor      int
	stackLimit int
	finished   bool
	dirty      bool
	hostDirty  bool
	native     bool
	err        error
	insCount   int64
	entry      string
	natives    map[string]NativeFunc
	callees    map[int]NativeFunc
	regs       *[5]Word
	trace      *hvi.ErrWriter
}

// Option interface
type Option func(*Instance) error

// Entry sets the name of the function where execution starts. The default is
// Sys.init if such a function exists, then Main.main, and if neither is defined,
// the first instruction of the program.
func Entry(name string) Option {
	return func(i *Instance) error {
		i.entry = name
		return nil
	}
}

// StackLimit sets the address above the last valid stack slot. The default is
// HeapBase. Pushing a value at or above this address fails with a
// StackOverflow error.
func StackLimit(limit int) Option {
	return func(i *Instance) error {
		if limit <= StackBase || limit > ScreenBase {
			return errors.Errorf("stack limit %d out of range (%d, %d]", limit, StackBase, ScreenBase)
		}
		i.stackLimit = limit
		return nil
	}
}

// Registers sets the initial values of the SP, LCL, ARG, THIS and THAT
// registers. The default is SP = LCL = ARG = StackBase and THIS = THAT = 0.
func Registers(sp, lcl, arg, this, that Word) Option {
	return func(i *Instance) error {
		i.regs = &[5]Word{sp, lcl, arg, this, that}
		return nil
	}
}

// Trace enables instruction tracing: the instruction about to be executed is
// written to w, together with its index and the current stack pointer.
func Trace(w io.Writer) Option {
	return func(i *Instance) error {
		if w == nil {
			i.trace = nil
			return nil
		}
		i.trace = hvi.NewErrWriter(w)
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Hack VM instance ready to run code from its entry point.
//
// Call instructions that do not resolve to a function of code are bound to the
// native functions registered with BindNative. Calls that resolve to neither
// fail when executed.
//
// Options will be set by calling SetOptions.
func New(code *Code, opts ...Option) (*Instance, error) {
	if code == nil {
		return nil, errors.New("nil code")
	}
	i := &Instance{
		code:       code,
		ram:        make([]Word, RAMSize),
		stackLimit: HeapBase,
		natives:    make(map[string]NativeFunc),
		callees:    make(map[int]NativeFunc),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.regs != nil {
		copy(i.ram[RegSP:], i.regs[:])
	} else {
		i.ram[RegSP], i.ram[RegLCL], i.ram[RegARG] = StackBase, StackBase, StackBase
	}
	sp := int(i.ram[RegSP])
	if sp < StackBase || sp >= i.stackLimit {
		return nil, errors.Errorf("initial stack pointer %d out of range [%d, %d)", sp, StackBase, i.stackLimit)
	}
	i.floor = sp

	for pc, in := range code.Instructions {
		if in.Op == OpCall && in.Target < 0 {
			if fn := i.natives[in.Name]; fn != nil {
				i.callees[pc] = fn
			}
		}
	}

	name := i.entry
	if name == "" {
		for _, n := range []string{"Sys.init", "Main.main"} {
			if code.Functions[n] != nil {
				name = n
				break
			}
		}
	}
	if name != "" {
		f := code.Functions[name]
		if f == nil {
			return nil, errors.Errorf("entry function %s not found", name)
		}
		// bootstrap frame: returning from the entry function ends the program.
		i.pushFrame(name, len(code.Instructions), 0)
		i.pc = f.Entry
	}
	i.skipLabels()
	if i.pc >= len(code.Instructions) {
		i.finished = true
	}
	return i, nil
}

// Code returns the code run by the instance.
func (i *Instance) Code() *Code {
	return i.code
}

// PC returns the index of the next instruction to execute.
func (i *Instance) PC() int {
	return i.pc
}

// Current returns the next instruction to execute. ok is false if the program
// counter is past the end of the program.
func (i *Instance) Current() (in Instruction, ok bool) {
	if i.pc < 0 || i.pc >= len(i.code.Instructions) {
		return in, false
	}
	return i.code.Instructions[i.pc], true
}

// Stack returns the operand stack, from StackBase to the stack pointer. Note
// that value changes will be reflected in the instance's memory, but
// re-slicing will not affect it.
func (i *Instance) Stack() []Word {
	sp := int(i.ram[RegSP])
	if sp < StackBase {
		return nil
	}
	if sp > len(i.ram) {
		sp = len(i.ram)
	}
	return i.ram[StackBase:sp]
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Err returns the error that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}
