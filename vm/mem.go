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

import "github.com/pkg/errors"

// Hack platform memory map.
const (
	RAMSize = KBD + 1 // total number of addressable words

	RegSP   = 0 // stack pointer
	RegLCL  = 1 // local segment base
	RegARG  = 2 // argument segment base
	RegTHIS = 3 // this segment base, aka. pointer 0
	RegTHAT = 4 // that segment base, aka. pointer 1

	TempBase    = 5
	TempSize    = 8
	StaticBase  = 16
	StaticLimit = 256
	StackBase   = 256
	HeapBase    = 2048

	ScreenBase   = 16384
	ScreenWidth  = 512
	ScreenHeight = 256
	ScreenSize   = ScreenWidth / 16 * ScreenHeight

	KBD = ScreenBase + ScreenSize // keyboard register
)

func inScreen(addr int) bool {
	return addr >= ScreenBase && addr < ScreenBase+ScreenSize
}

// Peek returns the value at address addr.
//
// When called from a native function, an out of bounds address yields an
// *Error attributed to the calling instruction. Hosts get a plain error.
func (i *Instance) Peek(addr int) (Word, error) {
	if err := i.checkAddr(addr); err != nil {
		return 0, err
	}
	return i.ram[addr], nil
}

// Poke sets the value at address addr. It is meant for native functions and
// should not be used by hosts, except for the keyboard and display areas: the
// VM does not check the consistency of the stack and segment registers. Errors
// are reported like in Peek.
func (i *Instance) Poke(addr int, v Word) error {
	if err := i.checkAddr(addr); err != nil {
		return err
	}
	i.ram[addr] = v
	if inScreen(addr) {
		i.dirty = true
	}
	return nil
}

func (i *Instance) checkAddr(addr int) error {
	if addr >= 0 && addr < len(i.ram) {
		return nil
	}
	if i.native {
		return i.fail(OutOfBounds, addr)
	}
	return errors.Errorf("address %d out of bounds [0, %d)", addr, len(i.ram))
}

func (i *Instance) sp() int {
	return int(i.ram[RegSP])
}

// push pushes the argument on top of the operand stack.
func (i *Instance) push(v Word) error {
	sp := i.sp()
	if sp >= i.stackLimit {
		return i.fail(StackOverflow, sp)
	}
	if sp < StackBase {
		return i.fail(StackUnderflow, sp)
	}
	i.ram[sp] = v
	i.ram[RegSP]++
	return nil
}

// pop pops the value on top of the operand stack and returns it. It fails if
// that value does not belong to the current frame's working stack.
func (i *Instance) pop() (Word, error) {
	sp := i.sp() - 1
	if sp < i.floor || sp < StackBase {
		return 0, i.fail(StackUnderflow, sp)
	}
	if sp >= i.stackLimit {
		return 0, i.fail(StackOverflow, sp)
	}
	i.ram[RegSP]--
	return i.ram[sp], nil
}

// pop2 pops the two topmost values: y is the top of the stack, x the value
// below it.
func (i *Instance) pop2() (x, y Word, err error) {
	if y, err = i.pop(); err != nil {
		return
	}
	x, err = i.pop()
	return
}
