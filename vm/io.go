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

// NativeFunc is the function prototype for native functions. args holds the
// call arguments, first argument first. They have already been popped from the
// operand stack when the function is called; the returned value is pushed in
// their place.
//
// Native functions access memory through the Peek and Poke methods so that
// display writes are tracked.
type NativeFunc func(i *Instance, args []Word) (Word, error)

// BindNative binds the provided native function to the given function name.
// Functions defined in the program's code take precedence over natives of the
// same name.
func BindNative(name string, fn NativeFunc) Option {
	return func(i *Instance) error {
		if fn == nil {
			delete(i.natives, name)
			return nil
		}
		i.natives[name] = fn
		return nil
	}
}

// RAMSize returns the total number of words of memory.
func (i *Instance) RAMSize() int {
	return len(i.ram)
}

// DisplaySize returns the number of words in the display window.
func (i *Instance) DisplaySize() int {
	return ScreenSize
}

// RAM returns the whole memory. Hosts should only ever read from it: writing
// anywhere but the keyboard register and display window may break the stack
// and frame invariants.
func (i *Instance) RAM() []Word {
	return i.ram
}

// Display returns the display window. Pixel (x, y) is bit x%16 of word
// y*32 + x/16. See Pixel.
func (i *Instance) Display() []Word {
	return i.ram[ScreenBase : ScreenBase+ScreenSize]
}

// Keyboard returns the current value of the keyboard register.
func (i *Instance) Keyboard() Word {
	return i.ram[KBD]
}

// SetDisplay sets the display word at the given offset from the start of the
// display window. Host writes are not reported by Step; see DisplayTouched.
func (i *Instance) SetDisplay(value Word, offset int) error {
	if offset < 0 || offset >= ScreenSize {
		return errors.Errorf("display offset %d out of range [0, %d)", offset, ScreenSize)
	}
	i.ram[ScreenBase+offset] = value
	i.hostDirty = true
	return nil
}

// DisplayTouched reports whether SetDisplay has been called since the last
// call to DisplayTouched, and clears that flag.
func (i *Instance) DisplayTouched() bool {
	d := i.hostDirty
	i.hostDirty = false
	return d
}

// Stop finishes the instance. Subsequent calls to Step do nothing.
func (i *Instance) Stop() {
	i.finished = true
}

// Finished returns true if the program has halted, has been stopped, or has
// failed.
func (i *Instance) Finished() bool {
	return i.finished
}

// Pixel returns the state of pixel (x, y) in the given display window.
// Coordinates outside of the screen are reported as cleared.
func Pixel(display []Word, x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	w := y*(ScreenWidth/16) + x/16
	if w >= len(display) {
		return false
	}
	return display[w]&(1<<uint(x%16)) != 0
}
