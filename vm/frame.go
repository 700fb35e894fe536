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

// Frame holds the caller state saved by a call instruction and restored by the
// matching return.
type Frame struct {
	Function string // name of the called function
	ReturnPC int    // index of the instruction following the call
	LCL      Word
	ARG      Word
	THIS     Word
	THAT     Word
	floor    int
}

// Frames returns a copy of the call stack, outermost frame first.
func (i *Instance) Frames() []Frame {
	return append([]Frame(nil), i.frames...)
}

// Depth returns the call stack depth.
func (i *Instance) Depth() int {
	return len(i.frames)
}

// pushFrame saves the caller's segment registers and sets up LCL, ARG and the
// working stack floor for a callee whose arguments are the top nArgs stack
// values. The caller must have checked that these are available.
func (i *Instance) pushFrame(name string, ret, nArgs int) {
	i.frames = append(i.frames, Frame{
		Function: name,
		ReturnPC: ret,
		LCL:      i.ram[RegLCL],
		ARG:      i.ram[RegARG],
		THIS:     i.ram[RegTHIS],
		THAT:     i.ram[RegTHAT],
		floor:    i.floor,
	})
	sp := i.sp()
	i.ram[RegARG] = Word(sp - nArgs)
	i.ram[RegLCL] = Word(sp)
	i.floor = sp
}

// popFrame restores the state saved by the innermost frame and returns its
// return address.
func (i *Instance) popFrame() int {
	f := i.frames[len(i.frames)-1]
	i.frames = i.frames[:len(i.frames)-1]
	i.ram[RegLCL] = f.LCL
	i.ram[RegARG] = f.ARG
	i.ram[RegTHIS] = f.THIS
	i.ram[RegTHAT] = f.THAT
	i.floor = f.floor
	return f.ReturnPC
}
