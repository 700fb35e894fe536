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
	"io"
	"strconv"

	"github.com/db47h/hackvm/internal/hvi"
	"github.com/db47h/hackvm/vm"
)

func dumpSlice(w *hvi.ErrWriter, a []vm.Word) {
	b := make([]byte, 0, 8)
	for i, v := range a {
		b = b[:0]
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		w.Write(b)
	}
}

// DumpRegisters writes the program counter and the segment registers of i to
// w.
func DumpRegisters(w io.Writer, i *vm.Instance) error {
	ew := hvi.NewErrWriter(w)
	ram := i.RAM()
	ew.Printf("PC: %d", i.PC())
	if in, ok := i.Current(); ok {
		ew.Printf(" (%v)", in)
	}
	ew.Printf(", steps: %d\nSP: %d, LCL: %d, ARG: %d, THIS: %d, THAT: %d\n",
		i.InstructionCount(), ram[vm.RegSP], ram[vm.RegLCL], ram[vm.RegARG], ram[vm.RegTHIS], ram[vm.RegTHAT])
	return ew.Err
}

// DumpStack writes the operand stack of i to w, bottom first.
func DumpStack(w io.Writer, i *vm.Instance) error {
	ew := hvi.NewErrWriter(w)
	ew.WriteString("Stack: ")
	dumpSlice(ew, i.Stack())
	ew.WriteByte('\n')
	return ew.Err
}

// DumpFrames writes the call stack of i to w, innermost frame first.
func DumpFrames(w io.Writer, i *vm.Instance) error {
	ew := hvi.NewErrWriter(w)
	f := i.Frames()
	for n := len(f) - 1; n >= 0; n-- {
		ew.Printf("% 4d  %s, return to %d, LCL: %d, ARG: %d\n", n, f[n].Function, f[n].ReturnPC, f[n].LCL, f[n].ARG)
	}
	return ew.Err
}

// DumpVM dumps the virtual machine registers, stack and call frames to the
// specified io.Writer.
func DumpVM(w io.Writer, i *vm.Instance) error {
	ew := hvi.NewErrWriter(w)
	DumpRegisters(ew, i)
	DumpStack(ew, i)
	ew.WriteString("Frames:\n")
	DumpFrames(ew, i)
	if err := i.Err(); err != nil {
		ew.Printf("Error: %v\n", err)
	}
	return ew.Err
}
