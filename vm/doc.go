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

// Package vm implements the Hack VM, the stack based virtual machine of the
// Nand2Tetris Hack platform.
//
// Programs are loaded from text with the asm package, which hands a linked
// *Code over to New. The resulting Instance executes one instruction per call
// to Step, so that a host can render the memory mapped display between steps
// and feed the keyboard register with the key currently pressed:
//
//	code, err := asm.Assemble("Main.vm", r)
//	// ...
//	i, err := vm.New(code)
//	// ...
//	for !i.Finished() {
//		changed, err := i.Step(key)
//		// ...
//		if changed {
//			render(i.Display())
//		}
//	}
//
// The VM owns a single flat memory (see RAMSize and the memory map constants)
// holding the segment registers, the temp and static segments, the operand
// stack, the heap, the display window and the keyboard register. Hosts may read
// all of it through RAM and Display, but should only write through Step (the
// keyboard register) and SetDisplay.
//
// Unlike the reference Hack VM, call frames are not stored in RAM but on a
// separate call stack (see Frames). The argument segment of a callee starts
// right at its first argument and its local segment right above the last one.
//
// A program is finished when it runs past its last instruction, returns from
// its entry function, executes a goto into a loop that can never exit (the
// standard Sys.halt idiom, either "label L; goto L" or a compiled
// "while (true) {}"), when the host calls Stop, or when an instruction fails.
// Heap allocation is not part of the VM: it is either implemented in bytecode
// or by native functions bound with BindNative.
//
// The VM is not safe for concurrent use.
package vm
