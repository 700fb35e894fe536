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

// Step writes key to the keyboard register then executes exactly one
// instruction. Label markers are skipped without consuming a step; function
// instructions do consume one since they allocate local variables.
//
// Step returns true if the instruction wrote to the display window. Once the
// instance is finished, Step does nothing and returns false.
//
// If the instruction fails, the instance is finished and the error, usually an
// *Error, is returned.
func (i *Instance) Step(key Word) (displayChanged bool, err error) {
	if i.finished {
		return false, nil
	}
	i.ram[KBD] = key
	i.skipLabels()
	if i.pc >= len(i.code.Instructions) {
		i.finished = true
		return false, nil
	}
	i.dirty = false
	if i.trace != nil {
		err = i.traceStep()
	}
	if err == nil {
		err = i.exec()
	}
	if err != nil {
		i.finished = true
		i.err = err
		return false, err
	}
	i.insCount++
	i.skipLabels()
	if i.pc >= len(i.code.Instructions) {
		i.finished = true
	}
	return i.dirty, nil
}

// Run calls Step with the same key until n instructions have been executed or
// the instance is finished. If n < 0, Run does not return before the instance
// is finished. displayChanged is true if any of the steps wrote to the display.
func (i *Instance) Run(n int, key Word) (displayChanged bool, err error) {
	for ; n != 0 && !i.finished; n-- {
		d, err := i.Step(key)
		displayChanged = displayChanged || d
		if err != nil {
			return displayChanged, err
		}
	}
	return displayChanged, nil
}

func (i *Instance) skipLabels() {
	for i.pc < len(i.code.Instructions) && i.code.Instructions[i.pc].Op == OpLabel {
		i.pc++
	}
}

// traceStep traces the instruction about to be executed. A write error stops
// the instance before that instruction runs.
func (i *Instance) traceStep() error {
	in := &i.code.Instructions[i.pc]
	i.trace.Printf("% 6d\t%-32s\tsp=%d depth=%d\n", i.pc, in, i.sp(), len(i.frames))
	if i.trace.Err != nil {
		return errors.Wrap(i.trace.Err, "trace")
	}
	return nil
}

func (i *Instance) exec() error {
	in := &i.code.Instructions[i.pc]
	next := i.pc + 1
	switch in.Op {
	case OpPush:
		v, err := i.load(in)
		if err != nil {
			return err
		}
		if err = i.push(v); err != nil {
			return err
		}
	case OpPop:
		if in.Segment == SegConstant {
			return i.fail(IllegalInstruction, 0)
		}
		v, err := i.pop()
		if err != nil {
			return err
		}
		if err = i.store(in, v); err != nil {
			return err
		}
	case OpAdd, OpSub, OpEq, OpGt, OpLt, OpAnd, OpOr:
		x, y, err := i.pop2()
		if err != nil {
			return err
		}
		if err = i.push(alu(in.Op, x, y)); err != nil {
			return err
		}
	case OpNeg, OpNot:
		x, err := i.pop()
		if err != nil {
			return err
		}
		if err = i.push(unary(in.Op, x)); err != nil {
			return err
		}
	case OpLabel:
	case OpGoto:
		next = in.Target
		if i.halts(next) {
			i.finished = true
		}
	case OpIfGoto:
		v, err := i.pop()
		if err != nil {
			return err
		}
		if v != 0 {
			next = in.Target
		}
	case OpFunction:
		for n := 0; n < in.Index; n++ {
			if err := i.push(0); err != nil {
				return err
			}
		}
		i.floor = i.sp()
	case OpCall:
		var err error
		if next, err = i.call(in, next); err != nil {
			return err
		}
	case OpReturn:
		var err error
		if next, err = i.ret(); err != nil {
			return err
		}
	default:
		return i.fail(IllegalInstruction, 0)
	}
	i.pc = next
	return nil
}

// halts reports whether a jump from the current goto instruction back to
// target enters a loop that can neither exit nor change the machine state. The
// loop body may only hold labels, constants, arithmetic on those constants and
// conditional jumps that are never taken, and must leave the stack as it found
// it. This covers the bare "label L; goto L" idiom as well as compiled
// "while (true) {}" loops.
func (i *Instance) halts(target int) bool {
	if target > i.pc {
		return false
	}
	var (
		st [8]Word
		n  int
	)
	for pc := target; pc < i.pc; pc++ {
		in := &i.code.Instructions[pc]
		switch in.Op {
		case OpLabel:
		case OpPush:
			if in.Segment != SegConstant || n == len(st) {
				return false
			}
			st[n] = Word(in.Index)
			n++
		case OpNeg, OpNot:
			if n < 1 {
				return false
			}
			st[n-1] = unary(in.Op, st[n-1])
		case OpAdd, OpSub, OpEq, OpGt, OpLt, OpAnd, OpOr:
			if n < 2 {
				return false
			}
			st[n-2] = alu(in.Op, st[n-2], st[n-1])
			n--
		case OpIfGoto:
			if n < 1 {
				return false
			}
			n--
			if st[n] != 0 {
				return false
			}
		default:
			return false
		}
	}
	return n == 0
}

func (i *Instance) call(in *Instruction, ret int) (int, error) {
	sp := i.sp()
	if sp-in.Index < i.floor {
		return 0, i.fail(StackUnderflow, sp-in.Index)
	}
	if in.Target >= 0 {
		i.pushFrame(in.Name, ret, in.Index)
		return in.Target, nil
	}
	fn := i.callees[i.pc]
	if fn == nil {
		return 0, i.fail(UnresolvedCall, 0)
	}
	args := append([]Word(nil), i.ram[sp-in.Index:sp]...)
	i.ram[RegSP] = Word(sp - in.Index)
	i.native = true
	v, err := fn(i, args)
	i.native = false
	if err != nil {
		if _, ok := errors.Cause(err).(*Error); ok {
			return 0, err
		}
		return 0, i.failErr(NativeFailure, err)
	}
	if err = i.push(v); err != nil {
		return 0, err
	}
	return ret, nil
}

func (i *Instance) ret() (int, error) {
	if len(i.frames) == 0 {
		return 0, i.fail(FrameUnderflow, 0)
	}
	v, err := i.pop()
	if err != nil {
		return 0, err
	}
	i.ram[RegSP] = i.ram[RegARG]
	pc := i.popFrame()
	if err = i.push(v); err != nil {
		return 0, err
	}
	return pc, nil
}
