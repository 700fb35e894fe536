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

// address returns the RAM address designated by the segment and index of a
// push or pop instruction. The constant segment has no address.
func (i *Instance) address(in *Instruction) (int, error) {
	switch in.Segment {
	case SegLocal:
		return i.deref(RegLCL, in.Index)
	case SegArgument:
		return i.deref(RegARG, in.Index)
	case SegThis:
		return i.deref(RegTHIS, in.Index)
	case SegThat:
		return i.deref(RegTHAT, in.Index)
	case SegPointer:
		switch in.Index {
		case 0:
			return RegTHIS, nil
		case 1:
			return RegTHAT, nil
		}
	case SegTemp:
		if in.Index >= 0 && in.Index < TempSize {
			return TempBase + in.Index, nil
		}
	case SegStatic:
		if in.Target >= StaticBase && in.Target < StaticLimit {
			return in.Target, nil
		}
	}
	return 0, i.fail(IllegalInstruction, 0)
}

// deref returns the address at offset idx from the base held in register reg.
func (i *Instance) deref(reg, idx int) (int, error) {
	a := int(i.ram[reg]) + idx
	if a < 0 || a >= len(i.ram) {
		return 0, i.fail(OutOfBounds, a)
	}
	return a, nil
}

func (i *Instance) load(in *Instruction) (Word, error) {
	if in.Segment == SegConstant {
		return Word(in.Index), nil
	}
	a, err := i.address(in)
	if err != nil {
		return 0, err
	}
	return i.ram[a], nil
}

func (i *Instance) store(in *Instruction, v Word) error {
	a, err := i.address(in)
	if err != nil {
		return err
	}
	i.ram[a] = v
	if inScreen(a) {
		i.dirty = true
	}
	return nil
}
