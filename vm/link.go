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
	"fmt"
	"sort"
	"strings"
)

// MaxConstant is the largest value of an instruction operand.
const MaxConstant = 1<<15 - 1

// Function describes a function of a program, or the anonymous scope of the
// instructions that precede the first function declaration.
type Function struct {
	Name   string
	Entry  int            // index of the function instruction
	Locals int            // number of local variables
	Line   int            // source line of the declaration
	Labels map[string]int // label name to instruction index
}

// Code is a linked program: an instruction list with its function and label
// tables. It is immutable once built by Link and can be shared by any number
// of instances.
type Code struct {
	Name         string
	Instructions []Instruction
	Functions    map[string]*Function
	Statics      map[string]int // class name to static segment base address
	scopes       []*Function
}

// Scope returns the function containing the instruction at index pc.
func (c *Code) Scope(pc int) *Function {
	n := sort.Search(len(c.scopes), func(k int) bool { return c.scopes[k].Entry > pc })
	if n == 0 {
		return nil
	}
	return c.scopes[n-1]
}

// ClassName returns the class part of a qualified function name, that is,
// everything before the first dot.
func ClassName(function string) string {
	class, _, _ := strings.Cut(function, ".")
	return class
}

func validate(in *Instruction) string {
	if in.Op >= opCount {
		return "illegal opcode"
	}
	switch in.Op.operands() {
	case argSegment:
		if in.Segment >= segCount {
			return "illegal segment"
		}
		if in.Index < 0 || in.Index > MaxConstant {
			return fmt.Sprintf("index out of range [0, %d]", MaxConstant)
		}
		switch in.Segment {
		case SegConstant:
			if in.Op == OpPop {
				return "cannot pop to the constant segment"
			}
		case SegPointer:
			if in.Index > 1 {
				return "pointer index must be 0 or 1"
			}
		case SegTemp:
			if in.Index >= TempSize {
				return fmt.Sprintf("temp index must be in range [0, %d]", TempSize-1)
			}
		}
	case argLabel:
		if in.Name == "" {
			return "missing label name"
		}
	case argFunc:
		if in.Name == "" {
			return "missing function name"
		}
		if in.Index < 0 || in.Index > MaxConstant {
			return fmt.Sprintf("count out of range [0, %d]", MaxConstant)
		}
	}
	return ""
}

// Link builds the function and label tables of a program, resolves jump
// targets and static segment addresses and validates every instruction.
//
// Labels are scoped to their enclosing function: a goto only ever resolves to a
// label of its own function. Calls to functions that are not part of the
// program are left unresolved (Target -1) since they may be bound to native
// functions at run time.
//
// The name parameter names the program. It is used in error messages for
// instructions that do not have a File set. The returned error, if not nil, is a LoadErrors value. The instrs slice
// is not modified.
func Link(name string, instrs []Instruction) (*Code, error) {
	var errs LoadErrors
	fail := func(in *Instruction, format string, args ...interface{}) {
		src := in.File
		if src == "" {
			src = name
		}
		errs.Add(src, in.Line, in.String(), fmt.Sprintf(format, args...))
	}

	c := &Code{
		Name:         name,
		Instructions: append([]Instruction(nil), instrs...),
		Functions:    make(map[string]*Function),
		Statics:      make(map[string]int),
	}
	ins := c.Instructions

	scopeOf := make([]*Function, len(ins))
	var scope *Function
	if len(ins) == 0 || ins[0].Op != OpFunction {
		scope = &Function{Labels: make(map[string]int)}
		c.scopes = append(c.scopes, scope)
	}
	for pc := range ins {
		in := &ins[pc]
		if msg := validate(in); msg != "" {
			fail(in, "%s", msg)
		}
		switch in.Op {
		case OpFunction:
			scope = &Function{Name: in.Name, Entry: pc, Locals: in.Index, Line: in.Line, Labels: make(map[string]int)}
			if prev := c.Functions[in.Name]; prev != nil {
				fail(in, "duplicate function %s, previous definition on line %d", in.Name, prev.Line)
			} else {
				c.Functions[in.Name] = scope
			}
			c.scopes = append(c.scopes, scope)
		case OpLabel:
			if prev, ok := scope.Labels[in.Name]; ok {
				fail(in, "duplicate label %s, previous definition on line %d", in.Name, ins[prev].Line)
			} else {
				scope.Labels[in.Name] = pc
			}
		}
		scopeOf[pc] = scope
	}

	// static segment: one contiguous block per class, in order of first use.
	var classes []string
	size := make(map[string]int)
	for pc := range ins {
		in := &ins[pc]
		if in.Op.operands() != argSegment || in.Segment != SegStatic {
			continue
		}
		cl := ClassName(scopeOf[pc].Name)
		n, ok := size[cl]
		if !ok {
			classes = append(classes, cl)
		}
		if in.Index+1 > n {
			size[cl] = in.Index + 1
		}
	}
	addr := StaticBase
	for _, cl := range classes {
		c.Statics[cl] = addr
		addr += size[cl]
	}

	for pc := range ins {
		in := &ins[pc]
		switch in.Op {
		case OpGoto, OpIfGoto:
			t, ok := scopeOf[pc].Labels[in.Name]
			if !ok {
				fn := scopeOf[pc].Name
				if fn == "" {
					fn = "top level code"
				}
				fail(in, "label %s not defined in %s", in.Name, fn)
				continue
			}
			in.Target = t
		case OpCall:
			in.Target = -1
			if f := c.Functions[in.Name]; f != nil {
				in.Target = f.Entry
			}
		case OpPush, OpPop:
			if in.Segment != SegStatic {
				break
			}
			in.Target = c.Statics[ClassName(scopeOf[pc].Name)] + in.Index
			if in.Target >= StaticLimit {
				fail(in, "static segment overflow: %d words needed, %d available", addr-StaticBase, StaticLimit-StaticBase)
			}
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return c, nil
}
