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

import "strconv"

// Opcode identifies the kind of an Instruction.
type Opcode uint8

// Hack VM opcodes.
const (
	OpPush Opcode = iota
	OpPop
	OpAdd
	OpSub
	OpNeg
	OpEq
	OpGt
	OpLt
	OpAnd
	OpOr
	OpNot
	OpLabel
	OpGoto
	OpIfGoto
	OpFunction
	OpCall
	OpReturn
	opCount
)

var opcodes = [...]string{
	OpPush:     "push",
	OpPop:      "pop",
	OpAdd:      "add",
	OpSub:      "sub",
	OpNeg:      "neg",
	OpEq:       "eq",
	OpGt:       "gt",
	OpLt:       "lt",
	OpAnd:      "and",
	OpOr:       "or",
	OpNot:      "not",
	OpLabel:    "label",
	OpGoto:     "goto",
	OpIfGoto:   "if-goto",
	OpFunction: "function",
	OpCall:     "call",
	OpReturn:   "return",
}

// operand kinds
const (
	argNone = iota
	argSegment
	argLabel
	argFunc
)

var opArgs = [...]int{
	OpPush:     argSegment,
	OpPop:      argSegment,
	OpLabel:    argLabel,
	OpGoto:     argLabel,
	OpIfGoto:   argLabel,
	OpFunction: argFunc,
	OpCall:     argFunc,
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range opcodes {
		opcodeIndex[v] = Opcode(i)
	}
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	op, ok := opcodeIndex[mnemonic]
	return op, ok
}

// Arity returns the number of operands expected after the mnemonic.
func (op Opcode) Arity() int {
	switch op.operands() {
	case argSegment, argFunc:
		return 2
	case argLabel:
		return 1
	}
	return 0
}

func (op Opcode) operands() int {
	if int(op) < len(opArgs) {
		return opArgs[op]
	}
	return argNone
}

func (op Opcode) String() string {
	if op < opCount {
		return opcodes[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Segment is a named address space used by push and pop.
type Segment uint8

// Memory segments.
const (
	SegConstant Segment = iota
	SegLocal
	SegArgument
	SegThis
	SegThat
	SegPointer
	SegTemp
	SegStatic
	segCount
)

var segments = [...]string{
	SegConstant: "constant",
	SegLocal:    "local",
	SegArgument: "argument",
	SegThis:     "this",
	SegThat:     "that",
	SegPointer:  "pointer",
	SegTemp:     "temp",
	SegStatic:   "static",
}

// LookupSegment returns the segment with the given name.
func LookupSegment(name string) (Segment, bool) {
	for i, n := range segments {
		if n == name {
			return Segment(i), true
		}
	}
	return 0, false
}

func (s Segment) String() string {
	if s < segCount {
		return segments[s]
	}
	return "segment(" + strconv.Itoa(int(s)) + ")"
}

// Instruction is a single VM instruction.
//
// Index holds the segment index for push/pop, the local variable count for
// function and the argument count for call. Name holds the label name for
// label, goto and if-goto and the function name for function and call.
//
// Target is set by Link: the instruction index of the jump target for goto and
// if-goto, the entry index of the callee for call (-1 if not a bytecode
// function) and the RAM address of the slot for static push/pop.
type Instruction struct {
	Op      Opcode
	Segment Segment
	Index   int
	Name    string
	File    string // source name
	Line    int    // source line, 1 based
	Target  int
}

func (in Instruction) String() string {
	s := in.Op.String()
	switch in.Op.operands() {
	case argSegment:
		s += " " + in.Segment.String() + " " + strconv.Itoa(in.Index)
	case argLabel:
		s += " " + in.Name
	case argFunc:
		s += " " + in.Name + " " + strconv.Itoa(in.Index)
	}
	return s
}
