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

// alu applies a binary arithmetic or logic operation. x is the deeper operand,
// y the top of the stack.
func alu(op Opcode, x, y Word) Word {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpAnd:
		return x & y
	case OpOr:
		return x | y
	case OpEq:
		return truth(x == y)
	case OpGt:
		return truth(x > y)
	case OpLt:
		return truth(x < y)
	}
	panic("alu: not a binary operation: " + op.String())
}

func unary(op Opcode, x Word) Word {
	switch op {
	case OpNeg:
		return -x
	case OpNot:
		return ^x
	}
	panic("alu: not a unary operation: " + op.String())
}

// truth converts a Go boolean to the VM's -1 (true) / 0 (false) encoding.
func truth(b bool) Word {
	if b {
		return -1
	}
	return 0
}
