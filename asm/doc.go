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

// Package asm provides utility functions to load and disassemble Hack VM
// code.
//
// Source code is line oriented: one instruction per line, with operands
// separated by white space. Blank lines are ignored and "//" starts a comment
// that runs up to the end of the line.
//
//	instruction		stack	description
//	------------------	-----	-------------------------------------------------------
//	push segment index	-x	push the value of segment[index]
//	pop segment index	x-	pop the top of the stack into segment[index]
//	add			xy-z	x + y
//	sub			xy-z	x - y
//	neg			x-z	-x
//	eq			xy-b	x == y
//	gt			xy-b	x > y
//	lt			xy-b	x < y
//	and			xy-z	bitwise and
//	or			xy-z	bitwise or
//	not			x-z	bitwise not
//	label name			declare a label in the current function
//	goto name			jump to label name
//	if-goto name		b-	pop the top of the stack, jump to label name if not 0
//	function name nLocals		function entry point, allocates nLocals locals set to 0
//	call name nArgs		args-r	call function name with the top nArgs values as arguments
//	return			r-	return to the caller, pushing r on the caller's stack
//
// Booleans are -1 (true) and 0 (false). All values are 16 bits two's complement
// integers.
//
// Segments:
//
//	constant	the index itself, in range [0, 32767]. Cannot be popped to.
//	local		RAM[LCL+index]
//	argument	RAM[ARG+index]
//	this		RAM[THIS+index]
//	that		RAM[THAT+index]
//	pointer		0: the THIS register itself, 1: the THAT register
//	temp		RAM[5+index], index in range [0, 7]
//	static		a per class variable; the class of a function is the part of
//			its name before the first dot
//
// Label and function names are made of letters, digits, '_', '.', ':' and '$'
// and may not start with a digit. Labels are local to the function they are
// declared in: a goto cannot jump to a label of another function, even if a
// label of the same name exists in the current one. Code preceding the first
// function declaration forms its own label scope.
package asm
