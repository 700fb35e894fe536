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
	"math"

	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

type native struct {
	name string
	fn   vm.NativeFunc
}

// arity wraps fn so that it fails when not called with exactly n arguments.
func arity(name string, n int, fn vm.NativeFunc) native {
	return native{name, func(i *vm.Instance, args []vm.Word) (vm.Word, error) {
		if len(args) != n {
			return 0, errors.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
		}
		return fn(i, args)
	}}
}

func constant(name string, v vm.Word) native {
	return arity(name, 0, func(*vm.Instance, []vm.Word) (vm.Word, error) { return v, nil })
}

var natives = [...]native{
	arity("Math.multiply", 2, mathMultiply),
	arity("Math.divide", 2, mathDivide),
	arity("Math.min", 2, mathMin),
	arity("Math.max", 2, mathMax),
	arity("Math.abs", 1, mathAbs),
	arity("Math.sqrt", 1, mathSqrt),
	arity("Math.pow", 2, mathPow),

	arity("Keyboard.keyPressed", 0, keyPressed),

	arity("Memory.peek", 1, memPeek),
	arity("Memory.poke", 2, memPoke),

	constant("String.backSpace", KeyBackSpace),
	constant("String.newLine", KeyNewLine),
	constant("String.doubleQuote", KeyDoubleQuote),

	arity("Sys.wait", 1, sysWait),
	arity("Sys.halt", 0, sysHalt),
	arity("Sys.error", 1, sysError),
}

func mathMultiply(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	return args[0] * args[1], nil
}

func mathDivide(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[1] == 0 {
		return 0, errors.New("division by zero")
	}
	return args[0] / args[1], nil
}

func mathMin(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[0] < args[1] {
		return args[0], nil
	}
	return args[1], nil
}

func mathMax(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[0] > args[1] {
		return args[0], nil
	}
	return args[1], nil
}

func mathAbs(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[0] < 0 {
		return -args[0], nil
	}
	return args[0], nil
}

func mathSqrt(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[0] < 0 {
		return 0, errors.Errorf("square root of negative number %d", args[0])
	}
	return vm.Word(math.Sqrt(float64(args[0]))), nil
}

// mathPow computes x^n by squaring, with the usual 16 bits wraparound.
func mathPow(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[1] < 0 {
		return 0, errors.Errorf("negative exponent %d", args[1])
	}
	x, r := args[0], vm.Word(1)
	for n := args[1]; n > 0; n >>= 1 {
		if n&1 != 0 {
			r *= x
		}
		x *= x
	}
	return r, nil
}

func keyPressed(i *vm.Instance, _ []vm.Word) (vm.Word, error) {
	return i.Keyboard(), nil
}

func memPeek(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	return i.Peek(int(args[0]))
}

func memPoke(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	return 0, i.Poke(int(args[0]), args[1])
}

func sysWait(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if args[0] < 0 {
		return 0, errors.Errorf("negative wait duration %d", args[0])
	}
	// hosts pace execution, there is nothing to wait for.
	return 0, nil
}

func sysHalt(i *vm.Instance, _ []vm.Word) (vm.Word, error) {
	i.Stop()
	return 0, nil
}

// sysErrors describes the error codes raised by the OS library.
var sysErrors = map[vm.Word]string{
	2:  "Array.new: array size must be positive",
	5:  "Memory.alloc: allocated memory size must be positive",
	6:  "Memory.alloc: heap overflow",
	14: "String.new: maximum length must be non-negative",
}

func sysError(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	if msg, ok := sysErrors[args[0]]; ok {
		return 0, errors.Errorf("error code %d: %s", args[0], msg)
	}
	return 0, errors.Errorf("error code %d", args[0])
}
