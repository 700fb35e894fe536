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
	"strconv"

	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

// Text output geometry: the screen is divided in 23 rows of 64 characters,
// each 8 pixels wide and 11 pixels high.
const (
	charWidth  = 8
	charHeight = 11
	TextRows   = vm.ScreenHeight / charHeight
	TextCols   = vm.ScreenWidth / charWidth
)

// String objects are laid out in memory as [length, capacity, chars...].
const (
	strLength = 0
	strChars  = 2
)

// output holds the text cursor of the Output class.
type output struct {
	row, col int
}

var outputNatives = [...]struct {
	name string
	argc int
	fn   func(o *output, i *vm.Instance, args []vm.Word) (vm.Word, error)
}{
	{"Output.moveCursor", 2, (*output).moveCursor},
	{"Output.printChar", 1, (*output).printChar},
	{"Output.printString", 1, (*output).printString},
	{"Output.printInt", 1, (*output).printInt},
	{"Output.println", 0, (*output).println},
	{"Output.backSpace", 0, (*output).backSpace},
}

func (o *output) bind(name string, argc int, fn func(*output, *vm.Instance, []vm.Word) (vm.Word, error)) vm.Option {
	return vm.BindNative(name, arity(name, argc, func(i *vm.Instance, args []vm.Word) (vm.Word, error) {
		return fn(o, i, args)
	}).fn)
}

// draw draws the glyph of c at the cursor position. Characters are byte
// aligned: even columns use the low byte of a display word, odd columns the
// high byte.
func (o *output) draw(i *vm.Instance, c vm.Word) error {
	shift := uint(o.col%2) * 8
	for r, bits := range glyph(c) {
		addr := vm.ScreenBase + (o.row*charHeight+r)*vm.ScreenWidth/16 + o.col/2
		v, err := i.Peek(addr)
		if err != nil {
			return err
		}
		w := uint16(v)&^(0xff<<shift) | uint16(bits)<<shift
		if err = i.Poke(addr, vm.Word(w)); err != nil {
			return err
		}
	}
	return nil
}

func (o *output) newLine() {
	o.col = 0
	o.row = (o.row + 1) % TextRows
}

// put prints c and advances the cursor. The new line and backspace keys move
// the cursor instead.
func (o *output) put(i *vm.Instance, c vm.Word) error {
	switch c {
	case KeyNewLine:
		o.newLine()
		return nil
	case KeyBackSpace:
		return o.erase(i)
	}
	if err := o.draw(i, c); err != nil {
		return err
	}
	if o.col++; o.col == TextCols {
		o.newLine()
	}
	return nil
}

// erase moves the cursor one character back and clears it.
func (o *output) erase(i *vm.Instance) error {
	switch {
	case o.col > 0:
		o.col--
	case o.row > 0:
		o.row, o.col = o.row-1, TextCols-1
	}
	return o.draw(i, ' ')
}

func (o *output) moveCursor(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	row, col := int(args[0]), int(args[1])
	if row < 0 || row >= TextRows || col < 0 || col >= TextCols {
		return 0, errors.Errorf("cursor position (%d, %d) out of range", row, col)
	}
	o.row, o.col = row, col
	return 0, nil
}

func (o *output) printChar(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	return 0, o.put(i, args[0])
}

func (o *output) printString(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	s := int(args[0])
	n, err := i.Peek(s + strLength)
	if err != nil {
		return 0, err
	}
	for k := 0; k < int(n); k++ {
		c, err := i.Peek(s + strChars + k)
		if err != nil {
			return 0, err
		}
		if err = o.put(i, c); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func (o *output) printInt(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	for _, c := range strconv.Itoa(int(args[0])) {
		if err := o.put(i, vm.Word(c)); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func (o *output) println(*vm.Instance, []vm.Word) (vm.Word, error) {
	o.newLine()
	return 0, nil
}

func (o *output) backSpace(i *vm.Instance, _ []vm.Word) (vm.Word, error) {
	return 0, o.erase(i)
}
