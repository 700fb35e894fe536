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

// screen holds the drawing state of the Screen class. Coordinates outside of
// the screen are silently clipped.
type screen struct {
	color bool
}

var screenNatives = [...]struct {
	name string
	argc int
	fn   func(s *screen) vm.NativeFunc
}{
	{"Screen.clearScreen", 0, func(s *screen) vm.NativeFunc { return s.fillFunc(0) }},
	{"Screen.fillScreen", 0, func(s *screen) vm.NativeFunc { return s.fillFunc(-1) }},
	{"Screen.setColor", 1, func(s *screen) vm.NativeFunc { return s.setColor }},
	{"Screen.drawPixel", 2, func(s *screen) vm.NativeFunc { return s.drawPixel }},
	{"Screen.drawLine", 4, func(s *screen) vm.NativeFunc { return s.drawLine }},
	{"Screen.drawRectangle", 4, func(s *screen) vm.NativeFunc { return s.drawRectangle }},
	{"Screen.drawRectangleOutline", 4, func(s *screen) vm.NativeFunc { return s.drawRectangleOutline }},
	{"Screen.drawCircle", 3, func(s *screen) vm.NativeFunc { return s.drawCircle }},
}

func (s *screen) bind(name string, argc int, fn vm.NativeFunc) vm.Option {
	return vm.BindNative(name, arity(name, argc, fn).fn)
}

func (s *screen) plot(i *vm.Instance, x, y int) error {
	if x < 0 || x >= vm.ScreenWidth || y < 0 || y >= vm.ScreenHeight {
		return nil
	}
	addr := vm.ScreenBase + y*vm.ScreenWidth/16 + x/16
	v, err := i.Peek(addr)
	if err != nil {
		return err
	}
	mask := vm.Word(1) << uint(x%16)
	if s.color {
		v |= mask
	} else {
		v &^= mask
	}
	return i.Poke(addr, v)
}

func (s *screen) hline(i *vm.Instance, x1, x2, y int) error {
	if y < 0 || y >= vm.ScreenHeight {
		return nil
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 >= vm.ScreenWidth {
		x2 = vm.ScreenWidth - 1
	}
	for x := x1; x <= x2; x++ {
		if err := s.plot(i, x, y); err != nil {
			return err
		}
	}
	return nil
}

func (s *screen) fillFunc(v vm.Word) vm.NativeFunc {
	return func(i *vm.Instance, _ []vm.Word) (vm.Word, error) {
		for addr := vm.ScreenBase; addr < vm.ScreenBase+vm.ScreenSize; addr++ {
			if err := i.Poke(addr, v); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
}

func (s *screen) setColor(_ *vm.Instance, args []vm.Word) (vm.Word, error) {
	s.color = args[0] != 0
	return 0, nil
}

func (s *screen) drawPixel(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	return 0, s.plot(i, int(args[0]), int(args[1]))
}

func (s *screen) drawLine(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	return 0, s.line(i, int(args[0]), int(args[1]), int(args[2]), int(args[3]))
}

// line uses Bresenham's algorithm.
func (s *screen) line(i *vm.Instance, x1, y1, x2, y2 int) error {
	dx, sx := x2-x1, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y2-y1, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}
	e := dx - dy
	for {
		if err := s.plot(i, x1, y1); err != nil {
			return err
		}
		if x1 == x2 && y1 == y2 {
			return nil
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x1 += sx
		}
		if e2 < dx {
			e += dx
			y1 += sy
		}
	}
}

func (s *screen) drawRectangle(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	x1, y1, x2, y2 := int(args[0]), int(args[1]), int(args[2]), int(args[3])
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if y1 < 0 {
		y1 = 0
	}
	if y2 >= vm.ScreenHeight {
		y2 = vm.ScreenHeight - 1
	}
	for y := y1; y <= y2; y++ {
		if err := s.hline(i, x1, x2, y); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func (s *screen) drawRectangleOutline(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	x1, y1, x2, y2 := int(args[0]), int(args[1]), int(args[2]), int(args[3])
	for _, l := range [...][4]int{{x1, y1, x2, y1}, {x2, y1, x2, y2}, {x2, y2, x1, y2}, {x1, y2, x1, y1}} {
		if err := s.line(i, l[0], l[1], l[2], l[3]); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// drawCircle draws a filled circle.
func (s *screen) drawCircle(i *vm.Instance, args []vm.Word) (vm.Word, error) {
	x, y, r := int(args[0]), int(args[1]), int(args[2])
	if r < 0 {
		return 0, errors.Errorf("negative radius %d", r)
	}
	for dy := -r; dy <= r; dy++ {
		if y+dy < 0 || y+dy >= vm.ScreenHeight {
			continue
		}
		dx := int(math.Sqrt(float64(r*r - dy*dy)))
		if err := s.hline(i, x-dx, x+dx, y+dy); err != nil {
			return 0, err
		}
	}
	return 0, nil
}
