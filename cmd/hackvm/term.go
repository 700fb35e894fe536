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

package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/db47h/hackvm/lang/jack"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	frameRate = 60
	// terminals do not report key releases: a key is held down for that many
	// frames after it was last received.
	holdFrames = 8
)

// escape sequences sent by terminals for special keys.
var termKeys = map[string]vm.Word{
	"[A": jack.KeyUp, "[B": jack.KeyDown, "[C": jack.KeyRight, "[D": jack.KeyLeft,
	"[H": jack.KeyHome, "[F": jack.KeyEnd, "OH": jack.KeyHome, "OF": jack.KeyEnd,
	"[1~": jack.KeyHome, "[4~": jack.KeyEnd,
	"[2~": jack.KeyInsert, "[3~": jack.KeyDelete, "[5~": jack.KeyPageUp, "[6~": jack.KeyPageDown,
	"OP": jack.KeyF1, "OQ": jack.KeyF2, "OR": jack.KeyF3, "OS": jack.KeyF4,
	"[15~": jack.KeyF5, "[17~": jack.KeyF6, "[18~": jack.KeyF7, "[19~": jack.KeyF8,
	"[20~": jack.KeyF9, "[21~": jack.KeyF10, "[23~": jack.KeyF11, "[24~": jack.KeyF12,
}

// errQuit reports that the user interrupted the program with Ctrl-C.
var errQuit = errors.New("interrupted")

// decodeKeys translates raw terminal input to Hack key codes. Ctrl-C is
// reported as -1. Unknown sequences and control characters are dropped.
func decodeKeys(b []byte) []vm.Word {
	var keys []vm.Word
	for n := 0; n < len(b); n++ {
		c := b[n]
		switch {
		case c == 3:
			keys = append(keys, -1)
		case c == '\r' || c == '\n':
			keys = append(keys, jack.KeyNewLine)
		case c == 8 || c == 127:
			keys = append(keys, jack.KeyBackSpace)
		case c == 0x1b:
			// longest match first; a lone ESC is the escape key.
			k, l := jack.KeyEsc, 0
			for end := n + 2; end <= len(b) && end <= n+5; end++ {
				if code, ok := termKeys[string(b[n+1:end])]; ok {
					k, l = code, end-n-1
				}
			}
			keys = append(keys, k)
			n += l
		case c >= 32 && c < 127:
			keys = append(keys, vm.Word(c))
		}
	}
	return keys
}

// braille renders the display window d with Unicode braille patterns, each
// character cell showing a 2x4 block of dots. Each dot covers a scale x scale
// block of pixels and is set if any of them is.
func braille(w io.Writer, d []vm.Word, scale int) {
	if scale < 1 {
		scale = 1
	}
	// dot bits by row and column within a character cell
	var dots = [4][2]rune{{0x01, 0x08}, {0x02, 0x10}, {0x04, 0x20}, {0x40, 0x80}}
	cw, ch := 2*scale, 4*scale
	line := make([]byte, 0, (vm.ScreenWidth/cw+1)*3+2)
	for y := 0; y < vm.ScreenHeight; y += ch {
		line = line[:0]
		for x := 0; x < vm.ScreenWidth; x += cw {
			r := rune(0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if anyPixel(d, x+dx*scale, y+dy*scale, scale) {
						r |= dots[dy][dx]
					}
				}
			}
			line = append(line, string(r)...)
		}
		line = append(line, '\r', '\n')
		w.Write(line)
	}
}

func anyPixel(d []vm.Word, x, y, scale int) bool {
	for j := 0; j < scale; j++ {
		for i := 0; i < scale; i++ {
			if vm.Pixel(d, x+i, y+j) {
				return true
			}
		}
	}
	return false
}

// termScale returns the smallest scale at which the display fits in a
// terminal of the given size, keeping a line for the status.
func termScale(cols, rows int) int {
	s := 1
	for s < 8 && (vm.ScreenWidth/(2*s) > cols || vm.ScreenHeight/(4*s)+1 > rows) {
		s++
	}
	return s
}

type termUI struct {
	i     *vm.Instance
	rate  int
	out   *bufio.Writer
	scale int
	key   vm.Word
	hold  int
}

func (t *termUI) draw() error {
	io.WriteString(t.out, "\x1b[H")
	braille(t.out, t.i.Display(), t.scale)
	state := "running"
	if t.i.Finished() {
		state = "finished"
	}
	io.WriteString(t.out, "\x1b[KPC "+strconv.Itoa(t.i.PC())+"  steps "+strconv.FormatInt(t.i.InstructionCount(), 10)+"  "+state)
	return errors.Wrap(t.out.Flush(), "write failed")
}

func (t *termUI) run(input <-chan []byte) error {
	tick := time.NewTicker(time.Second / frameRate)
	defer tick.Stop()
	if err := t.draw(); err != nil {
		return err
	}
	for !t.i.Finished() {
		select {
		case b, ok := <-input:
			if !ok {
				input = nil
				break
			}
			for _, k := range decodeKeys(b) {
				if k < 0 {
					t.i.Stop()
					return errQuit
				}
				t.key, t.hold = k, holdFrames
			}
		case <-tick.C:
			changed, err := t.i.Run(t.rate, t.key)
			if t.hold > 0 {
				if t.hold--; t.hold == 0 {
					t.key = 0
				}
			}
			if err != nil {
				t.draw()
				return err
			}
			if t.i.DisplayTouched() || changed || t.i.Finished() {
				if err = t.draw(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func readInput(r io.Reader, c chan<- []byte) {
	defer close(c)
	for {
		b := make([]byte, 64)
		n, err := r.Read(b)
		if n > 0 {
			c <- b[:n]
		}
		if err != nil {
			return
		}
	}
}

func runTerm(i *vm.Instance, rate int) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("standard output is not a terminal")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return errors.Wrap(err, "cannot get terminal size")
	}
	restore, err := setRawIO()
	if err != nil {
		return err
	}
	defer restore()

	t := &termUI{
		i:     i,
		rate:  rate,
		out:   bufio.NewWriterSize(os.Stdout, 64<<10),
		scale: termScale(cols, rows),
	}
	io.WriteString(t.out, "\x1b[2J\x1b[?25l")
	defer func() {
		io.WriteString(t.out, "\x1b[?25h\r\n")
		t.out.Flush()
	}()

	input := make(chan []byte)
	go readInput(os.Stdin, input)
	return t.run(input)
}
