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
	"fmt"
	"image/color"
	"log"

	"github.com/db47h/hackvm/lang/jack"
	"github.com/db47h/hackvm/vm"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	statusHeight = 16
	pasteFrames  = 3
	maxPaste     = 4096
)

var statusColor = color.RGBA{190, 190, 190, 255}

// guiKeys maps special keys to Hack key codes. F5 and F6 are reserved for
// execution control.
var guiKeys = [...]struct {
	key  ebiten.Key
	code vm.Word
}{
	{ebiten.KeyEnter, jack.KeyNewLine},
	{ebiten.KeyNumpadEnter, jack.KeyNewLine},
	{ebiten.KeyBackspace, jack.KeyBackSpace},
	{ebiten.KeyArrowLeft, jack.KeyLeft},
	{ebiten.KeyArrowUp, jack.KeyUp},
	{ebiten.KeyArrowRight, jack.KeyRight},
	{ebiten.KeyArrowDown, jack.KeyDown},
	{ebiten.KeyHome, jack.KeyHome},
	{ebiten.KeyEnd, jack.KeyEnd},
	{ebiten.KeyPageUp, jack.KeyPageUp},
	{ebiten.KeyPageDown, jack.KeyPageDown},
	{ebiten.KeyInsert, jack.KeyInsert},
	{ebiten.KeyDelete, jack.KeyDelete},
	{ebiten.KeyEscape, jack.KeyEsc},
	{ebiten.KeyF1, jack.KeyF1},
	{ebiten.KeyF2, jack.KeyF2},
	{ebiten.KeyF3, jack.KeyF3},
	{ebiten.KeyF4, jack.KeyF4},
	{ebiten.KeyF7, jack.KeyF7},
	{ebiten.KeyF8, jack.KeyF8},
	{ebiten.KeyF9, jack.KeyF9},
	{ebiten.KeyF10, jack.KeyF10},
	{ebiten.KeyF11, jack.KeyF11},
	{ebiten.KeyF12, jack.KeyF12},
}

// pasteKeys converts text to a sequence of key codes. Characters that have no
// key code are dropped.
func pasteKeys(b []byte) []vm.Word {
	var keys []vm.Word
	for n := 0; n < len(b) && len(keys) < maxPaste; n++ {
		switch c := b[n]; {
		case c == '\r':
			if n+1 < len(b) && b[n+1] == '\n' {
				n++
			}
			keys = append(keys, jack.KeyNewLine)
		case c == '\n':
			keys = append(keys, jack.KeyNewLine)
		case c >= 32 && c < 127:
			keys = append(keys, vm.Word(c))
		}
	}
	return keys
}

// renderRGBA draws the display window d into pix, an RGBA pixel buffer of the
// size of the screen. Set pixels are black.
func renderRGBA(pix []byte, d []vm.Word) {
	for k, w := range d {
		base := (k/32*vm.ScreenWidth + k%32*16) * 4
		for b := 0; b < 16; b++ {
			c := byte(0xff)
			if w&(1<<uint(b)) != 0 {
				c = 0
			}
			p := pix[base+b*4 : base+b*4+4]
			p[0], p[1], p[2], p[3] = c, c, c, 0xff
		}
	}
}

type gui struct {
	i      *vm.Instance
	rate   int
	paused bool
	err    error

	display *ebiten.Image
	pix     []byte
	dirty   bool

	char  vm.Word
	chars []rune
	keys  []ebiten.Key

	paste     []vm.Word
	pasteTick int
	clipOK    bool
	clipInit  bool
}

func newGUI(i *vm.Instance, rate int) *gui {
	return &gui{
		i:     i,
		rate:  rate,
		pix:   make([]byte, vm.ScreenWidth*vm.ScreenHeight*4),
		dirty: true,
	}
}

func (g *gui) readClipboard() {
	if !g.clipInit {
		g.clipInit = true
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			g.clipOK = true
		}
	}
	if g.clipOK {
		g.paste = append(g.paste, pasteKeys(clipboard.Read(clipboard.FmtText))...)
	}
}

// pasted returns the key code of the pasted character to send this frame.
// Each character is held down for a few frames, then released for as long.
func (g *gui) pasted() vm.Word {
	if len(g.paste) == 0 {
		return 0
	}
	g.pasteTick++
	if g.pasteTick <= pasteFrames {
		return g.paste[0]
	}
	if g.pasteTick >= 2*pasteFrames {
		g.paste = g.paste[1:]
		g.pasteTick = 0
	}
	return 0
}

// key returns the code of the key currently held down.
func (g *gui) key() vm.Word {
	for _, k := range guiKeys {
		if ebiten.IsKeyPressed(k.key) {
			return k.code
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if r >= 32 && r < 127 {
			g.char = vm.Word(r)
		}
	}
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	if len(g.keys) == 0 {
		g.char = 0
	}
	if g.char != 0 {
		return g.char
	}
	return g.pasted()
}

func (g *gui) Update() error {
	if g.i.Finished() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.paused = !g.paused
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.readClipboard()
	}

	n := g.rate
	if g.paused {
		n = 0
		if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
			n = 1
		}
	}
	changed, err := g.i.Run(n, g.key())
	g.dirty = g.i.DisplayTouched() || g.dirty || changed
	if err != nil {
		g.err = err
	}
	return nil
}

func (g *gui) status() string {
	state := "running"
	switch {
	case g.err != nil:
		state = "error: " + g.err.Error()
	case g.i.Finished():
		state = "finished, Esc to quit"
	case g.paused:
		state = "paused, F5 to resume, F6 to step"
	}
	return fmt.Sprintf("PC %-6d steps %-10d %s", g.i.PC(), g.i.InstructionCount(), state)
}

func (g *gui) Draw(screen *ebiten.Image) {
	if g.display == nil {
		g.display = ebiten.NewImage(vm.ScreenWidth, vm.ScreenHeight)
	}
	if g.dirty {
		renderRGBA(g.pix, g.i.Display())
		g.display.WritePixels(g.pix)
		g.dirty = false
	}
	screen.DrawImage(g.display, nil)
	text.Draw(screen, g.status(), basicfont.Face7x13, 4, vm.ScreenHeight+12, statusColor)
}

func (g *gui) Layout(_, _ int) (int, int) {
	return vm.ScreenWidth, vm.ScreenHeight + statusHeight
}

func runGUI(i *vm.Instance, title string, rate int) error {
	ebiten.SetWindowSize(vm.ScreenWidth*2, (vm.ScreenHeight+statusHeight)*2)
	ebiten.SetWindowTitle("hackvm - " + title)
	ebiten.SetWindowResizable(true)
	g := newGUI(i, rate)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	if g.err != nil {
		return g.err
	}
	// closing the window stops the program
	i.Stop()
	return nil
}
