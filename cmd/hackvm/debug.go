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
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/lang/jack"
	"github.com/db47h/hackvm/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

const historyFile = ".hackvm_history"

var debugCommands = [...]struct {
	name, args, help string
}{
	{"step", "[n]", "execute n instructions (default 1)"},
	{"run", "[n]", "run until a breakpoint is hit, the program ends or n instructions have been executed"},
	{"break", "[function|pc]", "toggle a breakpoint, or list breakpoints"},
	{"regs", "", "show registers"},
	{"stack", "", "show the operand stack"},
	{"frames", "", "show the call stack"},
	{"ram", "addr [n]", "show n words of memory starting at addr (default 1)"},
	{"dis", "[pc] [n]", "disassemble n instructions starting at pc (default 10 from the current instruction)"},
	{"display", "offset value", "set the display word at offset from the start of the display window"},
	{"key", "code|char", "set the key held down during execution (0 to release)"},
	{"shot", "filename", "save a screenshot of the display"},
	{"help", "", "show this help"},
	{"quit", "", "exit the debugger"},
}

type debugger struct {
	i      *vm.Instance
	out    io.Writer
	breaks map[int]bool
	key    vm.Word
}

func newDebugger(i *vm.Instance, out io.Writer) *debugger {
	return &debugger{i: i, out: out, breaks: make(map[int]bool)}
}

func number(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("invalid number %q", s)
	}
	return n, nil
}

// where prints the next instruction to execute, or the state of the program
// if it is finished.
func (d *debugger) where() {
	if d.i.Finished() {
		if err := d.i.Err(); err != nil {
			fmt.Fprintf(d.out, "program crashed: %v\n", err)
		} else {
			fmt.Fprintf(d.out, "program finished after %d instructions\n", d.i.InstructionCount())
		}
		return
	}
	if fn := d.i.Code().Scope(d.i.PC()); fn != nil && fn.Name != "" {
		fmt.Fprintf(d.out, "%s:\n", fn.Name)
	}
	asm.Disassemble(d.out, d.i.Code(), d.i.PC())
	io.WriteString(d.out, "\n")
}

// exec executes up to n instructions, n < 0 meaning no limit. If brk is true,
// execution stops before any instruction with a breakpoint, except the first
// one.
func (d *debugger) exec(n int, brk bool) error {
	for k := 0; n < 0 || k < n; k++ {
		if d.i.Finished() {
			break
		}
		if brk && k > 0 && d.breaks[d.i.PC()] {
			fmt.Fprintf(d.out, "breakpoint at %d\n", d.i.PC())
			break
		}
		if _, err := d.i.Step(d.key); err != nil {
			return err
		}
	}
	return nil
}

func (d *debugger) breakpoint(arg string) error {
	var pc int
	if f := d.i.Code().Functions[arg]; f != nil {
		pc = f.Entry
	} else {
		n, err := number(arg)
		if err != nil {
			return errors.Errorf("no function or instruction %q", arg)
		}
		pc = n
	}
	if pc < 0 || pc >= len(d.i.Code().Instructions) {
		return errors.Errorf("instruction %d out of range", pc)
	}
	if d.breaks[pc] {
		delete(d.breaks, pc)
		fmt.Fprintf(d.out, "breakpoint at %d removed\n", pc)
	} else {
		d.breaks[pc] = true
		fmt.Fprintf(d.out, "breakpoint at %d set\n", pc)
	}
	return nil
}

func (d *debugger) listBreakpoints() {
	var pcs []int
	for pc := range d.breaks {
		pcs = append(pcs, pc)
	}
	sort.Ints(pcs)
	for _, pc := range pcs {
		asm.Disassemble(d.out, d.i.Code(), pc)
		io.WriteString(d.out, "\n")
	}
}

func (d *debugger) help() {
	for _, c := range debugCommands {
		fmt.Fprintf(d.out, "  %-6s %-16s %s\n", c.name, c.args, c.help)
	}
}

// command executes a single debugger command line.
func (d *debugger) command(line string) (quit bool, err error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false, nil
	}
	args := f[1:]
	arg := func(k, def int) (int, error) {
		if k >= len(args) {
			return def, nil
		}
		return number(args[k])
	}
	switch f[0] {
	case "s", "step":
		n, err := arg(0, 1)
		if err != nil {
			return false, err
		}
		err = d.exec(n, false)
		d.where()
		return false, err
	case "r", "run":
		n, err := arg(0, -1)
		if err != nil {
			return false, err
		}
		err = d.exec(n, true)
		d.where()
		return false, err
	case "b", "break":
		if len(args) == 0 {
			d.listBreakpoints()
			return false, nil
		}
		return false, d.breakpoint(args[0])
	case "regs":
		return false, jack.DumpRegisters(d.out, d.i)
	case "stack":
		return false, jack.DumpStack(d.out, d.i)
	case "frames":
		return false, jack.DumpFrames(d.out, d.i)
	case "ram":
		if len(args) == 0 {
			return false, errors.New("missing address")
		}
		addr, err := arg(0, 0)
		if err != nil {
			return false, err
		}
		n, err := arg(1, 1)
		if err != nil {
			return false, err
		}
		for k := addr; k < addr+n; k++ {
			v, err := d.i.Peek(k)
			if err != nil {
				return false, err
			}
			fmt.Fprintf(d.out, "% 6d: %d\n", k, v)
		}
	case "dis":
		pc, err := arg(0, d.i.PC())
		if err != nil {
			return false, err
		}
		n, err := arg(1, 10)
		if err != nil {
			return false, err
		}
		return false, asm.DisassembleAll(d.out, d.i.Code(), pc, n)
	case "display":
		if len(args) != 2 {
			return false, errors.New("usage: display offset value")
		}
		off, err := arg(0, 0)
		if err != nil {
			return false, err
		}
		v, err := arg(1, 0)
		if err != nil {
			return false, err
		}
		return false, d.i.SetDisplay(vm.Word(v), off)
	case "key":
		if len(args) == 0 {
			return false, errors.New("missing key code")
		}
		if r := []rune(args[0]); len(r) == 1 && (r[0] < '0' || r[0] > '9') {
			d.key = vm.Word(r[0])
			return false, nil
		}
		k, err := arg(0, 0)
		if err != nil {
			return false, err
		}
		d.key = vm.Word(k)
	case "shot":
		if len(args) == 0 {
			return false, errors.New("missing file name")
		}
		return false, saveShot(args[0], d.i.Display())
	case "h", "help", "?":
		d.help()
	case "q", "quit", "exit":
		return true, nil
	default:
		return false, errors.Errorf("unknown command %q, try help", f[0])
	}
	return false, nil
}

func (d *debugger) complete(line string) []string {
	var c []string
	for _, cmd := range debugCommands {
		if strings.HasPrefix(cmd.name, line) {
			c = append(c, cmd.name)
		}
	}
	return c
}

func runDebugger(i *vm.Instance) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	d := newDebugger(i, os.Stdout)
	ln.SetCompleter(d.complete)
	d.where()
	for {
		l, err := ln.Prompt("hvm> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			break
		}
		if strings.TrimSpace(l) != "" {
			ln.AppendHistory(l)
		}
		quit, err := d.command(l)
		if err != nil {
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
		if quit {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
	return nil
}
