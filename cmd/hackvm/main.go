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
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/lang/jack"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

type uiMode string

func (m *uiMode) String() string { return string(*m) }
func (m *uiMode) Set(s string) error {
	switch s {
	case "gui", "term", "debug", "none":
		*m = uiMode(s)
		return nil
	default:
		return errors.Errorf("unsupported user interface %q", s)
	}
}
func (m *uiMode) Get() interface{} { return *m }

var (
	ui        = uiMode("gui")
	debug     bool
	dump      bool
	noNatives bool
	rate      int
	steps     int
	entry     string
	traceFile string
	shotFile  string
	script    string
)

// sources expands directory arguments to the list of .vm files they contain.
func sources(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		fi, err := os.Stat(a)
		if err != nil {
			return nil, errors.Wrap(err, "stat failed")
		}
		if !fi.IsDir() {
			files = append(files, a)
			continue
		}
		m, err := filepath.Glob(filepath.Join(a, "*.vm"))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: glob failed", a)
		}
		if len(m) == 0 {
			return nil, errors.Errorf("%s: no .vm files in directory", a)
		}
		sort.Strings(m)
		files = append(files, m...)
	}
	if len(files) == 0 {
		return nil, errors.New("no input files")
	}
	return files, nil
}

// programName returns a name for the program built from the given command
// line arguments.
func programName(args []string) string {
	if len(args) == 0 {
		return "hackvm"
	}
	n := filepath.Base(filepath.Clean(args[0]))
	return strings.TrimSuffix(n, filepath.Ext(n))
}

func newVM(name string, files []string, opts ...vm.Option) (*vm.Instance, error) {
	if !noNatives {
		return jack.LoadFiles(name, files, opts...)
	}
	c, err := asm.AssembleFiles(name, files...)
	if err != nil {
		return nil, err
	}
	return vm.New(c, opts...)
}

func runHeadless(i *vm.Instance, n int) error {
	if n <= 0 {
		n = -1
	}
	_, err := i.Run(n, 0)
	return err
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		log.Print(err)
		os.Exit(1)
	}
	log.Printf("%+v", err)
	if i != nil {
		jack.DumpVM(os.Stderr, i)
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance

	log.SetFlags(0)
	log.SetPrefix("hackvm: ")

	defer func() {
		if err == nil && i != nil {
			if shotFile != "" {
				err = saveShot(shotFile, i.Display())
			}
			if err == nil && dump {
				err = jack.DumpVM(os.Stdout, i)
			}
		}
		atExit(i, err)
	}()

	flag.Var(&ui, "ui", "user interface: gui, term, debug or none")
	flag.IntVar(&rate, "rate", 20000, "number of instructions executed per frame by the gui and term interfaces")
	flag.IntVar(&steps, "steps", 0, "with -ui none, stop after `n` instructions (0 for no limit)")
	flag.StringVar(&entry, "entry", "", "start execution at function `name` (default Sys.init or Main.main)")
	flag.StringVar(&traceFile, "trace", "", "write an instruction trace to `filename`")
	flag.StringVar(&shotFile, "shot", "", "save a screenshot to `filename` upon exit (BMP format)")
	flag.StringVar(&script, "script", "", "drive the VM with the Lua script `filename` instead of a user interface")
	flag.BoolVar(&noNatives, "nonatives", false, "do not bind native OS functions nor link the OS library")
	flag.BoolVar(&dump, "dump", false, "dump registers, stack and call frames upon exit")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Usage = func() {
		o := flag.CommandLine.Output()
		o.Write([]byte("Usage: hackvm [flags] file.vm|directory...\n"))
		flag.PrintDefaults()
	}

	flag.Parse()

	files, err := sources(flag.Args())
	if err != nil {
		return
	}

	var opts []vm.Option
	if entry != "" {
		opts = append(opts, vm.Entry(entry))
	}
	if traceFile != "" {
		var f *os.File
		f, err = os.Create(traceFile)
		if err != nil {
			return
		}
		defer f.Close()
		opts = append(opts, vm.Trace(f))
	}

	name := programName(flag.Args())
	i, err = newVM(name, files, opts...)
	if err != nil {
		return
	}

	if script != "" {
		err = runScript(i, script)
		return
	}
	switch ui {
	case "gui":
		err = runGUI(i, name, rate)
	case "term":
		err = runTerm(i, rate)
	case "debug":
		err = runDebugger(i)
	default:
		err = runHeadless(i, steps)
	}
}
