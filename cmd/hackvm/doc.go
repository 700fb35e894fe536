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

// The hackvm command runs Hack VM programs, as produced by the Jack compiler,
// in a window, a terminal, an interactive debugger or under the control of a
// Lua script.
//
// Usage:
//
//	hackvm [flags] file.vm|directory...
//
// All .vm files found in directories given as arguments are loaded in
// alphabetical order, after or before individual files depending on their
// position on the command line. Unless -nonatives is set, the program is linked
// with the bytecode classes of the Jack OS it uses but does not define
// (Memory, Array, String, and Keyboard input).
//
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump registers, stack and call frames upon exit
//	-entry name
//		  start execution at function name (default Sys.init or Main.main)
//	-nonatives
//		  do not bind native OS functions nor link the OS library
//	-rate int
//		  number of instructions executed per frame by the gui and term interfaces (default 20000)
//	-script filename
//		  drive the VM with the Lua script filename instead of a user interface
//	-shot filename
//		  save a screenshot to filename upon exit (BMP format)
//	-steps n
//		  with -ui none, stop after n instructions (0 for no limit)
//	-trace filename
//		  write an instruction trace to filename
//	-ui value
//		  user interface: gui, term, debug or none (default gui)
//
// -debug: will print a full stacktrace and the state of the VM should the
// program crash.
//
// The gui interface runs the program in a window. F5 pauses or resumes
// execution, F6 executes a single instruction while paused, and Ctrl+Shift+V
// types the contents of the clipboard. Once the program is finished, Esc
// closes the window.
//
// The term interface renders the display in the terminal with braille
// characters, downscaled to fit. Ctrl-C stops the program.
//
// The debug interface is a command line debugger. Type help at the prompt for
// a list of commands.
//
// Lua scripts get the following global functions:
//
//	step([key])        execute one instruction with key held down
//	run([n [, key]])   execute n instructions, all if n < 0 or missing
//	peek(addr)         read memory
//	pixel(x, y)        read a display pixel
//	display(off, v)    set the display word at offset off
//	pc()               index of the next instruction
//	steps()            number of instructions executed so far
//	finished()         true if the program has ended
//	keyboard()         value of the keyboard register
//	stop()             end the program
//	shot(filename)     save a screenshot
//
// step and run return true if the display has changed. Runtime errors are
// raised as Lua errors.
package main
