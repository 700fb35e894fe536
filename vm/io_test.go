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

package vm_test

import (
	"strings"
	"testing"

	"github.com/db47h/hackvm/vm"
)

func TestDisplayWrite(t *testing.T) {
	i := setup(t, "display", `
		push constant 16384
		pop pointer 1
		push constant 1
		neg
		pop that 5
		push that 5`)
	for n, exp := range []bool{false, false, false, false, true, false} {
		changed, err := i.Step(0)
		if err != nil {
			t.Fatal(err)
		}
		if changed != exp {
			t.Errorf("step %d: display changed %v, expected %v", n, changed, exp)
		}
	}
	d := i.Display()
	if d[5] != -1 {
		t.Fatalf("expected display word 5 to be set, got %d", d[5])
	}
	for _, p := range []struct {
		x, y int
		set  bool
	}{
		{79, 0, false}, {80, 0, true}, {95, 0, true}, {96, 0, false},
		{80, 1, false}, {-1, 0, false}, {80, 256, false},
	} {
		if vm.Pixel(d, p.x, p.y) != p.set {
			t.Errorf("pixel (%d, %d): expected %v", p.x, p.y, p.set)
		}
	}
}

func TestRunDisplayChanged(t *testing.T) {
	i := setup(t, "run", `
		push constant 16384
		pop pointer 0
		push constant 1
		pop this 0
		push constant 2
		push constant 3`)
	changed, err := i.Run(-1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("Run did not report a display write")
	}
}

func TestKeyboard(t *testing.T) {
	i := setup(t, "kbd", "push constant 24576\npop pointer 0\npush this 0\npush this 0")
	for _, k := range []vm.Word{1, 2, 75} {
		if _, err := i.Step(k); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := i.Step(0); err != nil {
		t.Fatal(err)
	}
	if s := i.Stack(); len(s) != 2 || s[0] != 75 || s[1] != 0 {
		t.Errorf("expected stack [75 0], got %v", s)
	}
	if k := i.Keyboard(); k != 0 {
		t.Errorf("expected keyboard 0, got %d", k)
	}
}

func TestHostBridge(t *testing.T) {
	i := setup(t, "bridge", "push constant 1")
	if n := i.RAMSize(); n != 24577 {
		t.Errorf("bad RAM size %d", n)
	}
	if n := i.DisplaySize(); n != 8192 || len(i.Display()) != n {
		t.Errorf("bad display size %d", n)
	}
	if err := i.SetDisplay(-1, 0); err != nil {
		t.Fatal(err)
	}
	if err := i.SetDisplay(7, vm.ScreenSize-1); err != nil {
		t.Fatal(err)
	}
	if i.Display()[0] != -1 || i.RAM()[vm.KBD-1] != 7 {
		t.Error("SetDisplay did not update memory")
	}
	for _, off := range []int{-1, vm.ScreenSize} {
		if err := i.SetDisplay(1, off); err == nil {
			t.Errorf("SetDisplay(1, %d): expected error", off)
		}
	}
	// host writes are not display changes made by the program
	if changed, err := i.Step(0); changed || err != nil {
		t.Errorf("Step: %v, %v", changed, err)
	}
}

func TestPeekPoke(t *testing.T) {
	i := setup(t, "peek", "push constant 1")
	if err := i.Poke(vm.HeapBase, 1234); err != nil {
		t.Fatal(err)
	}
	if v, err := i.Peek(vm.HeapBase); err != nil || v != 1234 {
		t.Errorf("Peek: %d, %v", v, err)
	}
	// host accesses do not blame the current instruction
	for _, addr := range []int{-1, vm.RAMSize} {
		if _, err := i.Peek(addr); err == nil || !strings.Contains(err.Error(), "out of bounds") {
			t.Errorf("Peek(%d): unexpected error %v", addr, err)
		} else if _, ok := err.(*vm.Error); ok {
			t.Errorf("Peek(%d): got runtime error %v", addr, err)
		}
		err := i.Poke(addr, 0)
		if _, ok := err.(*vm.Error); ok || err == nil {
			t.Errorf("Poke(%d): unexpected error %v", addr, err)
		}
	}
	if i.Finished() {
		t.Error("host access error finished the instance")
	}
}

func TestNativeOutOfBounds(t *testing.T) {
	peek := func(i *vm.Instance, args []vm.Word) (vm.Word, error) {
		return i.Peek(int(args[0]))
	}
	i := setup(t, "peek", "push constant 1\npush constant 0\nnot\ncall Mem.peek 1", vm.BindNative("Mem.peek", peek))
	_, err := i.Run(-1, 0)
	e, ok := err.(*vm.Error)
	if !ok || e.Errno != vm.OutOfBounds || e.Addr != -1 || e.PC != 3 {
		t.Fatalf("unexpected error %v", err)
	}
	// a later host access is not attributed to a native
	if _, err := i.Peek(-1); err == nil {
		t.Error("expected error")
	} else if _, ok := err.(*vm.Error); ok {
		t.Errorf("got runtime error %v", err)
	}
}

func TestDisplayTouched(t *testing.T) {
	i := setup(t, "touched", "push constant 16384\npop pointer 1\npush constant 5\npop that 0")
	if i.DisplayTouched() {
		t.Error("display touched before any write")
	}
	if err := i.SetDisplay(-1, 3); err != nil {
		t.Fatal(err)
	}
	if !i.DisplayTouched() {
		t.Error("SetDisplay not reported")
	}
	if i.DisplayTouched() {
		t.Error("flag not cleared")
	}
	if err := i.SetDisplay(1, vm.ScreenSize); err == nil || i.DisplayTouched() {
		t.Error("failed SetDisplay reported")
	}
	if _, err := i.Run(-1, 0); err != nil {
		t.Fatal(err)
	}
	if i.DisplayTouched() {
		t.Error("program writes reported as host writes")
	}
}


func TestFrames(t *testing.T) {
	i := setup(t, "frames", `
		function Main.main 0
		push constant 4
		call Foo.bar 1
		return
		function Foo.bar 2
		label STOP
		push constant 0
		return`)
	for {
		if in, ok := i.Current(); ok && in.Op == vm.OpPush && in.Index == 0 {
			break
		}
		if _, err := i.Step(0); err != nil || i.Finished() {
			t.Fatalf("did not reach Foo.bar: %v", err)
		}
	}
	f := i.Frames()
	if len(f) != 2 || i.Depth() != 2 {
		t.Fatalf("expected 2 frames, got %d", len(f))
	}
	if f[0].Function != "Main.main" || f[1].Function != "Foo.bar" || f[1].ReturnPC != 3 {
		t.Errorf("bad frames %+v", f)
	}
	ram := i.RAM()
	if ram[vm.RegARG] != 256 || ram[vm.RegLCL] != 257 || ram[vm.RegSP] != 259 {
		t.Errorf("bad registers: SP=%d LCL=%d ARG=%d", ram[vm.RegSP], ram[vm.RegLCL], ram[vm.RegARG])
	}
	if s := i.Stack(); len(s) != 3 || s[0] != 4 {
		t.Errorf("bad stack %v", s)
	}
	if fn := i.Code().Scope(i.PC()); fn == nil || fn.Name != "Foo.bar" {
		t.Errorf("bad scope %v", fn)
	}
	check(t, "frames", i, C{0})
}
