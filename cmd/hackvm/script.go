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
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// vmFuncs returns the Lua functions that give scripts control over i.
func vmFuncs(i *vm.Instance) map[string]lua.LGFunction {
	check := func(L *lua.LState, err error) {
		if err != nil {
			L.RaiseError("%v", err)
		}
	}
	return map[string]lua.LGFunction{
		"step": func(L *lua.LState) int {
			changed, err := i.Step(vm.Word(L.OptInt(1, 0)))
			check(L, err)
			L.Push(lua.LBool(changed))
			return 1
		},
		"run": func(L *lua.LState) int {
			changed, err := i.Run(L.OptInt(1, -1), vm.Word(L.OptInt(2, 0)))
			check(L, err)
			L.Push(lua.LBool(changed))
			return 1
		},
		"peek": func(L *lua.LState) int {
			v, err := i.Peek(L.CheckInt(1))
			check(L, err)
			L.Push(lua.LNumber(v))
			return 1
		},
		"display": func(L *lua.LState) int {
			check(L, i.SetDisplay(vm.Word(L.CheckInt(2)), L.CheckInt(1)))
			return 0
		},
		"pixel": func(L *lua.LState) int {
			L.Push(lua.LBool(vm.Pixel(i.Display(), L.CheckInt(1), L.CheckInt(2))))
			return 1
		},
		"pc": func(L *lua.LState) int {
			L.Push(lua.LNumber(i.PC()))
			return 1
		},
		"steps": func(L *lua.LState) int {
			L.Push(lua.LNumber(i.InstructionCount()))
			return 1
		},
		"finished": func(L *lua.LState) int {
			L.Push(lua.LBool(i.Finished()))
			return 1
		},
		"keyboard": func(L *lua.LState) int {
			L.Push(lua.LNumber(i.Keyboard()))
			return 1
		},
		"stop": func(L *lua.LState) int {
			i.Stop()
			return 0
		},
		"shot": func(L *lua.LState) int {
			check(L, saveShot(L.CheckString(1), i.Display()))
			return 0
		},
	}
}

func newLuaState(i *vm.Instance) *lua.LState {
	L := lua.NewState()
	L.SetFuncs(L.G.Global, vmFuncs(i))
	return L
}

// runScript runs the Lua script in file, which drives the execution of i.
func runScript(i *vm.Instance, file string) error {
	L := newLuaState(i)
	defer L.Close()
	if err := L.DoFile(file); err != nil {
		return errors.Wrap(err, "script failed")
	}
	return nil
}
