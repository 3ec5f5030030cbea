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
	"oriel/host"
	"oriel/ir"
)

// dispatchHost resolves every integer/string operand of cmd and issues
// the corresponding Host call. It covers every Command variant not
// handled directly by step (control flow and WaitInput).
func (vm *VM) dispatchHost(cmd ir.Command) error {
	switch c := cmd.(type) {
	case ir.Beep:
		vm.host.Beep()
		return nil

	case ir.DrawArc:
		v, err := vm.eval8(c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3, c.X4, c.Y4)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawArc(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]))
	case ir.DrawChord:
		v, err := vm.eval8(c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3, c.X4, c.Y4)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawChord(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]))
	case ir.DrawPie:
		v, err := vm.eval8(c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3, c.X4, c.Y4)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawPie(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]))
	case ir.DrawEllipse:
		v, err := vm.eval4(c.X1, c.Y1, c.X2, c.Y2)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawEllipse(v[0], v[1], v[2], v[3]))
	case ir.DrawRectangle:
		v, err := vm.eval4(c.X1, c.Y1, c.X2, c.Y2)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawRectangle(v[0], v[1], v[2], v[3]))
	case ir.DrawLine:
		v, err := vm.eval4(c.X1, c.Y1, c.X2, c.Y2)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawLine(v[0], v[1], v[2], v[3]))
	case ir.DrawRoundRectangle:
		v, err := vm.eval6(c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawRoundRectangle(v[0], v[1], v[2], v[3], v[4], v[5]))
	case ir.DrawBitmap:
		x, y, err := vm.eval2(c.X, c.Y)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawBitmap(x, y, c.Filename))
	case ir.DrawSizedBitmap:
		v, err := vm.eval4(c.X1, c.Y1, c.X2, c.Y2)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawSizedBitmap(v[0], v[1], v[2], v[3], c.Filename))
	case ir.DrawFlood:
		v, err := vm.eval5(c.X, c.Y, c.R, c.G, c.B)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawFlood(v[0], v[1], v[2], v[3], v[4]))
	case ir.DrawText:
		x, y, err := vm.eval2(c.X, c.Y)
		if err != nil {
			return err
		}
		text, err := vm.evalStr(c.Text)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawText(x, y, text))
	case ir.DrawNumber:
		v, err := vm.eval3(c.X, c.Y, c.N)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.DrawNumber(v[0], v[1], v[2]))
	case ir.DrawBackground:
		return wrapHost(vm.host.DrawBackground())

	case ir.UseBackground:
		v, err := vm.eval3(c.R, c.G, c.B)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.UseBackground(c.Option, v[0], v[1], v[2]))
	case ir.UseBrush:
		v, err := vm.eval3(c.R, c.G, c.B)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.UseBrush(c.Option, v[0], v[1], v[2]))
	case ir.UsePen:
		width, err := vm.evalInt(c.Width)
		if err != nil {
			return err
		}
		v, err := vm.eval3(c.R, c.G, c.B)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.UsePen(c.Option, width, v[0], v[1], v[2]))
	case ir.UseFont:
		w, h, err := vm.eval2(c.Width, c.Height)
		if err != nil {
			return err
		}
		v, err := vm.eval3(c.R, c.G, c.B)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.UseFont(c.Name, w, h, c.Bold, c.Italic, c.Underline, v[0], v[1], v[2]))
	case ir.UseCaption:
		text, err := vm.evalStr(c.Text)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.UseCaption(text))
	case ir.UseCoordinates:
		return wrapHost(vm.host.UseCoordinates(c.Option))
	case ir.SetWindow:
		return wrapHost(vm.host.SetWindow(c.Option))
	case ir.SetWaitMode:
		return wrapHost(vm.host.SetWaitMode(c.Mode))

	case ir.MessageBox:
		defBtn, err := vm.evalInt(c.DefaultButton)
		if err != nil {
			return err
		}
		text, err := vm.evalStr(c.Text)
		if err != nil {
			return err
		}
		caption, err := vm.evalStr(c.Caption)
		if err != nil {
			return err
		}
		result, err := vm.host.MessageBox(c.Type, defBtn, c.Icon, text, caption)
		if err != nil {
			return wrapHost(err)
		}
		return vm.setInt(c.ResultVar, result)

	case ir.Run:
		cl, err := vm.evalStr(c.CommandLine)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.Run(cl))

	case ir.SetKeyboard:
		bindings, err := vm.resolveKeyboard(c.Bindings)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.SetKeyboard(bindings))

	case ir.SetMouse:
		regions, err := vm.resolveMouse(c.Regions)
		if err != nil {
			return err
		}
		return wrapHost(vm.host.SetMouse(regions))

	case ir.SetMenu:
		return wrapHost(vm.host.SetMenu(c.Categories))

	default:
		return nil
	}
}

func (vm *VM) eval2(a, b ir.IntOperand) (uint16, uint16, error) {
	v, err := vm.evalN(a, b)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}

func (vm *VM) eval3(a, b, c ir.IntOperand) ([3]uint16, error) {
	v, err := vm.evalN(a, b, c)
	if err != nil {
		return [3]uint16{}, err
	}
	return [3]uint16{v[0], v[1], v[2]}, nil
}

func (vm *VM) eval4(a, b, c, d ir.IntOperand) ([4]uint16, error) {
	v, err := vm.evalN(a, b, c, d)
	if err != nil {
		return [4]uint16{}, err
	}
	return [4]uint16{v[0], v[1], v[2], v[3]}, nil
}

func (vm *VM) eval5(a, b, c, d, e ir.IntOperand) ([5]uint16, error) {
	v, err := vm.evalN(a, b, c, d, e)
	if err != nil {
		return [5]uint16{}, err
	}
	return [5]uint16{v[0], v[1], v[2], v[3], v[4]}, nil
}

func (vm *VM) eval6(a, b, c, d, e, f ir.IntOperand) ([6]uint16, error) {
	v, err := vm.evalN(a, b, c, d, e, f)
	if err != nil {
		return [6]uint16{}, err
	}
	return [6]uint16{v[0], v[1], v[2], v[3], v[4], v[5]}, nil
}

func (vm *VM) eval8(a, b, c, d, e, f, g, h ir.IntOperand) ([8]uint16, error) {
	v, err := vm.evalN(a, b, c, d, e, f, g, h)
	if err != nil {
		return [8]uint16{}, err
	}
	var out [8]uint16
	copy(out[:], v)
	return out, nil
}

func (vm *VM) evalN(ops ...ir.IntOperand) ([]uint16, error) {
	out := make([]uint16, len(ops))
	for i, op := range ops {
		v, err := vm.evalInt(op)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// resolveKeyboard evaluates every binding's virtual-key IntOperand (or
// passes the already-valid physical key through) and validates the
// result against ir.ValidVirtualKey, per spec.md §4.2's "Key translation".
func (vm *VM) resolveKeyboard(bindings []ir.KeyboardBinding) (map[host.ResolvedKey]ir.Identifier, error) {
	out := make(map[host.ResolvedKey]ir.Identifier, len(bindings))
	for _, b := range bindings {
		if b.Key.IsPhysical {
			out[host.ResolvedKey{IsPhysical: true, Physical: b.Key.Physical}] = b.Label
			continue
		}
		code, err := vm.evalInt(b.Key.Virtual)
		if err != nil {
			return nil, err
		}
		if !ir.ValidVirtualKey(code) {
			return nil, ErrInvalidVirtualKey
		}
		out[host.ResolvedKey{Virtual: ir.VirtualKey(code)}] = b.Label
	}
	return out, nil
}

// resolveMouse evaluates every region's rectangle operands.
func (vm *VM) resolveMouse(regions []ir.MouseRegion) ([]host.ResolvedMouseRegion, error) {
	out := make([]host.ResolvedMouseRegion, len(regions))
	for i, r := range regions {
		v, err := vm.eval4(r.X1, r.Y1, r.X2, r.Y2)
		if err != nil {
			return nil, err
		}
		out[i] = host.ResolvedMouseRegion{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], Label: r.Label, XVar: r.XVar, YVar: r.YVar}
	}
	return out, nil
}
