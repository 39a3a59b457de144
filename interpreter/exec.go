package interpreter

import (
	"context"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

func check(err error) signal {
	if err != nil {
		return raise(err)
	}
	return proceed
}

func (in *Interpreter) exec(ctx context.Context, stmt ast.Stmt) signal {
	switch s := stmt.(type) {
	case *ast.Let:
		value, err := in.eval(s.Value)
		if err != nil {
			return raise(err)
		}
		return check(in.assign(s.Target, value))
	case *ast.Print:
		return check(in.execPrint(s))
	case *ast.Input:
		return check(in.execInput(ctx, s))
	case *ast.Get:
		return check(in.execGet(ctx, s))
	case *ast.If:
		return in.execIf(s)
	case *ast.Goto:
		return jumpTo(s.Target)
	case *ast.Gosub:
		return gosubTo(s.Target)
	case *ast.On:
		return in.execOn(s)
	case *ast.For:
		return in.execFor(s)
	case *ast.Next:
		return in.execNext(s)
	case *ast.Dim:
		return check(in.execDim(s))
	case *ast.Read:
		return check(in.execRead(s))
	case *ast.Restore:
		if s.HasTarget {
			in.data.RestoreToLine(s.Target)
		} else {
			in.data.Restore()
		}
		return proceed
	case *ast.Data, *ast.Rem:
		return proceed
	case *ast.Keyword:
		return in.execKeyword(s)
	case *ast.Tab:
		return check(in.execTab(s))
	case *ast.DefFn:
		in.fns[object.CanonicalName(s.Name)] = s
		return proceed
	case *ast.Poke:
		return check(in.execPoke(s))
	case *ast.CallStmt:
		return check(in.execCall(ctx, s))
	default:
		return raise(errz.New(errz.Syntax, "cannot execute %s", stmt))
	}
}

func (in *Interpreter) execIf(s *ast.If) signal {
	cond, err := in.eval(s.Cond)
	if err != nil {
		return raise(err)
	}
	if !cond.IsTruthy() {
		return signal{kind: sigSkipLine}
	}
	if s.HasTarget {
		return jumpTo(s.Target)
	}
	return proceed
}

func (in *Interpreter) execOn(s *ast.On) signal {
	n, err := in.evalInt(s.X, 0, 255)
	if err != nil {
		return raise(err)
	}
	if n == 0 || n > len(s.Targets) {
		return proceed
	}
	if s.Gosub {
		return gosubTo(s.Targets[n-1])
	}
	return jumpTo(s.Targets[n-1])
}

func (in *Interpreter) execKeyword(s *ast.Keyword) signal {
	switch s.Tok {
	case token.RETURN:
		return signal{kind: sigReturn}
	case token.POP:
		if len(in.gosubs) == 0 {
			return raise(errz.New(errz.ReturnWithoutGosub, "POP without an active GOSUB"))
		}
		in.popGosub()
		return proceed
	case token.END:
		return halt(StopEnd)
	case token.STOP:
		return halt(StopStatement)
	case token.HOME:
		return check(in.sys.ClearScreen())
	case token.CLEAR:
		in.clear()
		return proceed
	case token.NORMAL:
		return check(in.sys.SetTextMode(system.Normal))
	case token.INVERSE:
		return check(in.sys.SetTextMode(system.Inverse))
	case token.FLASH:
		return check(in.sys.SetTextMode(system.Flash))
	default:
		return raise(errz.New(errz.Syntax, "cannot execute %s", s.Tok))
	}
}

// clear forgets all variables, arrays, functions and active GOSUBs and
// loops, and restores the DATA cursor.
func (in *Interpreter) clear() {
	in.vars.Clear()
	in.data.Restore()
	in.gosubs = nil
	in.loops = nil
	clear(in.fns)
}

func loopContinues(value, limit, step float64) bool {
	if step >= 0 {
		return value <= limit
	}
	return value >= limit
}

func (in *Interpreter) execFor(s *ast.For) signal {
	start, err := in.evalNumber(s.Start)
	if err != nil {
		return raise(err)
	}
	limit, err := in.evalNumber(s.Limit)
	if err != nil {
		return raise(err)
	}
	step := 1.0
	if s.Step != nil {
		if step, err = in.evalNumber(s.Step); err != nil {
			return raise(err)
		}
	}
	name := object.CanonicalName(s.Var.Name)
	if err := in.vars.Set(name, object.NewNumber(start)); err != nil {
		return raise(err)
	}

	// Re-entering a loop discards it and every loop nested inside it.
	for i := len(in.loops) - 1; i >= in.loopBase(); i-- {
		if in.loops[i].name == name {
			in.loops = in.loops[:i]
			break
		}
	}
	if !loopContinues(start, limit, step) {
		return in.skipLoop(name)
	}
	if len(in.loops) >= in.maxDepth {
		return raise(errz.New(errz.OutOfMemory, "too many nested FOR loops"))
	}
	in.loops = append(in.loops, forFrame{
		name:   name,
		limit:  limit,
		step:   step,
		resume: position{line: in.pos.line, stmt: in.pos.stmt + 1},
	})
	return proceed
}

// skipLoop continues after the NEXT matching the FOR at the current
// position. Nested FOR/NEXT pairs are skipped over. If no NEXT closes the
// loop the program ends.
func (in *Interpreter) skipLoop(name string) signal {
	depth := 0
	for li := in.pos.line; li < len(in.lines); li++ {
		stmts := in.lines[li].Stmts
		si := 0
		if li == in.pos.line {
			si = in.pos.stmt + 1
		}
		for ; si < len(stmts); si++ {
			switch s := stmts[si].(type) {
			case *ast.For:
				depth++
			case *ast.Next:
				resume := signal{kind: sigLoopContinue, resume: position{line: li, stmt: si + 1}}
				if len(s.Vars) == 0 {
					if depth == 0 {
						return resume
					}
					depth--
					continue
				}
				for _, v := range s.Vars {
					if depth == 0 || object.CanonicalName(v.Name) == name {
						return resume
					}
					depth--
				}
			}
		}
	}
	return halt(StopEnd)
}

func (in *Interpreter) execNext(s *ast.Next) signal {
	if len(s.Vars) == 0 {
		return in.nextLoop("")
	}
	for _, v := range s.Vars {
		if sig := in.nextLoop(object.CanonicalName(v.Name)); sig.kind != sigContinue {
			return sig
		}
	}
	return proceed
}

// nextLoop advances the loop for name, or the innermost loop if name is
// empty, and either resumes its body or drops it.
func (in *Interpreter) nextLoop(name string) signal {
	base := in.loopBase()
	i := len(in.loops) - 1
	if name != "" {
		for i >= base && in.loops[i].name != name {
			i--
		}
	}
	if i < base {
		if name == "" {
			return raise(errz.New(errz.NextWithoutFor, "NEXT without an active FOR"))
		}
		return raise(errz.New(errz.NextWithoutFor, "NEXT %s without an active FOR", name))
	}
	in.loops = in.loops[:i+1]
	frame := in.loops[i]

	value, err := object.AsNumber(in.vars.Get(frame.name))
	if err != nil {
		return raise(err)
	}
	n, err := object.NewCheckedNumber(value + frame.step)
	if err != nil {
		return raise(err)
	}
	if err := in.vars.Set(frame.name, n); err != nil {
		return raise(err)
	}
	if loopContinues(n.Value(), frame.limit, frame.step) {
		return signal{kind: sigLoopContinue, resume: frame.resume}
	}
	in.loops = in.loops[:i]
	return proceed
}

func (in *Interpreter) execDim(s *ast.Dim) error {
	for _, array := range s.Arrays {
		bounds, err := in.subscripts(array.Indexes)
		if err != nil {
			return err
		}
		if err := in.vars.Dim(array.Name.Name, bounds); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execRead(s *ast.Read) error {
	for _, target := range s.Vars {
		value, err := in.data.ReadInto(targetName(target))
		if err != nil {
			return err
		}
		if err := in.assign(target, value); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execTab(s *ast.Tab) error {
	if s.Vertical {
		row, err := in.evalInt(s.X, 1, system.DefaultHeight)
		if err != nil {
			return err
		}
		return in.sys.SetCursorPosition(in.sys.CursorColumn()+1, row)
	}
	col, err := in.evalInt(s.X, 1, 255)
	if err != nil {
		return err
	}
	return in.sys.SetCursorPosition(col, in.sys.CursorRow()+1)
}

func (in *Interpreter) execPoke(s *ast.Poke) error {
	addr, err := in.evalAddress(s.Addr)
	if err != nil {
		return err
	}
	value, err := in.evalInt(s.Value, 0, 255)
	if err != nil {
		return err
	}
	if in.memory == nil {
		in.logger.Debug().Int("addr", addr).Int("value", value).Msg("POKE ignored: no memory")
		return nil
	}
	return in.memory.Poke(addr, byte(value))
}

func (in *Interpreter) execCall(ctx context.Context, s *ast.CallStmt) error {
	addr, err := in.evalAddress(s.Addr)
	if err != nil {
		return err
	}
	if in.memory == nil {
		in.logger.Debug().Int("addr", addr).Msg("CALL ignored: no memory")
		return nil
	}
	if err := in.memory.Call(ctx, addr); err != nil {
		return hostError(ctx, err)
	}
	return nil
}

// assign stores value in a variable or array element.
func (in *Interpreter) assign(target ast.Expr, value object.Object) error {
	switch t := target.(type) {
	case *ast.Ident:
		return in.vars.Set(t.Name, value)
	case *ast.Index:
		subscripts, err := in.subscripts(t.Indexes)
		if err != nil {
			return err
		}
		return in.vars.SetElement(t.Name.Name, subscripts, value)
	default:
		return errz.New(errz.Syntax, "cannot assign to %s", target)
	}
}

func targetName(target ast.Expr) string {
	switch t := target.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.Index:
		return t.Name.Name
	default:
		return target.String()
	}
}
