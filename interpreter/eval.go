package interpreter

import (
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/op"
)

func (in *Interpreter) eval(expr ast.Expr) (object.Object, error) {
	switch e := expr.(type) {
	case *ast.Number:
		n, err := object.NewCheckedNumber(e.Value)
		if err != nil {
			return nil, err
		}
		return n, nil
	case *ast.String:
		return object.NewString(e.Value), nil
	case *ast.Ident:
		return in.vars.Get(e.Name), nil
	case *ast.Index:
		subscripts, err := in.subscripts(e.Indexes)
		if err != nil {
			return nil, err
		}
		return in.vars.Element(e.Name.Name, subscripts)
	case *ast.Paren:
		return in.eval(e.X)
	case *ast.Prefix:
		opType, ok := op.LookupUnary(e.Op)
		if !ok {
			return nil, errz.New(errz.Syntax, "unknown operator %s", e.Op)
		}
		x, err := in.eval(e.X)
		if err != nil {
			return nil, err
		}
		return object.UnaryOp(opType, x)
	case *ast.Infix:
		return in.evalInfix(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.FnCall:
		return in.evalFn(e)
	case *ast.PrintFunc:
		return nil, errz.New(errz.Syntax, "%s( is only allowed in PRINT", e.Name)
	default:
		return nil, errz.New(errz.Syntax, "cannot evaluate %s", expr)
	}
}

func (in *Interpreter) evalInfix(e *ast.Infix) (object.Object, error) {
	info := op.GetInfo(e.Op)
	if info.Kind == op.Invalid {
		return nil, errz.New(errz.Syntax, "unknown operator %s", e.Op)
	}
	x, err := in.eval(e.X)
	if err != nil {
		return nil, err
	}
	y, err := in.eval(e.Y)
	if err != nil {
		return nil, err
	}
	if info.Kind == op.Comparison {
		return object.Compare(info.Compare, x, y)
	}
	return object.BinaryOp(info.Binary, x, y)
}

func (in *Interpreter) evalNumber(expr ast.Expr) (float64, error) {
	value, err := in.eval(expr)
	if err != nil {
		return 0, err
	}
	return object.AsNumber(value)
}

// evalInt evaluates a number, truncates it and checks it lies in [lo, hi].
func (in *Interpreter) evalInt(expr ast.Expr, lo, hi int) (int, error) {
	value, err := in.eval(expr)
	if err != nil {
		return 0, err
	}
	return object.AsInt(value, lo, hi)
}

// evalAddress evaluates a memory address. Negative addresses count back
// from the top of memory, so -16336 is 49200.
func (in *Interpreter) evalAddress(expr ast.Expr) (int, error) {
	addr, err := in.evalInt(expr, -65535, 65535)
	if err != nil {
		return 0, err
	}
	if addr < 0 {
		addr += 65536
	}
	return addr, nil
}

func (in *Interpreter) subscripts(exprs []ast.Expr) ([]int, error) {
	subscripts := make([]int, len(exprs))
	for i, expr := range exprs {
		n, err := in.evalInt(expr, 0, object.MaxInteger)
		if err != nil {
			return nil, err
		}
		subscripts[i] = n
	}
	return subscripts, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (object.Object, error) {
	fn, ok := builtins[e.Name]
	if !ok {
		return nil, errz.New(errz.UndefinedFunction, "%s is not a function", e.Name)
	}
	if len(e.Args) < fn.minArgs || len(e.Args) > fn.maxArgs {
		return nil, errz.New(errz.Syntax, "wrong number of arguments to %s", e.Name)
	}
	args := make([]object.Object, len(e.Args))
	for i, arg := range e.Args {
		value, err := in.eval(arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return fn.call(in, args)
}

// evalFn calls a DEF FN function. The parameter variable is bound for the
// duration of the call and then restored.
func (in *Interpreter) evalFn(e *ast.FnCall) (object.Object, error) {
	def, ok := in.fns[object.CanonicalName(e.Name)]
	if !ok {
		return nil, errz.New(errz.UndefinedFunction, "FN %s is not defined", e.Name)
	}
	arg, err := in.eval(e.Arg)
	if err != nil {
		return nil, err
	}
	if in.fnDepth >= in.maxDepth {
		return nil, errz.New(errz.OutOfMemory, "too many nested FN calls")
	}
	param := def.Param.Name
	saved := in.vars.Get(param)
	if err := in.vars.Set(param, arg); err != nil {
		return nil, err
	}
	in.fnDepth++
	result, err := in.eval(def.Body)
	in.fnDepth--
	if restoreErr := in.vars.Set(param, saved); err == nil {
		err = restoreErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
