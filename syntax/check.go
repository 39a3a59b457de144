package syntax

import (
	goerrors "errors"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errors"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// DefaultValidators returns the checks run by Check when no validators are
// given.
func DefaultValidators() []Validator {
	return []Validator{
		ValidatorFunc(UndefinedLines),
		ValidatorFunc(NextWithoutFor),
		ValidatorFunc(UndefinedFunctions),
	}
}

// Check runs the validators over the program and returns every problem as
// a *multierror.Error of *errors.CheckError values, or nil when the program
// is clean. With no validators the DefaultValidators are used.
func Check(program *ast.Program, validators ...Validator) error {
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	var result *multierror.Error
	for _, v := range validators {
		for _, err := range v.Validate(program) {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Problems flattens an error returned by Check into its check errors.
func Problems(err error) []*errors.CheckError {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if !goerrors.As(err, &merr) {
		merr = &multierror.Error{Errors: []error{err}}
	}
	var problems []*errors.CheckError
	for _, e := range merr.Errors {
		var ce *errors.CheckError
		if goerrors.As(e, &ce) {
			problems = append(problems, ce)
		}
	}
	return problems
}

type lineRef struct {
	keyword string
	target  int
	pos     token.Position
}

// lineRefs lists the line numbers a statement may transfer control to.
func lineRefs(stmt ast.Stmt) []lineRef {
	switch s := stmt.(type) {
	case *ast.Goto:
		return []lineRef{{"GOTO", s.Target, s.LinePos}}
	case *ast.Gosub:
		return []lineRef{{"GOSUB", s.Target, s.LinePos}}
	case *ast.If:
		if s.HasTarget {
			return []lineRef{{s.Keyword, s.Target, s.TargetPos}}
		}
	case *ast.On:
		keyword := "ON GOTO"
		if s.Gosub {
			keyword = "ON GOSUB"
		}
		refs := make([]lineRef, 0, len(s.Targets))
		for _, target := range s.Targets {
			refs = append(refs, lineRef{keyword, target, s.OnPos})
		}
		return refs
	case *ast.Restore:
		if s.HasTarget {
			return []lineRef{{"RESTORE", s.Target, s.LinePos}}
		}
	}
	return nil
}

// UndefinedLines reports GOTO, GOSUB, THEN, ON and RESTORE targets that name
// a line the program does not have.
func UndefinedLines(program *ast.Program) []*errors.CheckError {
	lines := program.Lines()
	numbers := make([]string, 0, len(lines))
	for _, line := range lines {
		numbers = append(numbers, strconv.Itoa(line.Number))
	}
	var problems []*errors.CheckError
	for _, line := range lines {
		for _, stmt := range line.Stmts {
			for _, ref := range lineRefs(stmt) {
				if _, ok := program.Get(ref.target); ok {
					continue
				}
				err := newCheckError(errors.E2001, line,
					ref.pos, fmt.Sprintf("%s %d: line %d does not exist", ref.keyword, ref.target, ref.target))
				err.Suggestions = errors.SuggestSimilar(strconv.Itoa(ref.target), numbers)
				problems = append(problems, err)
			}
		}
	}
	return problems
}

// NextWithoutFor reports NEXT statements naming a variable that no FOR in
// the program uses. Loops are matched at run time, so a NEXT whose variable
// appears in any FOR passes.
func NextWithoutFor(program *ast.Program) []*errors.CheckError {
	loopVars := map[string]bool{}
	for node := range ast.Preorder(program) {
		if f, ok := node.(*ast.For); ok {
			loopVars[object.CanonicalName(f.Var.Name)] = true
		}
	}
	var problems []*errors.CheckError
	for _, line := range program.Lines() {
		for _, stmt := range line.Stmts {
			next, ok := stmt.(*ast.Next)
			if !ok {
				continue
			}
			if len(next.Vars) == 0 && len(loopVars) == 0 {
				problems = append(problems, newCheckError(errors.E2002, line,
					next.NextPos, "NEXT without FOR: the program has no FOR loops"))
			}
			for _, v := range next.Vars {
				if !loopVars[object.CanonicalName(v.Name)] {
					problems = append(problems, newCheckError(errors.E2002, line,
						v.NamePos, fmt.Sprintf("NEXT %s without FOR: no loop uses %s", v.Name, v.Name)))
				}
			}
		}
	}
	return problems
}

// UndefinedFunctions reports FN calls to functions no DEF FN in the program
// defines.
func UndefinedFunctions(program *ast.Program) []*errors.CheckError {
	defined := map[string]bool{}
	var names []string
	for node := range ast.Preorder(program) {
		if def, ok := node.(*ast.DefFn); ok && !defined[object.CanonicalName(def.Name)] {
			defined[object.CanonicalName(def.Name)] = true
			names = append(names, def.Name)
		}
	}
	var problems []*errors.CheckError
	for _, line := range program.Lines() {
		ast.Inspect(line, func(node ast.Node) bool {
			call, ok := node.(*ast.FnCall)
			if ok && !defined[object.CanonicalName(call.Name)] {
				err := newCheckError(errors.E2003, line,
					call.Fn, fmt.Sprintf("FN %s is never defined", call.Name))
				err.Suggestions = errors.SuggestSimilar(call.Name, names)
				problems = append(problems, err)
			}
			return true
		})
	}
	return problems
}
