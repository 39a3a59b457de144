package syntax

import (
	"context"
	"fmt"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/parser"
)

// Transformer rewrites a program before it runs.
// Transformers receive ownership of the program and return a (possibly new)
// program.
type Transformer interface {
	// Transform processes the program and returns the result.
	Transform(program *ast.Program) (*ast.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*ast.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*ast.Program, error) {
	return f(p)
}

// Renumber returns a Transformer that numbers lines start, start+step, ...
// and rewrites every GOTO, GOSUB, THEN, ON and RESTORE target to match.
// Targets naming a missing line are left alone. The result is parsed again
// from its listing so that positions and source text agree.
func Renumber(start, step int) Transformer {
	return TransformerFunc(func(program *ast.Program) (*ast.Program, error) {
		if start < 0 || step <= 0 {
			return nil, fmt.Errorf("renumber: invalid start %d or step %d", start, step)
		}
		lines := program.Lines()
		if n := len(lines); n > 0 && start+(n-1)*step > ast.MaxLineNumber {
			return nil, fmt.Errorf("renumber: %d lines do not fit from %d by %d", n, start, step)
		}
		mapping := make(map[int]int, len(lines))
		for i, line := range lines {
			mapping[line.Number] = start + i*step
		}
		remap := func(target int) int {
			if n, ok := mapping[target]; ok {
				return n
			}
			return target
		}
		for _, line := range lines {
			line.Number = mapping[line.Number]
			for _, stmt := range line.Stmts {
				switch s := stmt.(type) {
				case *ast.Goto:
					s.Target = remap(s.Target)
				case *ast.Gosub:
					s.Target = remap(s.Target)
				case *ast.If:
					if s.HasTarget {
						s.Target = remap(s.Target)
					}
				case *ast.On:
					for i, target := range s.Targets {
						s.Targets[i] = remap(target)
					}
				case *ast.Restore:
					if s.HasTarget {
						s.Target = remap(s.Target)
					}
				}
			}
		}
		return parser.Parse(context.Background(), program.String())
	})
}
