package interpreter

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/ast"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/system"
)

// zoneWidth is the distance between the tab stops used by PRINT commas.
const zoneWidth = 16

const bell = '\a'

// lineWriter collects the text of one PRINT statement while tracking the
// cursor column it will leave behind. Text is held until the statement
// ends, a bell rings or an item faults, so that the host sees everything
// printed before either.
type lineWriter struct {
	sys   system.Context
	buf   strings.Builder
	col   int
	width int
	err   error
}

func (w *lineWriter) write(text string) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case bell:
			w.pending()
			w.sys.Beep()
			continue
		case '\r', '\n':
			w.col = 0
		default:
			w.col++
			if w.col >= w.width {
				w.col = 0
			}
		}
		w.buf.WriteByte(text[i])
	}
}

// pending hands the text collected so far to the host without a newline.
func (w *lineWriter) pending() {
	if w.buf.Len() == 0 || w.err != nil {
		return
	}
	w.err = w.sys.Write(w.buf.String())
	w.buf.Reset()
}

func (w *lineWriter) spaces(n int) {
	if n > 0 {
		w.write(strings.Repeat(" ", n))
	}
}

// nextZone moves to the next tab stop, or to a new line when the cursor is
// already in the last zone.
func (w *lineWriter) nextZone() {
	if w.col >= w.width-zoneWidth {
		w.write("\n")
		return
	}
	w.spaces((w.col/zoneWidth+1)*zoneWidth - w.col)
}

func (w *lineWriter) flush(newline bool) error {
	if w.err != nil {
		return w.err
	}
	text := w.buf.String()
	w.buf.Reset()
	if newline {
		return w.sys.WriteLine(text)
	}
	if text == "" {
		return nil
	}
	return w.sys.Write(text)
}

func (in *Interpreter) execPrint(s *ast.Print) error {
	w := &lineWriter{sys: in.sys, col: in.sys.CursorColumn(), width: in.width}
	in.printer = w
	defer func() { in.printer = nil }()
	for _, item := range s.Items {
		if item.Expr != nil {
			if err := in.printItem(w, item.Expr); err != nil {
				w.pending()
				return err
			}
		}
		if item.Sep == ast.SepComma {
			w.nextZone()
		}
	}
	return w.flush(s.Newline())
}

func (in *Interpreter) printItem(w *lineWriter, expr ast.Expr) error {
	if fn, ok := expr.(*ast.PrintFunc); ok {
		n, err := in.evalInt(fn.X, 0, 255)
		if err != nil {
			return err
		}
		if fn.Name == "TAB" {
			// TAB never moves the cursor left.
			w.spaces(n - 1 - w.col)
		} else {
			w.spaces(n)
		}
		return nil
	}
	value, err := in.eval(expr)
	if err != nil {
		return err
	}
	w.write(object.PrintableValue(value))
	return nil
}

var errReenter = goerrors.New("reenter")

// execInput reads values into the INPUT variables. A line that does not
// hold a valid number for a numeric variable prints ?REENTER and the whole
// statement starts over.
func (in *Interpreter) execInput(ctx context.Context, s *ast.Input) error {
	prompt := "?"
	if s.Prompt != nil {
		prompt = s.Prompt.Value
	}
	for {
		err := in.readInput(ctx, s.Vars, prompt)
		if !goerrors.Is(err, errReenter) {
			return err
		}
		if err := in.sys.WriteLine("?REENTER"); err != nil {
			return err
		}
	}
}

func (in *Interpreter) readInput(ctx context.Context, targets []ast.Expr, prompt string) error {
	items, err := in.readItems(ctx, prompt)
	if err != nil {
		return err
	}
	for _, target := range targets {
		if len(items) == 0 {
			if items, err = in.readItems(ctx, "??"); err != nil {
				return err
			}
		}
		value, err := inputValue(items[0], targetName(target))
		if err != nil {
			return err
		}
		items = items[1:]
		if err := in.assign(target, value); err != nil {
			return err
		}
	}
	if len(items) > 0 {
		return in.sys.WriteLine("?EXTRA IGNORED")
	}
	return nil
}

// readItems reads one line of input and splits it at commas. An empty line
// counts as a single empty item.
func (in *Interpreter) readItems(ctx context.Context, prompt string) ([]ast.DataItem, error) {
	line, err := in.sys.ReadLine(ctx, prompt)
	if err != nil {
		return nil, hostError(ctx, err)
	}
	items := ast.SplitItems(line)
	if len(items) == 0 {
		items = []ast.DataItem{{}}
	}
	return items, nil
}

func inputValue(item ast.DataItem, name string) (object.Object, error) {
	if object.IsStringName(name) {
		return object.NewCheckedString(item.Value)
	}
	if item.Quoted {
		return nil, errReenter
	}
	f, ok := object.ParseStrict(item.Value)
	if !ok {
		return nil, errReenter
	}
	n, err := object.NewCheckedNumber(f)
	if err != nil {
		return nil, errReenter
	}
	return n, nil
}

// execGet reads one key. String variables receive the character; numeric
// variables accept only a digit.
func (in *Interpreter) execGet(ctx context.Context, s *ast.Get) error {
	r, err := in.sys.ReadChar(ctx)
	if err != nil {
		return hostError(ctx, err)
	}
	name := targetName(s.Var)
	var value object.Object
	switch {
	case object.IsStringName(name):
		value = object.NewString(charString(r))
	case r >= '0' && r <= '9':
		value = object.NewNumber(float64(r - '0'))
	default:
		return errz.New(errz.Syntax, "GET %s expects a digit, got %q", name, r)
	}
	return in.assign(s.Var, value)
}
