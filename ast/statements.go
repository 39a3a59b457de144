package ast

import (
	"strconv"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/token"
)

// Let assigns a value to a variable or array element. The LET keyword is
// optional in source.
type Let struct {
	LetPos   token.Position // position of LET or of the target
	Explicit bool           // true if the LET keyword was written
	Target   Expr           // *Ident or *Index
	Value    Expr           // assigned value
}

func (s *Let) stmtNode() {}

func (s *Let) Pos() token.Position { return s.LetPos }
func (s *Let) End() token.Position { return s.Value.End() }

func (s *Let) String() string {
	prefix := ""
	if s.Explicit {
		prefix = "LET "
	}
	return prefix + s.Target.String() + " = " + s.Value.String()
}

// PrintSep is the separator that follows a PRINT item.
type PrintSep int

const (
	SepNone      PrintSep = iota // no separator
	SepSemicolon                 // ";" keeps the cursor in place
	SepComma                     // "," advances to the next tab zone
)

// PrintItem is one element of a PRINT list. Expr is nil for a bare
// separator, as in PRINT ,,X.
type PrintItem struct {
	Expr Expr
	Sep  PrintSep
}

// Print writes its items to the screen. A trailing separator suppresses the
// final newline.
type Print struct {
	PrintPos token.Position // position of PRINT or "?"
	Items    []PrintItem
	EndPos   token.Position // position after the last item
}

func (s *Print) stmtNode() {}

func (s *Print) Pos() token.Position { return s.PrintPos }
func (s *Print) End() token.Position { return s.EndPos }

// Newline reports whether the statement ends the output line.
func (s *Print) Newline() bool {
	return len(s.Items) == 0 || s.Items[len(s.Items)-1].Sep == SepNone
}

func (s *Print) String() string {
	var out strings.Builder
	out.WriteString("PRINT")
	if len(s.Items) > 0 {
		out.WriteString(" ")
	}
	for i, item := range s.Items {
		if item.Expr != nil {
			if i > 0 && s.Items[i-1].Sep == SepNone {
				out.WriteString(" ")
			}
			out.WriteString(item.Expr.String())
		}
		switch item.Sep {
		case SepSemicolon:
			out.WriteString(";")
		case SepComma:
			out.WriteString(",")
		}
	}
	return out.String()
}

// Input reads comma-separated values from the user into variables.
type Input struct {
	InputPos token.Position
	Prompt   *String // optional prompt; nil means "?"
	Vars     []Expr  // *Ident or *Index
}

func (s *Input) stmtNode() {}

func (s *Input) Pos() token.Position { return s.InputPos }
func (s *Input) End() token.Position { return s.Vars[len(s.Vars)-1].End() }

func (s *Input) String() string {
	var out strings.Builder
	out.WriteString("INPUT ")
	if s.Prompt != nil {
		out.WriteString(s.Prompt.String())
		out.WriteString(";")
	}
	out.WriteString(joinExprs(s.Vars, ","))
	return out.String()
}

// Get reads a single character without waiting for RETURN.
type Get struct {
	GetPos token.Position
	Var    Expr // *Ident or *Index
}

func (s *Get) stmtNode() {}

func (s *Get) Pos() token.Position { return s.GetPos }
func (s *Get) End() token.Position { return s.Var.End() }

func (s *Get) String() string { return "GET " + s.Var.String() }

// If evaluates a condition. When the condition is false the rest of the line
// is skipped. The statements following THEN are the remaining statements of
// the same line, so If itself holds only the condition and an optional
// branch target ("IF X THEN 100" or "IF X GOTO 100").
type If struct {
	IfPos     token.Position
	Cond      Expr
	HasTarget bool           // true when THEN or GOTO is followed by a line number
	Target    int            // branch target line number
	TargetPos token.Position // position of the target line number
	Keyword   string         // "THEN" or "GOTO"
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.IfPos }

func (s *If) End() token.Position {
	if s.HasTarget {
		return s.TargetPos.Advance(len(strconv.Itoa(s.Target)))
	}
	return s.Cond.End()
}

func (s *If) String() string {
	out := "IF " + s.Cond.String() + " " + s.Keyword
	if s.HasTarget {
		out += " " + strconv.Itoa(s.Target)
	}
	return out
}

// Goto transfers control to a line.
type Goto struct {
	GotoPos token.Position
	Target  int
	LinePos token.Position
}

func (s *Goto) stmtNode() {}

func (s *Goto) Pos() token.Position { return s.GotoPos }
func (s *Goto) End() token.Position { return s.LinePos.Advance(len(strconv.Itoa(s.Target))) }

func (s *Goto) String() string { return "GOTO " + strconv.Itoa(s.Target) }

// Gosub calls the subroutine starting at a line.
type Gosub struct {
	GosubPos token.Position
	Target   int
	LinePos  token.Position
}

func (s *Gosub) stmtNode() {}

func (s *Gosub) Pos() token.Position { return s.GosubPos }
func (s *Gosub) End() token.Position { return s.LinePos.Advance(len(strconv.Itoa(s.Target))) }

func (s *Gosub) String() string { return "GOSUB " + strconv.Itoa(s.Target) }

// On is a computed GOTO or GOSUB: ON X GOTO 100, 200, 300.
type On struct {
	OnPos   token.Position
	X       Expr
	Gosub   bool  // true for ON ... GOSUB
	Targets []int // line numbers, selected by X starting at 1
	EndPos  token.Position
}

func (s *On) stmtNode() {}

func (s *On) Pos() token.Position { return s.OnPos }
func (s *On) End() token.Position { return s.EndPos }

func (s *On) String() string {
	kw := "GOTO"
	if s.Gosub {
		kw = "GOSUB"
	}
	targets := make([]string, 0, len(s.Targets))
	for _, t := range s.Targets {
		targets = append(targets, strconv.Itoa(t))
	}
	return "ON " + s.X.String() + " " + kw + " " + strings.Join(targets, ",")
}

// For begins a counted loop.
type For struct {
	ForPos token.Position
	Var    *Ident
	Start  Expr
	Limit  Expr
	Step   Expr // nil means STEP 1
}

func (s *For) stmtNode() {}

func (s *For) Pos() token.Position { return s.ForPos }

func (s *For) End() token.Position {
	if s.Step != nil {
		return s.Step.End()
	}
	return s.Limit.End()
}

func (s *For) String() string {
	out := "FOR " + s.Var.String() + " = " + s.Start.String() + " TO " + s.Limit.String()
	if s.Step != nil {
		out += " STEP " + s.Step.String()
	}
	return out
}

// Next closes one or more FOR loops. With no variables it closes the
// innermost loop.
type Next struct {
	NextPos token.Position
	Vars    []*Ident
}

func (s *Next) stmtNode() {}

func (s *Next) Pos() token.Position { return s.NextPos }

func (s *Next) End() token.Position {
	if len(s.Vars) > 0 {
		return s.Vars[len(s.Vars)-1].End()
	}
	return s.NextPos.Advance(len("NEXT"))
}

func (s *Next) String() string {
	if len(s.Vars) == 0 {
		return "NEXT"
	}
	names := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		names = append(names, v.Name)
	}
	return "NEXT " + strings.Join(names, ",")
}

// Dim declares arrays with explicit upper bounds.
type Dim struct {
	DimPos token.Position
	Arrays []*Index
}

func (s *Dim) stmtNode() {}

func (s *Dim) Pos() token.Position { return s.DimPos }
func (s *Dim) End() token.Position { return s.Arrays[len(s.Arrays)-1].End() }

func (s *Dim) String() string {
	parts := make([]string, 0, len(s.Arrays))
	for _, a := range s.Arrays {
		parts = append(parts, a.String())
	}
	return "DIM " + strings.Join(parts, ",")
}

// DataItem is one value listed in a DATA statement.
type DataItem struct {
	Value  string // text of the item, without quotes
	Quoted bool   // true if the item was written in double quotes
}

// SplitItems splits the text of a DATA statement, or a line typed in answer
// to INPUT, into items. Items are separated by commas outside double quotes.
// Unquoted items are trimmed of surrounding spaces.
func SplitItems(raw string) []DataItem {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []DataItem
	var cur strings.Builder
	inQuote, quoted := false, false
	flush := func() {
		if quoted {
			items = append(items, DataItem{Value: cur.String(), Quoted: true})
		} else {
			items = append(items, DataItem{Value: strings.TrimSpace(cur.String())})
		}
		cur.Reset()
		quoted = false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '"' && !inQuote && strings.TrimSpace(cur.String()) == "":
			cur.Reset()
			inQuote, quoted = true, true
		case c == '"' && inQuote:
			inQuote = false
		case c == ',' && !inQuote:
			flush()
		case quoted && !inQuote:
			// Text after a closing quote is ignored.
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return items
}

// Data lists constants consumed by READ. It has no effect when executed.
type Data struct {
	DataPos token.Position
	Raw     string // text after the DATA keyword
	Items   []DataItem
}

func (s *Data) stmtNode() {}

func (s *Data) Pos() token.Position { return s.DataPos }
func (s *Data) End() token.Position { return s.DataPos.Advance(len("DATA") + len(s.Raw)) }

func (s *Data) String() string {
	return "DATA " + strings.TrimSpace(s.Raw)
}

// Read assigns the next DATA values to variables.
type Read struct {
	ReadPos token.Position
	Vars    []Expr // *Ident or *Index
}

func (s *Read) stmtNode() {}

func (s *Read) Pos() token.Position { return s.ReadPos }
func (s *Read) End() token.Position { return s.Vars[len(s.Vars)-1].End() }

func (s *Read) String() string { return "READ " + joinExprs(s.Vars, ",") }

// Restore resets the DATA cursor, optionally to the first value at or after
// a given line.
type Restore struct {
	RestorePos token.Position
	HasTarget  bool
	Target     int
	LinePos    token.Position
}

func (s *Restore) stmtNode() {}

func (s *Restore) Pos() token.Position { return s.RestorePos }

func (s *Restore) End() token.Position {
	if s.HasTarget {
		return s.LinePos.Advance(len(strconv.Itoa(s.Target)))
	}
	return s.RestorePos.Advance(len("RESTORE"))
}

func (s *Restore) String() string {
	if s.HasTarget {
		return "RESTORE " + strconv.Itoa(s.Target)
	}
	return "RESTORE"
}

// Rem is a comment.
type Rem struct {
	RemPos token.Position
	Text   string
}

func (s *Rem) stmtNode() {}

func (s *Rem) Pos() token.Position { return s.RemPos }
func (s *Rem) End() token.Position { return s.RemPos.Advance(len("REM") + len(s.Text)) }

func (s *Rem) String() string { return "REM" + s.Text }

// Keyword is a statement consisting of a single keyword: RETURN, POP, END,
// STOP, HOME, CLEAR, NORMAL, INVERSE or FLASH.
type Keyword struct {
	KeywordPos token.Position
	Tok        token.Type
}

func (s *Keyword) stmtNode() {}

func (s *Keyword) Pos() token.Position { return s.KeywordPos }
func (s *Keyword) End() token.Position { return s.KeywordPos.Advance(len(s.Tok)) }

func (s *Keyword) String() string { return string(s.Tok) }

// Tab is HTAB or VTAB, which position the cursor.
type Tab struct {
	TabPos   token.Position
	Vertical bool // true for VTAB
	X        Expr
}

func (s *Tab) stmtNode() {}

func (s *Tab) Pos() token.Position { return s.TabPos }
func (s *Tab) End() token.Position { return s.X.End() }

func (s *Tab) String() string {
	if s.Vertical {
		return "VTAB " + s.X.String()
	}
	return "HTAB " + s.X.String()
}

// DefFn defines a single-argument user function: DEF FN F(X) = X * 2.
type DefFn struct {
	DefPos token.Position
	Name   string
	Param  *Ident
	Body   Expr
}

func (s *DefFn) stmtNode() {}

func (s *DefFn) Pos() token.Position { return s.DefPos }
func (s *DefFn) End() token.Position { return s.Body.End() }

func (s *DefFn) String() string {
	return "DEF FN " + s.Name + "(" + s.Param.String() + ") = " + s.Body.String()
}

// Poke stores a byte at a memory address.
type Poke struct {
	PokePos token.Position
	Addr    Expr
	Value   Expr
}

func (s *Poke) stmtNode() {}

func (s *Poke) Pos() token.Position { return s.PokePos }
func (s *Poke) End() token.Position { return s.Value.End() }

func (s *Poke) String() string { return "POKE " + s.Addr.String() + "," + s.Value.String() }

// CallStmt invokes a machine language routine at an address.
type CallStmt struct {
	CallPos token.Position
	Addr    Expr
}

func (s *CallStmt) stmtNode() {}

func (s *CallStmt) Pos() token.Position { return s.CallPos }
func (s *CallStmt) End() token.Position { return s.Addr.End() }

func (s *CallStmt) String() string { return "CALL " + s.Addr.String() }
