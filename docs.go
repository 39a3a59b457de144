package basic

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/interpreter"
)

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
	quick    bool
	all      bool
}

// DocsCategory filters documentation to a specific category.
// Valid categories: "statements", "functions", "errors"
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for a specific statement, function or
// error. Examples: "GOSUB", "MID$", "OUT OF DATA"
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// DocsQuick returns a concise quick reference.
func DocsQuick() DocsOption {
	return func(o *docsOptions) {
		o.quick = true
	}
}

// DocsAll returns complete documentation.
func DocsAll() DocsOption {
	return func(o *docsOptions) {
		o.all = true
	}
}

// Documentation provides structured access to the language reference.
type Documentation struct {
	data any
}

// JSON returns the documentation as a JSON string.
func (d *Documentation) JSON() string {
	b, _ := json.MarshalIndent(d.data, "", "  ")
	return string(b)
}

// Data returns the raw documentation data.
func (d *Documentation) Data() any {
	return d.data
}

type docsInfo struct {
	Version        string `json:"version"`
	Description    string `json:"description"`
	ExecutionModel string `json:"execution_model"`
}

type docsQuickReference struct {
	Basic      docsInfo          `json:"basic"`
	Statements []string          `json:"statements"`
	Functions  []string          `json:"functions"`
	Topics     map[string]string `json:"topics"`
}

type docsStatement struct {
	Keyword string `json:"keyword"`
	Syntax  string `json:"syntax"`
	Notes   string `json:"notes"`
}

type docsFunction struct {
	interpreter.FuncSpec
	Syntax string `json:"syntax"`
	Notes  string `json:"notes"`
}

type docsError struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Causes   string `json:"causes"`
}

type docsFullDocumentation struct {
	Basic      docsInfo        `json:"basic"`
	Statements []docsStatement `json:"statements"`
	Functions  []docsFunction  `json:"functions"`
	Errors     []docsError     `json:"errors"`
}

// Docs returns structured documentation about the language.
//
// Example:
//
//	docs := basic.Docs(basic.DocsTopic("GOSUB"))
//	fmt.Println(docs.JSON())
func Docs(opts ...DocsOption) *Documentation {
	o := &docsOptions{}
	for _, opt := range opts {
		opt(o)
	}
	switch {
	case o.all:
		return &Documentation{data: buildFullDocumentation()}
	case o.category != "":
		return &Documentation{data: buildCategoryDocs(o.category)}
	case o.topic != "":
		return &Documentation{data: buildTopicDocs(o.topic)}
	}
	return &Documentation{data: buildQuickReference()}
}

func docsInfoBlock() docsInfo {
	return docsInfo{
		Version:        Version,
		Description:    "Applesoft-compatible BASIC interpreter",
		ExecutionModel: "source → lexer → parser → syntax tree → interpreter → system context",
	}
}

func buildQuickReference() docsQuickReference {
	ref := docsQuickReference{
		Basic: docsInfoBlock(),
		Topics: map[string]string{
			"statements": "Statements (PRINT, GOTO, FOR, ...)",
			"functions":  "Built-in functions (LEFT$, INT, RND, ...)",
			"errors":     "Runtime errors and their causes",
		},
	}
	for _, st := range docsStatements {
		ref.Statements = append(ref.Statements, st.Keyword)
	}
	for _, fn := range interpreter.Functions() {
		ref.Functions = append(ref.Functions, fn.Name)
	}
	return ref
}

func buildFullDocumentation() docsFullDocumentation {
	return docsFullDocumentation{
		Basic:      docsInfoBlock(),
		Statements: docsStatements,
		Functions:  docsFunctions(),
		Errors:     docsErrors(),
	}
}

func buildCategoryDocs(category string) any {
	switch strings.ToLower(category) {
	case "statements":
		return map[string]any{
			"category":    "statements",
			"description": "Statements, one or more per line separated by colons",
			"count":       len(docsStatements),
			"statements":  docsStatements,
		}
	case "functions":
		fns := docsFunctions()
		return map[string]any{
			"category":    "functions",
			"description": "Built-in functions usable in any expression",
			"count":       len(fns),
			"functions":   fns,
		}
	case "errors":
		errs := docsErrors()
		return map[string]any{
			"category":    "errors",
			"description": "Runtime errors, shown as ?<MESSAGE> ERROR IN <line>",
			"count":       len(errs),
			"errors":      errs,
		}
	default:
		return map[string]any{
			"error": "unknown category: " + category,
		}
	}
}

func buildTopicDocs(topic string) any {
	topic = strings.ToUpper(strings.TrimSpace(topic))
	for _, st := range docsStatements {
		if st.Keyword == topic {
			return map[string]any{"type": "statement", "statement": st}
		}
	}
	for _, fn := range docsFunctions() {
		if fn.Name == topic {
			return map[string]any{"type": "function", "function": fn}
		}
	}
	for _, e := range docsErrors() {
		if e.Message == topic {
			return map[string]any{"type": "error", "error": e}
		}
	}
	return map[string]any{
		"error": "unknown topic: " + topic,
	}
}

func docsFunctions() []docsFunction {
	specs := interpreter.Functions()
	fns := make([]docsFunction, 0, len(specs))
	for _, spec := range specs {
		doc := docsFunctionNotes[spec.Name]
		fns = append(fns, docsFunction{FuncSpec: spec, Syntax: doc[0], Notes: doc[1]})
	}
	return fns
}

func docsErrors() []docsError {
	var errs []docsError
	for kind := errz.UndefinedLine; kind <= errz.HostIO; kind++ {
		errs = append(errs, docsError{
			Message:  kind.Legacy(),
			Code:     string(kind.Code()),
			Category: kind.Code().Category(),
			Causes:   docsErrorCauses[kind],
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Code < errs[j].Code })
	return errs
}

var docsStatements = []docsStatement{
	{"CALL", "CALL addr", "Calls machine code at addr when the host emulates memory"},
	{"CLEAR", "CLEAR", "Erases variables, functions and stacks and restores DATA"},
	{"DATA", "DATA item, item, ...", "Values read by READ; quote items containing commas"},
	{"DEF", "DEF FN name(param) = expr", "Defines a one-argument numeric function"},
	{"DIM", "DIM A(n), B$(n, m)", "Creates arrays; undeclared arrays have bound 10"},
	{"END", "END", "Ends the program"},
	{"FLASH", "FLASH", "Shows subsequent text flashing"},
	{"FOR", "FOR V = start TO limit [STEP s]", "Counted loop; the body runs at least once unless the start is already past the limit"},
	{"GET", "GET V$", "Reads a single key without echo"},
	{"GOSUB", "GOSUB line", "Calls a subroutine; RETURN comes back"},
	{"GOTO", "GOTO line", "Continues at line"},
	{"HOME", "HOME", "Clears the screen"},
	{"HTAB", "HTAB col", "Moves the cursor to column 1-255"},
	{"IF", "IF cond THEN line | IF cond THEN statements", "Statements after THEN run only when cond is non-zero"},
	{"INPUT", "INPUT [\"prompt\";] V, V$, ...", "Reads comma-separated values, asking again with ?? or ?REENTER"},
	{"INVERSE", "INVERSE", "Shows subsequent text in reverse video"},
	{"LET", "[LET] V = expr", "Assigns a value; LET is optional"},
	{"NEXT", "NEXT [V, ...]", "Ends a FOR loop"},
	{"NORMAL", "NORMAL", "Shows subsequent text normally"},
	{"ON", "ON expr GOTO|GOSUB line, line, ...", "Selects a target by the value of expr, starting at 1"},
	{"POKE", "POKE addr, byte", "Stores a byte when the host emulates memory"},
	{"POP", "POP", "Discards the most recent GOSUB return address"},
	{"PRINT", "PRINT expr [;|,] ...", "Writes values; commas move to 16-column zones, a trailing ; or , keeps the line open"},
	{"READ", "READ V, V$, ...", "Assigns the next DATA items"},
	{"REM", "REM text", "Comment to the end of the line"},
	{"RESTORE", "RESTORE [line]", "Rereads DATA from the start or from line"},
	{"RETURN", "RETURN", "Returns from GOSUB"},
	{"STOP", "STOP", "Halts the program; CONT resumes it"},
	{"VTAB", "VTAB row", "Moves the cursor to row 1-24"},
}

var docsFunctionNotes = map[string][2]string{
	"ABS":    {"ABS(x)", "Absolute value"},
	"ASC":    {"ASC(s$)", "Code of the first character; an empty string is an error"},
	"ATN":    {"ATN(x)", "Arctangent in radians"},
	"CHR$":   {"CHR$(n)", "One-character string with code n, 0-255"},
	"COS":    {"COS(x)", "Cosine of x radians"},
	"EXP":    {"EXP(x)", "e raised to x"},
	"INT":    {"INT(x)", "Largest integer not greater than x"},
	"LEFT$":  {"LEFT$(s$, n)", "First n characters"},
	"LEN":    {"LEN(s$)", "Length of s$"},
	"LOG":    {"LOG(x)", "Natural logarithm; x must be positive"},
	"MID$":   {"MID$(s$, start [, n])", "n characters from position start, counting from 1"},
	"PEEK":   {"PEEK(addr)", "Byte at addr, or 0 without emulated memory"},
	"POS":    {"POS(x)", "Current cursor column, counting from 0"},
	"RIGHT$": {"RIGHT$(s$, n)", "Last n characters"},
	"RND":    {"RND(x)", "Random number in [0, 1); negative x reseeds, 0 repeats the last value"},
	"SGN":    {"SGN(x)", "-1, 0 or 1"},
	"SIN":    {"SIN(x)", "Sine of x radians"},
	"SQR":    {"SQR(x)", "Square root; x must not be negative"},
	"STR$":   {"STR$(x)", "x formatted as PRINT would"},
	"TAN":    {"TAN(x)", "Tangent of x radians"},
	"VAL":    {"VAL(s$)", "Numeric value of the leading number in s$, or 0"},
}

var docsErrorCauses = map[errz.Kind]string{
	errz.UndefinedLine:      "GOTO, GOSUB, THEN or RESTORE names a line that does not exist",
	errz.ReturnWithoutGosub: "RETURN or POP with no active GOSUB",
	errz.NextWithoutFor:     "NEXT with no matching active FOR",
	errz.TypeMismatch:       "A string where a number is expected, or the reverse",
	errz.DivisionByZero:     "Division by zero, or zero raised to a negative power",
	errz.BadSubscript:       "A subscript beyond the array bounds or the wrong number of subscripts",
	errz.OutOfData:          "READ after the last DATA item",
	errz.RedimensionedArray: "DIM of an array that already exists",
	errz.IllegalQuantity:    "An argument outside the range a statement or function accepts",
	errz.Overflow:           "A result too large to represent",
	errz.StringTooLong:      "A string longer than 255 characters",
	errz.UndefinedFunction:  "FN of a function no DEF FN has defined",
	errz.OutOfMemory:        "GOSUB, FOR or FN nested too deeply",
	errz.Syntax:             "A key other than a digit for GET into a numeric variable",
	errz.Cancelled:          "The run was interrupted or timed out",
	errz.HostIO:             "The display or keyboard failed",
}
