package interpreter

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/errz"
	"github.com/Bad-Mango-Solutions/back-pocket-basic-sub009/object"
)

type builtin struct {
	minArgs int
	maxArgs int
	call    func(in *Interpreter, args []object.Object) (object.Object, error)
}

// builtins must not call back into expression evaluation; arguments arrive
// evaluated.
var builtins = map[string]builtin{
	"ABS":    numeric(math.Abs),
	"ATN":    numeric(math.Atan),
	"COS":    numeric(math.Cos),
	"EXP":    numeric(math.Exp),
	"INT":    numeric(math.Floor),
	"LOG":    {1, 1, log},
	"RND":    {1, 1, rnd},
	"SGN":    numeric(sgn),
	"SIN":    numeric(math.Sin),
	"SQR":    {1, 1, sqr},
	"TAN":    numeric(math.Tan),
	"LEN":    {1, 1, length},
	"VAL":    {1, 1, val},
	"STR$":   {1, 1, str},
	"CHR$":   {1, 1, chr},
	"ASC":    {1, 1, asc},
	"LEFT$":  {2, 2, left},
	"RIGHT$": {2, 2, right},
	"MID$":   {2, 3, mid},
	"POS":    {1, 1, pos},
	"PEEK":   {1, 1, peek},
}

// FuncSpec describes a built-in function.
type FuncSpec struct {
	Name    string `json:"name"`
	MinArgs int    `json:"min_args"`
	MaxArgs int    `json:"max_args"`
}

// Functions lists the built-in functions by name. TAB and SPC are not
// included; they are only valid inside PRINT.
func Functions() []FuncSpec {
	specs := make([]FuncSpec, 0, len(builtins))
	for name, b := range builtins {
		specs = append(specs, FuncSpec{Name: name, MinArgs: b.minArgs, MaxArgs: b.maxArgs})
	}
	slices.SortFunc(specs, func(a, b FuncSpec) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return specs
}

func numeric(fn func(float64) float64) builtin {
	return builtin{1, 1, func(in *Interpreter, args []object.Object) (object.Object, error) {
		x, err := object.AsNumber(args[0])
		if err != nil {
			return nil, err
		}
		return checked(fn(x))
	}}
}

func checked(x float64) (object.Object, error) {
	if math.IsNaN(x) {
		return nil, errz.New(errz.IllegalQuantity, "result is not a number")
	}
	n, err := object.NewCheckedNumber(x)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func log(in *Interpreter, args []object.Object) (object.Object, error) {
	x, err := object.AsNumber(args[0])
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, errz.New(errz.IllegalQuantity, "LOG of %s", object.FormatNumber(x))
	}
	return checked(math.Log(x))
}

func sqr(in *Interpreter, args []object.Object) (object.Object, error) {
	x, err := object.AsNumber(args[0])
	if err != nil {
		return nil, err
	}
	if x < 0 {
		return nil, errz.New(errz.IllegalQuantity, "SQR of %s", object.FormatNumber(x))
	}
	return checked(math.Sqrt(x))
}

// rnd returns a value in [0, 1). A negative argument reseeds the generator
// from the argument, zero repeats the previous value.
func rnd(in *Interpreter, args []object.Object) (object.Object, error) {
	x, err := object.AsNumber(args[0])
	if err != nil {
		return nil, err
	}
	switch {
	case x < 0:
		in.rng = rand.New(rand.NewPCG(math.Float64bits(x), 0))
		in.lastRnd = in.rng.Float64()
	case x > 0:
		in.lastRnd = in.rng.Float64()
	}
	return object.NewNumber(in.lastRnd), nil
}

func length(in *Interpreter, args []object.Object) (object.Object, error) {
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewNumber(float64(len(s))), nil
}

func val(in *Interpreter, args []object.Object) (object.Object, error) {
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	return checked(object.ParseNumber(s))
}

func str(in *Interpreter, args []object.Object) (object.Object, error) {
	x, err := object.AsNumber(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewString(object.FormatNumber(x)), nil
}

func chr(in *Interpreter, args []object.Object) (object.Object, error) {
	code, err := object.AsInt(args[0], 0, 255)
	if err != nil {
		return nil, err
	}
	return object.NewString(charString(rune(code))), nil
}

// charString is the one-byte string holding code. Strings are byte
// strings, so codes 128 to 255 are not UTF-8 encoded.
func charString(code rune) string {
	if code < 0 || code > 255 {
		return string(code)
	}
	return string([]byte{byte(code)})
}

func asc(in *Interpreter, args []object.Object) (object.Object, error) {
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, errz.New(errz.IllegalQuantity, "ASC of an empty string")
	}
	return object.NewNumber(float64(s[0])), nil
}

func stringAndCount(args []object.Object, lo int) (string, int, error) {
	s, err := object.AsString(args[0])
	if err != nil {
		return "", 0, err
	}
	n, err := object.AsInt(args[1], lo, object.MaxStringLength)
	if err != nil {
		return "", 0, err
	}
	return s, n, nil
}

func left(in *Interpreter, args []object.Object) (object.Object, error) {
	s, n, err := stringAndCount(args, 0)
	if err != nil {
		return nil, err
	}
	return object.NewString(s[:min(n, len(s))]), nil
}

func right(in *Interpreter, args []object.Object) (object.Object, error) {
	s, n, err := stringAndCount(args, 0)
	if err != nil {
		return nil, err
	}
	return object.NewString(s[len(s)-min(n, len(s)):]), nil
}

// mid returns the substring starting at a 1-based position. Without a
// length it runs to the end of the string.
func mid(in *Interpreter, args []object.Object) (object.Object, error) {
	s, start, err := stringAndCount(args, 1)
	if err != nil {
		return nil, err
	}
	count := object.MaxStringLength
	if len(args) == 3 {
		if count, err = object.AsInt(args[2], 0, object.MaxStringLength); err != nil {
			return nil, err
		}
	}
	if start > len(s) {
		return object.NewString(""), nil
	}
	rest := s[start-1:]
	return object.NewString(rest[:min(count, len(rest))]), nil
}

// pos reports the cursor column, including text of the PRINT statement
// being evaluated that has not been written yet.
func pos(in *Interpreter, args []object.Object) (object.Object, error) {
	if in.printer != nil {
		return object.NewNumber(float64(in.printer.col)), nil
	}
	return object.NewNumber(float64(in.sys.CursorColumn())), nil
}

func peek(in *Interpreter, args []object.Object) (object.Object, error) {
	addr, err := object.AsInt(args[0], -65535, 65535)
	if err != nil {
		return nil, err
	}
	if addr < 0 {
		addr += 65536
	}
	if in.memory == nil {
		return object.NewNumber(0), nil
	}
	b, err := in.memory.Peek(addr)
	if err != nil {
		return nil, err
	}
	return object.NewNumber(float64(b)), nil
}
