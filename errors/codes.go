package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Check errors (static program checks)
//   - E3xxx: Runtime errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Unknown statement
	E1011 ErrorCode = "E1011" // Missing line number
	E1012 ErrorCode = "E1012" // Line number out of range

	// Check errors (E2xxx)
	E2001 ErrorCode = "E2001" // Undefined line
	E2002 ErrorCode = "E2002" // NEXT without FOR
	E2003 ErrorCode = "E2003" // Undefined function

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Type mismatch
	E3002 ErrorCode = "E3002" // Division by zero
	E3003 ErrorCode = "E3003" // Bad subscript
	E3004 ErrorCode = "E3004" // Undefined line
	E3005 ErrorCode = "E3005" // RETURN without GOSUB
	E3006 ErrorCode = "E3006" // Out of memory
	E3007 ErrorCode = "E3007" // Illegal quantity
	E3008 ErrorCode = "E3008" // Out of data
	E3009 ErrorCode = "E3009" // NEXT without FOR
	E3010 ErrorCode = "E3010" // Redimensioned array
	E3011 ErrorCode = "E3011" // Overflow
	E3012 ErrorCode = "E3012" // String too long
	E3013 ErrorCode = "E3013" // Undefined function
	E3014 ErrorCode = "E3014" // Syntax error at runtime
	E3015 ErrorCode = "E3015" // Cancelled
	E3016 ErrorCode = "E3016" // Host I/O error
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "unknown statement",
	E1011: "missing line number",
	E1012: "line number out of range",

	E2001: "undefined line",
	E2002: "NEXT without FOR",
	E2003: "undefined function",

	E3001: "type mismatch",
	E3002: "division by zero",
	E3003: "bad subscript",
	E3004: "undefined line",
	E3005: "RETURN without GOSUB",
	E3006: "out of memory",
	E3007: "illegal quantity",
	E3008: "out of data",
	E3009: "NEXT without FOR",
	E3010: "redimensioned array",
	E3011: "overflow",
	E3012: "string too long",
	E3013: "undefined function",
	E3014: "syntax error",
	E3015: "cancelled",
	E3016: "host I/O error",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "check"
	case '3':
		return "runtime"
	default:
		return "unknown"
	}
}
