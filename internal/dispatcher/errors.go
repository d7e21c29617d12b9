package dispatcher

// Code classifies a rejected command line.
type Code int

const (
	CodeArity          Code = iota + 1 // wrong number of arguments
	CodeNotANumber                     // argument is not a 32-bit integer
	CodeUnknownCommand                 // command name not recognized
)

func (c Code) String() string {
	switch c {
	case CodeArity:
		return "arity"
	case CodeNotANumber:
		return "not_a_number"
	case CodeUnknownCommand:
		return "unknown_command"
	default:
		return "unknown"
	}
}

// Error is a validation failure. The command was not executed and Msg is
// shown to the user verbatim.
type Error struct {
	Code Code
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

func newError(code Code, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}
