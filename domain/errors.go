package domain

import "fmt"

var (
	// Arithmetic errors. Always wrapped with the operand values, never
	// surfaced bare and never silently clamped.
	ErrorOverflow       = fmt.Errorf("arithmetic overflow")
	ErrorUnderflow      = fmt.Errorf("arithmetic underflow")
	ErrorDivisionByZero = fmt.Errorf("division by zero")

	// State errors. Distinct from transport errors so callers can show
	// "not invested" instead of "network failure".
	ErrorStateKeyMissing = fmt.Errorf("on-chain state key missing")
	ErrorStateWrongType  = fmt.Errorf("on-chain state value has the wrong type")
	ErrorNotOptedIn      = fmt.Errorf("account is not opted in to the application")

	// Note codec errors.
	ErrorUnknownNoteVersion = fmt.Errorf("unknown note version")
	ErrorNoteTooShort       = fmt.Errorf("note is too short")
	ErrorNoteHashMismatch   = fmt.Errorf("note hash mismatch")

	ErrorInvalidPercentage = fmt.Errorf("percentage must be in [0, 1]")
)
