package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Text IR reader
	ParseSyntax Code = 1001

	// Lowering
	LowerNoRule          Code = 3001
	LowerUnsupportedType Code = 3002
	LowerUnimplementable Code = 3003
	LowerArityMismatch   Code = 3004
)

func (c Code) String() string {
	return fmt.Sprintf("E%04d", uint16(c))
}
