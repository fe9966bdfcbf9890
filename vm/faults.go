package vm

import "fmt"

// FaultKind is the closed taxonomy of runtime faults the simulator can
// raise. Faults are not recoverable from within the simulated program.
type FaultKind int

const (
	FaultArithmetic FaultKind = iota
	FaultMemory
	FaultInvalidInstruction
	FaultGeneric
)

// ExitCode returns the fixed process exit code for this fault kind.
func (k FaultKind) ExitCode() int {
	switch k {
	case FaultArithmetic:
		return -10
	case FaultMemory:
		return -11
	case FaultInvalidInstruction:
		return -12
	default:
		return -20
	}
}

func (k FaultKind) String() string {
	switch k {
	case FaultArithmetic:
		return "arithmetic fault"
	case FaultMemory:
		return "memory fault"
	case FaultInvalidInstruction:
		return "invalid instruction"
	default:
		return "internal error"
	}
}

// Fault is the error type raised by the core on any unrecoverable
// runtime condition. Every fault carries a short human message; the
// top level maps Kind to a fixed exit code.
type Fault struct {
	Kind    FaultKind
	Message string
}

func (f *Fault) Error() string {
	return f.Kind.String() + ": " + f.Message
}

// NewFault builds a Fault of the given kind with a formatted message.
func NewFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// Faultf builds a Fault with a printf-style message.
func Faultf(kind FaultKind, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
