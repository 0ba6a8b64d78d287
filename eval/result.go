package eval

import "github.com/chiron-lang/chiron/value"

// Signal tags the outcome of executing a statement: either it ran to
// completion normally, or it is carrying one of the three internal
// control-flow signals spec.md 4.4 and 9 require be distinct from
// ordinary error flow (return/break/continue must never be caught by
// try/except). ExecResult is that explicit result type — the
// "Return(value) | Break | Continue | Normal" sum spec.md 9 calls for
// in place of reusing the host's exception mechanism.
type Signal int

const (
	SignalNone Signal = iota
	SignalReturn
	SignalBreak
	SignalContinue
)

// ExecResult is what execStmt/execBlock return alongside an error:
// Signal is SignalNone for ordinary statements, and Value only carries
// meaning when Signal is SignalReturn.
type ExecResult struct {
	Signal Signal
	Value  value.Value
}
