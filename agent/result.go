package agent

// State is the progress of a request to the assistant.
type State int

const (
	// Idle means nothing was requested yet.
	Idle State = iota
	// Pending means the request is in flight.
	Pending
	// Resolved means Value is the answer of the model.
	Resolved
	// Fallback means the model could not answer and Value is a fixed substitute.
	Fallback
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the outcome of a request. A done Result always carries a usable
// Value, Err only tells why it is a fallback.
type Result[T any] struct {
	State State
	Value T
	Err   error
}

func resolved[T any](v T) Result[T]            { return Result[T]{State: Resolved, Value: v} }
func fallback[T any](v T, err error) Result[T] { return Result[T]{State: Fallback, Value: v, Err: err} }
func (r Result[T]) Done() bool                 { return r.State == Resolved || r.State == Fallback }
