package aurora

// Confirmer asks a blocking yes/no question before a destructive action.
type Confirmer interface {
	Confirm(question string) bool
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(question string) bool

func (f ConfirmFunc) Confirm(question string) bool { return f(question) }

// Always and Never are the trivial confirmers.
var (
	Always Confirmer = ConfirmFunc(func(string) bool { return true })
	Never  Confirmer = ConfirmFunc(func(string) bool { return false })
)
