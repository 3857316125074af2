package call

// Call is a deferred error-returning step in a startup or seeding
// sequence
type Call func() error

// Perform runs each call in order, stopping at the first that fails
func Perform(calls ...Call) error {
	for _, call := range calls {
		if err := call(); err != nil {
			return err
		}
	}
	return nil
}

// WithArg adapts a one-argument function into a Call by binding its
// argument up front
func WithArg[Arg any](call func(Arg) error, arg Arg) Call {
	return func() error {
		return call(arg)
	}
}
