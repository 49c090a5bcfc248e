package triangulation

import "github.com/pkg/errors"

// Threading errors through every split, flip and walk would add a ton of
// complexity for failures that only happen on contract violations. Instead we
// panic, and boundaries that promise an error recover to convert it.

type TriangulateError error

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(TriangulateError(errors.Errorf(format, args...)))
}

func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError
		}
		panic(r)
	}
	return nil
}
