package worker

import "fmt"

// PanicError reports a script whose replay panicked.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("replay panicked: %v", e.Value)
}
