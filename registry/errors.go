package registry

import "fmt"

// UnresolvedError is returned when a key has no producer or value in the
// registry or any of its ancestors.
type UnresolvedError struct {
	Key Key
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("no binding found for %s", e.Key)
}

// CycleError is returned when a key is requested while already in flight on
// the same resolution path and no ancestor can break the cycle.
type CycleError struct {
	Key Key
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected for %s", e.Key)
}
