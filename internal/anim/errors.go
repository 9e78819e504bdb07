package anim

import "fmt"

// InvalidParameterError reports a rejected animation request: an unknown
// animation name, a non-positive duration, an out-of-range direction and so
// on. Validation happens before any frame is rendered.
type InvalidParameterError struct {
	Animation string
	Param     string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	if e.Animation == "" {
		return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("animation %q: invalid parameter %s: %s", e.Animation, e.Param, e.Reason)
}
