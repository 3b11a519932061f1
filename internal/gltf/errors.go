package gltf

import "fmt"

// FormatError reports a scene document that cannot be used as a structural
// map: unparseable JSON, missing required sections, or an unsupported
// buffer layout. It is fatal for the whole run.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scene %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("scene %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
