package repair

import (
	"fmt"

	"gltfix/internal/gltf"
)

// BufferBoundsError reports an accessor whose cross-references or resolved
// byte range fall outside the loaded scene. It fails the owning sampler
// only; the run continues.
type BufferBoundsError struct {
	Accessor int
	Reason   string
}

func (e *BufferBoundsError) Error() string {
	return fmt.Sprintf("accessor %d: %s", e.Accessor, e.Reason)
}

// ComponentTypeError reports a timestamp accessor that is not encoded as
// 32-bit float scalars, the only encoding timestamp synthesis supports.
type ComponentTypeError struct {
	Accessor      int
	ComponentType int
	ElementType   string
}

func (e *ComponentTypeError) Error() string {
	return fmt.Sprintf("accessor %d: unsupported timestamp encoding %s/%d (want %s/%d)",
		e.Accessor, e.ElementType, e.ComponentType, gltf.TypeScalar, gltf.ComponentFloat)
}
