package gltf

import (
	"encoding/json"
	"fmt"
)

// Component type codes from the glTF 2.0 specification.
const (
	ComponentByte          = 5120
	ComponentUnsignedByte  = 5121
	ComponentShort         = 5122
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126
)

// Element type names from the glTF 2.0 specification.
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat2   = "MAT2"
	TypeMat3   = "MAT3"
	TypeMat4   = "MAT4"
)

// ComponentSize returns the byte width of a single component, or 0 for an
// unknown component type.
func ComponentSize(componentType int) int {
	switch componentType {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// TypeComponents returns the number of components per element, or 0 for an
// unknown element type.
func TypeComponents(elementType string) int {
	switch elementType {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	case TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// Accessor is a typed, strided view into a BufferView.
//
// Min and Max are float64: the upstream converter writes DBL_MAX sentinels
// that do not survive a round trip through float32.
type Accessor struct {
	BufferView    *int            `json:"bufferView,omitempty"`
	ByteOffset    int             `json:"byteOffset,omitempty"`
	ComponentType int             `json:"componentType"`
	Normalized    bool            `json:"normalized,omitempty"`
	Count         int             `json:"count"`
	Type          string          `json:"type"`
	Max           []float64       `json:"max,omitempty"`
	Min           []float64       `json:"min,omitempty"`
	Sparse        json.RawMessage `json:"sparse,omitempty"`
	Name          string          `json:"name,omitempty"`
	Extensions    json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

// BufferView is a contiguous sub-region of a Buffer.
type BufferView struct {
	Buffer     int             `json:"buffer"`
	ByteOffset int             `json:"byteOffset,omitempty"`
	ByteLength int             `json:"byteLength"`
	ByteStride int             `json:"byteStride,omitempty"`
	Target     int             `json:"target,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Buffer describes a raw byte payload, referenced by relative URI in the
// supported file variant.
type Buffer struct {
	URI        string          `json:"uri,omitempty"`
	ByteLength int             `json:"byteLength"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// AnimationSampler pairs a timestamp accessor (Input) with a keyframe value
// accessor (Output). Input is a pointer because the upstream converter has
// been observed emitting samplers without one.
type AnimationSampler struct {
	Input         *int            `json:"input,omitempty"`
	Interpolation string          `json:"interpolation,omitempty"`
	Output        *int            `json:"output,omitempty"`
	Extensions    json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

// AnimationChannel binds a sampler to a target node property. The target is
// never inspected by repair, so it stays raw.
type AnimationChannel struct {
	Sampler    int             `json:"sampler"`
	Target     json.RawMessage `json:"target"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Animation is a named set of channels and samplers.
type Animation struct {
	Name       string             `json:"name,omitempty"`
	Channels   []AnimationChannel `json:"channels"`
	Samplers   []AnimationSampler `json:"samplers"`
	Extensions json.RawMessage    `json:"extensions,omitempty"`
	Extras     json.RawMessage    `json:"extras,omitempty"`
}

// Document is the root glTF object. The four index-addressed sections the
// repair engine touches are typed; every other section is preserved verbatim
// in rest and written back on marshal.
type Document struct {
	Accessors   []Accessor
	BufferViews []BufferView
	Buffers     []Buffer
	Animations  []Animation

	rest map[string]json.RawMessage
}

// UnmarshalJSON splits the document into typed sections and an opaque
// remainder.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if err := extractSection(raw, "accessors", &d.Accessors); err != nil {
		return err
	}
	if err := extractSection(raw, "bufferViews", &d.BufferViews); err != nil {
		return err
	}
	if err := extractSection(raw, "buffers", &d.Buffers); err != nil {
		return err
	}
	if err := extractSection(raw, "animations", &d.Animations); err != nil {
		return err
	}

	d.rest = raw
	return nil
}

// MarshalJSON reassembles the typed sections with the preserved remainder.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.rest)+4)
	for key, value := range d.rest {
		out[key] = value
	}

	if err := insertSection(out, "accessors", d.Accessors); err != nil {
		return nil, err
	}
	if err := insertSection(out, "bufferViews", d.BufferViews); err != nil {
		return nil, err
	}
	if err := insertSection(out, "buffers", d.Buffers); err != nil {
		return nil, err
	}
	if err := insertSection(out, "animations", d.Animations); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

func extractSection[T any](raw map[string]json.RawMessage, key string, dst *[]T) error {
	section, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if err := json.Unmarshal(section, dst); err != nil {
		return fmt.Errorf("section %q: %w", key, err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}

func insertSection[T any](out map[string]json.RawMessage, key string, section []T) error {
	if section == nil {
		return nil
	}
	encoded, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("section %q: %w", key, err)
	}
	out[key] = encoded
	return nil
}
