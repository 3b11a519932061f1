// Package gltf loads and writes the separate-JSON-plus-binary variant of
// glTF 2.0 scene files.
//
// Only the sections the repair engine reasons about (accessors, bufferViews,
// buffers, animations) are parsed into typed structures; every other
// top-level section is carried as raw JSON and written back untouched.
// Array order is never permuted because indices elsewhere in the document
// are positional references into these arrays.
package gltf
