// Package testsupport provides fixture builders shared by package tests:
// in-memory scene documents with known corruption patterns and on-disk
// scene pairs.
package testsupport

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gltfix/internal/gltf"
)

// dblMax mirrors the DBL_MAX sentinel the upstream converter writes.
const dblMax = math.MaxFloat64

// Float32Bytes encodes vals as little-endian float32s, the timestamp
// encoding used throughout the supported format variant.
func Float32Bytes(vals ...float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// InfSamples returns count float32 +Inf values, the corrupted timestamp
// payload shape.
func InfSamples(count int) []float32 {
	vals := make([]float32, count)
	for i := range vals {
		vals[i] = float32(math.Inf(1))
	}
	return vals
}

// intPtr returns a pointer to v for accessor/sampler index fields.
func intPtr(v int) *int {
	return &v
}

// TimingScene builds a one-animation, one-sampler scene whose input
// accessor covers the provided samples. Bounds are set to the DBL_MAX
// sentinel pair, so the declared bounds are always corrupt; whether the
// engine synthesizes or rebounds depends on the samples themselves.
func TimingScene(samples []float32) *gltf.Scene {
	bin := Float32Bytes(samples...)
	doc := &gltf.Document{
		Accessors: []gltf.Accessor{
			{
				BufferView:    intPtr(0),
				ComponentType: gltf.ComponentFloat,
				Count:         len(samples),
				Type:          gltf.TypeScalar,
				Min:           []float64{dblMax},
				Max:           []float64{-dblMax},
			},
		},
		BufferViews: []gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: len(bin)},
		},
		Buffers: []gltf.Buffer{
			{URI: "scene.bin", ByteLength: len(bin)},
		},
		Animations: []gltf.Animation{
			{
				Name: "take_001",
				Samplers: []gltf.AnimationSampler{
					{Input: intPtr(0), Interpolation: "LINEAR", Output: intPtr(0)},
				},
				Channels: []gltf.AnimationChannel{
					{Sampler: 0, Target: json.RawMessage(`{"node":0,"path":"translation"}`)},
				},
			},
		},
	}
	return &gltf.Scene{Doc: doc, Bin: bin}
}

// CorruptTimingScene builds a scene whose declared bounds and buffer
// samples are both corrupt: the full synthesis path.
func CorruptTimingScene(keyframes int) *gltf.Scene {
	return TimingScene(InfSamples(keyframes))
}

// WriteScene serializes doc and bin as a scene pair under dir and returns
// the document path. The document's buffer URI decides the bin filename.
func WriteScene(t *testing.T, dir, name string, doc *gltf.Document, bin []byte) string {
	t.Helper()

	if len(doc.Buffers) > 0 && doc.Buffers[0].URI != "" {
		binPath := filepath.Join(dir, doc.Buffers[0].URI)
		if err := os.WriteFile(binPath, bin, 0o644); err != nil {
			t.Fatalf("write bin: %v", err)
		}
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("encode scene: %v", err)
	}
	gltfPath := filepath.Join(dir, name)
	if err := os.WriteFile(gltfPath, encoded, 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return gltfPath
}

// WriteCorruptScene writes a fully corrupt one-sampler scene pair under dir
// and returns the document path.
func WriteCorruptScene(t *testing.T, dir, name string, keyframes int) string {
	t.Helper()
	scene := CorruptTimingScene(keyframes)
	return WriteScene(t, dir, name, scene.Doc, scene.Bin)
}
