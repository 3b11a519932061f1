package gltf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gltfix/internal/fileutil"
)

// Scene pairs a parsed document with its binary payload. The payload is one
// mutable, randomly-addressable byte slice; the repair engine patches it in
// place.
type Scene struct {
	Doc     *Document
	Bin     []byte
	Path    string
	BinPath string
}

// Load parses the document at path and reads the companion binary payload
// referenced by its buffer URI. Structural problems are reported as
// *FormatError; missing files surface as wrapped I/O errors.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	doc := new(Document)
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &FormatError{Path: path, Reason: "parse document", Err: err}
	}
	if doc.Accessors == nil {
		return nil, &FormatError{Path: path, Reason: "missing accessors section"}
	}
	if doc.BufferViews == nil {
		return nil, &FormatError{Path: path, Reason: "missing bufferViews section"}
	}
	if len(doc.Buffers) == 0 {
		return nil, &FormatError{Path: path, Reason: "no buffers declared"}
	}
	if len(doc.Buffers) > 1 {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("%d buffers declared; only the single external buffer variant is supported", len(doc.Buffers))}
	}

	uri := doc.Buffers[0].URI
	if uri == "" {
		return nil, &FormatError{Path: path, Reason: "buffer has no uri (embedded GLB payloads are not supported)"}
	}
	if strings.HasPrefix(uri, "data:") {
		return nil, &FormatError{Path: path, Reason: "buffer uses a data: uri; only external binary payloads are supported"}
	}

	binPath := filepath.Join(filepath.Dir(path), filepath.FromSlash(uri))
	bin, err := os.ReadFile(binPath)
	if err != nil {
		return nil, fmt.Errorf("read buffer %s: %w", binPath, err)
	}

	return &Scene{Doc: doc, Bin: bin, Path: path, BinPath: binPath}, nil
}

// Write serializes the document to gltfPath and the payload to binPath. The
// buffer URI is rewritten to the bin filename so the output pair is
// self-contained. Input files are never touched.
func (s *Scene) Write(gltfPath, binPath string) error {
	s.Doc.Buffers[0].URI = filepath.Base(binPath)
	s.Doc.Buffers[0].ByteLength = len(s.Bin)

	encoded, err := json.MarshalIndent(s.Doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	encoded = append(encoded, '\n')

	if err := fileutil.WriteFileAtomic(binPath, s.Bin, 0o644); err != nil {
		return fmt.Errorf("write buffer %s: %w", binPath, err)
	}
	if err := fileutil.WriteFileAtomic(gltfPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write scene %s: %w", gltfPath, err)
	}
	return nil
}

// DeriveOutputs computes the default output pair for an input document path
// by appending suffix to the stem: model.gltf -> model_fixed.gltf +
// model_fixed.bin.
func DeriveOutputs(inputPath, suffix string) (gltfPath, binPath string) {
	dir := filepath.Dir(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	gltfPath = filepath.Join(dir, stem+suffix+".gltf")
	binPath = filepath.Join(dir, stem+suffix+".bin")
	return gltfPath, binPath
}
