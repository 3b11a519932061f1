package repair

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"gltfix/internal/gltf"
	"gltfix/internal/logging"
)

// DefaultFrameRate is the assumed keyframe rate when regenerating
// timestamps. The original per-frame timing is unrecoverable from the
// corrupted data, so uniform spacing at a configured rate is the only
// reconstruction available. This is a heuristic, not a recovered fact.
const DefaultFrameRate = 30.0

// timestampSize is the byte width of one keyframe timestamp (float32).
const timestampSize = 4

// Options configures an Engine.
type Options struct {
	// FrameRate in keyframes per second; synthesized timestamps step by
	// 1/FrameRate. Zero selects DefaultFrameRate.
	FrameRate float64
	// Threshold is the sentinel magnitude cutoff. Zero selects
	// DefaultThreshold.
	Threshold float64
}

func (o Options) withDefaults() Options {
	if o.FrameRate <= 0 {
		o.FrameRate = DefaultFrameRate
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	return o
}

// FramePeriod returns the synthesized step between keyframes, in seconds.
func (o Options) FramePeriod() float64 {
	return 1 / o.withDefaults().FrameRate
}

// Engine validates and repairs animation timing accessors in a loaded
// scene. It mutates only timestamp accessor bounds and the byte ranges
// those accessors describe.
type Engine struct {
	opts Options
	log  *slog.Logger
}

// New constructs an Engine. A nil logger disables logging.
func New(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{opts: opts.withDefaults(), log: logger}
}

// Run processes every sampler of every animation in document order and
// returns the aggregated report. Running it again on the repaired scene
// detects no corruption and performs zero writes.
func (e *Engine) Run(scene *gltf.Scene) *Report {
	report := &Report{}
	inputs := make(map[int]bool)

	for animIdx := range scene.Doc.Animations {
		anim := &scene.Doc.Animations[animIdx]
		for samplerIdx := range anim.Samplers {
			sampler := &anim.Samplers[samplerIdx]
			report.Scanned++
			if sampler.Input == nil {
				report.Failures = append(report.Failures, SamplerFailure{
					Animation:     animIdx,
					AnimationName: anim.Name,
					Sampler:       samplerIdx,
					Accessor:      -1,
					Reason:        "sampler declares no input accessor",
				})
				continue
			}
			inputs[*sampler.Input] = true
			e.repairSampler(scene, animIdx, anim.Name, samplerIdx, *sampler.Input, report)
		}
	}

	e.scanSpatialAccessors(scene.Doc, inputs, report)
	return report
}

// repairSampler validates one timestamp accessor and fixes it if needed.
func (e *Engine) repairSampler(scene *gltf.Scene, animIdx int, animName string, samplerIdx, accIdx int, report *Report) {
	fail := func(err error) {
		report.Failures = append(report.Failures, SamplerFailure{
			Animation:     animIdx,
			AnimationName: animName,
			Sampler:       samplerIdx,
			Accessor:      accIdx,
			Reason:        err.Error(),
		})
		e.log.Warn("sampler failed",
			slog.Int(logging.FieldAnimation, animIdx),
			slog.Int(logging.FieldSampler, samplerIdx),
			logging.Error(err))
	}

	if accIdx < 0 || accIdx >= len(scene.Doc.Accessors) {
		fail(&BufferBoundsError{Accessor: accIdx, Reason: fmt.Sprintf("accessor index out of range (have %d accessors)", len(scene.Doc.Accessors))})
		return
	}
	acc := &scene.Doc.Accessors[accIdx]

	oldMin := declaredBound(acc.Min)
	oldMax := declaredBound(acc.Max)
	if !Corrupted(oldMin, oldMax, e.opts.Threshold) {
		return
	}

	if acc.ComponentType != gltf.ComponentFloat || acc.Type != gltf.TypeScalar {
		fail(&ComponentTypeError{Accessor: accIdx, ComponentType: acc.ComponentType, ElementType: acc.Type})
		return
	}
	if acc.Count <= 0 {
		fail(&BufferBoundsError{Accessor: accIdx, Reason: "accessor declares no keyframes"})
		return
	}

	base, stride, err := resolveLayout(scene.Doc, accIdx, len(scene.Bin))
	if err != nil {
		fail(err)
		return
	}

	// Decode the existing sequence first: sometimes only the declared
	// bounds are bad and the timestamps themselves survived conversion.
	times := make([]float64, acc.Count)
	dataCorrupt := false
	for i := range times {
		offset := base + i*stride
		v := float64(math.Float32frombits(binary.LittleEndian.Uint32(scene.Bin[offset:])))
		times[i] = v
		if SentinelValue(v, e.opts.Threshold) {
			dataCorrupt = true
		}
	}

	fix := SamplerFix{
		Animation:     animIdx,
		AnimationName: animName,
		Sampler:       samplerIdx,
		Accessor:      accIdx,
		Keyframes:     acc.Count,
		OldMin:        oldMin,
		OldMax:        oldMax,
	}

	if dataCorrupt {
		period := e.opts.FramePeriod()
		for i := range times {
			t := float32(float64(i) * period)
			offset := base + i*stride
			binary.LittleEndian.PutUint32(scene.Bin[offset:], math.Float32bits(t))
			times[i] = float64(t)
		}
		report.BytesPatched += acc.Count * timestampSize

		acc.Min = []float64{times[0]}
		acc.Max = []float64{times[len(times)-1]}
		fix.Synthesized = true
		fix.NewMin = times[0]
		fix.NewMax = times[len(times)-1]
		report.Repaired = append(report.Repaired, fix)

		e.log.Info("regenerated keyframe timestamps",
			slog.Int(logging.FieldAnimation, animIdx),
			slog.String("animation_name", animName),
			slog.Int(logging.FieldSampler, samplerIdx),
			slog.Int(logging.FieldAccessor, accIdx),
			slog.Int("keyframes", acc.Count),
			slog.Float64("frame_rate", e.opts.FrameRate))
		return
	}

	// Timestamps are intact; only the declared bounds were stomped.
	lo, hi := times[0], times[0]
	for _, t := range times[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	acc.Min = []float64{lo}
	acc.Max = []float64{hi}
	fix.NewMin = lo
	fix.NewMax = hi
	report.Rebound = append(report.Rebound, fix)

	e.log.Info("recomputed timestamp bounds from intact data",
		slog.Int(logging.FieldAnimation, animIdx),
		slog.Int(logging.FieldSampler, samplerIdx),
		slog.Int(logging.FieldAccessor, accIdx),
		slog.Float64("min", lo),
		slog.Float64("max", hi))
}

// resolveLayout returns the absolute byte offset of element 0 and the
// element stride for accIdx, after validating every cross-reference against
// the loaded scene.
func resolveLayout(doc *gltf.Document, accIdx, binLen int) (base, stride int, err error) {
	acc := &doc.Accessors[accIdx]
	if acc.BufferView == nil {
		return 0, 0, &BufferBoundsError{Accessor: accIdx, Reason: "accessor references no bufferView"}
	}
	viewIdx := *acc.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) {
		return 0, 0, &BufferBoundsError{Accessor: accIdx, Reason: fmt.Sprintf("bufferView %d out of range (have %d)", viewIdx, len(doc.BufferViews))}
	}
	view := &doc.BufferViews[viewIdx]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return 0, 0, &BufferBoundsError{Accessor: accIdx, Reason: fmt.Sprintf("buffer %d out of range (have %d)", view.Buffer, len(doc.Buffers))}
	}

	stride = timestampSize
	if view.ByteStride > 0 {
		stride = view.ByteStride
	}
	base = view.ByteOffset + acc.ByteOffset
	end := base + (acc.Count-1)*stride + timestampSize
	if base < 0 || end > binLen {
		return 0, 0, &BufferBoundsError{Accessor: accIdx, Reason: fmt.Sprintf("byte range [%d, %d) exceeds buffer length %d", base, end, binLen)}
	}
	return base, stride, nil
}

// scanSpatialAccessors flags non-timestamp float accessors whose declared
// bounds carry the corruption signature. Advisory only: spatial data has no
// synthetic replacement.
func (e *Engine) scanSpatialAccessors(doc *gltf.Document, inputs map[int]bool, report *Report) {
	for i := range doc.Accessors {
		if inputs[i] {
			continue
		}
		acc := &doc.Accessors[i]
		if acc.ComponentType != gltf.ComponentFloat {
			continue
		}
		if len(acc.Min) == 0 || len(acc.Max) == 0 {
			continue
		}
		if !spatialBoundsCorrupt(acc.Min, acc.Max, e.opts.Threshold) {
			continue
		}
		report.Anomalies = append(report.Anomalies, Anomaly{
			Accessor:      i,
			Name:          acc.Name,
			ElementType:   acc.Type,
			ComponentType: acc.ComponentType,
			Min:           acc.Min,
			Max:           acc.Max,
		})
		e.log.Warn("non-timestamp accessor has sentinel bounds",
			slog.Int(logging.FieldAccessor, i),
			slog.String("element_type", acc.Type))
	}
}

func spatialBoundsCorrupt(min, max []float64, threshold float64) bool {
	for _, v := range min {
		if SentinelValue(v, threshold) {
			return true
		}
	}
	for _, v := range max {
		if SentinelValue(v, threshold) {
			return true
		}
	}
	for i := range min {
		if i < len(max) && min[i] > max[i] {
			return true
		}
	}
	return false
}

// declaredBound mirrors the upstream file shape: an absent bound reads as
// zero, which is not by itself the corruption signature.
func declaredBound(bounds []float64) float64 {
	if len(bounds) == 0 {
		return 0
	}
	return bounds[0]
}
