package repair

// SamplerFix records one input accessor whose bounds were corrected.
// Synthesized distinguishes full timestamp regeneration (buffer patched)
// from a bounds-only recomputation over intact data.
type SamplerFix struct {
	Animation     int     `json:"animation"`
	AnimationName string  `json:"animation_name,omitempty"`
	Sampler       int     `json:"sampler"`
	Accessor      int     `json:"accessor"`
	Keyframes     int     `json:"keyframes"`
	Synthesized   bool    `json:"synthesized"`
	OldMin        float64 `json:"old_min"`
	OldMax        float64 `json:"old_max"`
	NewMin        float64 `json:"new_min"`
	NewMax        float64 `json:"new_max"`
}

// SamplerFailure records one sampler the engine could not repair, with
// enough detail to diagnose without re-running.
type SamplerFailure struct {
	Animation     int    `json:"animation"`
	AnimationName string `json:"animation_name,omitempty"`
	Sampler       int    `json:"sampler"`
	Accessor      int    `json:"accessor"`
	Reason        string `json:"reason"`
}

// Anomaly is an advisory finding: a non-timestamp float accessor whose
// declared bounds carry the corruption signature. No synthetic replacement
// exists for spatial data, so anomalies are reported but never patched.
type Anomaly struct {
	Accessor      int       `json:"accessor"`
	Name          string    `json:"name,omitempty"`
	ElementType   string    `json:"element_type"`
	ComponentType int       `json:"component_type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

// Report is the machine-inspectable outcome of one engine run. It is the
// contract surface for every caller; rendering it is the CLI's job.
type Report struct {
	Scanned      int              `json:"samplers_scanned"`
	Repaired     []SamplerFix     `json:"repaired,omitempty"`
	Rebound      []SamplerFix     `json:"rebound,omitempty"`
	Failures     []SamplerFailure `json:"failures,omitempty"`
	Anomalies    []Anomaly        `json:"anomalies,omitempty"`
	BytesPatched int              `json:"bytes_patched"`
}

// Clean reports whether the run found nothing to fix and nothing to flag.
func (r *Report) Clean() bool {
	return len(r.Repaired) == 0 && len(r.Rebound) == 0 &&
		len(r.Failures) == 0 && len(r.Anomalies) == 0
}

// Changed reports whether the run modified the document or the payload.
func (r *Report) Changed() bool {
	return len(r.Repaired) > 0 || len(r.Rebound) > 0
}
