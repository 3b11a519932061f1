package history

import "time"

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one journaled repair invocation over a single scene file.
type Run struct {
	ID           int64
	RunID        string
	SourcePath   string
	OutputPath   string
	Scanned      int
	Repaired     int
	Rebound      int
	Failed       int
	Anomalies    int
	BytesPatched int
	Status       string
	Error        string
	CreatedAt    time.Time
}
