package domain

import "time"

// SourceType identifies which tier a resolution outcome came from.
type SourceType string

const (
	SourceDataset SourceType = "dataset" // primary on-disk dataset loaded
	SourceCache   SourceType = "cache"   // derived cache artifact (external tiers only)
	SourceMock    SourceType = "mock"    // synthetic generator (external tiers only)
	SourceError   SourceType = "error"   // no usable data
)

// ConfidencePrimary is the fixed confidence assigned when a primary dataset
// loads successfully. Failures always carry 0.0.
const ConfidencePrimary = 0.9

// SourceInfo describes where a resolved payload came from and how much it
// should be trusted. It is the sole trust channel: an empty dataset that
// loaded correctly and a load failure both have RecordCount 0 and differ
// only in Confidence/SourceType.
type SourceInfo struct {
	SourceType  SourceType `json:"source_type"`
	SourceName  string     `json:"source_name"`
	Timestamp   time.Time  `json:"timestamp"`
	RecordCount int        `json:"record_count"`
	Confidence  float64    `json:"confidence"`
}

// NewSourceInfo constructs a SourceInfo. No validation is applied; callers
// are expected to use the Dataset/Error helpers for the two cases this
// layer actually emits.
func NewSourceInfo(st SourceType, name string, ts time.Time, count int, confidence float64) SourceInfo {
	return SourceInfo{
		SourceType:  st,
		SourceName:  name,
		Timestamp:   ts,
		RecordCount: count,
		Confidence:  confidence,
	}
}

// DatasetSource marks a successful primary-dataset load.
func DatasetSource(name string, ts time.Time, count int) SourceInfo {
	return NewSourceInfo(SourceDataset, name, ts, count, ConfidencePrimary)
}

// ErrorSource marks a failed load: missing file, disabled capability, or
// malformed content all collapse into this shape.
func ErrorSource(name string, ts time.Time) SourceInfo {
	return NewSourceInfo(SourceError, name, ts, 0, 0.0)
}
