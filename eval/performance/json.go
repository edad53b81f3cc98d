package performance

import (
	"encoding/json"
	"time"

	"github.com/cwbudde/algo-approxbench/eval"
)

// MarshalJSON implements json.Marshaler. A checksum of NaN or ±Inf, as
// produced by a log variant fed a zero input, is written as a string.
func (t Timing) MarshalJSON() ([]byte, error) {
	type timingJSON struct {
		Name     string        `json:"name"`
		Duration time.Duration `json:"duration_ns"`
		Checksum eval.Float    `json:"checksum"`
	}

	return json.Marshal(&timingJSON{
		Name:     t.Name,
		Duration: t.Duration,
		Checksum: eval.Float(t.Checksum),
	})
}

// MarshalJSON implements json.Marshaler. It shadows the method promoted
// from Timing so Speedup is kept.
func (r Result) MarshalJSON() ([]byte, error) {
	type resultJSON struct {
		Name     string        `json:"name"`
		Duration time.Duration `json:"duration_ns"`
		Checksum eval.Float    `json:"checksum"`
		Speedup  eval.Float    `json:"speedup"`
	}

	return json.Marshal(&resultJSON{
		Name:     r.Name,
		Duration: r.Duration,
		Checksum: eval.Float(r.Checksum),
		Speedup:  eval.Float(r.Speedup),
	})
}
