package accuracy

import (
	"encoding/json"

	"github.com/cwbudde/algo-approxbench/eval"
)

// A variant that returns NaN or ±Inf must still produce a readable report,
// so every float field is encoded through eval.Float.

// MarshalJSON implements json.Marshaler.
func (s Stats) MarshalJSON() ([]byte, error) {
	type statsJSON struct {
		AvgAbsError      eval.Float `json:"avg_abs_error"`
		MaxAbsError      eval.Float `json:"max_abs_error"`
		MaxAbsErrorInput eval.Float `json:"max_abs_error_input"`
		MaxRelError      eval.Float `json:"max_rel_error"`
		MaxRelErrorInput eval.Float `json:"max_rel_error_input"`
		RMSError         eval.Float `json:"rms_error"`
	}

	return json.Marshal(&statsJSON{
		AvgAbsError:      eval.Float(s.AvgAbsError),
		MaxAbsError:      eval.Float(s.MaxAbsError),
		MaxAbsErrorInput: eval.Float(s.MaxAbsErrorInput),
		MaxRelError:      eval.Float(s.MaxRelError),
		MaxRelErrorInput: eval.Float(s.MaxRelErrorInput),
		RMSError:         eval.Float(s.RMSError),
	})
}

// MarshalJSON implements json.Marshaler.
func (s Sample) MarshalJSON() ([]byte, error) {
	type sampleJSON struct {
		X         eval.Float `json:"x"`
		Reference eval.Float `json:"reference"`
		Approx    eval.Float `json:"approx"`
	}

	return json.Marshal(&sampleJSON{
		X:         eval.Float(s.X),
		Reference: eval.Float(s.Reference),
		Approx:    eval.Float(s.Approx),
	})
}

// MarshalJSON implements json.Marshaler. Power is not encoded.
func (s Spectrum) MarshalJSON() ([]byte, error) {
	type spectrumJSON struct {
		Size           int        `json:"size"`
		DominantBin    int        `json:"dominant_bin"`
		DominantPeriod eval.Float `json:"dominant_period"`
		DominantShare  eval.Float `json:"dominant_share"`
	}

	return json.Marshal(&spectrumJSON{
		Size:           s.Size,
		DominantBin:    s.DominantBin,
		DominantPeriod: eval.Float(s.DominantPeriod),
		DominantShare:  eval.Float(s.DominantShare),
	})
}
