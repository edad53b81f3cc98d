package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/family"
	"github.com/cwbudde/algo-approxbench/internal/config"
	"github.com/cwbudde/algo-approxbench/internal/runner"
)

// selection holds the flags shared by commands that evaluate one family.
type selection struct {
	family    string
	reference string
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.family, "family", config.DefaultFamily, "Family to evaluate (name or short alias, see 'approxbench list')")
	cmd.Flags().StringVar(&s.reference, "reference", "", "Reference implementation (default: the family's first reference)")
}

// resolve looks up the family, its reference and the named variants. With
// no variant names every variant of the family is selected.
func (s *selection) resolve(c *family.Catalog, variants []string) (*family.Family, family.Impl, []family.Impl, error) {
	f, ok := c.Lookup(s.family)
	if !ok {
		return nil, family.Impl{}, nil, fmt.Errorf("unknown family %q (see 'approxbench list')", s.family)
	}
	ref, err := f.LookupReference(s.reference)
	if err != nil {
		return nil, family.Impl{}, nil, err
	}
	impls, err := f.Select(variants...)
	if err != nil {
		return nil, family.Impl{}, nil, err
	}
	return f, ref, impls, nil
}

func validateFormat(format string) error {
	if format != config.FormatTable && format != config.FormatJSON {
		return fmt.Errorf("invalid format %q: must be '%s' or '%s'", format, config.FormatTable, config.FormatJSON)
	}
	return nil
}

// checkGate returns a *GateError naming every variant whose maximum absolute
// error exceeds threshold or is NaN. A threshold of zero or less disables
// the gate.
func checkGate(threshold float64, results []runner.Result) error {
	if threshold <= 0 {
		return nil
	}
	var failed []string
	for _, res := range results {
		if res.Accuracy == nil {
			continue
		}
		for _, v := range res.Accuracy.Variants {
			if e := v.Stats.MaxAbsError; e > threshold || math.IsNaN(e) {
				failed = append(failed, res.Family+"/"+v.Name)
			}
		}
	}
	if len(failed) > 0 {
		return &GateError{Threshold: threshold, Variants: failed}
	}
	return nil
}
