package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-approxbench/eval"
	"github.com/cwbudde/algo-approxbench/eval/accuracy"
	"github.com/cwbudde/algo-approxbench/family"
	"github.com/cwbudde/algo-approxbench/family/elementary"
	"github.com/cwbudde/algo-approxbench/family/sine"
	"github.com/cwbudde/algo-approxbench/internal/config"
	"github.com/cwbudde/algo-approxbench/internal/runner"
)

// executeCommand runs a fresh root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeCommandSplit(t, args...)
	return out, err
}

// executeCommandSplit is like executeCommand but also returns stderr.
func executeCommandSplit(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// document mirrors the JSON written by --format json.
type document struct {
	RunID   string `json:"run_id"`
	Results []struct {
		RunID    string `json:"run_id"`
		Family   string `json:"family"`
		Accuracy *struct {
			Reference string  `json:"reference"`
			Start     float64 `json:"start"`
			End       float64 `json:"end"`
			Points    int     `json:"points"`
			Variants  []struct {
				Name  string `json:"name"`
				Stats struct {
					MaxAbsError float64 `json:"max_abs_error"`
				} `json:"stats"`
				Worst *json.RawMessage `json:"worst"`
			} `json:"variants"`
		} `json:"accuracy"`
		Performance *struct {
			Iterations int   `json:"iterations"`
			PoolSize   int   `json:"pool_size"`
			Seed       int64 `json:"seed"`
			Variants   []struct {
				Name    string  `json:"name"`
				Speedup float64 `json:"speedup"`
			} `json:"variants"`
		} `json:"performance"`
	} `json:"results"`
}

func decodeDocument(t *testing.T, out string) document {
	t.Helper()
	var doc document
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "output: %s", out)
	return doc
}

func writeRunFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// ---------------------------------------------------------------------------
// list
// ---------------------------------------------------------------------------

func TestListCommand(t *testing.T) {
	out, err := executeCommand(t, "list")
	require.NoError(t, err)

	for _, name := range []string{
		sine.FamilyName,
		elementary.ExpFamilyName,
		elementary.LogFamilyName,
		elementary.SqrtFamilyName,
		sine.CORDICName,
		elementary.NewtonSqrtName,
	} {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, sine.FamilyName), strings.Index(out, elementary.ExpFamilyName))
}

func TestListCommand_RejectsArgs(t *testing.T) {
	_, err := executeCommand(t, "list", "extra")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// accuracy
// ---------------------------------------------------------------------------

func TestAccuracyCommand_Table(t *testing.T) {
	out, err := executeCommand(t, "accuracy", "--points", "1000")
	require.NoError(t, err)

	assert.Contains(t, out, "Function:    "+sine.FamilyName)
	assert.Contains(t, out, "Reference:   "+sine.ReferenceName)
	assert.Contains(t, out, "Test points: 1,000")
	assert.Contains(t, out, "Max abs error at x =")
	for _, name := range []string{sine.PiecewiseName, sine.CORDICName, sine.ChebyshevName} {
		assert.Contains(t, out, name)
	}
}

func TestAccuracyCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "accuracy", "--points", "500", "--worst=false", "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	assert.NotEmpty(t, doc.RunID)
	require.Len(t, doc.Results, 1)

	res := doc.Results[0]
	assert.Equal(t, doc.RunID, res.RunID)
	assert.Equal(t, sine.FamilyName, res.Family)
	assert.Nil(t, res.Performance)
	require.NotNil(t, res.Accuracy)
	assert.Equal(t, 500, res.Accuracy.Points)
	require.Len(t, res.Accuracy.Variants, 3)
	for _, v := range res.Accuracy.Variants {
		assert.Nil(t, v.Worst, v.Name)
	}
}

func TestAccuracyCommand_SelectsVariantsAndRange(t *testing.T) {
	out, err := executeCommand(t, "accuracy", sine.ChebyshevName,
		"--start", "-0.6", "--end", "0.6", "--points", "1000", "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	acc := doc.Results[0].Accuracy
	require.NotNil(t, acc)
	assert.Equal(t, -0.6, acc.Start)
	assert.Equal(t, 0.6, acc.End)
	require.Len(t, acc.Variants, 1)
	assert.Equal(t, sine.ChebyshevName, acc.Variants[0].Name)
	assert.Less(t, acc.Variants[0].Stats.MaxAbsError, 1e-9)
}

func TestAccuracyCommand_FamilyAlias(t *testing.T) {
	out, err := executeCommand(t, "accuracy", "--family", "SQRT", "--points", "100", "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	assert.Equal(t, elementary.SqrtFamilyName, doc.Results[0].Family)
	assert.Equal(t, elementary.SqrtReferenceName, doc.Results[0].Accuracy.Reference)
}

func TestAccuracyCommand_Gate(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		_, err := executeCommand(t, "accuracy", sine.ChebyshevName,
			"--start", "-0.6", "--end", "0.6", "--points", "1000", "--max-abs-error", "1e-9")
		require.NoError(t, err)
	})

	t.Run("fails", func(t *testing.T) {
		out, err := executeCommand(t, "accuracy", "--points", "1000", "--max-abs-error", "1e-5")
		require.Error(t, err)

		var gateErr *GateError
		require.True(t, errors.As(err, &gateErr))
		assert.Equal(t, ExitGateFailed, exitCode(err))
		assert.Equal(t, 1e-5, gateErr.Threshold)
		assert.Contains(t, gateErr.Variants, sine.FamilyName+"/"+sine.ChebyshevName)
		assert.NotContains(t, gateErr.Variants, sine.FamilyName+"/"+sine.PiecewiseName)

		// The report is written before the gate is checked.
		assert.Contains(t, out, "Test points: 1,000")
	})
}

func TestAccuracyCommand_GateFailsOnNaN(t *testing.T) {
	out, err := executeCommand(t, "accuracy", "--family", "sqrt",
		"--start=-10", "--end=10", "--points", "100", "-f", "json", "--max-abs-error", "1")
	require.Error(t, err)

	var gateErr *GateError
	require.True(t, errors.As(err, &gateErr))
	assert.Len(t, gateErr.Variants, 2)

	assert.True(t, json.Valid([]byte(out)), "output: %s", out)
	assert.Contains(t, out, `"NaN"`)
}

func TestCheckGate(t *testing.T) {
	result := func(errs ...float64) runner.Result {
		rep := &accuracy.Report{}
		for i, e := range errs {
			rep.Variants = append(rep.Variants, accuracy.VariantReport{
				Name:  fmt.Sprintf("v%d", i),
				Stats: accuracy.Stats{MaxAbsError: e},
			})
		}
		return runner.Result{Family: "f", Accuracy: rep}
	}

	tests := []struct {
		name      string
		threshold float64
		results   []runner.Result
		want      []string
	}{
		{"disabled", 0, []runner.Result{result(1, math.NaN())}, nil},
		{"all below", 1e-3, []runner.Result{result(1e-4, 0)}, nil},
		{"one above", 1e-3, []runner.Result{result(1e-4, 2e-3)}, []string{"f/v1"}},
		{"nan fails", 1e-3, []runner.Result{result(math.NaN(), 1e-4)}, []string{"f/v0"}},
		{"inf fails", 1e-3, []runner.Result{result(math.Inf(1))}, []string{"f/v0"}},
		{"performance only", 1e-3, []runner.Result{{Family: "f"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkGate(tt.threshold, tt.results)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var gateErr *GateError
			require.True(t, errors.As(err, &gateErr))
			assert.Equal(t, tt.want, gateErr.Variants)
		})
	}
}

func TestAccuracyCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"unknown family", []string{"accuracy", "--family", "tan"}, nil, `unknown family "tan"`},
		{"unknown variant", []string{"accuracy", "Taylor"}, family.ErrUnknownVariant, ""},
		{"unknown reference", []string{"accuracy", "--reference", "cos"}, family.ErrUnknownReference, ""},
		{"invalid format", []string{"accuracy", "-f", "xml"}, nil, `invalid format "xml"`},
		{"zero points", []string{"accuracy", "--points", "0"}, eval.ErrConfig, ""},
		{"non-finite range", []string{"accuracy", "--end", "+Inf"}, eval.ErrInvalidRange, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitError, exitCode(err))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// perf
// ---------------------------------------------------------------------------

func TestPerfCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "perf", "--iterations", "1000", "--pool", "16", "--seed", "42", "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	require.Len(t, doc.Results, 1)
	perf := doc.Results[0].Performance
	require.NotNil(t, perf)
	assert.Nil(t, doc.Results[0].Accuracy)
	assert.Equal(t, 1000, perf.Iterations)
	assert.Equal(t, 16, perf.PoolSize)
	assert.Equal(t, int64(42), perf.Seed)
	require.Len(t, perf.Variants, 3)
	for _, v := range perf.Variants {
		assert.Greater(t, v.Speedup, 0.0, v.Name)
	}
}

func TestPerfCommand_Table(t *testing.T) {
	out, err := executeCommand(t, "perf", sine.CORDICName, "--iterations", "2000", "--pool", "8", "--seed", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Iterations: 2,000")
	assert.Contains(t, out, "Input pool: 8 values from [0, 10), seed 3")
	assert.Contains(t, out, "1.00x")
	assert.Contains(t, out, sine.CORDICName)
	assert.NotContains(t, out, sine.ChebyshevName)
}

func TestPerfCommand_InvalidIterations(t *testing.T) {
	_, err := executeCommand(t, "perf", "--iterations", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, eval.ErrInvalidIterations)
}

func TestPerfCommand_InvalidPool(t *testing.T) {
	for _, pool := range []string{"0", "-1"} {
		t.Run(pool, func(t *testing.T) {
			_, err := executeCommand(t, "perf", "--iterations", "10", "--pool="+pool)
			require.Error(t, err)
			assert.ErrorIs(t, err, eval.ErrInvalidPoolSize)
			assert.Equal(t, ExitError, exitCode(err))
		})
	}
}

// ---------------------------------------------------------------------------
// trace
// ---------------------------------------------------------------------------

func TestTraceCommand_Values(t *testing.T) {
	out, err := executeCommand(t, "trace", "--points", "5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t,
		strings.Join([]string{"x", sine.ReferenceName, sine.PiecewiseName, sine.CORDICName, sine.ChebyshevName}, ","),
		lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "0,0,"), "middle row %q", lines[3])
}

func TestTraceCommand_Errors(t *testing.T) {
	out, err := executeCommand(t, "trace", sine.CORDICName, "--errors", "--points", "3", "--start", "0", "--end", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "x,error: "+sine.CORDICName, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,"))
	assert.True(t, strings.HasPrefix(lines[3], "1,"))
}

func TestTraceCommand_TooFewPoints(t *testing.T) {
	_, err := executeCommand(t, "trace", "--points", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, eval.ErrInvalidPointCount)
}

// ---------------------------------------------------------------------------
// run
// ---------------------------------------------------------------------------

func TestRunCommand_SingleFamily(t *testing.T) {
	path := writeRunFile(t, `
family: exp
range:
  start: -1
  end: 1
accuracy:
  points: 500
performance:
  iterations: 1000
  pool_size: 16
  seed: 7
output:
  format: json
`)

	out, err := executeCommand(t, "run", "--config", path)
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	require.Len(t, doc.Results, 1)
	res := doc.Results[0]
	assert.Equal(t, elementary.ExpFamilyName, res.Family)

	require.NotNil(t, res.Accuracy)
	assert.Equal(t, 500, res.Accuracy.Points)
	assert.Equal(t, -1.0, res.Accuracy.Start)
	assert.Equal(t, 1.0, res.Accuracy.End)
	assert.Len(t, res.Accuracy.Variants, 2)

	require.NotNil(t, res.Performance)
	assert.Equal(t, int64(7), res.Performance.Seed)
	assert.Equal(t, 16, res.Performance.PoolSize)
}

func TestRunCommand_AllFamiliesWithMetrics(t *testing.T) {
	path := writeRunFile(t, `
accuracy:
  points: 200
performance:
  iterations: 500
  pool_size: 8
  seed: 1
`)
	metricsPath := filepath.Join(t.TempDir(), "approxbench.prom")

	out, err := executeCommand(t, "--metrics-file", metricsPath, "run", "--config", path, "--all-families")
	require.NoError(t, err)

	for _, name := range []string{sine.FamilyName, elementary.ExpFamilyName, elementary.LogFamilyName, elementary.SqrtFamilyName} {
		assert.Contains(t, out, "Function:    "+name)
		assert.Contains(t, out, "Function:   "+name)
	}

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "approxbench_accuracy_max_abs_error")
	assert.Contains(t, string(data), "approxbench_performance_speedup_ratio")
	assert.Contains(t, string(data), `family="`+elementary.LogFamilyName+`"`)
}

func TestRunCommand_MetricsFileFromConfig(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "from-config.prom")
	path := writeRunFile(t, `
family: sqrt
accuracy:
  points: 100
performance:
  iterations: 100
  pool_size: 4
output:
  metrics_file: `+metricsPath+`
`)

	_, err := executeCommand(t, "run", "--config", path)
	require.NoError(t, err)

	_, err = os.Stat(metricsPath)
	assert.NoError(t, err)
}

func TestRunCommand_FormatFlagOverridesConfig(t *testing.T) {
	path := writeRunFile(t, `
family: log
accuracy:
  points: 100
performance:
  iterations: 100
  pool_size: 4
output:
  format: table
`)

	out, err := executeCommand(t, "run", "--config", path, "-f", "json")
	require.NoError(t, err)

	doc := decodeDocument(t, out)
	assert.Equal(t, elementary.LogFamilyName, doc.Results[0].Family)
}

func TestRunCommand_Errors(t *testing.T) {
	t.Run("missing config flag", func(t *testing.T) {
		_, err := executeCommand(t, "run")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := executeCommand(t, "run", "--config", writeRunFile(t, "familly: sin\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "familly")
	})

	t.Run("explicit zero pool", func(t *testing.T) {
		_, err := executeCommand(t, "run", "--config", writeRunFile(t, "performance:\n  pool_size: 0\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("invalid setting", func(t *testing.T) {
		_, err := executeCommand(t, "run", "--config", writeRunFile(t, "accuracy:\n  points: -3\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCommand(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestBuildJobs(t *testing.T) {
	catalog, err := defaultCatalog()
	require.NoError(t, err)

	t.Run("all families use their defaults", func(t *testing.T) {
		cfg := config.New()
		cfg.Family = "exp"
		start, end := 5.0, 6.0
		cfg.Range.Start, cfg.Range.End = &start, &end

		jobs, err := buildJobs(catalog, cfg, true)
		require.NoError(t, err)
		require.Len(t, jobs, len(catalog.Families()))

		for i, f := range catalog.Families() {
			wantStart, wantEnd := f.DefaultRange()
			assert.Equal(t, f.Name(), jobs[i].Family)
			assert.Equal(t, wantStart, jobs[i].Start)
			assert.Equal(t, wantEnd, jobs[i].End)
			assert.Len(t, jobs[i].Variants, len(f.Variants()))
		}
	})

	t.Run("single family honours selection", func(t *testing.T) {
		cfg := config.New()
		cfg.Variants = []string{sine.CORDICName}
		end := 1.0
		cfg.Range.End = &end

		jobs, err := buildJobs(catalog, cfg, false)
		require.NoError(t, err)
		require.Len(t, jobs, 1)

		job := jobs[0]
		assert.Equal(t, sine.FamilyName, job.Family)
		assert.Equal(t, sine.ReferenceName, job.Reference.Name)
		require.Len(t, job.Variants, 1)
		assert.Equal(t, sine.CORDICName, job.Variants[0].Name)
		assert.Equal(t, 1.0, job.End)
		assert.False(t, job.Seeded, "default seed draws a fresh pool")
		assert.Equal(t, config.DefaultPoints, job.Points)
		assert.True(t, job.WorstCases)
	})
}

// ---------------------------------------------------------------------------
// persistent flags
// ---------------------------------------------------------------------------

func TestTraceSpansGoToStderr(t *testing.T) {
	out, errOut, err := executeCommandSplit(t, "--trace-spans", "accuracy", "--points", "100", "-f", "json")
	require.NoError(t, err)

	assert.Contains(t, errOut, "approxbench.accuracy")
	assert.Contains(t, errOut, "approxbench.run")

	assert.NotContains(t, out, "approxbench.accuracy")
	decodeDocument(t, out)
}

func TestInvalidLogFormat(t *testing.T) {
	_, err := executeCommand(t, "--log-format", "xml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}
