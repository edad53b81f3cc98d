package performance

import (
	"runtime"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Host describes the machine a performance run was measured on.
type Host struct {
	Architecture string   `json:"architecture"`
	CPUs         int      `json:"cpus"`
	SIMD         []string `json:"simd"`
	GoVersion    string   `json:"go_version"`
}

// DetectHost reports the architecture and SIMD extensions of the current
// machine.
func DetectHost() Host {
	return hostFromFeatures(cpu.DetectFeatures())
}

func hostFromFeatures(f cpu.Features) Host {
	h := Host{
		Architecture: f.Architecture,
		CPUs:         runtime.NumCPU(),
		GoVersion:    runtime.Version(),
		SIMD:         []string{},
	}
	if h.Architecture == "" {
		h.Architecture = runtime.GOARCH
	}
	if f.ForceGeneric {
		return h
	}

	for _, ext := range []struct {
		ok    bool
		level cpu.SIMDLevel
	}{
		{f.HasSSE2, cpu.SIMDSSE2},
		{f.HasAVX, cpu.SIMDAVX},
		{f.HasAVX2, cpu.SIMDAVX2},
		{f.HasAVX512, cpu.SIMDAVX512},
		{f.HasNEON, cpu.SIMDNEON},
	} {
		if ext.ok {
			h.SIMD = append(h.SIMD, ext.level.String())
		}
	}
	return h
}
