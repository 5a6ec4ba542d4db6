package analyzer

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// MetricsEstimator supplies search volume and ranking difficulty for a term.
// A real keyword-data provider can be plugged in behind this interface.
type MetricsEstimator interface {
	Estimate(term string) (volume string, difficulty Difficulty)
}

// SyntheticMetrics derives placeholder metrics from a hash of the term. The
// values carry no real search data but are stable across calls.
type SyntheticMetrics struct{}

func (SyntheticMetrics) Estimate(term string) (string, Difficulty) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(term))))
	sum := h.Sum32()

	// Longer phrases are niche: lower volume, easier to rank for.
	words := len(strings.Fields(term))
	volume := 100 + int(sum%9900)
	if words > 1 {
		volume /= words
	}

	var difficulty Difficulty
	switch bucket := (sum >> 8) % 3; {
	case words >= 3 || bucket == 0:
		difficulty = DifficultyLow
	case bucket == 1:
		difficulty = DifficultyMedium
	default:
		difficulty = DifficultyHigh
	}
	return formatVolume(volume), difficulty
}

func formatVolume(v int) string {
	if v >= 1000 {
		return fmt.Sprintf("%.1fK", float64(v)/1000)
	}
	return fmt.Sprintf("%d", v)
}
