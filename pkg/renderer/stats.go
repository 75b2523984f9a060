package renderer

import "time"

// PassStats contains statistics about one render pass
type PassStats struct {
	Pass      int           // Pass number, starting at 1
	Samples   int           // Samples per pixel accumulated so far
	Pixels    int           // Pixels computed during the pass
	Duration  time.Duration // Wall time of the pass
	PerWorker []int         // Pixels computed by each worker
}

// PixelsPerSecond returns the pass throughput
func (s PassStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Pixels) / s.Duration.Seconds()
}

// Busiest returns the largest per-worker pixel count
func (s PassStats) Busiest() int {
	busiest := 0
	for _, n := range s.PerWorker {
		busiest = max(busiest, n)
	}
	return busiest
}
