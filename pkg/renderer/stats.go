package renderer

import "time"

// RenderStats reports aggregate counters for a completed render, the same
// shape the teacher's RenderStats tracks (pkg/renderer/stats.go), trimmed
// to the fields a non-adaptive, fixed-spp spectral render still produces.
type RenderStats struct {
	TotalPixels  int
	TotalSamples int
	Duration     time.Duration
}

// AverageSamples returns the mean number of samples per pixel.
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
