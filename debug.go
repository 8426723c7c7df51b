package sapling

import "time"

// debugStats holds one frame of BatchRenderer timings. Only populated when
// debug mode is on.
type debugStats struct {
	uploadTime time.Duration
	drawTime   time.Duration
	sprites    int
	floats     int
	uploaded   bool
}

func (s debugStats) log() {
	Logger().Debug("sapling: frame",
		"upload", s.uploadTime,
		"draw", s.drawTime,
		"total", s.uploadTime+s.drawTime,
		"sprites", s.sprites,
		"floats", s.floats,
		"uploaded", s.uploaded,
	)
}
