package vision

import "image"

// Observation is the per-frame signal handed to the proctoring state machine.
// It is a pure function of the frame: the detector keeps no state between calls.
type Observation struct {
	// OK is false for undecodable input; such frames carry no signal and must
	// not mutate any counter upstream.
	OK bool

	FaceCount int

	// EyesVisible and FaceCenterX are only meaningful when FaceCount == 1.
	EyesVisible bool
	FaceCenterX float64 // horizontal face center, normalized to [0,1]
	Face        image.Rectangle
}

type Detector interface {
	Analyze(frame []byte) Observation
}
