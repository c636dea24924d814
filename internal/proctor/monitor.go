package proctor

import "github.com/Perfect-Cube/Reflex/internal/vision"

// Consecutive qualifying frames required before a warning fires. Checks arrive
// at roughly one frame every two seconds, so no_face=4 is about eight seconds.
const (
	NoFaceThreshold   = 4
	NoEyesThreshold   = 3
	HeadEdgeThreshold = 4
)

// MaxWarnings is the cumulative, durable warning count at which an interview
// is terminated. It survives reconnects; the Monitor counters do not.
const MaxWarnings = 3

// TerminateMessage accompanies the terminal notification.
const TerminateMessage = "Interview terminated due to multiple warnings."

// edgeMargin bounds the central band: a face center in the outer 20% of frame
// width on either side counts as an irregular head position.
const edgeMargin = 0.20

// Warning messages sent to the candidate.
const (
	WarnMultipleFaces = "Multiple faces detected in the frame."
	WarnNoFace        = "Candidate not visible in the frame."
	WarnLookingAway   = "Candidate may be looking away from the screen."
	WarnHeadPosition  = "Sustained irregular head position detected."
)

// Monitor converts noisy per-frame observations into sparse warnings. The
// counters demand a sustained signal, so a single flaky frame never flags a
// candidate. One Monitor lives and dies with one connection.
type Monitor struct {
	noFace   int
	noEyes   int
	headEdge int
}

func NewMonitor() *Monitor { return &Monitor{} }

// Observe applies one frame observation and returns the warning to emit, or
// "" when the frame passes. At most one warning fires per frame.
func (m *Monitor) Observe(o vision.Observation) string {
	if !o.OK {
		// no signal; counters untouched
		return ""
	}

	// Hard rule: a second face warns immediately, no hysteresis, no counter
	// mutation.
	if o.FaceCount > 1 {
		return WarnMultipleFaces
	}

	if o.FaceCount == 0 {
		m.noFace++
		// the remaining checks are meaningless without a face
		m.noEyes = 0
		m.headEdge = 0

		if m.noFace >= NoFaceThreshold {
			m.noFace = 0
			return WarnNoFace
		}
		return ""
	}

	// Exactly one face.
	m.noFace = 0

	var warning string

	if !o.EyesVisible {
		m.noEyes++
		if m.noEyes >= NoEyesThreshold {
			warning = WarnLookingAway
			m.noEyes = 0
		}
	} else {
		m.noEyes = 0
	}

	if o.FaceCenterX < edgeMargin || o.FaceCenterX > 1-edgeMargin {
		m.headEdge++
		if m.headEdge >= HeadEdgeThreshold {
			warning = WarnHeadPosition
			m.headEdge = 0
		}
	} else {
		m.headEdge = 0
	}

	return warning
}
