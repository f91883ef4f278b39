package profile

// PhaseKind names the position of a phase within the seven-phase S-curve.
type PhaseKind int

const (
	AccelUp PhaseKind = iota
	AccelConst
	AccelDown
	Cruise
	DecelUp
	DecelConst
	DecelDown
)

const PhaseCount = 7

var phaseNames = [PhaseCount]string{
	"accel-up",
	"accel-const",
	"accel-down",
	"cruise",
	"decel-up",
	"decel-const",
	"decel-down",
}

func (k PhaseKind) String() string {
	if k < 0 || int(k) >= PhaseCount {
		return "unknown"
	}
	return phaseNames[k]
}

func (k PhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Phase is an interval of constant jerk. Zero-duration phases are kept in
// place so every profile has the same shape.
type Phase struct {
	Kind     PhaseKind `json:"kind"`
	Jerk     float64   `json:"jerk"`
	Duration float64   `json:"duration"`
}

func newPhase(kind PhaseKind, jerk, duration float64) Phase {
	if duration <= 0 {
		return Phase{Kind: kind}
	}
	return Phase{Kind: kind, Jerk: jerk, Duration: duration}
}

// Shape classifies a planned profile.
type Shape int

const (
	// ShapeDegenerate profiles have no motion and zero duration.
	ShapeDegenerate Shape = iota
	// ShapeTriangular profiles never reach the velocity limit; cruise is zero.
	ShapeTriangular
	// ShapeTrapezoidal profiles cruise at the velocity limit.
	ShapeTrapezoidal
)

func (s Shape) String() string {
	switch s {
	case ShapeDegenerate:
		return "degenerate"
	case ShapeTriangular:
		return "triangular"
	case ShapeTrapezoidal:
		return "trapezoidal"
	}
	return "unknown"
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
