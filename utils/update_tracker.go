package utils

import (
	"time"

	m "pfeifer.dev/scurve/math"
)

// UpdateTracker keeps a moving average of the period between updates.
type UpdateTracker struct {
	LastTime time.Time
	Time     time.Time
	DiffMA   m.MovingAverage
}

func (u *UpdateTracker) Init(maLength int) {
	u.LastTime = time.Now()
	u.Time = u.LastTime
	u.DiffMA.Init(maLength)
}

func (u *UpdateTracker) Update() {
	u.UpdateAt(time.Now())
}

func (u *UpdateTracker) UpdateAt(now time.Time) {
	u.LastTime = u.Time
	u.Time = now
	u.DiffMA.Update(u.Time.Sub(u.LastTime).Seconds())
}

// Rate is the average update frequency in Hz, or zero before any period has
// been measured.
func (u *UpdateTracker) Rate() float64 {
	if u.DiffMA.Estimate <= 0 {
		return 0
	}
	return 1 / u.DiffMA.Estimate
}
