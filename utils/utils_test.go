package utils

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestUpdateTracker(t *testing.T) {
	var u UpdateTracker
	u.Init(4)
	assert.Equal(t, 0.0, u.Rate())

	start := u.Time
	for i := 1; i <= 4; i++ {
		u.UpdateAt(start.Add(time.Duration(i) * 100 * time.Millisecond))
	}
	assert.InDelta(t, 0.1, u.DiffMA.Estimate, 1e-9)
	assert.InDelta(t, 10, u.Rate(), 1e-6)
	assert.Equal(t, start.Add(300*time.Millisecond), u.LastTime)
}

func TestCheck(t *testing.T) {
	assert.NotPanics(t, func() { Check(nil) })
	assert.Panics(t, func() { Check(errors.New("boom")) })
}

func TestLogHelpersIgnoreNil(t *testing.T) {
	assert.NotPanics(t, func() {
		Loge(nil)
		Logwe(nil)
		Logie(nil)
		Logde(nil)
		Logde(errors.New("quiet"))
	})
}
