package settings

import (
	"time"
)

const (
	DEFAULT_SEGMENT_SIZE = 2 * 1024 * 1024
	DEFAULT_QUEUE        = "scurveOut"
	LOOP_DELAY           = 50 * time.Millisecond
	MAX_SAMPLE_RATE      = 1000 // Hz
	SETTINGS_RETRIES     = 3
)
