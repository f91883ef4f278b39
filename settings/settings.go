package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pfeifer.dev/scurve/params"
	"pfeifer.dev/scurve/profile"
	"pfeifer.dev/scurve/utils"
)

var (
	Settings = PlannerSettings{}
)

type PlannerSettings struct {
	MaxVelocity     float64 `json:"max_velocity"`
	MaxAcceleration float64 `json:"max_acceleration"`
	MaxJerk         float64 `json:"max_jerk"`
	StartPosition   float64 `json:"start_position"`
	EndPosition     float64 `json:"end_position"`
	StartVelocity   float64 `json:"start_velocity"`
	EndVelocity     float64 `json:"end_velocity"`
	Epsilon         float64 `json:"epsilon"`
	SampleRate      float64 `json:"sample_rate"`
	LogLevel        string  `json:"log_level"`
	Queue           string  `json:"queue"`
	PlotWidth       float64 `json:"plot_width"`  // cm
	PlotHeight      float64 `json:"plot_height"` // cm
}

func (s *PlannerSettings) Default() {
	s.MaxVelocity = 2
	s.MaxAcceleration = 1
	s.MaxJerk = 1
	s.StartPosition = 0
	s.EndPosition = 10
	s.StartVelocity = 0
	s.EndVelocity = 0
	s.Epsilon = profile.DefaultEpsilon
	s.SampleRate = 20
	s.LogLevel = "error"
	s.Queue = DEFAULT_QUEUE
	s.PlotWidth = 16
	s.PlotHeight = 20
}

// Recommended limits suit a small linear axis: short, stiff moves sampled at a
// typical servo rate.
func (s *PlannerSettings) Recommended() {
	s.MaxVelocity = 0.5
	s.MaxAcceleration = 2
	s.MaxJerk = 20
	s.StartPosition = 0
	s.EndPosition = 0.3
	s.StartVelocity = 0
	s.EndVelocity = 0
	s.Epsilon = profile.DefaultEpsilon
	s.SampleRate = 100
	s.LogLevel = "warn"
	s.Queue = DEFAULT_QUEUE
	s.PlotWidth = 16
	s.PlotHeight = 20
}

func (s *PlannerSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.PLANNER_SETTINGS)
	if err != nil {
		utils.Logde(err)
		return false
	}

	err = s.Unmarshal(data)
	if err != nil {
		utils.Loge(err)
		return false
	}

	return true
}

func (s *PlannerSettings) LoadWithRetries(tries int) {
	for i := range tries {
		if s.Load() {
			return
		}
		if i < tries-1 {
			time.Sleep(LOOP_DELAY)
		}
	}
	s.Save()
}

func (s *PlannerSettings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		utils.Loge(err)
		return
	}
	err = params.PutParam(params.PLANNER_SETTINGS, data)
	if err != nil {
		utils.Loge(err)
		return
	}
}

func (s *PlannerSettings) Unmarshal(data []byte) error {
	err := json.Unmarshal(data, s)
	if err != nil {
		return errors.Wrap(err, "could not parse planner settings")
	}
	s.SetLogLevel()
	return nil
}

func (s *PlannerSettings) SetLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}

func (s PlannerSettings) Limits() profile.Limits {
	return profile.Limits{
		MaxVelocity:     s.MaxVelocity,
		MaxAcceleration: s.MaxAcceleration,
		MaxJerk:         s.MaxJerk,
	}
}

func (s PlannerSettings) Request() profile.Request {
	return profile.Request{
		StartPosition: s.StartPosition,
		EndPosition:   s.EndPosition,
		StartVelocity: s.StartVelocity,
		EndVelocity:   s.EndVelocity,
	}
}

func (s PlannerSettings) Planner() profile.Planner {
	return profile.Planner{Epsilon: s.Epsilon}
}

func (s PlannerSettings) Plan() (profile.Profile, error) {
	return s.Planner().Plan(s.Request(), s.Limits())
}

// Set updates the setting with the given json key from its text form.
func (s *PlannerSettings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if key == "log_level" {
		s.LogLevel = value
		s.SetLogLevel()
		return nil
	}
	if key == "queue" {
		if value == "" {
			return errors.New("queue name must not be empty")
		}
		s.Queue = value
		return nil
	}

	field := s.floatField(key)
	if field == nil {
		return errors.Errorf("unknown setting %q", key)
	}
	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid value for %s", key)
	}
	if key == "sample_rate" && !(val > 0 && val <= MAX_SAMPLE_RATE) {
		return errors.Errorf("sample rate must be in (0, %d], got %g", MAX_SAMPLE_RATE, val)
	}
	*field = val
	return nil
}

// Get returns the text form of the setting with the given json key.
func (s *PlannerSettings) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return s.LogLevel, nil
	case "queue":
		return s.Queue, nil
	}
	field := s.floatField(key)
	if field == nil {
		return "", errors.Errorf("unknown setting %q", key)
	}
	return fmt.Sprint(*field), nil
}

func (s *PlannerSettings) floatField(key string) *float64 {
	switch key {
	case "max_velocity":
		return &s.MaxVelocity
	case "max_acceleration":
		return &s.MaxAcceleration
	case "max_jerk":
		return &s.MaxJerk
	case "start_position":
		return &s.StartPosition
	case "end_position":
		return &s.EndPosition
	case "start_velocity":
		return &s.StartVelocity
	case "end_velocity":
		return &s.EndVelocity
	case "epsilon":
		return &s.Epsilon
	case "sample_rate":
		return &s.SampleRate
	case "plot_width":
		return &s.PlotWidth
	case "plot_height":
		return &s.PlotHeight
	}
	return nil
}
