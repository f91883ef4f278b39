package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"gonum.org/v1/plot/vg"

	"pfeifer.dev/scurve/cereal"
	"pfeifer.dev/scurve/params"
	"pfeifer.dev/scurve/profile"
	"pfeifer.dev/scurve/render"
	"pfeifer.dev/scurve/settings"
	"pfeifer.dev/scurve/stream"
	"pfeifer.dev/scurve/utils"
)

func planFlags() []cli.Flag {
	s := settings.Settings
	return []cli.Flag{
		&cli.Float64Flag{
			Category: "Request",
			Name:     "start",
			Usage:    "Start position",
			Value:    s.StartPosition,
		},
		&cli.Float64Flag{
			Category: "Request",
			Name:     "end",
			Usage:    "End position",
			Value:    s.EndPosition,
		},
		&cli.Float64Flag{
			Category: "Request",
			Name:     "start-velocity",
			Usage:    "Velocity at the start position",
			Value:    s.StartVelocity,
		},
		&cli.Float64Flag{
			Category: "Request",
			Name:     "end-velocity",
			Usage:    "Velocity at the end position",
			Value:    s.EndVelocity,
		},
		&cli.BoolFlag{
			Category: "Request",
			Name:     "last",
			Usage:    "Reuse the request of the last plan instead of the request flags",
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "max-velocity",
			Aliases:  []string{"v"},
			Usage:    "Velocity limit",
			Value:    s.MaxVelocity,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "max-acceleration",
			Aliases:  []string{"a"},
			Usage:    "Acceleration limit",
			Value:    s.MaxAcceleration,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "max-jerk",
			Aliases:  []string{"j"},
			Usage:    "Jerk limit",
			Value:    s.MaxJerk,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "epsilon",
			Usage:    "Tolerance under which values are treated as zero",
			Value:    s.Epsilon,
		},
	}
}

func requestFromFlags(cmd *cli.Command) (profile.Request, error) {
	if cmd.Bool("last") {
		return loadLastRequest()
	}
	return profile.Request{
		StartPosition: cmd.Float64("start"),
		EndPosition:   cmd.Float64("end"),
		StartVelocity: cmd.Float64("start-velocity"),
		EndVelocity:   cmd.Float64("end-velocity"),
	}, nil
}

func profileFromFlags(cmd *cli.Command) (profile.Profile, error) {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return profile.Profile{}, err
	}
	limits := profile.Limits{
		MaxVelocity:     cmd.Float64("max-velocity"),
		MaxAcceleration: cmd.Float64("max-acceleration"),
		MaxJerk:         cmd.Float64("max-jerk"),
	}
	p, err := profile.Planner{Epsilon: cmd.Float64("epsilon")}.Plan(req, limits)
	if err != nil {
		return p, err
	}
	utils.Logwe(saveLastRequest(req))
	return p, nil
}

func saveLastRequest(req profile.Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "could not encode last request")
	}
	return params.PutParam(params.LAST_REQUEST, data)
}

func loadLastRequest() (req profile.Request, err error) {
	data, err := params.GetParam(params.LAST_REQUEST)
	if err != nil {
		return req, errors.Wrap(err, "no previous plan to reuse")
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, errors.Wrap(err, "could not decode last request")
	}
	return req, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func phaseTable(p profile.Profile) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("phase", "jerk", "duration", "start", "position", "velocity")
	start := 0.0
	for _, ph := range p.Phases() {
		s := p.State(start)
		t.Row(
			ph.Kind.String(),
			formatFloat(ph.Jerk),
			formatFloat(ph.Duration),
			formatFloat(start),
			formatFloat(s.Position),
			formatFloat(s.Velocity),
		)
		start += ph.Duration
	}
	return t.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func writePlan(w io.Writer, p profile.Profile, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return errors.Wrap(err, "could not encode profile")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", p, phaseTable(p))
	return err
}

func planAction(ctx context.Context, cmd *cli.Command) error {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}
	return writePlan(cmd.Root().Writer, p, cmd.Bool("json"))
}

func writeSamples(w io.Writer, states []profile.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "position", "velocity", "acceleration", "jerk"}); err != nil {
		return errors.Wrap(err, "could not write csv header")
	}
	for _, s := range states {
		row := []string{
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.Position, 'g', -1, 64),
			strconv.FormatFloat(s.Velocity, 'g', -1, 64),
			strconv.FormatFloat(s.Acceleration, 'g', -1, 64),
			strconv.FormatFloat(s.Jerk, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "could not write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "could not flush csv")
}

func sampleAction(ctx context.Context, cmd *cli.Command) error {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}
	states, err := p.Samples(cmd.Float64("rate"))
	if err != nil {
		return err
	}
	return writeSamples(cmd.Root().Writer, states)
}

func plotAction(ctx context.Context, cmd *cli.Command) error {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}
	opts := render.DefaultOptions()
	opts.Width = vg.Length(cmd.Float64("width")) * vg.Centimeter
	opts.Height = vg.Length(cmd.Float64("height")) * vg.Centimeter
	opts.DPI = int(cmd.Int("dpi"))
	output := cmd.String("output")
	if err := render.SaveProfilePNG(p, output, opts); err != nil {
		return err
	}
	slog.Info("wrote profile plot", "path", output, "duration", p.Duration())
	_, err = fmt.Fprintln(cmd.Root().Writer, output)
	return err
}

func streamAction(ctx context.Context, cmd *cli.Command) error {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}
	queue := cmd.String("queue")
	pub, err := cereal.NewSamplePublisher(queue)
	if err != nil {
		return err
	}
	slog.Info("streaming profile", "queue", queue, "duration", p.Duration(), "rate", cmd.Float64("rate"))
	err = stream.Run(ctx, p, cmd.Float64("rate"), pub)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
