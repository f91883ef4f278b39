package cli

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"pfeifer.dev/scurve/settings"
)

func Handle() {
	settings.Settings.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "scurve",
		Usage: "Plan and play back jerk limited motion profiles",
		Commands: []*cli.Command{
			{
				Name:    "plan",
				Aliases: []string{"p"},
				Usage:   "Plan a profile and print its phases",
				Flags: append(planFlags(),
					&cli.BoolFlag{
						Category: "Output",
						Name:     "json",
						Usage:    "Print the profile as json",
					},
				),
				Action: planAction,
			},
			{
				Name:    "sample",
				Aliases: []string{"s"},
				Usage:   "Print the sampled profile as csv",
				Flags: append(planFlags(),
					&cli.Float64Flag{
						Category: "Output",
						Name:     "rate",
						Aliases:  []string{"r"},
						Usage:    "Samples per second",
						Value:    settings.Settings.SampleRate,
					},
				),
				Action: sampleAction,
			},
			{
				Name:  "plot",
				Usage: "Draw the profile to a png",
				Flags: append(planFlags(),
					&cli.StringFlag{
						Category: "Output",
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "The png file to write",
						Value:    "profile.png",
					},
					&cli.Float64Flag{
						Category: "Output",
						Name:     "width",
						Usage:    "Image width in centimeters",
						Value:    settings.Settings.PlotWidth,
					},
					&cli.Float64Flag{
						Category: "Output",
						Name:     "height",
						Usage:    "Image height in centimeters",
						Value:    settings.Settings.PlotHeight,
					},
					&cli.IntFlag{
						Category: "Output",
						Name:     "dpi",
						Usage:    "Image resolution",
						Value:    150,
					},
				),
				Action: plotAction,
			},
			{
				Name:  "stream",
				Usage: "Publish the profile in real time on a message queue",
				Flags: append(planFlags(),
					&cli.StringFlag{
						Category: "Output",
						Name:     "queue",
						Aliases:  []string{"q"},
						Usage:    "The queue to publish samples on",
						Value:    settings.Settings.Queue,
					},
					&cli.Float64Flag{
						Category: "Output",
						Name:     "rate",
						Aliases:  []string{"r"},
						Usage:    "Samples per second",
						Value:    settings.Settings.SampleRate,
					},
				),
				Action: streamAction,
			},
			{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Watch samples published by a running stream",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "queue",
						Aliases: []string{"q"},
						Usage:   "The queue to read samples from",
						Value:   settings.Settings.Queue,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runUI(showOutput, cmd.String("queue"))
				},
			},
			settingsCommand(),
			{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Pick an action from a menu",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return interactive(ctx, cmd)
				},
			},
		},
	}
}
