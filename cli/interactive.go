package cli

import (
	"context"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	ms "pfeifer.dev/scurve/settings"
)

const (
	actionPlan     = "Plan"
	actionWatch    = "Watch"
	actionSettings = "Settings"
)

func interactive(ctx context.Context, cmd *cli.Command) error {
	prompt := promptui.Select{
		Label: "Select Action",
		Items: []string{actionPlan, actionWatch, actionSettings},
	}

	_, result, err := prompt.Run()
	if err != nil {
		return errors.Wrap(err, "prompt failed")
	}

	switch result {
	case actionPlan:
		p, err := ms.Settings.Plan()
		if err != nil {
			return err
		}
		return writePlan(cmd.Root().Writer, p, false)
	case actionWatch:
		return runUI(showOutput, ms.Settings.Queue)
	case actionSettings:
		return runUI(showSettings, ms.Settings.Queue)
	}
	return nil
}
