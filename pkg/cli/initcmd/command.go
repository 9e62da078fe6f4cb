// Package initcmd implements the 'actiondep init' command, which creates
// a default .actiondep.yaml configuration file.
package initcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/actiondep/actiondep/pkg/controller/scan"
	"github.com/actiondep/actiondep/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command()
}

type runner struct {
	logE *logrus.Entry
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create .actiondep.yaml if it doesn't exist",
		Description: `Create .actiondep.yaml if it doesn't exist

$ actiondep init

You can also pass a configuration file path.

e.g.

$ actiondep init .github/actiondep.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get the current directory: %w", err)
	}
	ctrl := scan.New(nil, nil, afero.NewOsFs(), nil, nil, &scan.Param{
		PWD: pwd,
	})
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = c.String("config")
	}
	if configFilePath == "" {
		configFilePath = ".actiondep.yaml"
	}
	return ctrl.Init(configFilePath) //nolint:wrapcheck
}
