// Package cli wires the actiondep command tree.
package cli

import (
	"context"

	"github.com/actiondep/actiondep/pkg/cli/initcmd"
	"github.com/actiondep/actiondep/pkg/cli/list"
	"github.com/actiondep/actiondep/pkg/cli/run"
	"github.com/actiondep/actiondep/pkg/cli/token"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type LDFlags struct {
	Version string
	Commit  string
	Date    string
}

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *LDFlags, args ...string) error {
	cmd := &cli.Command{
		Name:    "actiondep",
		Usage:   "Inventory GitHub Actions dependencies and submit them to the dependency graph. https://github.com/actiondep/actiondep",
		Version: ldFlags.Version + " (" + ldFlags.Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level",
				Sources: cli.EnvVars("ACTIONDEP_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name: "config",
				Aliases: []string{
					"c",
				},
				Usage:   "configuration file path",
				Sources: cli.EnvVars("ACTIONDEP_CONFIG"),
			},
		},
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			run.New(logE, ldFlags.Version),
			list.New(logE),
			initcmd.New(logE),
			token.New(logE),
			newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
