// Package list implements the 'actiondep list' command, which scans the
// repository and prints the resolved dependency set without submitting it.
package list

import (
	"context"
	"fmt"
	"os"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/actiondep/actiondep/pkg/controller/scan"
	"github.com/actiondep/actiondep/pkg/github"
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
		Name:  "list",
		Usage: "List GitHub Actions dependencies",
		Description: `Scan workflow files and print the resolved dependency set, one identifier
per line. Upstream originals of resolved forks are annotated.

$ actiondep list
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "workflow-dir",
				Usage: "Directory scanned for workflow files. By default, .github/workflows",
			},
			&cli.StringSliceFlag{
				Name:  "scan-dir",
				Usage: "Extra directory scanned for composite action manifests",
			},
			&cli.StringSliceFlag{
				Name:  "fork-owner",
				Usage: "Repository owner treated as a fork owner",
			},
			&cli.StringFlag{
				Name:  "fork-pattern",
				Usage: "A regular expression with named groups 'org' and 'repo' mapping a fork to its upstream repository",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get the current directory: %w", err)
	}
	gh := github.New(ctx, r.logE)
	fs := afero.NewOsFs()
	param := &scan.Param{
		PWD:            pwd,
		WorkflowDir:    c.String("workflow-dir"),
		ScanDirs:       c.StringSlice("scan-dir"),
		ConfigFilePath: c.String("config"),
		ForkOwners:     c.StringSlice("fork-owner"),
		ForkPattern:    c.String("fork-pattern"),
		Stdout:         os.Stdout,
	}
	ctrl := scan.New(&scan.RepositoriesServiceImpl{
		Repos:               map[string]*scan.GetRepoResult{},
		RepositoriesService: gh.Repositories,
	}, gh.DependencyGraph, fs, config.NewFinder(fs), config.NewReader(fs), param)
	return ctrl.List(ctx, r.logE) //nolint:wrapcheck
}
