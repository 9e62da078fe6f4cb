// Package run implements the 'actiondep run' command, which scans the
// repository and submits a dependency graph snapshot.
package run

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/actiondep/actiondep/pkg/controller/scan"
	"github.com/actiondep/actiondep/pkg/github"
	"github.com/actiondep/actiondep/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, version string) *cli.Command {
	r := &runner{
		logE:    logE,
		version: version,
	}
	return r.Command()
}

type runner struct {
	logE    *logrus.Entry
	version string
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Scan GitHub Actions dependencies and submit a dependency snapshot",
		Description: `Scan workflow files, follow local composite actions and reusable workflows,
resolve forks to their upstream repositories, and submit the resulting
dependency set to the GitHub dependency graph.

$ actiondep run

Use --dry-run to print the snapshot instead of submitting it.

$ actiondep run --dry-run
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the snapshot as JSON instead of submitting it",
			},
			&cli.StringFlag{
				Name:    "repo-owner",
				Usage:   "GitHub repository owner",
				Sources: cli.EnvVars("GITHUB_REPOSITORY_OWNER"),
			},
			&cli.StringFlag{
				Name:  "repo-name",
				Usage: "GitHub repository name",
			},
			&cli.StringFlag{
				Name:    "sha",
				Usage:   "Commit SHA the snapshot belongs to",
				Sources: cli.EnvVars("GITHUB_SHA"),
			},
			&cli.StringFlag{
				Name:    "ref",
				Usage:   "Git ref the snapshot belongs to",
				Sources: cli.EnvVars("GITHUB_REF"),
			},
			&cli.StringFlag{
				Name:    "job",
				Usage:   "Job correlator for the snapshot",
				Sources: cli.EnvVars("GITHUB_JOB"),
			},
			&cli.StringFlag{
				Name:    "run-id",
				Usage:   "Workflow run id for the snapshot",
				Sources: cli.EnvVars("GITHUB_RUN_ID"),
			},
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
		RepoOwner:      c.String("repo-owner"),
		RepoName:       c.String("repo-name"),
		Sha:            c.String("sha"),
		Ref:            c.String("ref"),
		Job:            c.String("job"),
		RunID:          c.String("run-id"),
		Version:        r.version,
		DryRun:         c.Bool("dry-run"),
		Stdout:         os.Stdout,
	}
	setRepoFromEnv(param)
	ctrl := scan.New(&scan.RepositoriesServiceImpl{
		Repos:               map[string]*scan.GetRepoResult{},
		RepositoriesService: gh.Repositories,
	}, gh.DependencyGraph, fs, config.NewFinder(fs), config.NewReader(fs), param)
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}

// setRepoFromEnv fills the repository identity from GITHUB_REPOSITORY
// (owner/name) when flags don't provide it.
func setRepoFromEnv(param *scan.Param) {
	if param.RepoOwner != "" && param.RepoName != "" {
		return
	}
	repo := os.Getenv("GITHUB_REPOSITORY")
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return
	}
	if param.RepoOwner == "" {
		param.RepoOwner = owner
	}
	if param.RepoName == "" {
		param.RepoName = name
	}
}
