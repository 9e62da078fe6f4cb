// Package token implements the 'actiondep token' command for storing a
// GitHub Access token in the OS keyring, as a safer alternative to the
// GITHUB_TOKEN environment variable.
package token

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/actiondep/actiondep/pkg/github"
	"github.com/sirupsen/logrus"
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
		Name:  "token",
		Usage: "Manage the GitHub Access token in the OS keyring",
		Commands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Store a GitHub Access token in the OS keyring. The token is read from stdin",
				Action: r.set,
			},
			{
				Name:   "remove",
				Usage:  "Remove the GitHub Access token from the OS keyring",
				Action: r.remove,
			},
		},
	}
}

func (r *runner) set(_ context.Context, _ *cli.Command) error {
	fmt.Fprint(os.Stderr, "Enter a GitHub Access token: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read a GitHub Access token from stdin: %w", err)
		}
		return errors.New("a GitHub Access token is required")
	}
	token := strings.TrimSpace(scanner.Text())
	if token == "" {
		return errors.New("a GitHub Access token is required")
	}
	return github.NewTokenManager().SetToken(token) //nolint:wrapcheck
}

func (r *runner) remove(_ context.Context, _ *cli.Command) error {
	return github.NewTokenManager().RemoveToken() //nolint:wrapcheck
}
