package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/sirupsen/logrus"
)

// Run scans the repository and submits the dependency snapshot.
// With DryRun the snapshot is written to stdout as JSON instead.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	entries, err := c.scan(ctx, logE)
	if err != nil {
		return err
	}
	snapshot := c.newSnapshot(entries, time.Now())
	if c.param.DryRun {
		encoder := json.NewEncoder(c.param.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("encode the snapshot as JSON: %w", err)
		}
		return nil
	}
	if c.param.RepoOwner == "" || c.param.RepoName == "" {
		return errors.New("the repository owner and name are required to submit a snapshot")
	}
	data, _, err := c.dependencyGraphService.CreateSnapshot(ctx, c.param.RepoOwner, c.param.RepoName, snapshot)
	if err != nil {
		return fmt.Errorf("create a dependency graph snapshot: %w", err)
	}
	logE.WithFields(logrus.Fields{
		"snapshot_id":  data.ID,
		"dependencies": len(entries),
	}).Info("submitted a dependency snapshot")
	return nil
}

// List scans the repository and prints the submission identifiers.
func (c *Controller) List(ctx context.Context, logE *logrus.Entry) error {
	entries, err := c.scan(ctx, logE)
	if err != nil {
		return err
	}
	for _, e := range entries {
		c.logger.Output(e)
	}
	return nil
}

// scan runs discovery, fork resolution, and aggregation.
// A scan that finds nothing returns an empty entry list, not an error.
func (c *Controller) scan(ctx context.Context, logE *logrus.Entry) ([]*Entry, error) {
	if err := c.readConfig(); err != nil {
		return nil, err
	}
	if err := c.applyParam(); err != nil {
		return nil, err
	}
	deps := c.traverse(logE)
	resolved := c.resolveForks(ctx, logE, deps)
	return aggregate(resolved), nil
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, c.param.ConfigFilePath); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	c.cfg = cfg
	return nil
}

// applyParam overlays command line inputs on the configuration file.
func (c *Controller) applyParam() error {
	if len(c.param.ForkOwners) > 0 {
		c.cfg.ForkOwners = c.param.ForkOwners
	}
	if c.param.ForkPattern != "" {
		c.cfg.ForkPattern = c.param.ForkPattern
		if err := c.cfg.Init(); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return nil
}
