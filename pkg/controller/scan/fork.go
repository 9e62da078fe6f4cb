package scan

import (
	"context"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Original identifies the upstream repository a fork was forked from.
// The upstream's version is unknowable from the fork relationship, so
// there is none.
type Original struct {
	Owner string
	Repo  string
}

type ResolvedDependency struct {
	*Dependency
	Original *Original
}

func (c *Controller) resolveForks(ctx context.Context, logE *logrus.Entry, deps []*Dependency) []*ResolvedDependency {
	resolved := make([]*ResolvedDependency, 0, len(deps))
	for _, dep := range deps {
		resolved = append(resolved, &ResolvedDependency{
			Dependency: dep,
			Original:   c.resolveFork(ctx, logE.WithField("dependency", dep.Key()), dep),
		})
	}
	return resolved
}

// resolveFork returns the upstream original of a fork of interest, or nil.
// Dependencies whose owner isn't allow-listed are the common case and
// incur no lookup.
func (c *Controller) resolveFork(ctx context.Context, logE *logrus.Entry, dep *Dependency) *Original {
	owner, repo := splitCoordinate(dep.Coordinate)
	if repo == "" || !slices.Contains(c.cfg.ForkOwners, owner) {
		return nil
	}
	orig := c.matchForkPattern(owner, repo)
	if orig == nil {
		orig = c.lookupFork(ctx, logE, owner, repo)
	}
	if orig == nil {
		return nil
	}
	if orig.Owner == owner {
		// A fork resolving to its own owner is a contradiction.
		logE.Debug("suppress a fork resolved to itself")
		return nil
	}
	return orig
}

func splitCoordinate(coordinate string) (string, string) {
	parts := strings.SplitN(coordinate, "/", 3) //nolint:mnd
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (c *Controller) matchForkPattern(owner, repo string) *Original {
	p := c.cfg.ForkPatternRegexp()
	if p == nil {
		return nil
	}
	m := p.FindStringSubmatch(owner + "/" + repo)
	if m == nil {
		return nil
	}
	orig := &Original{
		Owner: m[p.SubexpIndex("org")],
		Repo:  m[p.SubexpIndex("repo")],
	}
	if orig.Owner == "" || orig.Repo == "" {
		return nil
	}
	return orig
}

// lookupFork asks the GitHub API whether owner/repo is a fork.
// Any failure degrades to "no resolution found"; a broken lookup must
// never abort the scan.
func (c *Controller) lookupFork(ctx context.Context, logE *logrus.Entry, owner, repo string) *Original {
	repository, _, err := c.repositoriesService.Get(ctx, owner, repo)
	if err != nil {
		logerr.WithError(logE, err).Warn("look up the fork origin")
		return nil
	}
	if repository == nil || !repository.GetFork() {
		return nil
	}
	parent := repository.GetParent()
	if parent == nil {
		return nil
	}
	orig := &Original{
		Owner: parent.GetOwner().GetLogin(),
		Repo:  parent.GetName(),
	}
	if orig.Owner == "" || orig.Repo == "" {
		return nil
	}
	return orig
}
