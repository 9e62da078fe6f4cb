package scan

import (
	"path/filepath"
	"time"

	"github.com/actiondep/actiondep/pkg/github"
)

const (
	detectorName = "actiondep"
	detectorURL  = "https://github.com/actiondep/actiondep"
)

// newSnapshot builds the dependency graph snapshot payload.
// Entries are grouped into manifests by the file that first introduced
// them; an empty entry list yields a snapshot with no manifests, which is
// a valid submission.
func (c *Controller) newSnapshot(entries []*Entry, now time.Time) *github.DependencyGraphSnapshot {
	manifests := map[string]*github.DependencyGraphSnapshotManifest{}
	for _, e := range entries {
		name := c.manifestName(e.SourceFile)
		m, ok := manifests[name]
		if !ok {
			m = &github.DependencyGraphSnapshotManifest{
				Name: github.Ptr(name),
				File: &github.DependencyGraphSnapshotManifestFile{
					SourceLocation: github.Ptr(name),
				},
				Resolved: map[string]*github.DependencyGraphSnapshotResolvedDependency{},
			}
			manifests[name] = m
		}
		m.Resolved[e.Identifier] = &github.DependencyGraphSnapshotResolvedDependency{
			PackageURL:   github.Ptr(packageURL(e)),
			Relationship: github.Ptr("direct"),
			Scope:        github.Ptr("runtime"),
		}
	}
	return &github.DependencyGraphSnapshot{
		Sha: github.Ptr(c.param.Sha),
		Ref: github.Ptr(c.param.Ref),
		Job: &github.DependencyGraphSnapshotJob{
			Correlator: github.Ptr(c.param.Job),
			ID:         github.Ptr(c.param.RunID),
		},
		Detector: &github.DependencyGraphSnapshotDetector{
			Name:    github.Ptr(detectorName),
			Version: github.Ptr(c.detectorVersion()),
			URL:     github.Ptr(detectorURL),
		},
		Scanned:   &github.Timestamp{Time: now},
		Manifests: manifests,
	}
}

func (c *Controller) detectorVersion() string {
	if c.param.Version == "" {
		return "dev"
	}
	return c.param.Version
}

// manifestName renders a scan file path relative to the repository root,
// with forward slashes, for use as a manifest name and source location.
func (c *Controller) manifestName(sourceFile string) string {
	rel, err := filepath.Rel(c.param.PWD, sourceFile)
	if err != nil {
		return filepath.ToSlash(sourceFile)
	}
	return filepath.ToSlash(rel)
}

// packageURL renders a package-url identifier for a submission entry.
// Upstream originals have no version, so the @version suffix is omitted.
func packageURL(e *Entry) string {
	u := "pkg:githubactions/" + e.Coordinate
	if e.Version != "" {
		u += "@" + e.Version
	}
	return u
}
