// Package github provides the GitHub API client and authentication.
// It creates clients authenticated by the GITHUB_TOKEN environment variable
// or by a token stored in the OS keyring, and exposes type aliases for the
// go-github types the rest of the codebase needs.
package github

import (
	"context"
	"net/http"
	"os"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type (
	Client                                    = github.Client
	Repository                                = github.Repository
	User                                      = github.User
	Response                                  = github.Response
	Timestamp                                 = github.Timestamp
	DependencyGraphSnapshot                   = github.DependencyGraphSnapshot
	DependencyGraphSnapshotJob                = github.DependencyGraphSnapshotJob
	DependencyGraphSnapshotDetector           = github.DependencyGraphSnapshotDetector
	DependencyGraphSnapshotManifest           = github.DependencyGraphSnapshotManifest
	DependencyGraphSnapshotManifestFile       = github.DependencyGraphSnapshotManifestFile
	DependencyGraphSnapshotResolvedDependency = github.DependencyGraphSnapshotResolvedDependency
	DependencyGraphSnapshotCreationData       = github.DependencyGraphSnapshotCreationData
)

func New(ctx context.Context, logE *logrus.Entry) *Client {
	return github.NewClient(getHTTPClientForGitHub(ctx, logE, getGitHubToken()))
}

func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

func getGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

func checkKeyringEnabled() bool {
	return os.Getenv("ACTIONDEP_KEYRING_ENABLED") == "true"
}

func getHTTPClientForGitHub(ctx context.Context, logE *logrus.Entry, token string) *http.Client {
	if token == "" {
		if checkKeyringEnabled() {
			return oauth2.NewClient(ctx, NewKeyringTokenSource(logE))
		}
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}
