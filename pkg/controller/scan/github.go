package scan

import (
	"context"

	"github.com/actiondep/actiondep/pkg/github"
)

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

type DependencyGraphService interface {
	CreateSnapshot(ctx context.Context, owner, repo string, snapshot *github.DependencyGraphSnapshot) (*github.DependencyGraphSnapshotCreationData, *github.Response, error)
}

type GetRepoResult struct {
	Repo     *github.Repository
	Response *github.Response
	err      error
}

// RepositoriesServiceImpl memoizes repository lookups so a repository
// referenced from multiple files is fetched at most once per run.
// Errors are cached too; a failing lookup is not retried.
type RepositoriesServiceImpl struct {
	RepositoriesService RepositoriesService
	Repos               map[string]*GetRepoResult
}

func (r *RepositoriesServiceImpl) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	key := owner + "/" + repo
	a, ok := r.Repos[key]
	if ok {
		return a.Repo, a.Response, a.err
	}
	repository, resp, err := r.RepositoriesService.Get(ctx, owner, repo)
	r.Repos[key] = &GetRepoResult{
		Repo:     repository,
		Response: resp,
		err:      err,
	}
	return repository, resp, err //nolint:wrapcheck
}
