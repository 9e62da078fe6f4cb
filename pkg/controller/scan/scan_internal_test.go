package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/actiondep/actiondep/pkg/github"
	"github.com/spf13/afero"
)

func newScanFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/repo/.github/workflows/ci.yml", []byte(`
jobs:
  test:
    steps:
      - uses: myorg/checkout@v4
      - uses: actions/cache@v4
`), 0o644); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestController_List(t *testing.T) {
	t.Parallel()
	fs := newScanFs(t)
	stdout := &bytes.Buffer{}
	ctrl := New(&fakeRepositoriesService{
		repo: &github.Repository{
			Fork: github.Ptr(true),
			Parent: &github.Repository{
				Owner: &github.User{
					Login: github.Ptr("actions"),
				},
				Name: github.Ptr("checkout"),
			},
		},
	}, nil, fs, config.NewFinder(fs), config.NewReader(fs), &Param{
		PWD:        "/repo",
		ForkOwners: []string{"myorg"},
		Stdout:     stdout,
	})
	if err := ctrl.List(context.Background(), newTestLogE()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	exp := `myorg/checkout@v4
actions/checkout (upstream)
actions/cache@v4
`
	if stdout.String() != exp {
		t.Errorf("List() output = %q, want %q", stdout.String(), exp)
	}
}

func TestController_Run_dryRun(t *testing.T) {
	t.Parallel()
	fs := newScanFs(t)
	stdout := &bytes.Buffer{}
	ctrl := New(&fakeRepositoriesService{}, nil, fs, config.NewFinder(fs), config.NewReader(fs), &Param{
		PWD:    "/repo",
		Sha:    "deadbeef",
		Ref:    "refs/heads/main",
		DryRun: true,
		Stdout: stdout,
	})
	if err := ctrl.Run(context.Background(), newTestLogE()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	snapshot := &github.DependencyGraphSnapshot{}
	if err := json.Unmarshal(stdout.Bytes(), snapshot); err != nil {
		t.Fatalf("decode the dry run output: %v", err)
	}
	if got := snapshot.GetSha(); got != "deadbeef" {
		t.Errorf("Sha = %q, want %q", got, "deadbeef")
	}
	m, ok := snapshot.Manifests[".github/workflows/ci.yml"]
	if !ok {
		t.Fatal("manifest .github/workflows/ci.yml not found")
	}
	if len(m.Resolved) != 2 {
		t.Errorf("len(Resolved) = %d, want 2", len(m.Resolved))
	}
}

func TestController_Run_requiresRepository(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	ctrl := New(&fakeRepositoriesService{}, nil, fs, config.NewFinder(fs), config.NewReader(fs), &Param{
		PWD:    "/repo",
		Stdout: &bytes.Buffer{},
	})
	if err := ctrl.Run(context.Background(), newTestLogE()); err == nil {
		t.Fatal("Run() must return an error when the repository isn't set")
	}
}
