// Package scan implements the dependency discovery and resolution engine.
// The controller walks a repository for workflow files, follows local
// composite actions and reusable workflows to uncover transitive
// dependencies, resolves forks of interest to their upstream repositories,
// and aggregates everything into a deduplicated, order-stable dependency
// set ready for submission.
package scan

import (
	"io"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	repositoriesService    RepositoriesService
	dependencyGraphService DependencyGraphService
	fs                     afero.Fs
	cfg                    *config.Config
	param                  *Param
	cfgFinder              ConfigFinder
	cfgReader              ConfigReader
	logger                 *Logger
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

// Param holds the inputs of one scan. PWD is the repository root; every
// relative path is resolved against it.
type Param struct {
	PWD            string
	WorkflowDir    string
	ScanDirs       []string
	ConfigFilePath string
	ForkOwners     []string
	ForkPattern    string
	RepoOwner      string
	RepoName       string
	Sha            string
	Ref            string
	Job            string
	RunID          string
	Version        string
	DryRun         bool
	Stdout         io.Writer
}

func New(repositoriesService RepositoriesService, dependencyGraphService DependencyGraphService, fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *Param) *Controller {
	return &Controller{
		repositoriesService:    repositoriesService,
		dependencyGraphService: dependencyGraphService,
		fs:                     fs,
		cfgFinder:              cfgFinder,
		cfgReader:              cfgReader,
		param:                  param,
		cfg:                    &config.Config{},
		logger:                 NewLogger(param.Stdout),
	}
}
