// Package config reads the actiondep configuration file.
// The configuration declares which owners are treated as fork owners, how
// fork names map to their upstream repositories, which extra directories are
// scanned for composite actions, and which dependencies are ignored.
package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ForkOwners    []string        `json:"fork_owners,omitempty" yaml:"fork_owners" jsonschema:"description=Repository owners whose actions are treated as forks and resolved to their upstream repositories"`
	ForkPattern   string          `json:"fork_pattern,omitempty" yaml:"fork_pattern" jsonschema:"description=A regular expression with named groups 'org' and 'repo' mapping a fork to its upstream repository"`
	ScanDirs      []string        `json:"scan_dirs,omitempty" yaml:"scan_dirs" jsonschema:"description=Extra directories scanned for composite action manifests, relative to the repository root"`
	IgnoreActions []*IgnoreAction `json:"ignore_actions,omitempty" yaml:"ignore_actions" jsonschema:"description=Actions and reusable workflows that actiondep excludes from the dependency set"`
	forkPattern   *regexp.Regexp
}

func (c *Config) Init() error {
	if c.ForkPattern != "" {
		p, err := CompileForkPattern(c.ForkPattern)
		if err != nil {
			return err
		}
		c.forkPattern = p
	}
	for _, ia := range c.IgnoreActions {
		if err := ia.Init(); err != nil {
			return fmt.Errorf("initialize ignore_action: %w", err)
		}
	}
	return nil
}

// ForkPatternRegexp returns the compiled fork_pattern, or nil if none is
// configured. Init must have been called.
func (c *Config) ForkPatternRegexp() *regexp.Regexp {
	return c.forkPattern
}

// CompileForkPattern compiles a fork pattern and validates that it declares
// the named capture groups "org" and "repo".
func CompileForkPattern(pattern string) (*regexp.Regexp, error) {
	p, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile fork_pattern as a regular expression: %w", err)
	}
	if p.SubexpIndex("org") < 0 || p.SubexpIndex("repo") < 0 {
		return nil, errors.New("fork_pattern must have named groups 'org' and 'repo'")
	}
	return p, nil
}

type IgnoreAction struct {
	Name       string `json:"name" jsonschema:"description=A regular expression of action names to ignore"`
	Ref        string `json:"ref,omitempty" jsonschema:"description=A regular expression of refs to ignore. If not specified, any ref is ignored"`
	nameRegexp *regexp.Regexp
	refRegexp  *regexp.Regexp
}

func (ia *IgnoreAction) Init() error {
	if ia.Name == "" {
		return errors.New("name is required")
	}
	r, err := regexp.Compile(ia.Name)
	if err != nil {
		return fmt.Errorf("compile name as a regular expression: %w", err)
	}
	ia.nameRegexp = r
	if ia.Ref == "" {
		return nil
	}
	r, err = regexp.Compile(ia.Ref)
	if err != nil {
		return fmt.Errorf("compile ref as a regular expression: %w", err)
	}
	ia.refRegexp = r
	return nil
}

func (ia *IgnoreAction) Match(name, ref string) bool {
	if !ia.nameRegexp.MatchString(name) {
		return false
	}
	if ia.refRegexp == nil {
		return true
	}
	return ia.refRegexp.MatchString(ref)
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".actiondep.yaml", ".github/actiondep.yaml", ".actiondep.yml", ".github/actiondep.yml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	if err := cfg.Init(); err != nil {
		return err
	}
	return nil
}
