// Package workflow models parsed GitHub Actions documents and extracts
// action and reusable workflow references from them.
// Two document shapes are understood: a workflow file (a top-level jobs map)
// and an action manifest (a runs block, composite or not). Everything else
// in a document is ignored; only the fields carrying uses references are
// decoded.
package workflow

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

type Workflow struct {
	Jobs map[string]*Job `yaml:"jobs"`
}

type Job struct {
	Uses  string  `yaml:"uses"`
	Steps []*Step `yaml:"steps"`
}

type Step struct {
	Uses string `yaml:"uses"`
}

type Manifest struct {
	Runs *Runs `yaml:"runs"`
}

type Runs struct {
	Using string  `yaml:"using"`
	Steps []*Step `yaml:"steps"`
}

// IsComposite reports whether the manifest is a composite action.
// Only composite actions can reference other actions.
func (m *Manifest) IsComposite() bool {
	return m != nil && m.Runs != nil && m.Runs.Using == "composite"
}

func ParseWorkflow(b []byte) (*Workflow, error) {
	wf := &Workflow{}
	if err := yaml.Unmarshal(b, wf); err != nil {
		return nil, fmt.Errorf("unmarshal a workflow file as YAML: %w", err)
	}
	return wf, nil
}

func ParseManifest(b []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("unmarshal an action manifest as YAML: %w", err)
	}
	return m, nil
}
