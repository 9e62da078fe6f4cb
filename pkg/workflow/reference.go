package workflow

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

type Kind int

const (
	KindRemoteAction Kind = iota
	KindLocalAction
	KindRemoteWorkflow
	KindLocalWorkflow
	KindContainer
)

// Reference is one uses entry extracted from a document.
// Remote kinds populate Coordinate and Ref, local kinds populate
// RelativePath. Raw always holds the string as written.
type Reference struct {
	Raw          string
	Kind         Kind
	Coordinate   string
	Ref          string
	RelativePath string
}

// The reference-string grammar is a stable contract, kept as a small
// ordered set of rules: local path, container image, then coordinate@ref.
var (
	localPattern  = regexp.MustCompile(`^\.\.?[/\\]`)
	remotePattern = regexp.MustCompile(`^([^@]+)@(.+)$`)
)

const containerPrefix = "docker://"

// parseUses classifies one uses string. jobLevel selects the reusable
// workflow kinds; a job-level uses never denotes an action or a container
// image. Malformed strings yield nil, never an error.
func parseUses(raw string, jobLevel bool) *Reference {
	if localPattern.MatchString(raw) {
		kind := KindLocalAction
		if jobLevel {
			kind = KindLocalWorkflow
		}
		return &Reference{Raw: raw, Kind: kind, RelativePath: raw}
	}
	if strings.HasPrefix(raw, containerPrefix) {
		if jobLevel {
			return nil
		}
		return &Reference{Raw: raw, Kind: KindContainer}
	}
	m := remotePattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	kind := KindRemoteAction
	if jobLevel {
		kind = KindRemoteWorkflow
	}
	return &Reference{Raw: raw, Kind: kind, Coordinate: m[1], Ref: m[2]}
}

// ExtractReferences returns the references of a workflow file.
// Jobs are visited in name order so the result is deterministic.
// Container references are dropped here; nothing downstream consumes them.
func (w *Workflow) ExtractReferences() []*Reference {
	if w == nil || len(w.Jobs) == 0 {
		return nil
	}
	refs := []*Reference{}
	for _, name := range slices.Sorted(maps.Keys(w.Jobs)) {
		job := w.Jobs[name]
		if job == nil {
			continue
		}
		if job.Uses != "" {
			if ref := parseUses(job.Uses, true); ref != nil {
				refs = append(refs, ref)
			}
		}
		for _, step := range job.Steps {
			refs = appendStepReference(refs, step)
		}
	}
	return refs
}

// ExtractReferences returns the references of a composite action manifest.
// Non-composite manifests have no reference sites and yield nothing.
func (m *Manifest) ExtractReferences() []*Reference {
	if !m.IsComposite() {
		return nil
	}
	refs := []*Reference{}
	for _, step := range m.Runs.Steps {
		refs = appendStepReference(refs, step)
	}
	return refs
}

func appendStepReference(refs []*Reference, step *Step) []*Reference {
	if step == nil || step.Uses == "" {
		return refs
	}
	ref := parseUses(step.Uses, false)
	if ref == nil || ref.Kind == KindContainer {
		return refs
	}
	return append(refs, ref)
}
