package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/actiondep/actiondep/pkg/workflow"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Dependency is a remote action or reusable workflow found during the scan.
// Two dependencies with the same coordinate and version are the same
// dependency; SourceFile records where it was first seen and is diagnostic
// only.
type Dependency struct {
	Coordinate string
	Version    string
	SourceFile string
}

func (d *Dependency) Key() string {
	return d.Coordinate + "@" + d.Version
}

type scanItem struct {
	path      string
	composite bool
}

// traverser drains a worklist of workflow files and composite action
// manifests. The visited set keys on cleaned paths so cyclic local
// references terminate and no file is parsed twice from the worklist.
type traverser struct {
	fs       afero.Fs
	repoRoot string
	ignores  []*config.IgnoreAction
	logE     *logrus.Entry
	visited  map[string]struct{}
	deps     map[string]*Dependency
	order    []string
	queue    []*scanItem
}

func newTraverser(fs afero.Fs, repoRoot string, ignores []*config.IgnoreAction, logE *logrus.Entry) *traverser {
	return &traverser{
		fs:       fs,
		repoRoot: filepath.Clean(repoRoot),
		ignores:  ignores,
		logE:     logE,
		visited:  map[string]struct{}{},
		deps:     map[string]*Dependency{},
	}
}

func (t *traverser) Run(workflowDir string, extraDirs []string) {
	for _, p := range t.listPipelineFiles(workflowDir) {
		t.enqueue(&scanItem{path: p})
	}
	t.drain()
	for _, dir := range extraDirs {
		t.scanExtraDir(dir)
		t.drain()
	}
}

// Dependencies returns the accumulated dependencies in discovery order.
func (t *traverser) Dependencies() []*Dependency {
	deps := make([]*Dependency, 0, len(t.order))
	for _, key := range t.order {
		deps = append(deps, t.deps[key])
	}
	return deps
}

func (t *traverser) enqueue(item *scanItem) {
	t.queue = append(t.queue, item)
}

func (t *traverser) drain() {
	for len(t.queue) > 0 {
		item := t.queue[0]
		t.queue = t.queue[1:]
		t.processItem(item)
	}
}

func (t *traverser) processItem(item *scanItem) {
	key := filepath.Clean(item.path)
	if _, ok := t.visited[key]; ok {
		return
	}
	t.visited[key] = struct{}{}
	logE := t.logE.WithField("scan_file", key)
	b, err := afero.ReadFile(t.fs, key)
	if err != nil {
		// One unreadable file must never abort the scan.
		logerr.WithError(logE, err).Warn("read a file. Skipping it")
		return
	}
	for _, ref := range t.extract(logE, item.composite, b) {
		t.processReference(logE, key, ref)
	}
}

func (t *traverser) extract(logE *logrus.Entry, composite bool, b []byte) []*workflow.Reference {
	if composite {
		m, err := workflow.ParseManifest(b)
		if err != nil {
			logerr.WithError(logE, err).Warn("parse an action manifest. Skipping it")
			return nil
		}
		return m.ExtractReferences()
	}
	wf, err := workflow.ParseWorkflow(b)
	if err != nil {
		logerr.WithError(logE, err).Warn("parse a workflow file. Skipping it")
		return nil
	}
	return wf.ExtractReferences()
}

func (t *traverser) processReference(logE *logrus.Entry, src string, ref *workflow.Reference) {
	switch ref.Kind {
	case workflow.KindRemoteAction, workflow.KindRemoteWorkflow:
		t.addRemote(logE, src, ref)
	case workflow.KindLocalAction:
		t.followLocalAction(logE, src, ref)
	case workflow.KindLocalWorkflow:
		t.followLocalWorkflow(logE, src, ref)
	case workflow.KindContainer:
	}
}

func (t *traverser) addRemote(logE *logrus.Entry, src string, ref *workflow.Reference) {
	for _, ia := range t.ignores {
		if ia.Match(ref.Coordinate, ref.Ref) {
			logE.WithField("uses", ref.Raw).Debug("ignore the dependency")
			return
		}
	}
	dep := &Dependency{
		Coordinate: ref.Coordinate,
		Version:    ref.Ref,
		SourceFile: src,
	}
	key := dep.Key()
	if _, ok := t.deps[key]; ok {
		// First occurrence wins; SourceFile keeps the first discovery.
		return
	}
	t.deps[key] = dep
	t.order = append(t.order, key)
}

func (t *traverser) followLocalAction(logE *logrus.Entry, src string, ref *workflow.Reference) {
	target, ok := t.resolveLocal(logE, src, ref)
	if !ok {
		return
	}
	info, err := t.fs.Stat(target)
	if err != nil {
		logerr.WithError(logE, err).WithField("uses", ref.Raw).Warn("a local action is not found. Skipping it")
		return
	}
	if info.IsDir() {
		target = t.findManifest(target)
		if target == "" {
			logE.WithField("uses", ref.Raw).Warn("a local action has no action manifest. Skipping it")
			return
		}
	}
	m, err := t.readManifest(target)
	if err != nil {
		logerr.WithError(logE, err).WithField("uses", ref.Raw).Warn("read a local action manifest. Skipping it")
		return
	}
	if !m.IsComposite() {
		// Only composite actions can carry further references.
		logE.WithField("uses", ref.Raw).Debug("a local action isn't composite")
		return
	}
	t.enqueue(&scanItem{path: target, composite: true})
}

func (t *traverser) followLocalWorkflow(logE *logrus.Entry, src string, ref *workflow.Reference) {
	target, ok := t.resolveLocal(logE, src, ref)
	if !ok {
		return
	}
	t.enqueue(&scanItem{path: target})
}

// resolveLocal resolves a relative reference against the directory of the
// referencing file and rejects any path escaping the repository root.
func (t *traverser) resolveLocal(logE *logrus.Entry, src string, ref *workflow.Reference) (string, bool) {
	rel := strings.ReplaceAll(ref.RelativePath, `\`, "/")
	target := filepath.Clean(filepath.Join(filepath.Dir(src), filepath.FromSlash(rel)))
	r, err := filepath.Rel(t.repoRoot, target)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		logE.WithField("uses", ref.Raw).Warn("a local reference escapes the repository root. Skipping it")
		return "", false
	}
	return target, true
}

var manifestNames = []string{"action.yml", "action.yaml"}

func (t *traverser) findManifest(dir string) string {
	for _, name := range manifestNames {
		p := filepath.Join(dir, name)
		f, err := afero.Exists(t.fs, p)
		if err == nil && f {
			return p
		}
	}
	return ""
}

func (t *traverser) readManifest(path string) (*workflow.Manifest, error) {
	b, err := afero.ReadFile(t.fs, path)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return workflow.ParseManifest(b)
}

// listPipelineFiles walks dir for workflow files. A missing or unreadable
// directory contributes nothing.
func (t *traverser) listPipelineFiles(dir string) []string {
	files := []string{}
	_ = afero.Walk(t.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext == ".yml" || ext == ".yaml" {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// scanExtraDir enqueues composite action manifests found under dir.
// Supplementary directories catch composite actions not reachable from the
// primary workflow tree, e.g. shared action libraries.
func (t *traverser) scanExtraDir(dir string) {
	for _, p := range t.listPipelineFiles(dir) {
		key := filepath.Clean(p)
		if _, ok := t.visited[key]; ok {
			continue
		}
		m, err := t.readManifest(key)
		if err != nil {
			logerr.WithError(t.logE.WithField("scan_file", key), err).Debug("read a file in an extra scan directory")
			continue
		}
		if !m.IsComposite() {
			continue
		}
		t.enqueue(&scanItem{path: key, composite: true})
	}
}

func (c *Controller) traverse(logE *logrus.Entry) []*Dependency {
	t := newTraverser(c.fs, c.param.PWD, c.cfg.IgnoreActions, logE)
	t.Run(c.workflowDir(), c.extraDirs())
	return t.Dependencies()
}

func (c *Controller) workflowDir() string {
	if c.param.WorkflowDir != "" {
		return c.resolvePath(c.param.WorkflowDir)
	}
	return filepath.Join(c.param.PWD, ".github", "workflows")
}

func (c *Controller) extraDirs() []string {
	dirs := c.param.ScanDirs
	if len(dirs) == 0 {
		dirs = c.cfg.ScanDirs
	}
	resolved := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		resolved = append(resolved, c.resolvePath(dir))
	}
	return resolved
}

func (c *Controller) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.param.PWD, p)
}
