package config_test

import (
	"testing"

	"github.com/actiondep/actiondep/pkg/config"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestReader_Read(t *testing.T) { //nolint:funlen
	t.Parallel()
	tests := []struct {
		name           string
		configFilePath string
		files          map[string]string
		forkOwners     []string
		scanDirs       []string
		wantErr        bool
	}{
		{
			name:           "no configuration file",
			configFilePath: "",
		},
		{
			name:           "normal",
			configFilePath: ".actiondep.yaml",
			files: map[string]string{
				".actiondep.yaml": `fork_owners:
  - myorg
fork_pattern: ^(?P<org>[^/]+)/actions-(?P<repo>.+)$
scan_dirs:
  - .github/actions
ignore_actions:
  - name: actions/.*
    ref: main
`,
			},
			forkOwners: []string{"myorg"},
			scanDirs:   []string{".github/actions"},
		},
		{
			name:           "fork_pattern without named groups",
			configFilePath: ".actiondep.yaml",
			files: map[string]string{
				".actiondep.yaml": `fork_pattern: ^enterprise/actions-.*$`,
			},
			wantErr: true,
		},
		{
			name:           "broken ignore_actions",
			configFilePath: ".actiondep.yaml",
			files: map[string]string{
				".actiondep.yaml": `ignore_actions:
  - name: "("
`,
			},
			wantErr: true,
		},
		{
			name:           "configuration file not found",
			configFilePath: ".actiondep.yaml",
			wantErr:        true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			for path, content := range tt.files {
				if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			cfg := &config.Config{}
			err := config.NewReader(fs).Read(cfg, tt.configFilePath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.forkOwners, cfg.ForkOwners); diff != "" {
				t.Errorf("ForkOwners mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.scanDirs, cfg.ScanDirs); diff != "" {
				t.Errorf("ScanDirs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFinder_Find(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		configFilePath string
		files          []string
		want           string
	}{
		{
			name:           "explicit path wins",
			configFilePath: "foo.yaml",
			files:          []string{".actiondep.yaml"},
			want:           "foo.yaml",
		},
		{
			name:  "candidate search",
			files: []string{".github/actiondep.yaml"},
			want:  ".github/actiondep.yaml",
		},
		{
			name: "not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			for _, path := range tt.files {
				if err := afero.WriteFile(fs, path, []byte("{}"), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := config.NewFinder(fs).Find(tt.configFilePath)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileForkPattern(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{
			name:    "normal",
			pattern: `^(?P<org>[^/]+)/actions-(?P<repo>.+)$`,
		},
		{
			name:    "missing named groups",
			pattern: `^enterprise/actions-.*$`,
			wantErr: true,
		},
		{
			name:    "invalid regular expression",
			pattern: `(`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.CompileForkPattern(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("CompileForkPattern() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIgnoreAction_Match(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		ignore  *config.IgnoreAction
		depName string
		ref     string
		want    bool
	}{
		{
			name: "name and ref match",
			ignore: &config.IgnoreAction{
				Name: `actions/.*`,
				Ref:  `main`,
			},
			depName: "actions/checkout",
			ref:     "main",
			want:    true,
		},
		{
			name: "ref doesn't match",
			ignore: &config.IgnoreAction{
				Name: `actions/.*`,
				Ref:  `main`,
			},
			depName: "actions/checkout",
			ref:     "v4",
		},
		{
			name: "any ref",
			ignore: &config.IgnoreAction{
				Name: `actions/checkout`,
			},
			depName: "actions/checkout",
			ref:     "v4",
			want:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.ignore.Init(); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			if got := tt.ignore.Match(tt.depName, tt.ref); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}
