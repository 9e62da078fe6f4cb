package scan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_aggregate(t *testing.T) { //nolint:funlen
	t.Parallel()
	tests := []struct {
		name     string
		resolved []*ResolvedDependency
		want     []*Entry
	}{
		{
			name: "empty",
			want: []*Entry{},
		},
		{
			name: "a resolved fork yields the fork and its upstream original",
			resolved: []*ResolvedDependency{
				{
					Dependency: &Dependency{
						Coordinate: "myorg/checkout",
						Version:    "v4",
						SourceFile: "/repo/.github/workflows/ci.yml",
					},
					Original: &Original{
						Owner: "actions",
						Repo:  "checkout",
					},
				},
			},
			want: []*Entry{
				{
					Identifier: "myorg/checkout@v4",
					Coordinate: "myorg/checkout",
					Version:    "v4",
					SourceFile: "/repo/.github/workflows/ci.yml",
				},
				{
					Identifier: "actions/checkout",
					Coordinate: "actions/checkout",
					SourceFile: "/repo/.github/workflows/ci.yml",
				},
			},
		},
		{
			name: "two forks sharing an upstream original are merged",
			resolved: []*ResolvedDependency{
				{
					Dependency: &Dependency{
						Coordinate: "myorg/checkout",
						Version:    "v4",
						SourceFile: "/repo/.github/workflows/ci.yml",
					},
					Original: &Original{
						Owner: "actions",
						Repo:  "checkout",
					},
				},
				{
					Dependency: &Dependency{
						Coordinate: "otherorg/checkout",
						Version:    "v3",
						SourceFile: "/repo/.github/workflows/release.yml",
					},
					Original: &Original{
						Owner: "actions",
						Repo:  "checkout",
					},
				},
			},
			want: []*Entry{
				{
					Identifier: "myorg/checkout@v4",
					Coordinate: "myorg/checkout",
					Version:    "v4",
					SourceFile: "/repo/.github/workflows/ci.yml",
				},
				{
					Identifier: "actions/checkout",
					Coordinate: "actions/checkout",
					SourceFile: "/repo/.github/workflows/ci.yml",
				},
				{
					Identifier: "otherorg/checkout@v3",
					Coordinate: "otherorg/checkout",
					Version:    "v3",
					SourceFile: "/repo/.github/workflows/release.yml",
				},
			},
		},
		{
			name: "an unresolved dependency yields a single entry",
			resolved: []*ResolvedDependency{
				{
					Dependency: &Dependency{
						Coordinate: "actions/cache",
						Version:    "v4",
						SourceFile: "/repo/.github/workflows/ci.yml",
					},
				},
			},
			want: []*Entry{
				{
					Identifier: "actions/cache@v4",
					Coordinate: "actions/cache",
					Version:    "v4",
					SourceFile: "/repo/.github/workflows/ci.yml",
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, aggregate(tt.resolved)); diff != "" {
				t.Errorf("aggregate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
