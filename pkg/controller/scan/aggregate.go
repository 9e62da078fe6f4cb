package scan

// Entry is one submission-ready dependency. Upstream originals carry no
// version, so their identifier has no @version suffix.
type Entry struct {
	Identifier string
	Coordinate string
	Version    string
	SourceFile string
}

// aggregate merges resolved dependencies into the final ordered set.
// A resolved fork yields two entries: the fork itself and its upstream
// original. Entries are deduplicated by identifier; insertion order is
// preserved.
func aggregate(resolved []*ResolvedDependency) []*Entry {
	seen := map[string]struct{}{}
	entries := []*Entry{}
	add := func(e *Entry) {
		if _, ok := seen[e.Identifier]; ok {
			return
		}
		seen[e.Identifier] = struct{}{}
		entries = append(entries, e)
	}
	for _, r := range resolved {
		add(&Entry{
			Identifier: r.Coordinate + "@" + r.Version,
			Coordinate: r.Coordinate,
			Version:    r.Version,
			SourceFile: r.SourceFile,
		})
		if r.Original == nil {
			continue
		}
		coordinate := r.Original.Owner + "/" + r.Original.Repo
		add(&Entry{
			Identifier: coordinate,
			Coordinate: coordinate,
			SourceFile: r.SourceFile,
		})
	}
	return entries
}
