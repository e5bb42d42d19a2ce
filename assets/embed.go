// Package assets embeds the default puzzle catalog shipped with the server.
package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
)

//go:embed puzzles/*.json
var FS embed.FS

// PuzzleFiles returns the embedded puzzle files keyed by base name, in name order.
func PuzzleFiles() ([]string, map[string][]byte, error) {
	names, err := fs.Glob(FS, "puzzles/*.json")
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(names)

	files := make(map[string][]byte, len(names))
	keys := make([]string, 0, len(names))
	for _, n := range names {
		b, err := FS.ReadFile(n)
		if err != nil {
			return nil, nil, err
		}
		base := path.Base(n)
		files[base] = b
		keys = append(keys, base)
	}
	return keys, files, nil
}
