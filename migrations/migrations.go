// Package migrations embeds the SQL schema so integration tests and the
// server can apply it without shelling out to external tooling.
package migrations

import (
	"embed"
	"sort"
)

//go:embed *.sql
var fs embed.FS

// Files returns the migration file names in lexical (apply) order.
func Files() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the contents of a migration file.
func Read(name string) ([]byte, error) {
	return fs.ReadFile(name)
}
