// Package stopwords provides the bundled per-language stopword tables.
//
// Each table lives in data/<language>.txt, one lowercased word per line,
// and is embedded at build time. Languages without a bundled table
// resolve to the empty set, which disables stopword filtering for them.
package stopwords

import (
	"bufio"
	"bytes"
	"embed"
	"sort"
	"strings"
)

//go:embed data/*.txt
var dataFS embed.FS

// Set is a case-folded stopword lookup table.
type Set map[string]struct{}

// Contains reports whether the lowercased form of word is a stopword.
func (s Set) Contains(word string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToLower(word)]
	return ok
}

// For returns the stopword set bundled for the named language.
// Unknown or uncovered languages yield an empty set.
func For(language string) Set {
	set := make(Set)
	data, err := dataFS.ReadFile("data/" + language + ".txt")
	if err != nil {
		return set
	}

	scan := bufio.NewScanner(bytes.NewReader(data))
	for scan.Scan() {
		word := strings.TrimSpace(scan.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	return set
}

// Languages returns the sorted list of languages with bundled data.
func Languages() []string {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil
	}

	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".txt") {
			langs = append(langs, strings.TrimSuffix(name, ".txt"))
		}
	}
	sort.Strings(langs)
	return langs
}
