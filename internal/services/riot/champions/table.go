// Package champions memoizes champion id to name tables per language.
package champions

import (
	"strconv"
	"strings"

	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
	"golang.org/x/text/cases"
)

// Table is one language's champion names for one game data version.
type Table struct {
	Language  string
	Version   string
	Champions []ddragon.Champion

	byID   map[int]string
	byName map[string]int
}

// NewTable indexes champions for lookups.
func NewTable(language, version string, champions []ddragon.Champion) *Table {
	t := &Table{
		Language:  language,
		Version:   version,
		Champions: champions,
		byID:      make(map[int]string, len(champions)),
		byName:    make(map[string]int, len(champions)),
	}
	for _, c := range champions {
		t.byID[c.ID] = c.Name
		key := foldName(c.Name)
		if _, taken := t.byName[key]; !taken {
			t.byName[key] = c.ID
		}
	}
	return t
}

// Len returns the number of champions.
func (t *Table) Len() int { return len(t.Champions) }

// Name returns the champion name, or ID(<id>) when the id is unknown.
func (t *Table) Name(id int) string {
	if name, ok := t.byID[id]; ok {
		return name
	}
	return UnknownName(id)
}

// Lookup finds a champion id by name, ignoring case.
func (t *Table) Lookup(name string) (int, bool) {
	id, ok := t.byName[foldName(name)]
	return id, ok
}

// Names returns a copy of the id to name map.
func (t *Table) Names() map[int]string {
	out := make(map[int]string, len(t.byID))
	for id, name := range t.byID {
		out[id] = name
	}
	return out
}

// UnknownName is the display name for a champion missing from the table.
func UnknownName(id int) string {
	return "ID(" + strconv.Itoa(id) + ")"
}

// foldName builds a fresh caser per call; casers are not safe to share.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
