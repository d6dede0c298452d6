package identity

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-set/v2"

	"github.com/roadtrip/roadtrip/internal/alias"
	"github.com/roadtrip/roadtrip/internal/domain"
)

// DefaultCurrentDate is the end date marking identity records still valid.
const DefaultCurrentDate = "2020-12-31"

// Table owns every canonical country and its append-only alias list. All
// mutation goes through Register, RegisterAlias and Mint.
type Table struct {
	order   []string
	entries map[string]*entry

	// first writer wins for each of the lookup indexes
	owners   map[string]string
	stripped map[string]string
	folded   map[string]string
}

type entry struct {
	country domain.Country
	known   *set.Set[string]
}

// NewTable returns an empty identity table.
func NewTable() *Table {
	return &Table{
		entries:  make(map[string]*entry),
		owners:   make(map[string]string),
		stripped: make(map[string]string),
		folded:   make(map[string]string),
	}
}

// Bootstrap registers every record whose end date equals currentDate and
// then runs the comma and hyphen sweeps. It returns the number of records
// kept.
func (t *Table) Bootstrap(records []domain.IdentityRecord, currentDate string) int {
	if currentDate == "" {
		currentDate = DefaultCurrentDate
	}
	kept := 0
	for _, rec := range records {
		if strings.TrimSpace(rec.EndDate) != currentDate {
			continue
		}
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			continue
		}
		t.Register(id, alias.Bootstrap(rec.Name), false)
		kept++
	}
	t.sweep()
	return kept
}

// sweep appends "Y X" for a first alias written "X, Y" and "X and Y" for a
// first alias written "X-Y".
func (t *Table) sweep() {
	for _, id := range t.order {
		first := t.entries[id].country.Aliases[0]
		if swapped, ok := alias.CommaSwap(first); ok {
			t.RegisterAlias(id, swapped)
		}
	}
	for _, id := range t.order {
		first := t.entries[id].country.Aliases[0]
		if joined, ok := alias.HyphenToAnd(first); ok {
			t.RegisterAlias(id, joined)
		}
	}
}

// Register creates id with the given aliases or unions them into an
// existing entry. The first alias of a new entry becomes its display name.
func (t *Table) Register(id string, aliases []string, provisional bool) {
	e, ok := t.entries[id]
	if !ok {
		e = &entry{
			country: domain.Country{ID: id, Provisional: provisional},
			known:   set.New[string](len(aliases)),
		}
		t.entries[id] = e
		t.order = append(t.order, id)
	}
	for _, a := range aliases {
		t.RegisterAlias(id, a)
	}
}

// RegisterAlias appends a to the aliases of id. It reports whether the alias
// was new for id. Unknown ids and empty aliases are ignored.
func (t *Table) RegisterAlias(id, a string) bool {
	e, ok := t.entries[id]
	a = alias.Squash(a)
	if !ok || a == "" {
		return false
	}
	if !e.known.Insert(a) {
		return false
	}
	e.country.Aliases = append(e.country.Aliases, a)
	if e.country.DisplayName == "" {
		e.country.DisplayName = a
	}
	claim(t.owners, a, id)
	claim(t.stripped, alias.StripArticle(a), id)
	claim(t.folded, alias.Fold(a), id)
	return true
}

func claim(index map[string]string, key, id string) {
	if key == "" {
		return
	}
	if _, taken := index[key]; !taken {
		index[key] = id
	}
}

// Mint creates a provisional entry for a name absent from the identity
// dataset. The id is built from the first three letters of the name, with a
// numeric suffix when that code is already taken.
func (t *Table) Mint(aliases []string) string {
	if len(aliases) == 0 {
		return ""
	}
	base := mintBase(aliases[0])
	id := base
	for n := 2; t.Has(id); n++ {
		id = base + strconv.Itoa(n)
	}
	t.Register(id, aliases, true)
	return id
}

func mintBase(name string) string {
	var b strings.Builder
	for _, r := range alias.Fold(name) {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() == 3 {
			break
		}
	}
	for b.Len() < 3 {
		b.WriteByte('X')
	}
	return b.String()
}

// Has reports whether id is registered.
func (t *Table) Has(id string) bool {
	_, ok := t.entries[id]
	return ok
}

// ByID returns a copy of the canonical country registered under id.
func (t *Table) ByID(id string) (domain.Country, bool) {
	e, ok := t.entries[id]
	if !ok {
		return domain.Country{}, false
	}
	c := e.country
	c.Aliases = append([]string(nil), e.country.Aliases...)
	return c, true
}

// DisplayName returns the display name of id, or "Unknown Country".
func (t *Table) DisplayName(id string) string {
	if e, ok := t.entries[id]; ok {
		return e.country.DisplayName
	}
	return "Unknown Country"
}

// Lookup finds the id owning the exact alias a.
func (t *Table) Lookup(a string) (string, bool) {
	id, ok := t.owners[alias.Squash(a)]
	return id, ok
}

// LookupStripped finds the id owning a once the article "the" is removed
// on both sides.
func (t *Table) LookupStripped(a string) (string, bool) {
	id, ok := t.stripped[alias.StripArticle(a)]
	return id, ok
}

// LookupFolded finds the id owning a regardless of case, diacritics and
// apostrophe style.
func (t *Table) LookupFolded(a string) (string, bool) {
	id, ok := t.folded[alias.Fold(a)]
	return id, ok
}

// IDs returns the registered ids in registration order.
func (t *Table) IDs() []string {
	return append([]string(nil), t.order...)
}

// Countries returns copies of all entries in registration order.
func (t *Table) Countries() []domain.Country {
	out := make([]domain.Country, 0, len(t.order))
	for _, id := range t.order {
		c, _ := t.ByID(id)
		out = append(out, c)
	}
	return out
}

// Len returns the number of registered ids.
func (t *Table) Len() int { return len(t.order) }

// Aliases returns a copy of the aliases of id in registration order.
func (t *Table) Aliases(id string) []string {
	e, ok := t.entries[id]
	if !ok {
		return nil
	}
	return append([]string(nil), e.country.Aliases...)
}

func (t *Table) aliases(id string) []string {
	return t.entries[id].country.Aliases
}
