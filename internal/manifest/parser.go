package manifest

import (
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Parse decodes .crates.toml text and returns its installed entries.
// The v1 section must exist and be a table; an empty v1 table is a valid
// manifest with no entries.
func Parse(raw string) (*Manifest, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Kind: ErrMalformed, Err: err}
	}

	section, ok := doc[SectionV1]
	if !ok {
		return nil, &ParseError{Kind: ErrMissingSection, Section: SectionV1}
	}
	table, ok := section.(map[string]interface{})
	if !ok {
		return nil, &ParseError{Kind: ErrWrongSectionType, Section: SectionV1}
	}

	m := &Manifest{Entries: make([]Entry, 0, len(table))}
	for key, value := range table {
		e := ParseEntryKey(key)
		e.Binaries = binaries(value)
		m.Entries = append(m.Entries, e)
	}
	sort.Slice(m.Entries, func(i, j int) bool {
		return m.Entries[i].Key < m.Entries[j].Key
	})
	return m, nil
}

// binaries extracts the string elements of an entry value. Anything else
// cargo may store there is ignored.
func binaries(value interface{}) []string {
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
