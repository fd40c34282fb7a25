package curation

import (
	"fmt"
	"sort"
	"strings"
)

// Entity is a tracked organization or product recognized by a set of
// name aliases.
type Entity struct {
	ID      string
	Aliases []string
}

// EntityRegistry maps entity identifiers to their surface-form aliases.
// It is built once at startup and read-only afterwards, so it is safe
// to share across concurrent scoring calls.
type EntityRegistry struct {
	entities []registryEntry
}

type registryEntry struct {
	id      string
	aliases []string // lowercased
}

// NewEntityRegistry validates and indexes the given entities. Aliases
// are matched as case-insensitive substrings. Duplicate identifiers and
// entities without usable aliases are rejected.
func NewEntityRegistry(entities []Entity) (EntityRegistry, error) {
	reg := EntityRegistry{entities: make([]registryEntry, 0, len(entities))}
	ids := make(map[string]struct{}, len(entities))

	for _, entity := range entities {
		id := strings.TrimSpace(entity.ID)
		if id == "" {
			return EntityRegistry{}, fmt.Errorf("entity with empty identifier")
		}
		if _, dup := ids[id]; dup {
			return EntityRegistry{}, fmt.Errorf("duplicate entity identifier %q", id)
		}

		aliases := make([]string, 0, len(entity.Aliases))
		for _, alias := range entity.Aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if alias != "" {
				aliases = append(aliases, alias)
			}
		}
		if len(aliases) == 0 {
			return EntityRegistry{}, fmt.Errorf("entity %q has no aliases", id)
		}

		ids[id] = struct{}{}
		reg.entities = append(reg.entities, registryEntry{id: id, aliases: aliases})
	}

	return reg, nil
}

// Match returns the identifiers of all entities with at least one alias
// contained in text, sorted for reproducible output. Text must already
// be lowercased.
func (r EntityRegistry) Match(text string) []string {
	var ids []string
	for _, entity := range r.entities {
		for _, alias := range entity.aliases {
			if strings.Contains(text, alias) {
				ids = append(ids, entity.id)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// ContainsAny reports whether any alias of any entity appears in text.
// Text must already be lowercased.
func (r EntityRegistry) ContainsAny(text string) bool {
	for _, entity := range r.entities {
		for _, alias := range entity.aliases {
			if strings.Contains(text, alias) {
				return true
			}
		}
	}
	return false
}

// Len returns the number of registered entities.
func (r EntityRegistry) Len() int {
	return len(r.entities)
}
