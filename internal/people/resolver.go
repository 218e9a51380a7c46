package people

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Lookup fetches a person's profile from the live workspace directory.
// The boolean is false when the identifier exists but resolves to nothing
// usable, such as a bot account. That outcome is cached like a hit.
type Lookup interface {
	LookupUser(ctx context.Context, id string) (Person, bool, error)
}

// IsUserID reports whether s has the shape of a Slack user identifier:
// U or W prefix followed by uppercase alphanumerics.
func IsUserID(s string) bool {
	if len(s) < 9 {
		return false
	}
	if s[0] != 'U' && s[0] != 'W' {
		return false
	}
	for _, r := range s[1:] {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Resolver turns author identifiers into display names. Resolution is
// layered: per-run cache, then the static directory, then a live lookup.
// Failed and bot lookups are cached as negative entries so each identifier
// costs at most one API call per run.
type Resolver struct {
	dir    *Directory
	lookup Lookup
	logger *zap.Logger

	// nil value marks a negative resolution.
	cache map[string]*Person
}

// NewResolver builds a resolver over the static directory and an optional
// live lookup. A nil lookup disables the live layer.
func NewResolver(dir *Directory, lookup Lookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		dir:    dir,
		lookup: lookup,
		logger: logger,
		cache:  make(map[string]*Person),
	}
}

// DisplayName resolves an identifier to a display name. The boolean is
// false when nothing better than the raw identifier is known.
func (r *Resolver) DisplayName(ctx context.Context, id string) (string, bool) {
	p, ok := r.Resolve(ctx, id)
	if !ok || p.DisplayName == "" {
		return "", false
	}
	return p.DisplayName, true
}

// Resolve maps an identifier to a person record. The identifier may be a
// Slack user ID, an email address, or a literal display name.
func (r *Resolver) Resolve(ctx context.Context, id string) (Person, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Person{}, false
	}

	if cached, hit := r.cache[id]; hit {
		if cached == nil {
			return Person{}, false
		}
		return *cached, true
	}

	p, ok := r.resolveUncached(ctx, id)
	if ok {
		r.cache[id] = &p
	} else {
		r.cache[id] = nil
	}
	return p, ok
}

func (r *Resolver) resolveUncached(ctx context.Context, id string) (Person, bool) {
	if !IsUserID(id) {
		// Not an ID: treat it as an email or a literal display name.
		if ValidEmail(id) {
			if p, ok := r.dir.ByEmail(id); ok {
				return p, true
			}
			return Person{Email: id, DisplayName: id}, true
		}
		if p, ok := r.dir.ByName(id); ok {
			return p, true
		}
		// A name we have no record for still names the person.
		return Person{DisplayName: id}, true
	}

	if p, ok := r.dir.ByID(id); ok {
		return p, true
	}

	if r.lookup == nil {
		return Person{}, false
	}

	p, ok, err := r.lookup.LookupUser(ctx, id)
	if err != nil {
		r.logger.Warn("User lookup failed", zap.String("user", id), zap.Error(err))
		return Person{}, false
	}
	if !ok {
		r.logger.Debug("User resolved to nothing usable", zap.String("user", id))
		return Person{}, false
	}
	return p, true
}

// CachedPeople returns every positively resolved person from this run,
// for writing back to the reference files.
func (r *Resolver) CachedPeople() []Person {
	var out []Person
	seen := make(map[string]bool)
	for _, p := range r.cache {
		if p == nil || p.SlackID == "" || seen[p.SlackID] {
			continue
		}
		seen[p.SlackID] = true
		out = append(out, *p)
	}
	return out
}
