// Package resolver layers an optional project dictionary in front of the
// global dictionary.
package resolver

import (
	"codeberg.org/snonux/autotranslate/internal/dictionary"
)

// Resolver looks translations up in the project tier first and the global
// tier second, and records new translations into both.
type Resolver struct {
	global  *dictionary.Store
	project *dictionary.Store
}

// New creates a resolver. project may be nil, which disables the project tier.
func New(global, project *dictionary.Store) *Resolver {
	return &Resolver{
		global:  global,
		project: project,
	}
}

// UseProjectDict reports whether the project tier is enabled
func (r *Resolver) UseProjectDict() bool {
	return r.project != nil
}

// Global returns the global tier
func (r *Resolver) Global() *dictionary.Store {
	return r.global
}

// Project returns the project tier, or nil when it is disabled
func (r *Resolver) Project() *dictionary.Store {
	return r.project
}

// Resolve returns the recorded translation of text. A project tier entry
// always wins over the global one, even when they differ.
func (r *Resolver) Resolve(fromLang, toLang, text string) (string, bool) {
	langKey := dictionary.LangKey(fromLang, toLang)

	if r.project != nil && r.project.IsOpen() {
		if translation, ok := r.project.Lookup(langKey, text); ok {
			return translation, true
		}
	}

	return r.global.Lookup(langKey, text)
}

// Record stores translation in the global tier and, when enabled, in the
// project tier. The project tier is written even if its file failed to load.
func (r *Resolver) Record(fromLang, toLang, text, translation string) {
	langKey := dictionary.LangKey(fromLang, toLang)

	r.global.Insert(langKey, text, translation)
	if r.project != nil {
		r.project.Insert(langKey, text, translation)
	}
}

// Save writes every tier with pending writes. Counters are reset only after
// all writes succeeded.
func (r *Resolver) Save() error {
	var dirty []*dictionary.Store
	for _, s := range r.tiers() {
		if s.Dirty() {
			dirty = append(dirty, s)
		}
	}

	for _, s := range dirty {
		if err := s.WriteSnapshot(); err != nil {
			return err
		}
	}
	for _, s := range dirty {
		s.MarkClean()
	}
	return nil
}

func (r *Resolver) tiers() []*dictionary.Store {
	if r.project == nil {
		return []*dictionary.Store{r.global}
	}
	return []*dictionary.Store{r.global, r.project}
}
