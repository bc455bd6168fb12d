package translation

import "codeberg.org/snonux/autotranslate/internal/dictionary"

// Snapshot is a read-only view of the translator state for diagnostics
type Snapshot struct {
	ConfFile             string             `json:"confFile"`
	GlobalDictFile       string             `json:"globalDictFile"`
	UseProjectDict       bool               `json:"useProjectDict"`
	ProjectDictFile      string             `json:"projectDictFile,omitempty"`
	TranslatorProvider   string             `json:"translatorProvider"`
	AutomaticTranslation bool               `json:"automaticTranslation"`
	GlobalDict           dictionary.Entries `json:"globalDict"`
	ProjectDict          dictionary.Entries `json:"projectDict,omitempty"`
}

// Config returns a snapshot; the dictionaries in it are copies
func (t *Translator) Config() Snapshot {
	s := Snapshot{
		ConfFile:             t.paths.ConfigFile,
		GlobalDictFile:       t.paths.GlobalDictFile,
		UseProjectDict:       t.resolver.UseProjectDict(),
		ProjectDictFile:      t.paths.ProjectDictFile,
		TranslatorProvider:   t.provider.Name(),
		AutomaticTranslation: t.automatic,
		GlobalDict:           t.resolver.Global().Snapshot(),
	}
	if project := t.resolver.Project(); project != nil {
		s.ProjectDict = project.Snapshot()
	}
	if s.GlobalDictFile == "" {
		s.GlobalDictFile = t.resolver.Global().Path()
	}
	return s
}
