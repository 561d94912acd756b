package answer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed variations/*.yaml
var variationFiles embed.FS

// variationFile is the on-disk form of a language's variant table.
type variationFile struct {
	Language   string `yaml:"language"`
	Variations Table  `yaml:"variations"`
}

// LoadTables reads every *.yaml variant table in fsys, keyed by language id.
func LoadTables(fsys fs.FS) (map[string]Table, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	tables := make(map[string]Table, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var vf variationFile
		if err := yaml.Unmarshal(data, &vf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		lang := vf.Language
		if lang == "" {
			lang = name[:len(name)-len(path.Ext(name))]
		}
		if tables[lang] == nil {
			tables[lang] = make(Table)
		}
		for k, v := range vf.Variations {
			tables[lang][k] = append(tables[lang][k], v...)
		}
	}
	return tables, nil
}

var builtin = sync.OnceValue(func() map[string]*Matcher {
	sub, err := fs.Sub(variationFiles, "variations")
	if err != nil {
		panic(err)
	}
	tables, err := LoadTables(sub)
	if err != nil {
		panic(fmt.Sprintf("answer: embedded variation tables: %v", err))
	}
	matchers := make(map[string]*Matcher, len(tables))
	for lang, t := range tables {
		matchers[lang] = NewMatcher(t)
	}
	return matchers
})

// ForLanguage returns the matcher for languageID, using the built-in
// variant table when one exists.
func ForLanguage(languageID string) *Matcher {
	if m, ok := builtin()[languageID]; ok {
		return m
	}
	return NewMatcher()
}
