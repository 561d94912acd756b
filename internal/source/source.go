// Package source loads authored lesson content from lesson files, one
// directory per language.
package source

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

//go:embed data
var builtinData embed.FS

// FS reads lesson files laid out as <language>/<name>.{yaml,yml,json}.
// Files are read in name order and their lessons concatenated. Fields of
// the wrong type are left empty for the builder to default; only a file that
// cannot be parsed at all is skipped, with a warning.
type FS struct {
	fsys fs.FS
	log  *slog.Logger
}

// New creates a source over fsys.
func New(fsys fs.FS, log *slog.Logger) *FS {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FS{fsys: fsys, log: log}
}

// Builtin returns a source over the lesson content compiled into the binary.
func Builtin(log *slog.Logger) *FS {
	sub, err := fs.Sub(builtinData, "data")
	if err != nil {
		panic(err)
	}
	return New(sub, log)
}

// Dir returns a source over a lesson directory on disk.
func Dir(dir string, log *slog.Logger) (*FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("lesson directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("lesson directory: %s is not a directory", dir)
	}
	return New(os.DirFS(dir), log), nil
}

// RawLessons returns the authored lessons of languageID. A language without
// a directory has no authored lessons.
func (s *FS) RawLessons(ctx context.Context, languageID string) ([]curriculum.RawLesson, error) {
	files, err := s.files(languageID)
	if err != nil {
		return nil, err
	}

	var lessons []curriculum.RawLesson
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var doc any
		if err := decode(name, data, &doc); err != nil {
			s.log.WarnContext(ctx, "skipping malformed lesson file",
				"file", name,
				"error", err,
			)
			continue
		}
		parsed, ok := lessonsFrom(doc)
		if !ok {
			s.log.WarnContext(ctx, "skipping malformed lesson file",
				"file", name,
				"error", "no lesson list",
			)
			continue
		}
		lessons = append(lessons, parsed...)
	}
	return lessons, nil
}

// files lists the lesson files of languageID in name order.
func (s *FS) files(languageID string) ([]string, error) {
	if languageID == "" || strings.ContainsAny(languageID, `/\.`) {
		return nil, fmt.Errorf("invalid language id %q", languageID)
	}
	entries, err := fs.ReadDir(s.fsys, languageID)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", languageID, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isLessonFile(e.Name()) {
			continue
		}
		names = append(names, path.Join(languageID, e.Name()))
	}
	return names, nil
}

func isLessonFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// decode parses a lesson file by extension.
func decode(name string, data []byte, v any) error {
	if strings.EqualFold(path.Ext(name), ".json") {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}
