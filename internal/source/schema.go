package source

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

//go:embed schema/lessons.schema.json
var lessonSchemaJSON []byte

const lessonSchemaURL = "schema://lessons.schema.json"

var lessonSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(lessonSchemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse lesson schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(lessonSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(lessonSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// CheckSchema validates every lesson file of the given languages against the
// lesson file schema. Unlike RawLessons it reports files that cannot be
// parsed instead of skipping them.
func (s *FS) CheckSchema(ctx context.Context, langs []curriculum.Language) ([]curriculum.Issue, error) {
	schema, err := lessonSchema()
	if err != nil {
		return nil, err
	}

	var issues []curriculum.Issue
	for _, lang := range langs {
		files, err := s.files(lang.ID)
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if msg := s.checkFile(schema, name); msg != "" {
				issues = append(issues, curriculum.Issue{
					LanguageID: lang.ID,
					Where:      name,
					Message:    msg,
				})
			}
		}
	}
	return issues, nil
}

// checkFile returns a description of what is wrong with name, or "".
func (s *FS) checkFile(schema *jsonschema.Schema, name string) string {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return err.Error()
	}

	var doc any
	if err := decode(name, data, &doc); err != nil {
		return "Lesson file cannot be parsed: " + err.Error()
	}

	// The validator expects JSON-shaped values; YAML decodes integers and
	// maps differently.
	raw, err := json.Marshal(doc)
	if err != nil {
		return "Lesson file cannot be converted to JSON: " + err.Error()
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "Lesson file cannot be converted to JSON: " + err.Error()
	}

	if err := schema.Validate(parsed); err != nil {
		return "Lesson file does not match schema: " + strings.TrimSpace(err.Error())
	}
	return ""
}
