package questionnaire

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// DefaultID is the id of the bundled obstetric intake questionnaire.
const DefaultID = "obstetric-intake"

// LoadFS walks the provided filesystem and parses JSON/YAML questionnaire
// files. When fsys is nil or holds no definition files the store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("questionnaire: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single JSON or YAML document. source names the document in
// error messages.
func Parse(data []byte, source string) (*Store, error) {
	store := newStore()
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Default loads the bundled questionnaire.
func Default() (Definition, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return Definition{}, err
	}
	def, ok := store.Definition(DefaultID)
	if !ok {
		return Definition{}, fmt.Errorf("questionnaire: embedded definition %q missing", DefaultID)
	}
	return def, nil
}

// Definition returns the questionnaire with the supplied id.
func (s *Store) Definition(id string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[id]
	return def, ok
}

// IDs lists the stored questionnaire ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.definitions))
	for id := range s.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any questionnaire.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

func newStore() *Store {
	return &Store{definitions: make(map[string]Definition)}
}

type documentFile struct {
	Questionnaires map[string]definitionFile `json:"questionnaires" yaml:"questionnaires"`
}

type definitionFile struct {
	Title    string               `json:"title" yaml:"title"`
	Subtitle string               `json:"subtitle" yaml:"subtitle"`
	Sections []Section            `json:"sections" yaml:"sections"`
	Fields   []Field              `json:"fields" yaml:"fields"`
	Rules    []validation.Rule    `json:"rules" yaml:"rules"`
	Bindings []visibility.Binding `json:"bindings" yaml:"bindings"`
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawID, raw := range doc.Questionnaires {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("questionnaire: file %s defines an empty questionnaire id", source)
		}
		if _, exists := s.definitions[id]; exists {
			return fmt.Errorf("questionnaire: duplicate questionnaire %q (file %s)", id, source)
		}
		def, err := normaliseDefinition(raw, id, source)
		if err != nil {
			return err
		}
		s.definitions[id] = def
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("questionnaire: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("questionnaire: parse %s: invalid JSON or YAML", source)
}

func normaliseDefinition(raw definitionFile, id, source string) (Definition, error) {
	def := Definition{
		ID:       id,
		Source:   source,
		Title:    strings.TrimSpace(raw.Title),
		Subtitle: strings.TrimSpace(raw.Subtitle),
	}

	sections, err := normaliseSections(raw.Sections, id, source)
	if err != nil {
		return Definition{}, err
	}
	def.Sections = sections

	known := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		known[section.ID] = struct{}{}
	}

	fieldNames := make(map[string]struct{}, len(raw.Fields))
	for _, field := range raw.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s) defines a field without a name", id, source)
		}
		if _, dup := fieldNames[field.Name]; dup {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s) defines duplicate field %q", id, source, field.Name)
		}
		if _, ok := known[field.Section]; !ok {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s) field %q references unknown section %q", id, source, field.Name, field.Section)
		}
		field, err = normaliseField(field)
		if err != nil {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s): %w", id, source, err)
		}
		fieldNames[field.Name] = struct{}{}
		def.Fields = append(def.Fields, field)
	}

	for _, rule := range raw.Rules {
		if _, ok := fieldNames[rule.Field]; !ok {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s) rule references unknown field %q", id, source, rule.Field)
		}
	}
	def.Rules = append([]validation.Rule(nil), raw.Rules...)

	for _, binding := range raw.Bindings {
		if _, ok := fieldNames[binding.Trigger]; !ok {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s) binding references unknown trigger %q", id, source, binding.Trigger)
		}
		if strings.TrimSpace(binding.Group) == "" {
			return Definition{}, fmt.Errorf("questionnaire: %q (file %s) binding for %q has no group", id, source, binding.Trigger)
		}
	}
	def.Bindings = append([]visibility.Binding(nil), raw.Bindings...)

	return def, nil
}

func normaliseSections(raw []Section, id, source string) ([]Section, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("questionnaire: %q (file %s) defines no sections", id, source)
	}

	out := make([]Section, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for idx, section := range raw {
		section.ID = strings.TrimSpace(section.ID)
		section.Title = strings.TrimSpace(section.Title)
		if section.ID == "" {
			section.ID = slug.Make(section.Title)
		}
		if section.ID == "" {
			return nil, fmt.Errorf("questionnaire: %q (file %s) section %d needs an id or title", id, source, idx)
		}
		if _, dup := seen[section.ID]; dup {
			return nil, fmt.Errorf("questionnaire: %q (file %s) defines duplicate section %q", id, source, section.ID)
		}
		seen[section.ID] = struct{}{}
		out = append(out, section)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sectionOrder(out[i], i) < sectionOrder(out[j], j)
	})
	return out, nil
}

// sectionOrder keeps unordered sections in declaration position.
func sectionOrder(section Section, position int) int {
	if section.Order != nil {
		return *section.Order
	}
	return position
}

func normaliseField(field Field) (Field, error) {
	field.Label = strings.TrimSpace(field.Label)
	if field.Label == "" {
		field.Label = strings.ReplaceAll(field.Name, "_", " ")
	}
	if field.Kind == "" {
		field.Kind = KindText
	}
	switch field.Kind {
	case KindText, KindNumber:
	case KindYesNo:
		if field.Default == "" {
			field.Default = ValueNo
		}
		if field.Default != ValueYes && field.Default != ValueNo {
			return Field{}, fmt.Errorf("field %q default must be %q or %q", field.Name, ValueYes, ValueNo)
		}
	case KindSelect:
		if len(field.Options) == 0 {
			return Field{}, fmt.Errorf("field %q of kind select needs options", field.Name)
		}
	default:
		return Field{}, fmt.Errorf("field %q has unknown kind %q", field.Name, field.Kind)
	}
	return field, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
