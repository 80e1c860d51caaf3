package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a data file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format from a file name or URL path.
func FormatFromPath(p string) Format {
	if i := strings.IndexAny(p, "?#"); i != -1 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the decoded data file before merging and sorting.
type Document struct {
	Projects   []Project
	ExtraPages []Project
	Categories LabelTable
}

// Decode parses a data file. Lists that are absent or not sequences decode
// as empty; a document that is not an object is a parse error.
func Decode(data []byte, format Format) (Document, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (Document, error) {
	var raw struct {
		Projects   json.RawMessage `json:"projects"`
		ExtraPages json.RawMessage `json:"extraPages"`
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, err
	}
	var doc Document
	var err error
	if doc.Projects, err = jsonList(raw.Projects); err != nil {
		return Document{}, fmt.Errorf("projects: %w", err)
	}
	if doc.ExtraPages, err = jsonList(raw.ExtraPages); err != nil {
		return Document{}, fmt.Errorf("extraPages: %w", err)
	}
	doc.Categories = NewLabelTable(jsonLabels(raw.Categories))
	return doc, nil
}

func jsonList(raw json.RawMessage) ([]Project, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}
	var out []Project
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func jsonLabels(raw json.RawMessage) map[string]string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil
	}
	out := make(map[string]string, len(entries))
	for tag, v := range entries {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[tag] = s
			continue
		}
		var obj struct {
			Label string `json:"label"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(v, &obj); err == nil {
			out[tag] = firstNonEmpty(obj.Label, obj.Name)
		}
	}
	return out
}

func decodeYAML(data []byte) (Document, error) {
	var raw struct {
		Projects   yaml.Node `yaml:"projects"`
		ExtraPages yaml.Node `yaml:"extraPages"`
		Categories yaml.Node `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, err
	}
	var doc Document
	var err error
	if doc.Projects, err = yamlList(&raw.Projects); err != nil {
		return Document{}, fmt.Errorf("projects: %w", err)
	}
	if doc.ExtraPages, err = yamlList(&raw.ExtraPages); err != nil {
		return Document{}, fmt.Errorf("extraPages: %w", err)
	}
	doc.Categories = NewLabelTable(yamlLabels(&raw.Categories))
	return doc, nil
}

func yamlList(n *yaml.Node) ([]Project, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nil
	}
	var out []Project
	if err := n.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func yamlLabels(n *yaml.Node) map[string]string {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	out := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			out[key.Value] = val.Value
		case yaml.MappingNode:
			var obj struct {
				Label string `yaml:"label"`
				Name  string `yaml:"name"`
			}
			if err := val.Decode(&obj); err == nil {
				out[key.Value] = firstNonEmpty(obj.Label, obj.Name)
			}
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks every record of both lists and reports the first failure.
func Validate(doc Document) error {
	lists := []struct {
		name  string
		items []Project
	}{
		{"projects", doc.Projects},
		{"extraPages", doc.ExtraPages},
	}
	for _, l := range lists {
		for i, p := range l.items {
			err := validate.Struct(p)
			if err == nil {
				continue
			}
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				fe := fieldErrs[0]
				return &SchemaError{List: l.name, Index: i, Field: fe.Field(), Rule: fe.Tag()}
			}
			return err
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
