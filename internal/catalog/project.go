// Package catalog loads the portfolio project list and exposes it as a sorted,
// read-only snapshot for the page renderers.
package catalog

import (
	"sort"
	"strings"
)

// Project is one entry of the data file.
type Project struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Category    []string `json:"category" yaml:"category" validate:"min=1"`
	Tech        []string `json:"tech" yaml:"tech"`
	GitHub      string   `json:"github" yaml:"github"`
	Live        string   `json:"live" yaml:"live"`
	Featured    bool     `json:"featured" yaml:"featured"`
	Order       float64  `json:"order" yaml:"order"`
}

// HasLink reports whether the project has a live demo or a repository link.
func (p Project) HasLink() bool {
	return p.Live != "" || p.GitHub != ""
}

// CategoryAttr is the space-joined tag list used as the card's data-category.
func (p Project) CategoryAttr() string {
	return strings.Join(p.Category, " ")
}

// HasCategory reports exact membership of tag in the project's categories.
func (p Project) HasCategory(tag string) bool {
	for _, c := range p.Category {
		if c == tag {
			return true
		}
	}
	return false
}

// DefaultLabel is shown when none of a project's tags has a label.
const DefaultLabel = "Project"

var builtinOrder = []string{"fullstack", "cloud", "algorithm", "frontend"}

var builtinLabels = map[string]string{
	"fullstack": "Full Stack",
	"cloud":     "Cloud & DevOps",
	"algorithm": "Algorithms",
	"frontend":  "Frontend",
}

// LabelTable maps category tags to display labels. The first tag in table
// order that a project carries decides its label.
type LabelTable struct {
	order  []string
	labels map[string]string
}

// DefaultLabels returns the built-in table.
func DefaultLabels() LabelTable {
	return NewLabelTable(nil)
}

// NewLabelTable merges overrides from a data file into the built-in table.
// Known tags keep their priority; new tags follow in sorted order.
func NewLabelTable(overrides map[string]string) LabelTable {
	t := LabelTable{
		order:  append([]string(nil), builtinOrder...),
		labels: make(map[string]string, len(builtinLabels)+len(overrides)),
	}
	for k, v := range builtinLabels {
		t.labels[k] = v
	}
	var extra []string
	for tag, label := range overrides {
		tag = strings.TrimSpace(tag)
		label = strings.TrimSpace(label)
		if tag == "" || label == "" {
			continue
		}
		if _, known := t.labels[tag]; !known {
			extra = append(extra, tag)
		}
		t.labels[tag] = label
	}
	sort.Strings(extra)
	t.order = append(t.order, extra...)
	return t
}

// Label picks the display label for a set of tags.
func (t LabelTable) Label(tags []string) string {
	if t.labels == nil {
		t = DefaultLabels()
	}
	for _, tag := range t.order {
		for _, have := range tags {
			if have == tag {
				return t.labels[tag]
			}
		}
	}
	return DefaultLabel
}

// Text returns the label for a single tag.
func (t LabelTable) Text(tag string) (string, bool) {
	if t.labels == nil {
		t = DefaultLabels()
	}
	v, ok := t.labels[tag]
	return v, ok
}

// Tags lists the table's tags in priority order.
func (t LabelTable) Tags() []string {
	if t.order == nil {
		return append([]string(nil), builtinOrder...)
	}
	return append([]string(nil), t.order...)
}
