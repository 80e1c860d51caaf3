// Package render turns catalog records into the card and row fragments used
// by the projects and landing pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/Zachkp/portfolio/internal/catalog"
)

const (
	// RowDescriptionLimit caps the description shown in a row, in characters.
	RowDescriptionLimit = 80
	// RowTechLimit caps the tech tags shown in a row.
	RowTechLimit = 4
	ellipsis     = "..."
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var fragments = template.Must(template.New("fragments").ParseFS(templateFS, "templates/*.tmpl"))

// Card is the view model of a grid card.
type Card struct {
	Tags        []string
	Category    string
	Label       string
	Name        string
	Description template.HTML
	Tech        []string
	Live        string
	GitHub      string
	HasLink     bool
	Hidden      bool
	Animate     bool
}

// Row is the view model of a compact landing-page row.
type Row struct {
	Href        string
	External    bool
	Ordinal     string
	Name        string
	TechLine    string
	Description string
}

// Renderer builds fragments with a fixed label table.
type Renderer struct {
	labels catalog.LabelTable
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a renderer that labels cards with labels.
func New(labels catalog.LabelTable) *Renderer {
	return &Renderer{
		labels: labels,
		md: goldmark.New(
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
		policy: descriptionPolicy(),
	}
}

func descriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// CardView maps a record to its card view model.
func (r *Renderer) CardView(p catalog.Project) Card {
	return Card{
		Tags:        append([]string(nil), p.Category...),
		Category:    p.CategoryAttr(),
		Label:       r.labels.Label(p.Category),
		Name:        p.Name,
		Description: r.markdown(p.Description),
		Tech:        append([]string(nil), p.Tech...),
		Live:        p.Live,
		GitHub:      p.GitHub,
		HasLink:     p.HasLink(),
	}
}

// RowView maps a record and its zero-based display index to a row view model.
func (r *Renderer) RowView(p catalog.Project, index int) Row {
	href := Target(p)
	tech := p.Tech
	if len(tech) > RowTechLimit {
		tech = tech[:RowTechLimit]
	}
	return Row{
		Href:        href,
		External:    strings.HasPrefix(href, "http"),
		Ordinal:     Ordinal(index),
		Name:        p.Name,
		TechLine:    strings.Join(tech, " / "),
		Description: Truncate(p.Description, RowDescriptionLimit),
	}
}

// Card renders the grid fragment for p.
func (r *Renderer) Card(p catalog.Project) (template.HTML, error) {
	return r.CardMarkup(r.CardView(p))
}

// CardMarkup renders an already built card view, e.g. after filtering.
func (r *Renderer) CardMarkup(c Card) (template.HTML, error) {
	return execute("card", c)
}

// Row renders the list fragment for p at display position index.
func (r *Renderer) Row(p catalog.Project, index int) (template.HTML, error) {
	return execute("row", r.RowView(p, index))
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// Target picks where a row links: live demo, then repository, then "#".
func Target(p catalog.Project) string {
	switch {
	case p.Live != "":
		return p.Live
	case p.GitHub != "":
		return p.GitHub
	default:
		return "#"
	}
}

// Ordinal formats a zero-based index as a two-digit, one-based ordinal.
func Ordinal(index int) string {
	return fmt.Sprintf("%02d", index+1)
}

// Truncate shortens s to n characters and appends an ellipsis only when
// something was cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + ellipsis
}
