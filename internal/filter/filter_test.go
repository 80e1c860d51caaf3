package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/render"
)

func cards() []render.Card {
	return []render.Card{
		{Name: "a", Tags: []string{"fullstack", "cloud"}},
		{Name: "b", Tags: []string{"frontend"}},
		{Name: "c", Tags: []string{"algorithm"}},
		{Name: "d", Tags: []string{"fullstack"}},
	}
}

func visible(cs []render.Card) []string {
	var out []string
	for _, c := range cs {
		if !c.Hidden {
			out = append(out, c.Name)
		}
	}
	return out
}

func TestControllerStartsOnAll(t *testing.T) {
	t.Parallel()

	c := NewController(catalog.DefaultLabels())
	require.Equal(t, All, c.Active())
	controls := c.Controls()
	require.Len(t, controls, 5)
	require.Equal(t, All, controls[0].Tag)
	require.True(t, controls[0].Active)
	require.Equal(t, "/projects", controls[0].Href)
	require.Equal(t, "/projects/grid", controls[0].HXGet)
	require.Equal(t, "Full Stack", controls[1].Label)
	require.Equal(t, "/projects?filter=fullstack", controls[1].Href)
	require.Equal(t, "/projects/grid?filter=fullstack", controls[1].HXGet)

	cs := cards()
	c.Apply(cs)
	require.Equal(t, []string{"a", "b", "c", "d"}, visible(cs))
	for _, card := range cs {
		require.False(t, card.Animate)
	}
}

func TestSelectShowsExactTokenMatches(t *testing.T) {
	t.Parallel()

	c := NewController(catalog.DefaultLabels())
	require.Equal(t, "fullstack", c.Select("fullstack"))

	active := 0
	for _, ctl := range c.Controls() {
		if ctl.Active {
			active++
			require.Equal(t, "fullstack", ctl.Tag)
		}
	}
	require.Equal(t, 1, active)

	cs := cards()
	c.Apply(cs)
	require.Equal(t, []string{"a", "d"}, visible(cs))
	require.True(t, cs[0].Animate)
	require.False(t, cs[1].Animate)
}

func TestSelectAllAfterFilterShowsEverything(t *testing.T) {
	t.Parallel()

	c := NewController(catalog.DefaultLabels())
	c.Select("cloud")
	c.Select("all")
	cs := cards()
	c.Apply(cs)
	require.Equal(t, []string{"a", "b", "c", "d"}, visible(cs))
	require.True(t, cs[2].Animate)
}

func TestUnknownTagFallsBackToAll(t *testing.T) {
	t.Parallel()

	c := NewController(catalog.DefaultLabels())
	require.Equal(t, All, c.Activate("stack"))
	require.Equal(t, All, c.Activate(""))
	require.Equal(t, "frontend", c.Activate(" frontend "))
	require.Equal(t, All, c.Activate("Frontend"))
}

func TestMatchesIsTokenMembership(t *testing.T) {
	t.Parallel()

	require.True(t, Matches(All, nil))
	require.True(t, Matches("cloud", []string{"fullstack", "cloud"}))
	require.False(t, Matches("stack", []string{"fullstack"}))
	require.False(t, Matches("cloud", nil))
}

func TestSelectMixedCaseTag(t *testing.T) {
	t.Parallel()

	c := NewController(catalog.NewLabelTable(map[string]string{"DevOps": "Dev Ops"}))
	require.Equal(t, "DevOps", c.Select("DevOps"))

	cs := []render.Card{
		{Name: "pipeline", Tags: []string{"DevOps"}},
		{Name: "site", Tags: []string{"frontend"}},
	}
	c.Apply(cs)
	require.Equal(t, []string{"pipeline"}, visible(cs))
	require.True(t, cs[0].Animate)
}

func TestControlsIncludeLoadedCategories(t *testing.T) {
	t.Parallel()

	c := NewController(catalog.NewLabelTable(map[string]string{"mobile": "Mobile"}))
	require.True(t, c.has("mobile"))
	require.Equal(t, "mobile", c.Activate("mobile"))
}
