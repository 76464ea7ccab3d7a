// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{ID: "1", Name: "Glenfiddich 12"},
		{ID: "2", Name: "Lagavulin 16"},
		{ID: "3", Name: "Macallan Sherry Oak"},
	}
}

func sampleRatings() []Rating {
	return []Rating{
		{ItemID: "1", Smell: []string{"Fruity"}, Taste: []string{"Sweet"}, Score: 4},
		{ItemID: "1", Smell: []string{"Fruity", "Floral"}, Taste: []string{"Creamy"}, Score: 5},
		{ItemID: "2", Smell: []string{"Smoky"}, Taste: []string{"Spicy"}, Score: 3},
		{ItemID: "2", Smell: []string{"Woody"}, Taste: []string{"Bitter"}, Score: 2},
		{ItemID: "3", Smell: []string{"Fruity"}, Taste: []string{"Sweet"}, Score: 4},
		{ItemID: "3", Smell: []string{"Woody"}, Taste: []string{"Spicy"}, Score: 3},
	}
}

func TestBuild_ScenarioA(t *testing.T) {
	items := []Item{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	ratings := []Rating{
		{ItemID: "1", Smell: []string{"Fruity"}, Taste: []string{"Sweet"}, Score: 4},
		{ItemID: "2", Smell: []string{"Smoky"}, Taste: []string{"Sweet"}, Score: 4},
	}

	m := Build(items, ratings)

	require.Len(t, m.Values, 2)
	assert.Equal(t, 0.5, m.Values[0][1])
	assert.Equal(t, 0.5, m.Values[1][0])
	assert.Equal(t, 1.0, m.Values[0][0])
	assert.Equal(t, 1.0, m.Values[1][1])
	assert.Equal(t, Label, m.Label)
}

func TestBuild_ScenarioB_IdenticalSets(t *testing.T) {
	items := []Item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	ratings := []Rating{
		{ItemID: "a", Smell: []string{"Peaty", "Smoky"}, Taste: []string{"Salty"}, Score: 5},
		{ItemID: "b", Smell: []string{"Smoky", "Peaty"}, Taste: []string{"Salty"}, Score: 5},
	}

	m := Build(items, ratings)
	assert.Equal(t, 1.0, m.Values[0][1])
}

func TestBuild_ScenarioC_DisjointSets(t *testing.T) {
	items := []Item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	ratings := []Rating{
		{ItemID: "a", Smell: []string{"Fruity"}, Taste: []string{"Sweet"}, Score: 5},
		{ItemID: "b", Smell: []string{"Smoky"}, Taste: []string{"Bitter"}, Score: 1},
	}

	m := Build(items, ratings)
	assert.Equal(t, 0.0, m.Values[0][1])
}

func TestBuild_ScenarioD_UnratedItem(t *testing.T) {
	items := append(sampleItems(), Item{ID: "4", Name: "Unrated"})

	m := Build(items, sampleRatings())

	last := len(items) - 1
	for i := range items {
		assert.Equal(t, 0.0, m.Values[last][i], "row entry %d", i)
		assert.Equal(t, 0.0, m.Values[i][last], "column entry %d", i)
	}
}

func TestBuild_Properties(t *testing.T) {
	items := sampleItems()
	m := Build(items, sampleRatings())

	for i := range items {
		for j := range items {
			v := m.Values[i][j]
			assert.Equal(t, v, m.Values[j][i], "symmetry at %d,%d", i, j)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.Equal(t, 1.0, m.Values[i][i], "self-similarity of %s", items[i].Name)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	first := Build(sampleItems(), sampleRatings())
	second := Build(sampleItems(), sampleRatings())
	assert.Equal(t, first.Values, second.Values)
}

func TestBuild_Empty(t *testing.T) {
	m := Build(nil, nil)
	assert.Empty(t, m.Values)

	m = Build([]Item{{ID: "x", Name: "X"}}, nil)
	require.Len(t, m.Values, 1)
	assert.Equal(t, 0.0, m.Values[0][0])
}

func TestBuildFeatureSets(t *testing.T) {
	items := []Item{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	ratings := []Rating{
		{ItemID: "1", Smell: []string{"Spicy", "Spicy"}, Taste: []string{"Spicy"}, Score: 3},
		{ItemID: "1", Smell: []string{"Spicy"}, Score: 3},
		{ItemID: "missing", Smell: []string{"Fruity"}, Score: 5},
	}

	sets := BuildFeatureSets(items, ratings)

	require.Len(t, sets, 2)
	assert.Equal(t, FeatureSet{
		"smell:Spicy": {},
		"taste:Spicy": {},
		"rating:3":    {},
	}, sets["1"])
	assert.Empty(t, sets["2"])
	_, ok := sets["missing"]
	assert.False(t, ok)
}

func TestJaccard(t *testing.T) {
	set := func(tokens ...string) FeatureSet {
		fs := FeatureSet{}
		for _, tok := range tokens {
			fs.add(tok)
		}
		return fs
	}

	tests := []struct {
		name     string
		a, b     FeatureSet
		expected float64
	}{
		{"both empty", set(), set(), 0.0},
		{"one empty", set("smell:Fruity"), set(), 0.0},
		{"identical", set("smell:Fruity", "rating:4"), set("rating:4", "smell:Fruity"), 1.0},
		{"half overlap", set("a", "b", "c"), set("b", "c", "d"), 0.5},
		{"subset", set("a"), set("a", "b", "c", "d"), 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Jaccard(tt.a, tt.b))
			assert.Equal(t, tt.expected, Jaccard(tt.b, tt.a))
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, ""},
		{0.5, "50%"},
		{1.0 / 3.0, "33%"},
		{0.666, "67%"},
		{1, "100%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Percent(tt.in))
	}
}

func TestMatrixCells(t *testing.T) {
	m := Matrix{Values: [][]float64{{1, 0.25}, {0.25, 0}}}
	cells := m.Cells()

	require.Len(t, cells, 2)
	assert.Equal(t, Cell{Value: 1, Percent: "100%"}, cells[0][0])
	assert.Equal(t, Cell{Value: 0.25, Percent: "25%"}, cells[1][0])
	assert.Equal(t, Cell{Value: 0, Percent: ""}, cells[1][1])
}

func TestBuild_DoesNotAliasItems(t *testing.T) {
	items := sampleItems()
	m := Build(items, sampleRatings())

	items[0] = Item{ID: "changed", Name: "Changed"}

	require.NotEmpty(t, m.Items)
	assert.Equal(t, "1", m.Items[0].ID)
	assert.Equal(t, "Glenfiddich 12", m.Items[0].Name)
}
