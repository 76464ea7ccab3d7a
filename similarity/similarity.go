// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package similarity

import (
	"slices"
	"strconv"
)

// Label describes how matrix values were computed, for display next to the grid.
const Label = "Jaccard similarity on smell, taste and rating"

// Feature namespaces. Identical strings from different fields never collide.
const (
	nsSmell  = "smell:"
	nsTaste  = "taste:"
	nsRating = "rating:"
)

// Item is a rateable entity (a whisky)
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rating is one participant's smell tags, taste tags and score for one item
type Rating struct {
	ItemID string
	Smell  []string
	Taste  []string
	Score  int
}

// FeatureSet is the namespaced union of all tags and scores recorded for an item
type FeatureSet map[string]struct{}

func (fs FeatureSet) add(token string) {
	fs[token] = struct{}{}
}

// Matrix holds pairwise similarities in the same order as Items.
type Matrix struct {
	Label  string      `json:"label"`
	Items  []Item      `json:"whiskies"`
	Values [][]float64 `json:"values"`
}

// BuildFeatureSets derives one FeatureSet per item from the ratings.
// Items without ratings get an empty set. Ratings for unknown items are skipped.
func BuildFeatureSets(items []Item, ratings []Rating) map[string]FeatureSet {
	sets := make(map[string]FeatureSet, len(items))
	for _, item := range items {
		sets[item.ID] = FeatureSet{}
	}

	for _, r := range ratings {
		fs, ok := sets[r.ItemID]
		if !ok {
			continue
		}
		for _, s := range r.Smell {
			fs.add(nsSmell + s)
		}
		for _, t := range r.Taste {
			fs.add(nsTaste + t)
		}
		fs.add(nsRating + strconv.Itoa(r.Score))
	}

	return sets
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b FeatureSet) float64 {
	// iterate the smaller set
	if len(a) > len(b) {
		a, b = b, a
	}

	inter := 0
	for token := range a {
		if _, ok := b[token]; ok {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// Build computes the full N×N similarity matrix for items.
// Feature sets are rebuilt from ratings on every call.
func Build(items []Item, ratings []Rating) Matrix {
	sets := BuildFeatureSets(items, ratings)

	values := make([][]float64, len(items))
	for i := range items {
		values[i] = make([]float64, len(items))
	}

	for i := range items {
		for j := i; j < len(items); j++ {
			sim := Jaccard(sets[items[i].ID], sets[items[j].ID])
			values[i][j] = sim
			values[j][i] = sim
		}
	}

	return Matrix{
		Label:  Label,
		Items:  slices.Clone(items),
		Values: values,
	}
}
