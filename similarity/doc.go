// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package similarity builds the whisky cluster matrix.

# Feature Sets

Every rating contributes namespaced tokens to its whisky's feature set:

	smell:Fruity  taste:Sweet  rating:4

Namespacing keeps a smell "Spicy" distinct from a taste "Spicy". Duplicate
tags collapse, so repeating a tag does not add weight.

# Matrix

	m := similarity.Build(items, ratings)
	m.Values[i][j] // Jaccard(items[i], items[j])

Values are in [0, 1] and symmetric. Two empty feature sets have similarity 0,
which includes the diagonal entry of a whisky nobody has rated yet.

Build is pure: it performs no I/O, keeps no state between calls and is safe
for concurrent use. Ratings that reference unknown items are ignored.
*/
package similarity
