// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package textvec

import (
	"errors"
	"math"
	"sort"
)

// DefaultMaxFeatures is used when a Vectorizer is built with a non-positive
// feature bound.
const DefaultMaxFeatures = 5000

// ErrEmptyVocabulary is returned by FitTransform when no document contains
// a usable term.
var ErrEmptyVocabulary = errors.New("textvec: empty vocabulary")

// Vector is a sparse, L2-normalized TF-IDF vector. Indices are sorted
// ascending and index into the vocabulary of the FitTransform call that
// produced it.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero terms.
func (v Vector) Len() int { return len(v.Indices) }

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Vectorizer builds TF-IDF vectors over a corpus. It keeps no state between
// calls and is safe for concurrent use.
type Vectorizer struct {
	// MaxFeatures bounds the vocabulary size.
	MaxFeatures int
}

// NewVectorizer returns a Vectorizer with the given vocabulary bound.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

type termStat struct {
	term  string
	count int // occurrences across the corpus
	df    int // documents containing the term
}

// FitTransform learns a vocabulary from corpus and returns one vector per
// document, in corpus order. Blank documents get an empty vector.
func (v *Vectorizer) FitTransform(corpus []string) ([]Vector, error) {
	docs := make([][]string, len(corpus))
	stats := make(map[string]*termStat)

	for i, text := range corpus {
		docs[i] = Tokenize(text)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			st, ok := stats[tok]
			if !ok {
				st = &termStat{term: tok}
				stats[tok] = st
			}
			st.count++
			if _, dup := seen[tok]; !dup {
				seen[tok] = struct{}{}
				st.df++
			}
		}
	}

	if len(stats) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := v.selectVocabulary(stats)
	n := float64(len(corpus))
	idf := make([]float64, len(vocab))
	index := make(map[string]int, len(vocab))
	for i, st := range vocab {
		index[st.term] = i
		idf[i] = math.Log((1+n)/(1+float64(st.df))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tokens := range docs {
		vectors[i] = buildVector(tokens, index, idf)
	}
	return vectors, nil
}

// selectVocabulary keeps the MaxFeatures most frequent terms and orders the
// result alphabetically, which fixes the term indices.
func (v *Vectorizer) selectVocabulary(stats map[string]*termStat) []*termStat {
	all := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		all = append(all, st)
	}

	limit := v.MaxFeatures
	if limit <= 0 {
		limit = DefaultMaxFeatures
	}
	if len(all) > limit {
		sort.Slice(all, func(i, j int) bool {
			if all[i].count != all[j].count {
				return all[i].count > all[j].count
			}
			return all[i].term < all[j].term
		})
		all = all[:limit]
	}

	sort.Slice(all, func(i, j int) bool { return all[i].term < all[j].term })
	return all
}

func buildVector(tokens []string, index map[string]int, idf []float64) Vector {
	tf := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			tf[i]++
		}
	}
	if len(tf) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(tf))
	for i := range tf {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var sumSq float64
	for k, i := range indices {
		w := float64(tf[i]) * idf[i]
		values[k] = w
		sumSq += w * w
	}
	norm := math.Sqrt(sumSq)
	for k := range values {
		values[k] /= norm
	}
	return Vector{Indices: indices, Values: values}
}

// Cosine returns the cosine similarity of a and b. Empty vectors have
// similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}

	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}

	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (na * nb)
	// clamp rounding noise
	switch {
	case sim > 1:
		return 1
	case sim < 0:
		return 0
	}
	return sim
}
