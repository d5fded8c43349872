// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import "github.com/moviebot-dev/moviebot/internal/models"

// CandidatePool is an insertion-ordered set of movies keyed by id.
//
// Putting an id that is already present replaces the stored movie but keeps
// its original position. The pool never grows past its capacity.
type CandidatePool struct {
	capacity int
	order    []int
	movies   map[int]models.Movie
}

// NewCandidatePool returns an empty pool that holds at most capacity movies.
func NewCandidatePool(capacity int) *CandidatePool {
	if capacity < 0 {
		capacity = 0
	}
	return &CandidatePool{
		capacity: capacity,
		order:    make([]int, 0, capacity),
		movies:   make(map[int]models.Movie, capacity),
	}
}

// Put inserts or replaces m. It returns false when m is new and the pool is
// already full.
func (p *CandidatePool) Put(m *models.Movie) bool {
	if _, ok := p.movies[m.ID]; ok {
		p.movies[m.ID] = *m
		return true
	}
	if p.Full() {
		return false
	}
	p.order = append(p.order, m.ID)
	p.movies[m.ID] = *m
	return true
}

// Full reports whether the pool is at capacity.
func (p *CandidatePool) Full() bool {
	return len(p.order) >= p.capacity
}

// Len returns the number of movies in the pool.
func (p *CandidatePool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Contains reports whether id is in the pool.
func (p *CandidatePool) Contains(id int) bool {
	_, ok := p.movies[id]
	return ok
}

// Movies returns the pooled movies in insertion order.
func (p *CandidatePool) Movies() []models.Movie {
	if p == nil {
		return []models.Movie{}
	}
	out := make([]models.Movie, len(p.order))
	for i, id := range p.order {
		out[i] = p.movies[id]
	}
	return out
}
