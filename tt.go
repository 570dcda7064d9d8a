package main

import (
	"sort"
	"sync"
)

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

func (f TTFlag) String() string {
	switch f {
	case TTLower:
		return "lower"
	case TTUpper:
		return "upper"
	default:
		return "exact"
	}
}

// TTEntry caches a search result for one table key. Flag records how
// the stored score relates to the true minimax value given the window
// that was active when it was computed. Scores are relative to the side
// the search optimizes for, so the key must encode that side along with
// the position and mover.
type TTEntry struct {
	Key   uint64
	Depth int
	Score int
	Flag  TTFlag
	Hits  uint32
}

// TTStats are diagnostic counters; they never affect search results.
type TTStats struct {
	Probes uint64 `json:"probes"`
	Hits   uint64 `json:"hits"`
	Stores uint64 `json:"stores"`
}

// TranspositionTable maps position keys to bound entries. It is owned by
// the game session, mutated by at most one search at a time, and grows
// unbounded within a game unless maxEntries caps it. The RWMutex exists
// for the cache-inspection API, which reads while the AI worker searches.
type TranspositionTable struct {
	mu         sync.RWMutex
	entries    map[uint64]TTEntry
	maxEntries int
	stats      TTStats
}

func NewTranspositionTable(maxEntries int) *TranspositionTable {
	return &TranspositionTable{
		entries:    make(map[uint64]TTEntry),
		maxEntries: maxEntries,
	}
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.stats.Probes++
	entry, ok := tt.entries[key]
	if !ok {
		return TTEntry{}, false
	}
	tt.stats.Hits++
	entry.Hits++
	tt.entries[key] = entry
	return entry, true
}

// Store always overwrites an existing entry for the key. When maxEntries
// is set and the table is full, new keys are dropped rather than ranked
// for replacement; the default is unlimited.
func (tt *TranspositionTable) Store(key uint64, depth, score int, flag TTFlag) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.stats.Stores++
	prev, exists := tt.entries[key]
	if !exists && tt.maxEntries > 0 && len(tt.entries) >= tt.maxEntries {
		return
	}
	hits := uint32(0)
	if exists {
		hits = prev.Hits
	}
	tt.entries[key] = TTEntry{Key: key, Depth: depth, Score: score, Flag: flag, Hits: hits}
}

// Clear wipes all entries and counters; called between games so stale
// keys from a finished game are never consulted again.
func (tt *TranspositionTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.entries = make(map[uint64]TTEntry)
	tt.stats = TTStats{}
}

// SetMaxEntries updates the growth cap; 0 removes it. Entries already
// stored are kept even when they exceed the new cap.
func (tt *TranspositionTable) SetMaxEntries(n int) {
	tt.mu.Lock()
	tt.maxEntries = n
	tt.mu.Unlock()
}

func (tt *TranspositionTable) MaxEntries() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.maxEntries
}

func (tt *TranspositionTable) Count() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.entries)
}

func (tt *TranspositionTable) Stats() TTStats {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.stats
}

func (tt *TranspositionTable) TopEntriesByHits(offset, limit int) ([]TTEntry, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	tt.mu.RLock()
	entries := make([]TTEntry, 0, len(tt.entries))
	for _, entry := range tt.entries {
		entries = append(entries, entry)
	}
	tt.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Hits != entries[j].Hits {
			return entries[i].Hits > entries[j].Hits
		}
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth > entries[j].Depth
		}
		return entries[i].Key < entries[j].Key
	})
	total := len(entries)
	if offset >= total {
		return []TTEntry{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return entries[offset:end], total
}
