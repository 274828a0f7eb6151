//
// corvid - UCI chess engine
//
// MIT License
//
// Copyright (c) 2020-2026 corvid contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements the shared transposition table: a
// fixed-size, direct-mapped array of 4-entry clusters keyed by the low bits
// of the position's Zobrist hash. It is safe for concurrent Probe/Store from
// multiple search workers without locking - a torn read at the
// byte level can at worst return a slightly stale or inconsistent entry,
// which Probe already has to tolerate via the key check. Resize and Clear
// are NOT safe to call concurrently with Probe/Store and must only run
// between searches.
package transpositiontable

import (
	"math"
	"sync"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/util"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB is the largest hash size UCI's Hash option permits.
const MaxSizeInMB = 65_536

// clusterSize is the number of entries sharing one hash index, the 64-byte
// (4*16-byte) cluster: a cache-line-sized probe only
// ever touches one cluster.
const clusterSize = 4

// cluster is clusterSize entries sharing one index; a Probe/Store scans all
// four looking for a key match or, failing that, the lowest-quality slot.
type cluster = [clusterSize]TtEntry

// Table is the shared transposition table.
type Table struct {
	log         *logging.Logger
	data        []cluster
	indexMask   uint64
	generation  uint16
	entries     uint64
	Stats       Stats
}

// Stats holds running usage counters, reset on Clear.
type Stats struct {
	Puts       uint64
	Collisions uint64
	Updates    uint64
	Probes     uint64
	Hits       uint64
	Misses     uint64
}

// NewTable creates a Table sized to sizeInMByte (clamped to MaxSizeInMB),
// rounding down to the nearest power-of-two number of clusters.
func NewTable(sizeInMByte int) *Table {
	t := &Table{log: myLogging.GetLog("tt")}
	t.Resize(sizeInMByte)
	return t
}

// Resize rebuilds the table for a new size in megabytes, discarding all
// entries. Not safe to call while a search is probing/storing.
func (t *Table) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		t.log.Warning(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	sizeInByte := uint64(sizeInMByte) * 1024 * 1024
	clusterBytes := uint64(clusterSize * TtEntrySize)
	numClusters := uint64(0)
	if sizeInByte >= clusterBytes {
		numClusters = 1 << uint64(math.Floor(math.Log2(float64(sizeInByte/clusterBytes))))
	}

	t.indexMask = 0
	if numClusters > 0 {
		t.indexMask = numClusters - 1
	}
	t.data = make([]cluster, numClusters)
	t.entries = 0
	t.Stats = Stats{}

	t.log.Info(out.Sprintf("TT resized to %d MB, %d clusters (%d entries, %d bytes each) (requested %d MB)",
		numClusters*clusterBytes/(1024*1024), numClusters, numClusters*clusterSize, clusterBytes, sizeInMByte))
	t.log.Debug(util.MemStat())
}

// Clear wipes all entries without resizing, and is parallelized across
// config.Settings.TT.Threads workers, since zeroing a multi-gigabyte hash table on
// ucinewgame can otherwise take a noticeable fraction of a second.
func (t *Table) Clear() {
	if len(t.data) == 0 {
		return
	}
	workers := config.Settings.TT.Threads
	if workers < 1 {
		workers = 1
	}
	if workers > len(t.data) {
		workers = len(t.data)
	}
	slice := len(t.data) / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * slice
		end := start + slice
		if i == workers-1 {
			end = len(t.data)
		}
		go func(start, end int) {
			defer wg.Done()
			var zero cluster
			for n := start; n < end; n++ {
				t.data[n] = zero
			}
		}(start, end)
	}
	wg.Wait()
	t.entries = 0
	t.Stats = Stats{}
	t.generation = 0
}

// NewSearch bumps the generation counter, making every entry written by a
// previous search immediately lower-quality than anything the new search
// writes, without needing to touch existing entries the way aging schemes
// that decrement a per-entry counter do.
func (t *Table) NewSearch() {
	t.generation++
}

func (t *Table) index(hash uint64) uint64 {
	if t.indexMask == 0 {
		return 0
	}
	return hash & t.indexMask
}

// Prefetch issues a read touch against hash's cluster ahead of the real
// Probe/Store that will follow a few instructions later, so its cache line
// is in flight by the time it's needed. Go exposes no hardware prefetch
// intrinsic, so this is the portable approximation other pure-Go engines in
// this corpus use: the read itself has no observable effect beyond warming
// the cache.
func (t *Table) Prefetch(hash uint64) {
	if len(t.data) == 0 {
		return
	}
	_ = t.data[t.index(hash)]
}

// Probe looks up hash's cluster for a stored entry with a matching key,
// returning it (ply-adjusted mate scores are applied by the entry's own
// accessors, given the caller's ply) and whether it was found.
func (t *Table) Probe(hash uint64, ply int) (*TtEntry, bool) {
	t.Stats.Probes++
	if len(t.data) == 0 {
		t.Stats.Misses++
		return nil, false
	}
	key := storedKey(hash)
	c := &t.data[t.index(hash)]
	for i := range c {
		if !c[i].empty() && c[i].key == key {
			t.Stats.Hits++
			return &c[i], true
		}
	}
	t.Stats.Misses++
	return nil, false
}

// Store writes an entry for hash into its cluster. An existing entry with
// the same key is updated in place (preserving the existing move when none
// is given) only if the new write is itself worth keeping over what's
// already there - an exact score, or a depth no shallower than the stored
// one once a few plies of slack (widened for a PV write) are allowed for;
// otherwise the matching slot is left untouched rather than letting a
// shallow re-probe (e.g. a quiescence-depth store) clobber a deeper
// previously stored result for the same position. A non-matching cluster
// falls through to evicting the lowest-quality slot, preferring any still-
// empty slot, per the quality = 2*generation + depth replacement rule.
func (t *Table) Store(hash uint64, ply int, move chess.Move, depth int, value chess.Value, valueType chess.ValueType, eval chess.Value, ttPv bool) {
	if len(t.data) == 0 {
		return
	}
	t.Stats.Puts++

	key := storedKey(hash)
	c := &t.data[t.index(hash)]

	for i := range c {
		if !c[i].empty() && c[i].key == key {
			slack := 3
			if ttPv {
				slack += 2
			}
			if valueType != chess.ValueTypeExact && depth+slack < int(c[i].depth) {
				return
			}
			t.Stats.Updates++
			if move != chess.MoveNone {
				c[i].move = uint16(move)
			}
			c[i].value = storeValue(value, ply)
			c[i].eval = int16(eval)
			c[i].depth = uint8(depth)
			c[i].generation = t.generation
			c[i].flags = packFlags(valueType, ttPv)
			return
		}
	}

	victim := 0
	for i := 1; i < len(c); i++ {
		if c[i].empty() {
			victim = i
			break
		}
		if c[victim].empty() {
			continue
		}
		if c[i].quality() < c[victim].quality() {
			victim = i
		}
	}
	if !c[victim].empty() {
		t.Stats.Collisions++
	} else {
		t.entries++
	}

	c[victim] = TtEntry{
		key:        key,
		move:       uint16(move),
		value:      storeValue(value, ply),
		eval:       int16(eval),
		generation: t.generation,
		depth:      uint8(depth),
		flags:      packFlags(valueType, ttPv),
	}
}

// Hashfull returns how full the table is, in permille, as UCI's "hashfull"
// info field expects; sampled from the first 1000 clusters rather than
// scanning the whole table.
func (t *Table) Hashfull() int {
	if len(t.data) == 0 {
		return 0
	}
	sample := len(t.data)
	if sample > 1000 {
		sample = 1000
	}
	used := 0
	for i := 0; i < sample; i++ {
		for j := range t.data[i] {
			if !t.data[i][j].empty() {
				used++
			}
		}
	}
	return used * 1000 / (sample * clusterSize)
}

// Len returns the number of stored (not necessarily still-valid) entries.
func (t *Table) Len() uint64 { return t.entries }

// String summarizes the table's size and hit/miss statistics.
func (t *Table) String() string {
	return out.Sprintf("TT: %d clusters, %d entries (%d%% full), puts %d updates %d collisions %d probes %d hits %d (%d%%) misses %d",
		len(t.data), t.entries, t.Hashfull()/10, t.Stats.Puts, t.Stats.Updates, t.Stats.Collisions,
		t.Stats.Probes, t.Stats.Hits, (t.Stats.Hits*100)/(1+t.Stats.Probes), t.Stats.Misses)
}
