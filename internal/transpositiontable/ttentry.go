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

package transpositiontable

import "github.com/corvidchess/corvid/internal/chess"

const (
	flagTypeMask = uint8(0b0000_0011)
	flagPvBit    = uint8(0b0000_0100)
)

// TtEntry is one transposition-table slot, packed into 16 bytes.
// key stores only the upper 32 bits of the position's 64-bit Zobrist hash
// (the lower bits already select the cluster, so storing them again would
// waste space); value and eval are the search score and static evaluation in
// centipawns; generation and depth drive replacement; flags packs the 2-bit
// score type and the 1-bit "written from a PV node" marker move ordering
// wants back out.
type TtEntry struct {
	key        uint32
	move       uint16
	value      int16
	eval       int16
	generation uint16
	depth      uint8
	flags      uint8
}

// TtEntrySize is the size in bytes of one TtEntry; four of them make up a
// 64-byte cache-line cluster (clusterSize in tt.go).
const TtEntrySize = 16

// Move returns the packed best/refutation move stored with this entry.
func (e *TtEntry) Move() chess.Move { return chess.Move(e.move) }

// Value returns the entry's search score, undoing the mate-distance
// ply-offset it was stored with relative to the storing node's ply so mate
// scores stay meaningful regardless of how deep in the tree the entry was
// written versus where it's now being read back.
func (e *TtEntry) Value(ply int) chess.Value {
	v := chess.Value(e.value)
	switch {
	case v >= chess.MateThreshold:
		return v - chess.Value(ply)
	case v <= -chess.MateThreshold:
		return v + chess.Value(ply)
	default:
		return v
	}
}

// Eval returns the static evaluation recorded with this entry. It is never
// ply-offset: it isn't a mate-distance-sensitive score.
func (e *TtEntry) Eval() chess.Value { return chess.Value(e.eval) }

// Depth returns the search depth this entry was stored at.
func (e *TtEntry) Depth() int { return int(e.depth) }

// Generation returns the search generation this entry was last written in.
func (e *TtEntry) Generation() uint16 { return e.generation }

// ValueType returns how Value() bounds the true minimax value.
func (e *TtEntry) ValueType() chess.ValueType { return chess.ValueType(e.flags & flagTypeMask) }

// TtPv reports whether this entry was written from a node believed to be on
// the principal variation, which lets search relax some pruning decisions on
// a hit even when the probing node isn't itself currently a PV node.
func (e *TtEntry) TtPv() bool { return e.flags&flagPvBit != 0 }

// empty reports whether this slot has never been written.
func (e *TtEntry) empty() bool { return e.key == 0 && e.depth == 0 && e.move == 0 }

// quality is the replacement priority: entries
// written more recently, or searched deeper, are worth keeping over ones
// that are both older and shallower.
func (e *TtEntry) quality() int { return 2*int(e.generation) + int(e.depth) }

func storedKey(hash uint64) uint32 { return uint32(hash >> 32) }

func storeValue(v chess.Value, ply int) int16 {
	switch {
	case v >= chess.MateThreshold:
		return int16(v + chess.Value(ply))
	case v <= -chess.MateThreshold:
		return int16(v - chess.Value(ply))
	default:
		return int16(v)
	}
}

func packFlags(vt chess.ValueType, ttPv bool) uint8 {
	f := uint8(vt) & flagTypeMask
	if ttPv {
		f |= flagPvBit
	}
	return f
}
