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

// Package moveslice provides the fixed-capacity move list used on every
// hot-path move generation and move ordering call: a stack-allocated array
// of (move, order score) pairs with no heap allocation.
package moveslice

import (
	"strings"

	"github.com/corvidchess/corvid/internal/chess"
)

// MaxMoves is the maximum number of pseudo-legal moves any chess position
// can generate; 256 comfortably upper-bounds it.
const MaxMoves = 256

// Entry pairs a move with the ordering score the move picker assigned it.
type Entry struct {
	Move  chess.Move
	Score int32
}

// MoveList is a fixed-capacity, stack-allocated list of scored moves. Zero
// value is an empty list ready to use.
type MoveList struct {
	entries [MaxMoves]Entry
	len     int
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int { return ml.len }

// Clear empties the list without releasing the backing array.
func (ml *MoveList) Clear() { ml.len = 0 }

// Add appends a move with its order score. Panics if the list is already at
// MaxMoves capacity, which would indicate a move generation bug.
func (ml *MoveList) Add(m chess.Move, score int32) {
	ml.entries[ml.len] = Entry{Move: m, Score: score}
	ml.len++
}

// At returns the i-th entry without removing it.
func (ml *MoveList) At(i int) Entry { return ml.entries[i] }

// SetScore overwrites the i-th entry's score, used by the move picker to keep the
// ttMove/killer/counter bonuses applied after generation.
func (ml *MoveList) SetScore(i int, score int32) { ml.entries[i].Score = score }

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m chess.Move) bool {
	for i := 0; i < ml.len; i++ {
		if ml.entries[i].Move == m {
			return true
		}
	}
	return false
}

// PickBest performs one step of an in-place partial selection sort: it
// finds the highest-scored entry at or after index `from`, swaps it into
// `from`, and returns it. Used by the move picker so that only as many
// moves as are actually tried need to be fully ordered.
func (ml *MoveList) PickBest(from int) Entry {
	best := from
	for i := from + 1; i < ml.len; i++ {
		if ml.entries[i].Score > ml.entries[best].Score {
			best = i
		}
	}
	ml.entries[from], ml.entries[best] = ml.entries[best], ml.entries[from]
	return ml.entries[from]
}

// Moves returns the plain moves in current list order, for callers (like
// perft and UCI legality checks) that do not care about ordering scores.
func (ml *MoveList) Moves() []chess.Move {
	out := make([]chess.Move, ml.len)
	for i := 0; i < ml.len; i++ {
		out[i] = ml.entries[i].Move
	}
	return out
}

// String renders the list as a space separated sequence of UCI moves.
func (ml *MoveList) String() string {
	var sb strings.Builder
	for i := 0; i < ml.len; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(ml.entries[i].Move.String())
	}
	return sb.String()
}
