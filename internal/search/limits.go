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

package search

import (
	"time"

	"github.com/corvidchess/corvid/internal/chess"
)

// Limits carries everything a UCI "go" command can specify about how long
// or how deep to search. Zero value means "search until told to stop".
type Limits struct {
	Infinite bool

	// Ponder is accepted but not honored: pondering is out of scope.
	// A "go ponder" request is searched exactly like a normal "go" using
	// the rest of the limits.
	Ponder bool

	Depth int
	Nodes uint64
	Mate  int

	TimeControl    bool
	WhiteTime      time.Duration
	BlackTime      time.Duration
	WhiteInc       time.Duration
	BlackInc       time.Duration
	MoveTime       time.Duration
	MovesToGo      int

	Perft int

	// SearchMoves, when non-empty, restricts the root move list to just
	// these moves ("go searchmoves ...").
	SearchMoves []chess.Move
}

// NewSearchLimits creates an empty Limits.
func NewSearchLimits() *Limits {
	return &Limits{}
}

// TimeFor returns stm's remaining clock and increment.
func (l Limits) TimeFor(stm chess.Color) (time.Duration, time.Duration) {
	if stm == chess.White {
		return l.WhiteTime, l.WhiteInc
	}
	return l.BlackTime, l.BlackInc
}
