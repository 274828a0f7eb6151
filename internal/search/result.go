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

// Result is the outcome of one StartSearch call, read by the UCI layer once
// WaitWhileSearching returns (or, for a ponderhit/infinite search, once the
// caller is ready to consume whatever the last finished iteration produced).
type Result struct {
	BestMove   chess.Move
	PonderMove chess.Move
	BestValue  chess.Value

	SearchDepth int
	ExtraDepth  int
	Nodes       uint64
	SearchTime  time.Duration

	// BookMove is true when BestMove came straight from the opening book
	// without running a search at all.
	BookMove bool
}

func (r Result) String() string {
	return out.Sprintf("bestmove %s value %s depth %d/%d nodes %d time %s",
		r.BestMove.String(), r.BestValue.String(), r.SearchDepth, r.ExtraDepth, r.Nodes, r.SearchTime)
}
