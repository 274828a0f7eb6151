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

// IterationInfo is one completed (or aspiration-bounded) iteration's report,
// the data a UCI "info" line needs.
type IterationInfo struct {
	Depth    int
	SelDepth int
	Value    chess.Value
	Bound    chess.ValueType // Exact, Upper (fail-low) or Lower (fail-high)
	Nodes    uint64
	Nps      uint64
	Time     time.Duration
	Hashfull int
	PV       []chess.Move
}

// InfoSink is the narrow interface search uses to report progress back to
// whatever is driving it (the UCI front-end, or nothing during tests). It
// intentionally knows nothing about UCI wire syntax: uci.UciHandler is the
// only implementer in this repo and does all string formatting itself.
type InfoSink interface {
	SendIterationInfo(IterationInfo)
	SendCurrentMove(move chess.Move, moveNumber int)
}

// nullSink discards everything; used when no sink has been set.
type nullSink struct{}

func (nullSink) SendIterationInfo(IterationInfo)         {}
func (nullSink) SendCurrentMove(chess.Move, int)         {}
