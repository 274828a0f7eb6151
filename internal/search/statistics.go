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
	"github.com/corvidchess/corvid/internal/chess"
)

// Statistics are extra data and counters not essential for a functioning
// search, surfaced through String() for debugging. The search neither logs
// them nor reports them over UCI.
type Statistics struct {
	BestMoveChanges      uint64
	AspirationResearches uint64

	RfpPrunings    uint64
	RazorPrunings  uint64
	FpPrunings     uint64
	SeePrunings    uint64
	HistPrunings   uint64
	LmpPrunings    uint64

	NullMoveCuts   uint64
	IIRReductions  uint64
	LmrReductions  uint64
	LmrResearches  uint64
	SingularExtensions uint64
	DoubleExtensions   uint64

	TTHits   uint64
	TTMisses uint64
	TTCuts   uint64

	StandpatCuts  uint64
	MdpPrunings   uint64

	CurrentIterationDepth int
	CurrentRootMoveIndex  int
	CurrentRootMove       chess.Move
	CurrentBestRootMove   chess.Move
	CurrentBestRootValue  chess.Value
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}

// pvTable is the triangular principal-variation table: row ply holds the
// best line found from ply onward, up to pvLength[ply] moves.
type pvTable struct {
	line   [MaxPly + 1][MaxPly + 1]chess.Move
	length [MaxPly + 1]int
}

func (t *pvTable) clear() {
	for i := range t.length {
		t.length[i] = 0
	}
}

// update records m as the move played at ply and appends the child's line
// (already current in the table at ply+1) behind it.
func (t *pvTable) update(ply int, m chess.Move) {
	t.line[ply][0] = m
	childLen := t.length[ply+1]
	copy(t.line[ply][1:1+childLen], t.line[ply+1][:childLen])
	t.length[ply] = childLen + 1
}

// pv returns the principal variation from the root.
func (t *pvTable) pv() []chess.Move {
	return append([]chess.Move(nil), t.line[0][:t.length[0]]...)
}
