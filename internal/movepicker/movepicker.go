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

// Package movepicker orders the moves a search node considers: it generates
// the pseudo-legal moves of the requested kind, scores each one by a fixed
// priority table, and hands them out one at a time via
// Next() in best-first order using a partial selection sort so a cutoff
// early in the list never pays for sorting the moves behind it.
package movepicker

import (
	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/history"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/see"
)

// Ordering score bands, highest priority first. The capture bands are spaced
// far enough apart that their bonuses never overlap: a captureHistory entry
// is bounded to ±32768 (history's int16 range) and the MVV-LVA term stays
// within ±20000. A quiet move scores the sum of up to four history entries
// (about ±131000), so a quiet with high history can outrank the killer and
// counter-move scores.
const (
	scoreTTMove        = 900000
	scoreQueenPromo    = 700000
	scoreWinningCapture = 600000
	scoreKiller        = 100000
	scoreCounter       = 99000
	scoreLosingCapture = -200000
)

// Picked is one move handed out by Next, along with the classification the
// search move loop needs to decide which pruning rules apply to it.
type Picked struct {
	Move  chess.Move
	Score int32
	Quiet bool
}

// MovePicker generates and orders the moves of one search node. It is not
// reusable: construct a fresh one per node.
type MovePicker struct {
	pos    *position.Position
	hist   *history.History
	ttMove chess.Move
	ply    int
	kind   movegen.GenMode

	list      moveslice.MoveList
	index     int
	generated bool
}

// New constructs a MovePicker for pos's side to move, generating moves of
// kind and treating ttMove (if pseudo-legal) as the highest-priority move.
// ply is the current search ply, used to look up this node's killer move
// and the continuation-history entries keyed off earlier plies.
func New(pos *position.Position, hist *history.History, ttMove chess.Move, ply int, kind movegen.GenMode) *MovePicker {
	return &MovePicker{pos: pos, hist: hist, ttMove: ttMove, ply: ply, kind: kind}
}

func (mp *MovePicker) generate() {
	movegen.GenerateMoves(mp.pos, mp.kind, &mp.list)
	b := mp.pos.Current()
	prevMove := mp.pos.LastMove()
	for i := 0; i < mp.list.Len(); i++ {
		e := mp.list.At(i)
		mp.list.SetScore(i, mp.score(e.Move, b, prevMove))
	}
	mp.generated = true
}

func (mp *MovePicker) score(m chess.Move, b *position.Board, prevMove chess.Move) int32 {
	if mp.ttMove != chess.MoveNone && m == mp.ttMove {
		return scoreTTMove
	}

	if m.IsPromotion() && m.PromotionType() == chess.Queen {
		victim := chess.PtNone
		if v := b.PieceOn(m.To()); v != chess.PieceNone {
			victim = v.TypeOf()
		}
		return scoreQueenPromo + int32(victim.ValueOf())
	}

	if m.IsCapture() {
		attacker := b.PieceOn(m.From())
		var victim chess.Piece
		if m.IsEnPassant() {
			victim = chess.MakePiece(b.SideToMove().Flip(), chess.Pawn)
		} else {
			victim = b.PieceOn(m.To())
		}
		capHist := mp.hist.CaptureScore(attacker, m.To(), victim)
		mvvLva := int32(16*int(victim.ValueOf())-int(attacker.ValueOf())) + int32(capHist)

		// Quiescence-only generation skips the SEE-based winning/losing
		// split: the exchange simulation costs the same as the search it
		// would order for, so qsearch's own SEE-pruning pass (applied as
		// each move is tried) does that filtering instead.
		if mp.kind == movegen.GenNoisy {
			return scoreWinningCapture + mvvLva
		}
		if !see.Eval(mp.pos, m, -capHist/32) {
			return scoreLosingCapture + mvvLva
		}
		return scoreWinningCapture + mvvLva
	}

	if mp.hist.IsKiller(mp.ply, m) {
		return scoreKiller
	}
	if prevMove != chess.MoveNone && mp.hist.IsCounter(prevMove, m) {
		return scoreCounter
	}

	piece := b.PieceOn(m.From())
	return int32(mp.hist.QuietScore(mp.pos, m, piece, mp.ply))
}

// Next returns the next move in best-first order, skipping any that turn
// out not to be legal, or reports ok=false once the list is exhausted.
func (mp *MovePicker) Next() (Picked, bool) {
	if !mp.generated {
		mp.generate()
	}
	for mp.index < mp.list.Len() {
		e := mp.list.PickBest(mp.index)
		mp.index++
		if !movegen.IsLegal(mp.pos, e.Move) {
			continue
		}
		return Picked{Move: e.Move, Score: e.Score, Quiet: !e.Move.IsCapture() && !e.Move.IsPromotion()}, true
	}
	return Picked{}, false
}

// Remaining returns an upper bound on how many more moves Next could still
// return (illegal pseudo-legal moves still in the tail count against it).
func (mp *MovePicker) Remaining() int {
	if !mp.generated {
		mp.generate()
	}
	return mp.list.Len() - mp.index
}
