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

// Package history provides the move-ordering tables search consults while
// picking which pseudo-legal move to try next: killer moves, counter-moves,
// and the gravity-updated quiet/capture/continuation history heuristics.
// Static-eval correction history lives alongside it in correction.go.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/util"
)

var out = message.NewPrinter(language.German)

// MaxPly bounds the killer-move table; no search line this engine supports
// runs deeper than this many plies from the root.
const MaxPly = 128

// gravityScale is the divisor in the exponential-decay ("gravity") update
// rule shared by every table in this package: v += amount − v·|amount|/scale.
const gravityScale = 16384

// continuationPlies are the "how many moves back" offsets the continuation
// history looks up, matching the ply-1/ply-2/ply-4 pattern (opponent's last
// move, own last move, and own move before that).
var continuationPlies = [3]int{1, 2, 4}

// History holds the move-ordering tables for one search: killers and
// counter-moves (reset at the start of every search) plus the
// quiet/capture/continuation tables, which persist across a game and decay
// via the gravity rule rather than being zeroed between searches.
type History struct {
	quiet        [chess.PieceLength][chess.SqLength][2][2]int16
	capture      [chess.PieceLength][chess.SqLength][chess.PieceLength]int16
	continuation [chess.PieceLength][chess.SqLength][chess.PieceLength][chess.SqLength]int16

	killers  [MaxPly]chess.Move
	counters [chess.SqLength][chess.SqLength]chess.Move
}

// NewHistory creates an empty History.
func NewHistory() *History {
	h := &History{}
	h.ClearKillersAndCounters()
	return h
}

// Clear zeros every table, quiet/capture/continuation included. Called on
// ucinewgame.
func (h *History) Clear() {
	*h = History{}
	h.ClearKillersAndCounters()
}

// ClearKillersAndCounters resets only the per-search refutation tables,
// leaving the slower-moving quiet/capture/continuation history intact.
func (h *History) ClearKillersAndCounters() {
	for i := range h.killers {
		h.killers[i] = chess.MoveNone
	}
	h.counters = [chess.SqLength][chess.SqLength]chess.Move{}
}

// SetKiller records m as the refutation at ply.
func (h *History) SetKiller(ply int, m chess.Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	h.killers[ply] = m
}

// IsKiller reports whether m is the recorded killer at ply.
func (h *History) IsKiller(ply int, m chess.Move) bool {
	if ply < 0 || ply >= MaxPly {
		return false
	}
	return h.killers[ply] != chess.MoveNone && h.killers[ply] == m
}

// ResetKiller clears the killer slot at ply, used when entering a node so a
// stale killer from a sibling line of the same ply can't leak in.
func (h *History) ResetKiller(ply int) {
	if ply >= 0 && ply < MaxPly {
		h.killers[ply] = chess.MoveNone
	}
}

// SetCounter records thisMove as the refutation of prevMove.
func (h *History) SetCounter(prevMove, thisMove chess.Move) {
	if prevMove == chess.MoveNone {
		return
	}
	h.counters[prevMove.From()][prevMove.To()] = thisMove
}

// IsCounter reports whether thisMove is the recorded counter to prevMove.
func (h *History) IsCounter(prevMove, thisMove chess.Move) bool {
	if prevMove == chess.MoveNone {
		return false
	}
	return h.counters[prevMove.From()][prevMove.To()] == thisMove
}

// updateGravity applies the shared decay rule, clamped to int16 range so a
// run of large bonuses can never overflow the stored value.
func updateGravity(value *int16, amount int) {
	v := int(*value)
	decay := v * util.Abs(amount) / gravityScale
	v += amount - decay
	*value = int16(util.Clamp(v, -32768, 32767))
}

func threatIndex(threats chess.Bitboard, sq chess.Square) int {
	if threats.Has(sq) {
		return 1
	}
	return 0
}

// UpdateQuiet applies a gravity bonus/malus to the quiet-move history entry
// for (piece, to, threat buckets) and to the continuation-history entries at
// ply-1/2/4, following the position's move stack back through p.
func (h *History) UpdateQuiet(p *position.Position, m chess.Move, piece chess.Piece, amount int, ply int) {
	threats := p.Current().Threats()
	to := m.To()
	fromAttacked := threatIndex(threats, m.From())
	toAttacked := threatIndex(threats, to)
	updateGravity(&h.quiet[piece][to][fromAttacked][toAttacked], amount)

	for _, back := range continuationPlies {
		if ply < back {
			break
		}
		prevPiece := p.PrevPieceAt(back)
		if prevPiece == chess.PieceNone {
			continue
		}
		prevTo := p.PrevMoveAt(back).To()
		updateGravity(&h.continuation[prevPiece][prevTo][piece][to], amount)
	}
}

// QuietScore returns the combined quiet/continuation ordering score for move
// m made by piece at the given ply.
func (h *History) QuietScore(p *position.Position, m chess.Move, piece chess.Piece, ply int) int {
	threats := p.Current().Threats()
	to := m.To()
	fromAttacked := threatIndex(threats, m.From())
	toAttacked := threatIndex(threats, to)
	score := int(h.quiet[piece][to][fromAttacked][toAttacked])

	for _, back := range continuationPlies {
		if ply < back {
			break
		}
		prevPiece := p.PrevPieceAt(back)
		if prevPiece == chess.PieceNone {
			continue
		}
		prevTo := p.PrevMoveAt(back).To()
		score += int(h.continuation[prevPiece][prevTo][piece][to])
	}
	return score
}

// UpdateCapture applies a gravity bonus/malus to the capture-history entry
// for (attacker, to, victim).
func (h *History) UpdateCapture(attacker chess.Piece, to chess.Square, victim chess.Piece, amount int) {
	updateGravity(&h.capture[attacker][to][victim], amount)
}

// CaptureScore returns the capture-history ordering contribution for
// (attacker, to, victim).
func (h *History) CaptureScore(attacker chess.Piece, to chess.Square, victim chess.Piece) int {
	return int(h.capture[attacker][to][victim])
}

func (h *History) String() string {
	sb := strings.Builder{}
	for sf := chess.SqA1; sf < chess.SqNone; sf++ {
		for st := chess.SqA1; st < chess.SqNone; st++ {
			m := h.counters[sf][st]
			if m == chess.MoveNone {
				continue
			}
			sb.WriteString(out.Sprintf("counter %s%s -> %s\n", sf.String(), st.String(), m.String()))
		}
	}
	return sb.String()
}
