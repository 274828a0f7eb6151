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
	"math"

	"github.com/corvidchess/corvid/internal/chess"
)

// This file holds the static/pre-computed tables the search's pruning,
// reduction and extension rules consult. Values too
// irregular to express as a single formula (the move-count and margin
// tables) are plain arrays; only lmrTable is filled once at package init.

// lmrTable[depth][moveNumber] is the late-move-reduction table, following
// the R ≈ 0.25*ln(depth)*ln(moveNumber) + 0.7 curve.
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			r := 0.25*math.Log(float64(d))*math.Log(float64(m)) + 0.7
			lmrTable[d][m] = int(math.Round(r))
		}
	}
}

// LmrReduction returns the base depth reduction for late move reductions at
// the given remaining depth and 1-based move number, clamped so the
// reduced depth can never go negative or drive the table out of bounds.
func LmrReduction(depth, moveNumber int) int {
	if depth >= len(lmrTable) {
		depth = len(lmrTable) - 1
	}
	if moveNumber >= len(lmrTable[0]) {
		moveNumber = len(lmrTable[0]) - 1
	}
	if depth < 1 || moveNumber < 1 {
		return 0
	}
	return lmrTable[depth][moveNumber]
}

// lmpCount is the late-move-pruning move-count limit per remaining depth:
// once this many quiet moves have been tried at a shallow, non-PV node,
// the rest are skipped outright.
var lmpCount = [9]int{0, 6, 9, 13, 18, 24, 31, 39, 48}

// LmpMovesSearched returns the quiet-move-count limit for remaining depth.
func LmpMovesSearched(depth int) int {
	if depth <= 0 {
		return lmpCount[0]
	}
	if depth >= len(lmpCount) {
		depth = len(lmpCount) - 1
	}
	return lmpCount[depth]
}

// fpMargin is the futility-pruning margin per remaining depth: at a
// shallow node, a quiet move that can't possibly raise staticEval above
// alpha by this much is skipped without being searched.
var fpMargin = [7]chess.Value{0, 100, 200, 300, 500, 900, 1200}

// FpMargin returns the futility margin for remaining depth.
func FpMargin(depth int) chess.Value {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(fpMargin) {
		depth = len(fpMargin) - 1
	}
	return fpMargin[depth]
}

// rfpMargin is the reverse-futility-pruning margin per remaining depth,
// halved for a node whose TT entry carries the PV flag
// since that static eval is already better trusted.
var rfpMargin = [8]chess.Value{0, 70, 150, 240, 340, 450, 580, 720}

// RfpMargin returns the reverse-futility margin for remaining depth,
// halved when ttPv is set.
func RfpMargin(depth int, ttPv bool) chess.Value {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(rfpMargin) {
		depth = len(rfpMargin) - 1
	}
	m := rfpMargin[depth]
	if ttPv {
		m /= 2
	}
	return m
}

// razorMargin is the razoring margin per remaining depth: at a very
// shallow node whose static eval is this far below alpha, a quiescence
// search stands in for the full search outright.
var razorMargin = [4]chess.Value{0, 200, 400, 600}

// RazorMargin returns the razoring margin for remaining depth.
func RazorMargin(depth int) chess.Value {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(razorMargin) {
		depth = len(razorMargin) - 1
	}
	return razorMargin[depth]
}

// seeMarginCapture/seeMarginQuiet are the SEE-pruning margins per remaining
// depth, for captures and quiets respectively: a move the static exchange evaluator
// says loses more than this many centipawns is skipped.
var seeMarginCapture = [8]int{0, -90, -90, -90, -90, -90, -90, -90}
var seeMarginQuiet = [8]int{0, -60, -120, -180, -240, -300, -360, -420}

// SeeMargin returns the SEE-pruning threshold for remaining depth.
func SeeMargin(depth int, quiet bool) int {
	table := seeMarginCapture
	if quiet {
		table = seeMarginQuiet
	}
	if depth < 0 {
		depth = 0
	}
	if depth >= len(table) {
		depth = len(table) - 1
	}
	return table[depth]
}

// NmpReduction returns the null-move-pruning reduction: a fixed base plus a
// depth-scaled term and an eval-over-beta bonus, matching the classic
// "R = 3 + depth/4 + min(3, (eval-beta)/200)" shape.
func NmpReduction(depth int, eval, beta chess.Value) int {
	r := 3 + depth/4
	bonus := int(eval-beta) / 200
	if bonus > 3 {
		bonus = 3
	}
	if bonus > 0 {
		r += bonus
	}
	if r > depth {
		r = depth
	}
	return r
}

// aspirationSteps are the successive window-widening deltas an
// out-of-bounds aspiration-window result is re-searched with before
// falling back to a full-width search.
var aspirationSteps = []chess.Value{15, 40, 100, 260, chess.ValueInf}
