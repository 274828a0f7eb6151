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

package history

import (
	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/util"
)

// Table sizes and the correction-value clamp are the constants the pack's
// correction history keys off of, indexed by pawn/material Zobrist key
// modulo table size.
const (
	materialCorrectionSize = 32768
	pawnCorrectionSize     = 16384
	correctionMax          = 1024
	correctionDivisor      = 256
)

// Correction holds the pawn-structure and material static-eval correction
// history tables, each indexed by the position's pawn/material key modulo
// the table size and keyed additionally by side to move.
type Correction struct {
	material [chess.ColorLength][materialCorrectionSize]int32
	pawn     [chess.ColorLength][pawnCorrectionSize]int32
}

// NewCorrection creates an empty Correction.
func NewCorrection() *Correction { return &Correction{} }

// Clear zeros both correction tables. Called on ucinewgame.
func (c *Correction) Clear() { *c = Correction{} }

// Apply adds the pawn and material correction terms for p's side to move to
// rawEval, returning the corrected static evaluation used by search.
func (c *Correction) Apply(p *position.Position, rawEval int) int {
	b := p.Current()
	side := b.SideToMove()
	pawnEntry := c.pawn[side][b.PawnKey()%pawnCorrectionSize]
	materialEntry := c.material[side][b.MaterialKey()%materialCorrectionSize]
	corrected := rawEval + int(pawnEntry+materialEntry)/correctionDivisor
	bound := int(chess.MateThreshold) - 1
	return util.Clamp(corrected, -bound, bound)
}

// Update folds the observed (score − staticEval) delta, weighted by depth,
// into both correction tables using the same gravity decay rule the
// move-ordering histories use. The weighted delta is clamped to
// ±correctionMax and each entry to ±correctionMax*correctionDivisor.
func (c *Correction) Update(p *position.Position, staticEval, score, depth int) {
	b := p.Current()
	side := b.SideToMove()
	weighted := util.Clamp((score-staticEval)*depth, -correctionMax, correctionMax)

	updateCorrectionEntry(&c.pawn[side][b.PawnKey()%pawnCorrectionSize], weighted)
	updateCorrectionEntry(&c.material[side][b.MaterialKey()%materialCorrectionSize], weighted)
}

func updateCorrectionEntry(entry *int32, weighted int) {
	v := int(*entry)
	decay := v * util.Abs(weighted) / gravityScale
	v += weighted - decay
	*entry = int32(util.Clamp(v, -correctionMax*correctionDivisor, correctionMax*correctionDivisor))
}
