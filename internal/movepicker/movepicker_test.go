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

package movepicker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/history"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
)

func TestTTMoveComesFirst(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/pppqppbp/2np1np1/4p3/2B1P1b1/2NP1N2/PPP2PPP/R1BQ1RK1 w kq - 0 1")
	assert.NoError(t, err)
	h := history.NewHistory()

	ttMove := chess.CreateMove(chess.SqF3, chess.SqE5, chess.FlagCapture)
	mp := New(pos, h, ttMove, 0, movegen.GenAll)

	picked, ok := mp.Next()
	assert.True(t, ok)
	assert.Equal(t, ttMove, picked.Move)
}

func TestKillerOutranksQuiet(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/3N4/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	h := history.NewHistory()

	killer := chess.CreateMove(chess.SqD3, chess.SqB4, chess.FlagQuiet)
	h.SetKiller(0, killer)

	mp := New(pos, h, chess.MoveNone, 0, movegen.GenAll)
	picked, ok := mp.Next()
	assert.True(t, ok)
	assert.Equal(t, killer, picked.Move)
	assert.True(t, picked.Quiet)
}

func TestExhaustedPickerStops(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	h := history.NewHistory()

	mp := New(pos, h, chess.MoveNone, 0, movegen.GenAll)
	count := 0
	for {
		_, ok := mp.Next()
		if !ok {
			break
		}
		count++
		if count > 100 {
			t.Fatal("move picker did not terminate")
		}
	}
	assert.Equal(t, 5, count) // lone king on e1: d1, d2, e2, f2, f1
}

func TestWinningCaptureOutranksLosingCapture(t *testing.T) {
	// White queen on d1 can take a pawn on d5 defended by the e6 pawn
	// (losing) or an undefended knight on h5 (winning); the winning capture
	// must sort first. GenAll, since GenNoisy skips the SEE split.
	pos, err := position.NewPositionFen("4k3/8/4p3/3p3n/8/8/8/3QK3 w - - 0 1")
	assert.NoError(t, err)
	h := history.NewHistory()

	mp := New(pos, h, chess.MoveNone, 0, movegen.GenAll)
	picked, ok := mp.Next()
	assert.True(t, ok)
	assert.Equal(t, chess.SqH5, picked.Move.To())
}
