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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
)

func noLimitTimeManager() *timeManager {
	return newTimeManager(Limits{Infinite: true}, chess.White, time.Now())
}

func TestMaxMinValue(t *testing.T) {
	assert.Equal(t, chess.Value(5), maxValue(chess.Value(5), chess.Value(3)))
	assert.Equal(t, chess.Value(5), maxValue(chess.Value(3), chess.Value(5)))
	assert.Equal(t, chess.Value(3), minValue(chess.Value(5), chess.Value(3)))
	assert.Equal(t, chess.Value(3), minValue(chess.Value(3), chess.Value(5)))
}

func TestContainsMove(t *testing.T) {
	pos := position.NewPosition()
	e4 := movegen.MoveFromUci(pos, "e2e4")
	d4 := movegen.MoveFromUci(pos, "d2d4")
	require.NotEqual(t, chess.MoveNone, e4)
	require.NotEqual(t, chess.MoveNone, d4)

	list := []chess.Move{e4}
	assert.True(t, containsMove(list, e4))
	assert.False(t, containsMove(list, d4))
	assert.False(t, containsMove(nil, e4))
}

func TestMoveBufferAdd(t *testing.T) {
	var buf moveBuffer
	pos := position.NewPosition()
	e4 := movegen.MoveFromUci(pos, "e2e4")
	d4 := movegen.MoveFromUci(pos, "d2d4")

	buf.add(e4)
	buf.add(d4)
	assert.Equal(t, 2, buf.len)
	assert.Equal(t, e4, buf.moves[0])
	assert.Equal(t, d4, buf.moves[1])
}

func TestCaptureVictimEnPassant(t *testing.T) {
	pos, err := position.NewPositionFen("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)
	board := pos.Current()

	m := movegen.MoveFromUci(pos, "e5f6")
	require.NotEqual(t, chess.MoveNone, m)
	require.True(t, m.IsEnPassant())

	victim := captureVictim(board, m)
	assert.Equal(t, chess.Pawn, victim.TypeOf())
	assert.Equal(t, chess.Black, victim.ColorOf())
}

func TestCaptureVictimOrdinary(t *testing.T) {
	pos, err := position.NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)
	board := pos.Current()

	m := movegen.MoveFromUci(pos, "d4e5")
	require.NotEqual(t, chess.MoveNone, m)

	victim := captureVictim(board, m)
	assert.Equal(t, chess.Pawn, victim.TypeOf())
	assert.Equal(t, chess.Black, victim.ColorOf())
}

func TestHasNonPawnMaterial(t *testing.T) {
	pos := position.NewPosition()
	assert.True(t, hasNonPawnMaterial(pos))

	kpOnly, err := position.NewPositionFen("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, hasNonPawnMaterial(kpOnly))
}

func TestDrawValueNoJitterBeyondPlyOne(t *testing.T) {
	s := NewSearch()
	for i := 0; i < 20; i++ {
		assert.Equal(t, chess.ValueDraw, s.drawValue(2))
	}
}

func TestQsearchStandPatAtQuietPosition(t *testing.T) {
	pos, err := position.NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	s := NewSearch()
	s.pos = pos
	s.eval.Reset(pos)
	s.tm = noLimitTimeManager()

	value := s.qsearch(0, chess.Value(-chess.ValueInf), chess.Value(chess.ValueInf))
	assert.True(t, value > chess.Value(-1000) && value < chess.Value(1000))
}

func TestNegamaxFindsHangingQueenCapture(t *testing.T) {
	// White queen on d2 can capture the undefended black queen on d4; verify
	// this one-move material-winning capture is found at shallow depth.
	pos, err := position.NewPositionFen("4k3/8/8/8/3q4/8/3Q4/4K3 w - - 0 1")
	require.NoError(t, err)

	s := NewSearch()
	s.pos = pos
	s.eval.Reset(pos)
	s.tm = noLimitTimeManager()
	s.pv.clear()

	value := s.negamax(4, 0, chess.Value(-chess.ValueInf), chess.Value(chess.ValueInf), true, false)
	assert.Greater(t, value, chess.Value(500))
}
