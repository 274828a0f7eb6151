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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/position"
)

func TestKillerSetAndReset(t *testing.T) {
	h := NewHistory()
	m := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	assert.False(t, h.IsKiller(3, m))
	h.SetKiller(3, m)
	assert.True(t, h.IsKiller(3, m))
	assert.False(t, h.IsKiller(4, m))
	h.ResetKiller(3)
	assert.False(t, h.IsKiller(3, m))
}

func TestKillerOutOfRangeIsNoop(t *testing.T) {
	h := NewHistory()
	m := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	h.SetKiller(-1, m)
	h.SetKiller(MaxPly, m)
	assert.False(t, h.IsKiller(-1, m))
	assert.False(t, h.IsKiller(MaxPly, m))
}

func TestCounterMove(t *testing.T) {
	h := NewHistory()
	prev := chess.CreateMove(chess.SqD2, chess.SqD4, chess.FlagDoublePawnPush)
	this := chess.CreateMove(chess.SqG8, chess.SqF6, chess.FlagQuiet)
	assert.False(t, h.IsCounter(prev, this))
	h.SetCounter(prev, this)
	assert.True(t, h.IsCounter(prev, this))

	other := chess.CreateMove(chess.SqD7, chess.SqD5, chess.FlagDoublePawnPush)
	assert.False(t, h.IsCounter(other, this))
}

func TestCounterMoveIgnoresNullPrevious(t *testing.T) {
	h := NewHistory()
	this := chess.CreateMove(chess.SqG8, chess.SqF6, chess.FlagQuiet)
	h.SetCounter(chess.MoveNone, this)
	assert.False(t, h.IsCounter(chess.MoveNone, this))
}

func TestQuietHistoryGravityConverges(t *testing.T) {
	h := NewHistory()
	p := position.NewPosition()
	m := chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet)
	piece := chess.MakePiece(chess.White, chess.Knight)

	var last int
	for i := 0; i < 200; i++ {
		h.UpdateQuiet(p, m, piece, 1000, 0)
		last = h.QuietScore(p, m, piece, 0)
	}
	// The gravity rule bounds the steady-state value well under the raw
	// bonus repeatedly applied without decay.
	assert.Less(t, last, 1000*200)
	assert.Greater(t, last, 0)
}

func TestQuietHistoryMalusDecreasesScore(t *testing.T) {
	h := NewHistory()
	p := position.NewPosition()
	m := chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet)
	piece := chess.MakePiece(chess.White, chess.Knight)

	h.UpdateQuiet(p, m, piece, 500, 0)
	before := h.QuietScore(p, m, piece, 0)
	h.UpdateQuiet(p, m, piece, -500, 0)
	after := h.QuietScore(p, m, piece, 0)
	assert.Less(t, after, before)
}

func TestContinuationHistoryAccumulatesAcrossPlies(t *testing.T) {
	h := NewHistory()
	p := position.NewPosition()

	p.Push(chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush))
	p.Push(chess.CreateMove(chess.SqE7, chess.SqE5, chess.FlagDoublePawnPush))

	m := chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet)
	piece := chess.MakePiece(chess.White, chess.Knight)

	withoutContinuation := h.QuietScore(p, m, piece, 0)
	h.UpdateQuiet(p, m, piece, 400, p.Ply())
	withContinuation := h.QuietScore(p, m, piece, p.Ply())
	assert.Greater(t, withContinuation, withoutContinuation)
}

func TestCaptureHistoryRoundTrip(t *testing.T) {
	h := NewHistory()
	attacker := chess.MakePiece(chess.White, chess.Knight)
	victim := chess.MakePiece(chess.Black, chess.Bishop)
	assert.Equal(t, 0, h.CaptureScore(attacker, chess.SqD5, victim))
	h.UpdateCapture(attacker, chess.SqD5, victim, 300)
	assert.Greater(t, h.CaptureScore(attacker, chess.SqD5, victim), 0)
}

func TestClearResetsEverything(t *testing.T) {
	h := NewHistory()
	p := position.NewPosition()
	m := chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet)
	piece := chess.MakePiece(chess.White, chess.Knight)
	h.UpdateQuiet(p, m, piece, 500, 0)
	h.SetKiller(0, m)
	h.SetCounter(chess.CreateMove(chess.SqD2, chess.SqD4, chess.FlagDoublePawnPush), m)

	h.Clear()
	assert.Equal(t, 0, h.QuietScore(p, m, piece, 0))
	assert.False(t, h.IsKiller(0, m))
}

func TestClearKillersAndCountersPreservesHistory(t *testing.T) {
	h := NewHistory()
	p := position.NewPosition()
	m := chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet)
	piece := chess.MakePiece(chess.White, chess.Knight)
	h.UpdateQuiet(p, m, piece, 500, 0)
	h.SetKiller(0, m)

	h.ClearKillersAndCounters()
	assert.False(t, h.IsKiller(0, m))
	assert.Greater(t, h.QuietScore(p, m, piece, 0), 0)
}

func TestCorrectionAppliesAndUpdates(t *testing.T) {
	c := NewCorrection()
	p := position.NewPosition()
	raw := 20
	assert.Equal(t, raw, c.Apply(p, raw))

	c.Update(p, raw, raw+300, 4)
	corrected := c.Apply(p, raw)
	assert.Greater(t, corrected, raw)
}

func TestCorrectionClear(t *testing.T) {
	c := NewCorrection()
	p := position.NewPosition()
	c.Update(p, 0, 300, 4)
	assert.NotEqual(t, 0, c.Apply(p, 0))
	c.Clear()
	assert.Equal(t, 0, c.Apply(p, 0))
}
