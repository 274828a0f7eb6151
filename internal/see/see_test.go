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

package see

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/position"
)

func TestSEEUndefendedCapture(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)

	m := chess.CreateMove(chess.SqE4, chess.SqD5, chess.FlagCapture)
	assert.True(t, Eval(pos, m, 0))
	assert.True(t, Eval(pos, m, 100))
	assert.False(t, Eval(pos, m, 101))
}

func TestSEELosingCapture(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/2p1p3/3p4/8/8/8/3RK3 w - - 0 1")
	assert.NoError(t, err)

	m := chess.CreateMove(chess.SqD1, chess.SqD5, chess.FlagCapture)
	assert.False(t, Eval(pos, m, 0))
}

func TestSEEBatteryRecaptureWinsExchange(t *testing.T) {
	// Rook takes a knight on d5 defended by the f6 knight, with the e4 pawn
	// ready to recapture: Rxd5 (+300), Nxd5 (-500), exd5 (+300) nets +100.
	// The sign is only right if the exchange runs past the first recapture.
	pos, err := position.NewPositionFen("4k3/8/5n2/3n4/4P3/8/8/3RK3 w - - 0 1")
	assert.NoError(t, err)

	m := chess.CreateMove(chess.SqD1, chess.SqD5, chess.FlagCapture)
	assert.True(t, Eval(pos, m, 0))
	assert.True(t, Eval(pos, m, 100))
	assert.False(t, Eval(pos, m, 101))
}

func TestSEEDeepExchangeStaysLosing(t *testing.T) {
	// Same shape without the pawn backup: Rxd5 (+300), Nxd5 (-500) nets
	// -200, so the deeper scan must not turn a genuinely losing capture
	// into a winning one.
	pos, err := position.NewPositionFen("4k3/8/5n2/3n4/8/8/8/3RK3 w - - 0 1")
	assert.NoError(t, err)

	m := chess.CreateMove(chess.SqD1, chess.SqD5, chess.FlagCapture)
	assert.False(t, Eval(pos, m, 0))
	assert.True(t, Eval(pos, m, -200))
	assert.False(t, Eval(pos, m, -199))
}

func TestSEECastlingIgnoresThreshold(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)

	m := chess.CreateMove(chess.SqE1, chess.SqH1, chess.FlagCastleKing)
	assert.True(t, Eval(pos, m, 0))
	assert.False(t, Eval(pos, m, 1))
}

func TestSEEQuietMoveHasNoGain(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/4P3/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)

	m := chess.CreateMove(chess.SqE4, chess.SqE5, chess.FlagQuiet)
	assert.True(t, Eval(pos, m, 0))
	assert.False(t, Eval(pos, m, 1))
}
