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

package uci

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUciHandshake(t *testing.T) {
	u := NewUciHandler()
	out := u.Command("uci")
	assert.Contains(t, out, "id name corvid")
	assert.Contains(t, out, "id author")
	assert.Contains(t, out, "option name Hash type spin")
	assert.Contains(t, out, "uciok")
}

func TestIsReady(t *testing.T) {
	u := NewUciHandler()
	assert.Equal(t, "readyok\n", u.Command("isready"))
}

func TestPositionStartpos(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", u.position.Fen())
}

func TestPositionStartposWithMoves(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4 e7e5")
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", u.position.Fen())
}

func TestPositionFen(t *testing.T) {
	u := NewUciHandler()
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	u.Command("position fen " + fen)
	assert.Equal(t, fen, u.position.Fen())
}

func TestPositionIllegalMoveStopsReplay(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4 e2e4")
	assert.Equal(t, 1, u.position.Ply())
}

func TestSetOptionHash(t *testing.T) {
	u := NewUciHandler()
	u.Command("setoption name Hash value 32")
	opt, ok := uciOptions["hash"]
	require.True(t, ok)
	assert.Equal(t, "32", opt.currentValue)
}

func TestSetOptionChess960(t *testing.T) {
	u := NewUciHandler()
	u.Command("setoption name UCI_Chess960 value true")
	assert.True(t, u.chess960)
}

func TestSetOptionClearHash(t *testing.T) {
	u := NewUciHandler()
	u.Command("setoption name Clear Hash")
}

func TestGoDepthProducesBestmove(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	out := u.Command("go depth 2")
	time.Sleep(200 * time.Millisecond)
	u.search.WaitWhileSearching()
	_ = out
	assert.Greater(t, u.search.LastSearchResult().Nodes, uint64(0))
}

func TestGoMovetimeStops(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	u.Command("go movetime 50")
	u.search.WaitWhileSearching()
	assert.False(t, u.search.IsSearching())
}

func TestStopHaltsInfiniteSearch(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	u.Command("go infinite")
	time.Sleep(10 * time.Millisecond)
	u.Command("stop")
	u.search.WaitWhileSearching()
	assert.False(t, u.search.IsSearching())
}

func TestPerftCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	out := u.Command("perft 2")
	assert.True(t, strings.Contains(out, "nodes 400"))
}

func TestReadSearchLimitsWtimeBtime(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	tokens := regexWhiteSpace.Split("go wtime 60000 btime 60000 winc 100 binc 100", -1)
	limits := u.readSearchLimits(tokens)
	assert.True(t, limits.TimeControl)
	assert.Equal(t, 60*time.Second, limits.WhiteTime)
	assert.Equal(t, 100*time.Millisecond, limits.WhiteInc)
}

func TestReadSearchLimitsSearchmoves(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	tokens := regexWhiteSpace.Split("go depth 1 searchmoves e2e4 d2d4", -1)
	limits := u.readSearchLimits(tokens)
	require.Len(t, limits.SearchMoves, 2)
}

func TestUciOptionsRenderInRegistrationOrder(t *testing.T) {
	lines := GetOptions()
	require.NotEmpty(t, lines)
	assert.Equal(t, "option name Hash type spin default 64 min 1 max 65536", lines[0])
}
