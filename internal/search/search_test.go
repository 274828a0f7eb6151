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
	"os"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
)

func depthLimits(depth int) Limits {
	return Limits{Depth: depth}
}

// dumpResultOnFailure logs a field-by-field dump of result once the test has
// already failed, so a CI log shows the PV/nodes/depth that produced a
// surprising bestmove instead of just the failed assertion.
func dumpResultOnFailure(t *testing.T, result Result) {
	t.Helper()
	if t.Failed() {
		t.Log(spew.Sdump(result))
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move, back-rank mate-in-1: black king trapped on h8/g8 by
	// its own pawns, white rook ready to deliver mate on the 8th rank.
	pos, err := position.NewPositionFen("6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	require.NoError(t, err)

	s := NewSearch()
	s.StartSearch(*pos, depthLimits(4))
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	defer dumpResultOnFailure(t, result)
	assert.True(t, result.BestValue.IsMateScore(), "expected mate score, got %s", result.BestValue)
	assert.NotEqual(t, chess.MoveNone, result.BestMove)
}

func TestSearchReturnsLegalMoveFromStartPosition(t *testing.T) {
	pos := position.NewPosition()

	s := NewSearch()
	s.StartSearch(*pos, depthLimits(3))
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.NotEqual(t, chess.MoveNone, result.BestMove)
	assert.GreaterOrEqual(t, result.SearchDepth, 1)
	assert.Greater(t, result.Nodes, uint64(0))
}

func TestStopSearchHonored(t *testing.T) {
	pos := position.NewPosition()

	s := NewSearch()
	s.StartSearch(*pos, Limits{Infinite: true})
	time.Sleep(10 * time.Millisecond)
	s.StopSearch()
	s.WaitWhileSearching()

	assert.False(t, s.IsSearching())
}

func TestNewGameClearsTranspositionTable(t *testing.T) {
	pos := position.NewPosition()

	s := NewSearch()
	s.StartSearch(*pos, depthLimits(3))
	s.WaitWhileSearching()

	assert.Greater(t, s.tt.Len(), uint64(0))
	s.NewGame()
	assert.Equal(t, uint64(0), s.tt.Len())
}

func TestMoveTimeLimitStopsSearch(t *testing.T) {
	pos := position.NewPosition()

	s := NewSearch()
	start := time.Now()
	s.StartSearch(*pos, Limits{TimeControl: true, MoveTime: 50 * time.Millisecond})
	s.WaitWhileSearching()
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second)
	assert.NotEqual(t, chess.MoveNone, s.LastSearchResult().BestMove)
}

func TestSearchMovesRestrictsRootMoves(t *testing.T) {
	pos := position.NewPosition()

	restricted := movegen.MoveFromUci(pos, "e2e4")
	require.NotEqual(t, chess.MoveNone, restricted)

	s := NewSearch()
	s.StartSearch(*pos, Limits{Depth: 2, SearchMoves: []chess.Move{restricted}})
	s.WaitWhileSearching()

	assert.Equal(t, restricted, s.LastSearchResult().BestMove)
}

func TestBookMoveSkipsSearch(t *testing.T) {
	dir := t.TempDir()
	bookPath := dir + "/book.txt"
	require.NoError(t, os.WriteFile(bookPath, []byte("e2e4 e7e5\n"), 0644))

	prevUseBook := config.Settings.Search.UseBook
	prevPath := config.Settings.Search.BookPath
	prevFormat := config.Settings.Search.BookFormat
	config.Settings.Search.UseBook = true
	config.Settings.Search.BookPath = bookPath
	config.Settings.Search.BookFormat = "simple"
	defer func() {
		config.Settings.Search.UseBook = prevUseBook
		config.Settings.Search.BookPath = prevPath
		config.Settings.Search.BookFormat = prevFormat
	}()

	s := NewSearch()
	pos := position.NewPosition()
	s.StartSearch(*pos, Limits{TimeControl: true, MoveTime: time.Second})
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.True(t, result.BookMove)
	assert.NotEqual(t, chess.MoveNone, result.BestMove)
}
