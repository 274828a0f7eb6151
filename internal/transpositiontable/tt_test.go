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

package transpositiontable

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
)

func init() {
	config.Setup()
}

func TestEntrySize(t *testing.T) {
	var e TtEntry
	assert.EqualValues(t, 16, unsafe.Sizeof(e))
}

func TestResizeRoundsDownToPowerOfTwoClusters(t *testing.T) {
	tt := NewTable(1)
	assert.Equal(t, uint64(0), (tt.indexMask+1)&tt.indexMask) // indexMask+1 is a power of two or 0

	tt = NewTable(64)
	clusters := len(tt.data)
	assert.True(t, clusters > 0)
	assert.Equal(t, clusters&(clusters-1), 0) // power of two
}

func TestStoreAndProbeRoundTrip(t *testing.T) {
	tt := NewTable(4)
	move := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)

	tt.Store(111, 0, move, 4, chess.Value(30), chess.ValueTypeUpper, chess.Value(25), false)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.Puts)

	e, found := tt.Probe(111, 0)
	assert.True(t, found)
	assert.Equal(t, move, e.Move())
	assert.Equal(t, chess.Value(30), e.Value(0))
	assert.Equal(t, chess.Value(25), e.Eval())
	assert.Equal(t, 4, e.Depth())
	assert.Equal(t, chess.ValueTypeUpper, e.ValueType())
	assert.False(t, e.TtPv())
}

func TestStoreUpdatesExistingKeyInPlace(t *testing.T) {
	tt := NewTable(4)
	move := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)

	tt.Store(111, 0, move, 4, chess.Value(30), chess.ValueTypeUpper, chess.Value(25), false)
	tt.Store(111, 0, move, 6, chess.Value(40), chess.ValueTypeExact, chess.Value(35), true)

	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.Updates)

	e, found := tt.Probe(111, 0)
	assert.True(t, found)
	assert.Equal(t, chess.Value(40), e.Value(0))
	assert.Equal(t, 6, e.Depth())
	assert.True(t, e.TtPv())
}

func TestProbeMissReturnsFalse(t *testing.T) {
	tt := NewTable(4)
	_, found := tt.Probe(999, 0)
	assert.False(t, found)
}

func TestMateScoreIsPlyAdjustedAcrossStoreAndProbe(t *testing.T) {
	tt := NewTable(4)
	move := chess.CreateMove(chess.SqE1, chess.SqE2, chess.FlagQuiet)

	// Mate-in-3-from-the-root, stored at ply 5.
	mateScore := chess.MateIn(3)
	tt.Store(222, 5, move, 10, mateScore, chess.ValueTypeExact, chess.ValueZero, false)

	e, found := tt.Probe(222, 5)
	assert.True(t, found)
	assert.Equal(t, mateScore, e.Value(5))

	// Probed from a different ply, the raw stored score no longer equals
	// the mate distance - it's ply-relative.
	assert.NotEqual(t, mateScore, e.Value(2))
}

func TestClearRemovesAllEntries(t *testing.T) {
	tt := NewTable(4)
	move := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	tt.Store(111, 0, move, 4, chess.Value(30), chess.ValueTypeUpper, chess.Value(25), false)

	tt.Clear()

	_, found := tt.Probe(111, 0)
	assert.False(t, found)
	assert.EqualValues(t, 0, tt.Len())
}

func TestNewSearchRaisesGenerationForReplacementPriority(t *testing.T) {
	tt := NewTable(4)
	move := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	tt.Store(111, 0, move, 1, chess.Value(10), chess.ValueTypeExact, chess.ValueZero, false)
	before, _ := tt.Probe(111, 0)
	gen0 := before.Generation()

	tt.NewSearch()
	tt.Store(333, 0, move, 1, chess.Value(10), chess.ValueTypeExact, chess.ValueZero, false)
	after, _ := tt.Probe(333, 0)

	assert.Equal(t, gen0+1, after.Generation())
}
