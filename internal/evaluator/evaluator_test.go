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

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/position"
)

func init() {
	config.Setup()
}

func TestEvaluateReturnsWithoutPanicking(t *testing.T) {
	pos := position.NewPosition()
	e := NewEvaluator()
	e.Reset(pos)
	v := e.Evaluate(pos)
	assert.True(t, v.IsValid())
}

func TestIncrementalMatchesFreshRefresh(t *testing.T) {
	pos := position.NewPosition()
	e := NewEvaluator()
	e.Reset(pos)

	moves := []chess.Move{
		chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush),
		chess.CreateMove(chess.SqE7, chess.SqE5, chess.FlagDoublePawnPush),
		chess.CreateMove(chess.SqG1, chess.SqF3, chess.FlagQuiet),
		chess.CreateMove(chess.SqB8, chess.SqC6, chess.FlagQuiet),
	}
	for _, m := range moves {
		pos.Push(m)
		e.Push(pos)
	}

	incremental := e.Evaluate(pos)

	fresh := NewEvaluator()
	fresh.net = e.net
	fresh.resetCache()
	fresh.Reset(pos)
	refreshed := fresh.Evaluate(pos)

	assert.Equal(t, refreshed, incremental)
}

func TestCastlingTriggersRefreshWithoutPanicking(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	e := NewEvaluator()
	e.Reset(pos)

	pos.Push(chess.CreateMove(chess.SqE1, chess.SqH1, chess.FlagCastleKing))
	e.Push(pos)

	v := e.Evaluate(pos)
	assert.True(t, v.IsValid())
}

func TestPopUnwindsAccumulatorStack(t *testing.T) {
	pos := position.NewPosition()
	e := NewEvaluator()
	e.Reset(pos)

	m := chess.CreateMove(chess.SqE2, chess.SqE4, chess.FlagDoublePawnPush)
	pos.Push(m)
	e.Push(pos)
	assert.Len(t, e.frames, 2)

	pos.Pop()
	e.Pop()
	assert.Len(t, e.frames, 1)
}

func TestOutputBucketOfPieceCount(t *testing.T) {
	assert.Equal(t, 0, outputBucketOf(2))
	assert.Equal(t, 0, outputBucketOf(5))
	assert.Equal(t, 7, outputBucketOf(32))
}

func TestGeneratePlaceholderNetworkIsDeterministic(t *testing.T) {
	a := GeneratePlaceholderNetwork()
	b := GeneratePlaceholderNetwork()
	assert.Equal(t, a.FeatureBias, b.FeatureBias)
	assert.Equal(t, a.OutputBias, b.OutputBias)
}
