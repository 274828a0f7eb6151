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
	"math"

	"github.com/corvidchess/corvid/internal/chess"
)

// The win/draw/loss model normalizes a raw search score into a "cp" figure
// and a permille W/D/L split using a logistic curve whose scale narrows as
// the game progresses: the same internal score is less decisive on move 5
// than on move 50. wdlScaleBase/wdlScalePlySlope are chosen so that a
// normalized score of 100cp corresponds to roughly 50% extra win
// probability around move 32.
const (
	wdlScaleBase     = 270.0
	wdlScalePlySlope = -0.62
	wdlScaleFloor    = 110.0
	wdlScaleMaxPly   = 240
)

func wdlScale(ply int) float64 {
	if ply > wdlScaleMaxPly {
		ply = wdlScaleMaxPly
	}
	scale := wdlScaleBase + wdlScalePlySlope*float64(ply)
	if scale < wdlScaleFloor {
		scale = wdlScaleFloor
	}
	return scale
}

// ToCentipawns normalizes an internal search score against the ply-dependent
// scale. Mate scores pass through unchanged so "info score mate N" never
// gets mangled into a huge cp number.
func ToCentipawns(score chess.Value, ply int) int {
	if score.IsMateScore() {
		return int(score)
	}
	return int(math.Round(float64(score) * 100.0 / wdlScale(ply)))
}

// WDL returns the win/draw/loss permille split (summing to 1000) the
// logistic model assigns to an internal search score at the given ply.
func WDL(score chess.Value, ply int) (win, draw, loss int) {
	switch {
	case score > chess.MateThreshold:
		return 1000, 0, 0
	case score < -chess.MateThreshold:
		return 0, 0, 1000
	}
	scale := wdlScale(ply)
	s := float64(score)
	winProb := 1.0 / (1.0 + math.Exp(-s/scale))
	lossProb := 1.0 / (1.0 + math.Exp(s/scale))
	win = int(math.Round(winProb * 1000))
	loss = int(math.Round(lossProb * 1000))
	if win+loss > 1000 {
		loss = 1000 - win
	}
	draw = 1000 - win - loss
	return win, draw, loss
}
