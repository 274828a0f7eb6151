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
	"time"

	"github.com/corvidchess/corvid/internal/chess"
)

// timeManager derives the soft/hard wall-clock budget for one search from
// its Limits and then lets the iterative deepening driver
// scale the soft limit up or down as the search's best move settles or
// keeps changing, following a stability/score-trend curve: stability factor
// floor 0.5, score-drop threshold 20cp before extending.
type timeManager struct {
	start time.Time
	soft  time.Duration
	hard  time.Duration

	usingClock bool
	fixed      bool // movetime or depth/nodes/infinite: no soft-limit extension logic applies
}

// movesToGoDefault is assumed when the GUI doesn't send movestogo: budget
// as if about 40 moves remain, which is the conventional middlegame
// estimate other pure time-control engines in this corpus also lean on.
const movesToGoDefault = 40

// overheadMargin is shaved off the hard limit to leave room for move
// transmission, GUI/OS scheduling jitter, and this process's own
// UCI-output latency.
const overheadMargin = 50 * time.Millisecond

func newTimeManager(l Limits, stm chess.Color, start time.Time) *timeManager {
	tm := &timeManager{start: start}

	switch {
	case l.MoveTime > 0:
		tm.fixed = true
		tm.soft = l.MoveTime
		tm.hard = l.MoveTime
	case l.Infinite || l.Depth > 0 || l.Nodes > 0:
		tm.fixed = true
		tm.soft = 0
		tm.hard = 0
	default:
		clock, inc := l.TimeFor(stm)
		if clock <= 0 {
			tm.fixed = true
			break
		}
		mtg := l.MovesToGo
		if mtg <= 0 {
			mtg = movesToGoDefault
		}
		budget := clock/time.Duration(mtg) + inc
		tm.usingClock = true
		tm.soft = budget
		tm.hard = budget * 3
		if tm.hard > clock-overheadMargin {
			tm.hard = clock - overheadMargin
		}
		if tm.hard < 0 {
			tm.hard = 0
		}
		if tm.soft > tm.hard {
			tm.soft = tm.hard
		}
	}
	return tm
}

// elapsed returns how long the search has been running.
func (tm *timeManager) elapsed() time.Duration { return time.Since(tm.start) }

// shouldStopHard reports whether the hard limit has been exceeded and the
// search must abort immediately, mid-iteration.
func (tm *timeManager) shouldStopHard() bool {
	if tm.fixed && tm.hard == 0 {
		return false
	}
	return tm.elapsed() >= tm.hard
}

// shouldStopSoft reports whether the just-finished iteration used enough of
// the soft budget that starting another one isn't worthwhile. effort
// scales the soft limit down when the best move has been stable across
// iterations and up when the score just dropped noticeably, extending
// a shaky root decision rather than committing to it early.
func (tm *timeManager) shouldStopSoft(stableIterations int, scoreDropped bool) bool {
	if !tm.usingClock || tm.soft == 0 {
		return false
	}
	factor := 1.0
	switch {
	case stableIterations >= 6:
		factor = 0.5
	case stableIterations >= 3:
		factor = 0.7
	}
	if scoreDropped {
		factor *= 1.3
	}
	budget := time.Duration(float64(tm.soft) * factor)
	return tm.elapsed() >= budget
}
