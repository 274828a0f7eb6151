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

// Package evaluator implements the NNUE-style perspective evaluator: a
// feature-sparse two-layer network whose first layer (the accumulator) is
// kept incrementally in sync with the position as moves are pushed and
// popped, refreshing from a finny-style bucket cache only when a king
// crosses a bucket or mirror boundary.
package evaluator

import (
	"github.com/op/go-logging"

	"github.com/corvidchess/corvid/internal/chess"
	"github.com/corvidchess/corvid/internal/config"
	myLogging "github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/util"
)

var log *logging.Logger

func init() {
	log = myLogging.GetLog("eval")
}

// Evaluator owns one perspective-accumulator stack and its bucket cache.
// Neither is safe for concurrent use; each search worker owns its own
// Evaluator.
type Evaluator struct {
	net    *Network
	frames []accFrame
	cache  [chess.ColorLength][InputBuckets][2]bucketCacheEntry
}

// NewEvaluator loads the configured network (or falls back to a
// deterministic placeholder when missing and that's allowed) and returns an
// Evaluator ready to be Reset onto a position.
func NewEvaluator() *Evaluator {
	net, err := LoadNetwork(config.Settings.Eval.NetworkPath)
	if err != nil {
		if !config.Settings.Eval.AllowMissingNetwork {
			log.Fatalf("evaluator: could not load network %s: %v", config.Settings.Eval.NetworkPath, err)
		}
		log.Warningf("evaluator: no network at %s (%v); using placeholder weights", config.Settings.Eval.NetworkPath, err)
		net = GeneratePlaceholderNetwork()
	}
	e := &Evaluator{net: net}
	e.resetCache()
	return e
}

func (e *Evaluator) resetCache() {
	for persp := chess.White; persp < chess.ColorLength; persp++ {
		for b := 0; b < InputBuckets; b++ {
			for m := 0; m < 2; m++ {
				e.cache[persp][b][m] = bucketCacheEntry{values: e.net.FeatureBias}
			}
		}
	}
}

// Reset discards the accumulator stack and rebuilds frame zero (the root)
// from pos's current board, for both perspectives. Called whenever search
// starts from a new root position.
func (e *Evaluator) Reset(pos *position.Position) {
	e.frames = e.frames[:0]
	e.frames = append(e.frames, accFrame{})
	e.refreshSide(pos, chess.White)
	e.refreshSide(pos, chess.Black)
}

// Push allocates the next accumulator frame for the move just applied to
// pos (pos.Push(m) must already have been called, so pos.Current() and
// pos.LastMove()/MovedPiece()/CapturedPiece() describe it). Each side is
// brought up to date immediately: either by a cheap incremental update or,
// when this side's king crossed a bucket/mirror boundary, by a bucket-cache
// refresh.
func (e *Evaluator) Push(pos *position.Position) {
	e.frames = append(e.frames, accFrame{})
	e.updateSide(pos, chess.White)
	e.updateSide(pos, chess.Black)
}

// PushNull allocates the next frame for a null move (position.PushNull()).
// No piece moves, so both perspectives' accumulators are simply carried
// forward unchanged rather than run through the incremental/refresh path,
// which assumes a real moved piece.
func (e *Evaluator) PushNull() {
	e.frames = append(e.frames, e.frames[len(e.frames)-1])
}

// Pop discards the most recent accumulator frame, mirroring position.Pop().
func (e *Evaluator) Pop() {
	if len(e.frames) > 1 {
		e.frames = e.frames[:len(e.frames)-1]
	}
}

// updateSide decides between an incremental update and a full refresh for
// persp and fills in the newest frame accordingly.
func (e *Evaluator) updateSide(pos *position.Position, persp chess.Color) {
	movedPiece := pos.MovedPiece()
	if movedPiece.TypeOf() == chess.King && movedPiece.ColorOf() == persp {
		prev := &e.frames[len(e.frames)-2]
		b := pos.Current()
		kingAbs := b.KingSquare(persp)
		kingRel := perspectiveSquare(persp, kingAbs)
		mirror := mirrorsHorizontally(kingRel)
		mirroredKingSq := kingRel
		if mirror {
			mirroredKingSq = mirrorFile(mirroredKingSq)
		}
		bucket := inputBucketOf(mirroredKingSq)
		if bucket != prev.bucket[persp] || mirror != prev.mirror[persp] {
			e.refreshSide(pos, persp)
			return
		}
	}
	e.incrementalSide(pos, persp)
}

// incrementalSide applies the Sub/Add feature deltas for the move that
// produced the newest frame, on top of the previous frame's values. Bucket
// and mirror are unchanged by construction (updateSide only reaches here
// when that's true).
func (e *Evaluator) incrementalSide(pos *position.Position, persp chess.Color) {
	prev := &e.frames[len(e.frames)-2]
	cur := &e.frames[len(e.frames)-1]

	values := prev.values[persp]
	bucket, mirror := prev.bucket[persp], prev.mirror[persp]

	for _, d := range computeDirty(pos.LastMove(), pos.MovedPiece(), pos.CapturedPiece()) {
		idx := featureIndex(persp, mirror, d.piece, d.sq)
		w := &e.net.FeatureWeights[bucket][idx]
		if d.add {
			for h := 0; h < HiddenSize; h++ {
				values[h] += w[h]
			}
		} else {
			for h := 0; h < HiddenSize; h++ {
				values[h] -= w[h]
			}
		}
	}

	cur.values[persp] = values
	cur.kingSq[persp] = prev.kingSq[persp]
	cur.bucket[persp] = bucket
	cur.mirror[persp] = mirror
}

// refreshSide recomputes persp's accumulator for the newest frame from the
// bucket cache: it diffs the current board's piece placement against the
// cache entry's snapshot, applies just that difference, and updates both
// the cache and the frame.
func (e *Evaluator) refreshSide(pos *position.Position, persp chess.Color) {
	b := pos.Current()
	kingAbs := b.KingSquare(persp)
	kingRel := perspectiveSquare(persp, kingAbs)
	mirror := mirrorsHorizontally(kingRel)
	mirroredKingSq := kingRel
	if mirror {
		mirroredKingSq = mirrorFile(mirroredKingSq)
	}
	bucket := inputBucketOf(mirroredKingSq)

	entry := &e.cache[persp][bucket][mirrorIdx(mirror)]
	values := entry.values

	for c := chess.White; c < chess.ColorLength; c++ {
		for pt := chess.King; pt < chess.PtLength; pt++ {
			oldBb, newBb := entry.pieces[c][pt], b.PieceBb(c, pt)
			removed := oldBb &^ newBb
			added := newBb &^ oldBb
			piece := chess.MakePiece(c, pt)
			for removed != 0 {
				sq := removed.PopLsb()
				idx := featureIndex(persp, mirror, piece, sq)
				w := &e.net.FeatureWeights[bucket][idx]
				for h := 0; h < HiddenSize; h++ {
					values[h] -= w[h]
				}
			}
			for added != 0 {
				sq := added.PopLsb()
				idx := featureIndex(persp, mirror, piece, sq)
				w := &e.net.FeatureWeights[bucket][idx]
				for h := 0; h < HiddenSize; h++ {
					values[h] += w[h]
				}
			}
			entry.pieces[c][pt] = newBb
		}
	}
	entry.values = values

	frame := &e.frames[len(e.frames)-1]
	frame.values[persp] = values
	frame.kingSq[persp] = kingAbs
	frame.bucket[persp] = bucket
	frame.mirror[persp] = mirror
}

// screlu is the squared clipped-ReLU activation: clamp(x, 0, QA)^2.
func screlu(x int16) int32 {
	v := int32(x)
	if v < 0 {
		v = 0
	}
	if v > QA {
		v = QA
	}
	return v * v
}

// Evaluate returns the side-to-move-relative static evaluation of pos's
// current position. The accumulator stack must already be current for this
// ply (callers push/pop in lockstep with position.Position).
func (e *Evaluator) Evaluate(pos *position.Position) chess.Value {
	b := pos.Current()
	us := b.SideToMove()
	them := us.Flip()
	frame := &e.frames[len(e.frames)-1]

	pieceCount := b.Occupied().PopCount()
	bucket := outputBucketOf(pieceCount)
	weights := &e.net.OutputWeights[bucket]

	var sum int64
	for h := 0; h < HiddenSize; h++ {
		sum += int64(screlu(frame.values[us][h])) * int64(weights[h])
	}
	for h := 0; h < HiddenSize; h++ {
		sum += int64(screlu(frame.values[them][h])) * int64(weights[HiddenSize+h])
	}

	raw := float64(sum)/QA + float64(e.net.OutputBias[bucket])
	scaled := raw * evalScale / (QA * QB)

	gamePhase := 0
	for pt := chess.Knight; pt <= chess.Queen; pt++ {
		for c := chess.White; c < chess.ColorLength; c++ {
			gamePhase += b.PieceBb(c, pt).PopCount() * pt.GamePhaseValue()
		}
	}
	if gamePhase > 24 {
		gamePhase = 24
	}
	scaled *= float64(52+gamePhase) / 64

	v := int(scaled)
	bound := int(chess.MateThreshold) - 1
	v = util.Clamp(v, -bound, bound)
	return chess.Value(v)
}
