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
	"encoding/binary"
	"fmt"
	"os"
)

// HiddenSize is the width of each perspective's accumulator.
const HiddenSize = 1600

// InputBuckets is the number of input-feature slices, selected by a
// (mirrored) king-position lookup table.
const InputBuckets = 14

// OutputBuckets is the number of output-layer slices, selected by piece
// count on the board.
const OutputBuckets = 8

// FeaturesPerPerspective is 2 (color_rel) * 6 (piece type incl. king) * 64.
const FeaturesPerPerspective = 768

// QA and QB are the quantization scales of the feature and output layers.
const (
	QA = 255
	QB = 64
)

// evalScale is the centipawn scale applied to the dequantized output sum.
const evalScale = 400

// Network holds the quantized weights of the NNUE perspective evaluator, in
// a fixed layout so a file produced by an external trainer can be loaded
// without transformation:
//
//	FeatureWeights[InputBuckets][768][HiddenSize] int16
//	FeatureBias[HiddenSize]                       int16
//	OutputWeights[OutputBuckets][2*HiddenSize]     int16
//	OutputBias[OutputBuckets]                      int16
//
// all little-endian. The weight blob is either loaded from NetworkPath at
// startup or, when none is configured (or it can't be read and missing
// networks are allowed), generated deterministically so the engine always
// has a well-formed, reproducible net to evaluate with.
type Network struct {
	FeatureWeights [InputBuckets][FeaturesPerPerspective][HiddenSize]int16
	FeatureBias    [HiddenSize]int16
	OutputWeights  [OutputBuckets][2 * HiddenSize]int16
	OutputBias     [OutputBuckets]int16
}

// LoadNetwork reads a network blob from path in the layout above.
func LoadNetwork(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := &Network{}
	fields := []any{
		&n.FeatureWeights,
		&n.FeatureBias,
		&n.OutputWeights,
		&n.OutputBias,
	}
	for _, field := range fields {
		if err := binary.Read(f, binary.LittleEndian, field); err != nil {
			return nil, fmt.Errorf("evaluator: reading network %s: %w", path, err)
		}
	}
	return n, nil
}

// splitMix is a splitmix64 generator with a fixed seed, so the placeholder
// network is reproducible across builds without shipping a trained blob.
type splitMix struct{ s uint64 }

func newSplitMix(seed uint64) *splitMix { return &splitMix{s: seed} }

func (r *splitMix) next() uint64 {
	r.s += 0x9E3779B97F4A7C15
	z := r.s
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// small draws a quantized weight in [-bound, bound] (uniform up to modulo
// bias); callers keep bound small so the placeholder net doesn't saturate
// the squared-ReLU activation.
func (r *splitMix) small(bound int16) int16 {
	v := int16(r.next()%uint64(2*bound+1)) - bound
	return v
}

// GeneratePlaceholderNetwork deterministically fills a Network with small
// pseudo-random weights. It is not a trained evaluator — without a real
// weight file (none exists in this retrieval pack) the engine still needs a
// well-formed net to exercise the whole accumulator/bucket-cache machinery,
// so this stands in whenever config.Settings.Eval.NetworkPath does not name
// a readable network file. No UCI option sets that path.
func GeneratePlaceholderNetwork() *Network {
	n := &Network{}
	rng := newSplitMix(0x636F72766964) // "corvid" in hex-ish seed form

	for b := 0; b < InputBuckets; b++ {
		for f := 0; f < FeaturesPerPerspective; f++ {
			for h := 0; h < HiddenSize; h++ {
				n.FeatureWeights[b][f][h] = rng.small(24)
			}
		}
	}
	for h := 0; h < HiddenSize; h++ {
		n.FeatureBias[h] = rng.small(8)
	}
	for b := 0; b < OutputBuckets; b++ {
		for i := 0; i < 2*HiddenSize; i++ {
			n.OutputWeights[b][i] = rng.small(8)
		}
		n.OutputBias[b] = rng.small(32)
	}
	return n
}
