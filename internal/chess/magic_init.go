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

package chess

// Fancy magic bitboard construction, following the classic Stockfish
// approach described at https://www.chessprogramming.org/Magic_Bitboards.
// Magic numbers are searched at process startup rather than hardcoded, using
// a deterministic per-rank seed table so the search always lands on the
// same numbers.

func initMagicBitboards() {
	rookDirs := [4]Direction{North, East, South, West}
	bishopDirs := [4]Direction{Northeast, Southeast, Southwest, Northwest}

	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)

	initMagicsFor(rookTable, &rookMagics, &rookDirs)
	initMagicsFor(bishopTable, &bishopMagics, &bishopDirs)
}

func initMagicsFor(table []Bitboard, magics *[SqLength]magic, dirs *[4]Direction) {
	var seeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0
	size := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		edges := ((Rank1Bb | Rank8Bb) &^ (Rank1Bb << (8 * sq.RankOf()))) |
			((FileABb | FileHBb) &^ (FileABb << sq.FileOf()))

		m := &magics[sq]
		m.mask = slidingAttack(dirs, sq, BbZero) &^ edges
		m.shift = uint(64 - m.mask.PopCount())

		if sq == SqA1 {
			m.attacks = table
		} else {
			m.attacks = magics[sq-1].attacks[size:]
		}

		b := Bitboard(0)
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(dirs, sq, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		rng := newSplitMix(seeds[sq.RankOf()])
		for i := 0; i < size; {
			for m.number = 0; ((m.number * m.mask) >> 56).PopCount() < 6; {
				m.number = Bitboard(rng.sparse())
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

func slidingAttack(dirs *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for _, d := range dirs {
		s := sq
		for {
			next := s.To(d)
			if !next.IsValid() {
				break
			}
			s = next
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

// splitMix is the xorshift64star generator used by Stockfish to search for
// magic numbers; it reliably reproduces the same sequence for a given seed.
type splitMix struct{ s uint64 }

func newSplitMix(seed uint64) *splitMix { return &splitMix{s: seed} }

func (r *splitMix) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparse returns a number with roughly 1/8th of its bits set on average,
// which converges the magic-number search far faster than uniform numbers.
func (r *splitMix) sparse() uint64 { return r.next() & r.next() & r.next() }
