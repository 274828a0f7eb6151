/*
 * corvid - UCI chess engine
 *
 * MIT License
 *
 * Copyright (c) 2020-2026 corvid contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

// searchConfiguration is a data structure to hold the configuration of an
// instance of a search: which pruning/reduction/extension rules are active
// and their tunable constants. Booleans let each rule be switched off for
// testing without recompiling; the magnitudes are either well-established
// values from chess-engine practice or, where only a shape was called for,
// reasonable fixed values recorded here as the single source of truth.
type searchConfiguration struct {
	// Opening book
	UseBook    bool
	BookPath   string
	BookFormat string // "simple", "san", "pgn", "polyglot" or "protobuf"

	// Quiescence search
	UseQuiescence bool
	UseQSStandpat bool
	UseSEE        bool

	// Move ordering
	UseIIR       bool
	IIRMinDepth  int
	IIRReduction int

	UseTTMove bool

	// Pre-move-generation pruning
	UseMDP      bool
	UseRFP      bool
	RfpMaxDepth int

	UseRazoring      bool
	RazorMaxDepth    int

	UseNullMove  bool
	NmpMinDepth  int

	// Draw score jitter, applied only at the root.
	UseDrawJitter bool

	// Singular extensions
	UseSingularExt    bool
	SingularMinDepth  int
	SingularTTDepthOK int
	DoubleExtMargin   int
	MaxDoubleExtPerBranch int

	// Per-move pruning after move generation
	UseLMP  bool
	UseFP   bool
	UseSeePruning    bool
	UseHistoryPruning bool
	HistoryPruningThreshold int

	UseLMR           bool
	LmrMinDepth      int
	LmrMinMoveNumber int

	// Correction history: sizes and gravity lifted from the original
	// source, tuning left open.
	MaterialCorrHistSize int
	PawnCorrHistSize     int
	CorrHistGravity      int

	// History gravity rule shared by quiet/capture/continuation tables.
	HistoryGravity int
	HistoryMaxAbs  int

	Threads int
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Search.UseBook = false
	Settings.Search.BookPath = "./book.bin"
	Settings.Search.BookFormat = "polyglot"

	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true
	Settings.Search.UseSEE = true

	Settings.Search.UseIIR = true
	Settings.Search.IIRMinDepth = 4
	Settings.Search.IIRReduction = 1

	Settings.Search.UseTTMove = true

	Settings.Search.UseMDP = true
	Settings.Search.UseRFP = true
	Settings.Search.RfpMaxDepth = 7

	Settings.Search.UseRazoring = true
	Settings.Search.RazorMaxDepth = 3

	Settings.Search.UseNullMove = true
	Settings.Search.NmpMinDepth = 3

	Settings.Search.UseDrawJitter = true

	Settings.Search.UseSingularExt = true
	Settings.Search.SingularMinDepth = 8
	Settings.Search.SingularTTDepthOK = 3
	Settings.Search.DoubleExtMargin = 16
	Settings.Search.MaxDoubleExtPerBranch = 6

	Settings.Search.UseLMP = true
	Settings.Search.UseFP = true
	Settings.Search.UseSeePruning = true
	Settings.Search.UseHistoryPruning = true
	Settings.Search.HistoryPruningThreshold = -2048

	Settings.Search.UseLMR = true
	Settings.Search.LmrMinDepth = 3
	Settings.Search.LmrMinMoveNumber = 3

	Settings.Search.MaterialCorrHistSize = 32768
	Settings.Search.PawnCorrHistSize = 16384
	Settings.Search.CorrHistGravity = 16384

	Settings.Search.HistoryGravity = 16384
	Settings.Search.HistoryMaxAbs = 16384

	Settings.Search.Threads = 1
}

// set defaults for configurations here in case a configuration
// is not available from the config file.
func setupSearch() {
}
