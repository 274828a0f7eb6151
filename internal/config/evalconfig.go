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

package config

// evalConfiguration configures the NNUE evaluator. The network's shape
// (hidden size, bucket counts) is fixed by the serialized weight blob, not
// by config, so this only carries where to find that blob and whether to
// fall back to a placeholder network when it is missing.
type evalConfiguration struct {
	NetworkPath string

	// when true (default) and NetworkPath can't be opened, evaluate()
	// still returns a (bad but well-formed) score from deterministic
	// placeholder weights rather than failing the engine's startup.
	AllowMissingNetwork bool
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Eval.NetworkPath = "./corvid.nnue"
	Settings.Eval.AllowMissingNetwork = true
}

// set defaults for configurations here in case a configuration
// is not available from the config file.
func setupEval() {
}
