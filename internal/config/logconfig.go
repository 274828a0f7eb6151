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

// logConfiguration holds the [Log] section of config.toml: per-subsystem
// log levels on the 1..7 scale (1 critical .. 7 debug) matched by
// logging.LevelFromInt.
type logConfiguration struct {
	Level       int
	SearchLevel int
	TestLevel   int
	Directory   string
}

func init() {
	Settings.Log.Level = LogLevel
	Settings.Log.SearchLevel = SearchLogLevel
	Settings.Log.TestLevel = TestLogLevel
	Settings.Log.Directory = ""
}

// setupLogLvl copies every nonzero [Log] level from Settings (the config
// file's value, or the default set in init) into the package-level
// LogLevel/SearchLogLevel/TestLogLevel vars, overwriting them.
func setupLogLvl() {
	if Settings.Log.Level != 0 {
		LogLevel = Settings.Log.Level
	}
	if Settings.Log.SearchLevel != 0 {
		SearchLogLevel = Settings.Log.SearchLevel
	}
	if Settings.Log.TestLevel != 0 {
		TestLogLevel = Settings.Log.TestLevel
	}
}
