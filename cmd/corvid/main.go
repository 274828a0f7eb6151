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

// Command corvid is the engine's executable: a UCI front-end by default,
// plus command-line modes for perft, EPD test suites and profiling that
// never touch stdin/stdout protocol framing.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/testsuite"
	"github.com/corvidchess/corvid/internal/uci"
)

var out = message.NewPrinter(language.German)

const version = "1.0"

func main() {
	versionInfo := flag.Bool("version", false, "print version info and exit")
	configFile := flag.String("config", "./config.toml", "path to the configuration file")
	logLvl := flag.String("loglvl", "", "overrides [Log] Level from the config file (1..7)")
	logPath := flag.String("logpath", "", "overrides [Log] Directory from the config file")
	bookPath := flag.String("bookpath", "", "overrides [Search] BookPath from the config file")
	bookFormat := flag.String("bookformat", "", "overrides [Search] BookFormat from the config file")
	fen := flag.String("fen", position.StartFen, "starting position for -perft")
	perftDepth := flag.Int("perft", 0, "run perft to this depth against -fen and exit")
	testSuite := flag.String("testsuite", "", "path to an EPD file or a folder of EPD files to run and exit")
	testTimeMs := flag.Int("testtime", 2000, "per-position search time in ms for -testsuite")
	testDepth := flag.Int("testdepth", 0, "per-position search depth for -testsuite (0: use -testtime instead)")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to ./profile while running")
	memProfile := flag.Bool("memprofile", false, "write a memory profile to ./profile while running")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if *memProfile {
		defer profile.Start(profile.MemProfile).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	if *logLvl != "" {
		config.Settings.Log.Level = atoiOrZero(*logLvl)
	}
	if *logPath != "" {
		config.Settings.Log.Directory = *logPath
	}
	if *bookPath != "" {
		config.Settings.Search.BookPath = *bookPath
	}
	if *bookFormat != "" {
		config.Settings.Search.BookFormat = *bookFormat
	}

	switch {
	case *perftDepth > 0:
		var p movegen.Perft
		p.StartPerft(*fen, *perftDepth)
	case *testSuite != "":
		runTestSuite(*testSuite, *testTimeMs, *testDepth)
	default:
		uci.NewUciHandler().Loop()
	}
}

func runTestSuite(path string, testTimeMs, testDepth int) {
	info, err := os.Stat(path)
	if err != nil {
		out.Printf("cannot read -testsuite path %q: %v\n", path, err)
		return
	}
	if info.IsDir() {
		out.Print(testsuite.FeatureTests(path, time.Duration(testTimeMs)*time.Millisecond, testDepth))
		return
	}
	ts, err := testsuite.NewTestSuite(path, time.Duration(testTimeMs)*time.Millisecond, testDepth)
	if err != nil {
		out.Printf("cannot load test suite %q: %v\n", path, err)
		return
	}
	ts.RunTests()
}

func atoiOrZero(s string) int {
	var n int
	_, _ = fmt.Sscanf(s, "%d", &n)
	return n
}

func printVersionInfo() {
	out.Printf("corvid %s\n", version)
	out.Printf("Go version: %s\n", runtime.Version())
	out.Printf("OS/Arch   : %s/%s\n", runtime.GOOS, runtime.GOARCH)
	out.Printf("NumCPU    : %d\n", runtime.NumCPU())
}
