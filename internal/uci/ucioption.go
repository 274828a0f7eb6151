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
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/internal/config"
)

type uciOptionType int

const (
	optCheck uciOptionType = iota
	optSpin
	optButton
	optString
)

// optionHandler applies a newly set uciOption.currentValue to the engine.
type optionHandler func(*UciHandler, *uciOption)

// uciOption describes one UCI-negotiable setting: its wire-protocol shape
// ("option name ... type ...") and the handler that applies a "setoption"
// to the live engine.
type uciOption struct {
	name         string
	optType      uciOptionType
	defaultValue string
	minValue     int
	maxValue     int
	currentValue string
	handler      optionHandler
}

func (o *uciOption) String() string {
	switch o.optType {
	case optCheck:
		return fmt.Sprintf("option name %s type check default %s", o.name, o.defaultValue)
	case optSpin:
		return fmt.Sprintf("option name %s type spin default %s min %d max %d", o.name, o.defaultValue, o.minValue, o.maxValue)
	case optButton:
		return fmt.Sprintf("option name %s type button", o.name)
	case optString:
		return fmt.Sprintf("option name %s type string default %s", o.name, o.defaultValue)
	default:
		return ""
	}
}

func (o *uciOption) asBool() bool { return o.currentValue == "true" }

func (o *uciOption) asInt() int {
	n, err := strconv.Atoi(o.currentValue)
	if err != nil {
		return 0
	}
	return n
}

// uciOptions holds every negotiable option keyed by its lower-cased name;
// uciOptionOrder remembers registration order so "uci" prints them in a
// stable, deterministic sequence.
var (
	uciOptions     map[string]*uciOption
	uciOptionOrder []string
)

func registerOption(o *uciOption) {
	o.currentValue = o.defaultValue
	key := strings.ToLower(o.name)
	uciOptions[key] = o
	uciOptionOrder = append(uciOptionOrder, key)
}

func init() {
	uciOptions = make(map[string]*uciOption)

	registerOption(&uciOption{name: "Hash", optType: optSpin, defaultValue: "64", minValue: 1, maxValue: 65536, handler: setHash})
	registerOption(&uciOption{name: "Clear Hash", optType: optButton, handler: clearHash})
	registerOption(&uciOption{name: "Threads", optType: optSpin, defaultValue: "1", minValue: 1, maxValue: 512, handler: setThreads})
	registerOption(&uciOption{name: "Ponder", optType: optCheck, defaultValue: "false", handler: noopOption})
	registerOption(&uciOption{name: "UCI_Chess960", optType: optCheck, defaultValue: "false", handler: setChess960})
	registerOption(&uciOption{name: "UCI_ShowWDL", optType: optCheck, defaultValue: "true", handler: setShowWDL})

	registerOption(&uciOption{name: "Use_Book", optType: optCheck, defaultValue: "false", handler: setUseBook})
	registerOption(&uciOption{name: "BookFile", optType: optString, defaultValue: "", handler: setBookFile})

	registerOption(&uciOption{name: "Use_Quiescence", optType: optCheck, defaultValue: "true", handler: setUseQuiescence})
	registerOption(&uciOption{name: "Use_SEE", optType: optCheck, defaultValue: "true", handler: setUseSee})
	registerOption(&uciOption{name: "Use_TTMove", optType: optCheck, defaultValue: "true", handler: setUseTTMove})
	registerOption(&uciOption{name: "Use_IIR", optType: optCheck, defaultValue: "true", handler: setUseIIR})
	registerOption(&uciOption{name: "Use_NullMove", optType: optCheck, defaultValue: "true", handler: setUseNullMove})
	registerOption(&uciOption{name: "Use_RFP", optType: optCheck, defaultValue: "true", handler: setUseRfp})
	registerOption(&uciOption{name: "Use_Razoring", optType: optCheck, defaultValue: "true", handler: setUseRazoring})
	registerOption(&uciOption{name: "Use_SingularExt", optType: optCheck, defaultValue: "true", handler: setUseSingularExt})
	registerOption(&uciOption{name: "Use_LMP", optType: optCheck, defaultValue: "true", handler: setUseLmp})
	registerOption(&uciOption{name: "Use_FP", optType: optCheck, defaultValue: "true", handler: setUseFp})
	registerOption(&uciOption{name: "Use_HistoryPruning", optType: optCheck, defaultValue: "true", handler: setUseHistoryPruning})
	registerOption(&uciOption{name: "Use_LMR", optType: optCheck, defaultValue: "true", handler: setUseLmr})
	registerOption(&uciOption{name: "Use_DrawJitter", optType: optCheck, defaultValue: "true", handler: setUseDrawJitter})
}

// GetOptions renders every registered option as a "option name ..." line,
// in registration order, for the "uci" command's reply.
func GetOptions() []string {
	lines := make([]string, 0, len(uciOptionOrder))
	for _, key := range uciOptionOrder {
		lines = append(lines, uciOptions[key].String())
	}
	return lines
}

func noopOption(*UciHandler, *uciOption) {}

func setHash(u *UciHandler, o *uciOption) {
	config.Settings.TT.HashSizeMB = o.asInt()
	u.search.SetHashSizeMB(o.asInt())
}

func clearHash(u *UciHandler, _ *uciOption) {
	u.search.ClearHash()
}

func setThreads(_ *UciHandler, o *uciOption) {
	n := o.asInt()
	config.Settings.Search.Threads = n
	config.Settings.TT.Threads = n
}

func setChess960(u *UciHandler, o *uciOption) {
	u.chess960 = o.asBool()
	u.position.SetChess960(u.chess960)
}

func setShowWDL(u *UciHandler, o *uciOption) {
	u.showWDL = o.asBool()
}

func setUseBook(_ *UciHandler, o *uciOption) {
	config.Settings.Search.UseBook = o.asBool()
}

func setBookFile(_ *UciHandler, o *uciOption) {
	config.Settings.Search.BookPath = o.currentValue
}

func setUseQuiescence(_ *UciHandler, o *uciOption)     { config.Settings.Search.UseQuiescence = o.asBool() }
func setUseSee(_ *UciHandler, o *uciOption)            { config.Settings.Search.UseSEE = o.asBool() }
func setUseTTMove(_ *UciHandler, o *uciOption)         { config.Settings.Search.UseTTMove = o.asBool() }
func setUseIIR(_ *UciHandler, o *uciOption)            { config.Settings.Search.UseIIR = o.asBool() }
func setUseNullMove(_ *UciHandler, o *uciOption)       { config.Settings.Search.UseNullMove = o.asBool() }
func setUseRfp(_ *UciHandler, o *uciOption)            { config.Settings.Search.UseRFP = o.asBool() }
func setUseRazoring(_ *UciHandler, o *uciOption)       { config.Settings.Search.UseRazoring = o.asBool() }
func setUseSingularExt(_ *UciHandler, o *uciOption)    { config.Settings.Search.UseSingularExt = o.asBool() }
func setUseLmp(_ *UciHandler, o *uciOption)            { config.Settings.Search.UseLMP = o.asBool() }
func setUseFp(_ *UciHandler, o *uciOption)             { config.Settings.Search.UseFP = o.asBool() }
func setUseHistoryPruning(_ *UciHandler, o *uciOption) { config.Settings.Search.UseHistoryPruning = o.asBool() }
func setUseLmr(_ *UciHandler, o *uciOption)            { config.Settings.Search.UseLMR = o.asBool() }
func setUseDrawJitter(_ *UciHandler, o *uciOption)     { config.Settings.Search.UseDrawJitter = o.asBool() }
