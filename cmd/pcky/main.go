package main

import (
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

func main() {
	initDisplay()
	cmd := &commander.Command{
		UsageLine: "pcky <command> [arguments]",
		Short:     "probabilistic CKY parser",
		Subcommands: []*commander.Command{
			parseCmd(),
			checkCmd(),
			replCmd(),
		},
		Flag: *flag.NewFlagSet("pcky", flag.ExitOnError),
	}
	if err := cmd.Dispatch(os.Args[1:]); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// settings collects the flags all sub-commands share.
type settings struct {
	trace    string
	start    string
	passes   int
	parallel bool
}

func (s *settings) register(fs *flag.FlagSet) {
	fs.StringVar(&s.trace, "trace", "", "Trace level [Debug|Info|Error]")
	fs.StringVar(&s.start, "start", "", "Start symbol (default TOP)")
	fs.IntVar(&s.passes, "passes", 0, "Maximum number of unary closure passes per cell")
	fs.BoolVar(&s.parallel, "parallel", false, "Fill chart cells of equal span length concurrently")
}

// setup initializes global configuration and tracing. Configuration is
// loaded from the usual locations for app tag "pcky", flags are applied
// on top of it.
func setup(s *settings) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, "pcky", []string{"nt"})
	gconf.Initialize(conf)
	if s.start != "" {
		conf.Set("pcky.start-symbol", s.start)
	}
	if s.passes > 0 {
		conf.Set("pcky.unary-passes", s.passes)
	}
	if s.parallel {
		conf.Set("pcky.parallel", true)
	}
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(traceLevel(s.trace))
	tracer().Debugf("Trace level is %s", tracer().GetTraceLevel())
}

// traceLevel returns the trace level given by flag l, or else by
// configuration key "tracing.pcky". Default is Error.
func traceLevel(l string) tracing.TraceLevel {
	if l == "" {
		l = gconf.GetString("tracing.pcky")
	}
	if l == "" {
		return tracing.LevelError
	}
	return tracing.TraceLevelFromString(l)
}
