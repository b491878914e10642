package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/agenthands/iam/pkg/config"
	"github.com/agenthands/iam/pkg/driver"
	"github.com/agenthands/iam/pkg/vm"
)

var (
	// logger instance
	log = logrus.New()
)

// customized via Makefile
var (
	Version = "development"
	GitHash = "unknown"
)

const banner = "IAM Language Interpreter (Go Version)"

// config file name kingpin.Value
// parses the configuration on value set
type configValue struct {
	cfg *config.Config
	v   string
}

func (f *configValue) Set(s string) error {
	f.v = s
	return f.cfg.ParseFile(f.v)
}

func (f *configValue) String() string {
	return f.v
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cfg := config.Default()

	app := kingpin.New("iam", "Interpreter for the IAM scripting language.")
	app.Version(fmt.Sprintf("%s (%s)", Version, GitHash))

	var quiet, noBanner, debug bool
	app.Flag("config", "Configuration in YML format. Put it before other flags to let them override it.").SetValue(&configValue{cfg: cfg})
	app.Flag("gas", "Maximum number of executed statements (0 = unlimited).").IntVar(&cfg.Gas)
	app.Flag("log-level", "Diagnostics level: debug, info, warning, error.").StringVar(&cfg.LogLevel)
	app.Flag("color", "Colored banner and prompts: auto, always, never.").EnumVar(&cfg.Color, "auto", "always", "never")
	app.Flag("prompt", "Prompt shown by interactive input statements.").StringVar(&cfg.Prompt)
	app.Flag("quiet", "Do not print diagnostics.").Short('q').BoolVar(&quiet)
	app.Flag("no-banner", "Do not print the startup banner.").BoolVar(&noBanner)
	app.Flag("debug", "Debug mode (more log messages).").Short('d').BoolVar(&debug)

	runCmd := app.Command("run", "Run a program file, or standard input when no file is given.").Default()
	runFile := runCmd.Arg("file", "Program to run.").String()

	replCmd := app.Command("repl", "Start an interactive session.")

	tokensCmd := app.Command("tokens", "Print the token stream of a program.")
	tokensFile := tokensCmd.Arg("file", "Program to tokenize.").Required().String()

	configCmd := app.Command("config", "Print the effective configuration.")

	versionCmd := app.Command("version", "Print the version.")

	command, err := app.Parse(args)
	if err != nil {
		log.WithError(err).Error("failed to parse command line")
		return 2
	}

	if quiet {
		cfg.Diagnostics = "off"
	}
	if noBanner {
		cfg.Banner = false
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("bad configuration")
		return 2
	}
	if debug {
		log.Level = logrus.DebugLevel
		driver.SetLogLevel(logrus.DebugLevel)
	}
	setupColor(cfg.Color)

	diag, err := driver.NewDiagnostics(cfg, os.Stderr)
	if err != nil {
		log.WithError(err).Error("bad configuration")
		return 2
	}
	vm.SetLogLevel(diag.Level)

	switch command {
	case runCmd.FullCommand():
		return cmdRun(cfg, diag, *runFile, stdout)
	case replCmd.FullCommand():
		return cmdRepl(cfg, diag, stdout)
	case tokensCmd.FullCommand():
		return cmdTokens(cfg, *tokensFile, stdout)
	case configCmd.FullCommand():
		out, err := cfg.Dump()
		if err != nil {
			log.WithError(err).Error("failed to dump configuration")
			return 1
		}
		fmt.Fprint(stdout, out)
		return 0
	case versionCmd.FullCommand():
		fmt.Fprintln(stdout, Version)
		return 0
	}
	return 0
}

func setupColor(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

func printBanner(cfg *config.Config, w io.Writer) {
	if cfg.Banner {
		color.New(color.FgCyan, color.Bold).Fprintln(w, banner)
	}
}
