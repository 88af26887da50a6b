// gamespec validates, converts, exports and stores GameSpec documents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/promptplay/gamecore/internal/config"
)

// errUsage makes run print the command's usage and exit with status 2.
var errUsage = errors.New("usage")

type app struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

type command struct {
	usage   string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"validate":    {"validate <spec|dir>...", "check specs and print their warnings", runValidate},
	"fmt":         {"fmt [-w] <spec>", "print (or rewrite) a spec in canonical form", runFmt},
	"convert":     {"convert <in> <out>", "convert between JSON and YAML by extension", runConvert},
	"fingerprint": {"fingerprint <spec>...", "print the canonical fingerprint of each spec", runFingerprint},
	"export":      {"export [-title t] <spec|dir> <out.html>", "write a standalone HTML player", runExport},
	"script":      {"script <build.lua> <out>", "build a spec from a Lua script", runScript},
	"watch":       {"watch [dir]", "reload a project whenever its spec changes", runWatch},
	"db":          {"db <push|pull|list|rate|rm|history> ...", "store specs in PostgreSQL", runDB},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gamespec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "config file (default $"+config.EnvPath+")")
	prof := fs.String("profile", "", "write a cpu or mem profile to the working directory")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "gamespec: unknown command %q\n", name)
		fs.Usage()
		return 2
	}

	cfg, err := config.Resolve(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: load config: %v\n", err)
		return 1
	}
	log, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		fmt.Fprintf(stderr, "gamespec: -profile must be cpu or mem, got %q\n", *prof)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, log: log, out: stdout}
	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: gamespec %s\n", cmd.usage)
			return 2
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: gamespec [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

func newLogger(cfg config.LoggingConfig, sink io.Writer) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if sink == os.Stderr {
		return zapCfg.Build()
	}
	// Tests capture stderr in a buffer.
	enc := zapcore.NewConsoleEncoder(zapCfg.EncoderConfig)
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(zapCfg.EncoderConfig)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(sink), zapCfg.Level)), nil
}
