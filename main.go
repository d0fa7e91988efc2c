package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/michaelmacinnis/adapted"

	"github.com/jcorbin/stackgolf/internal/callers"
	"github.com/jcorbin/stackgolf/internal/fileinput"
	"github.com/jcorbin/stackgolf/internal/logio"
	"github.com/jcorbin/stackgolf/internal/panicerr"
)

const usage = `stackgolf

Usage:
  stackgolf [options] serve [--addr=ADDR] [--callers=PATH]
  stackgolf [options] -e PROGRAM
  stackgolf [options] [repl]
  stackgolf [options] FILE
  stackgolf -h

Options:
  -e, --eval=PROGRAM    Run the given program text.
  --input=TEXT          Program input; backslash escapes are decoded.
  --input-file=PATH     Read program input from a file instead of stdin.
  --timeout=DURATION    Time limit for each program run [default: 0s].
  --trace               Log every operator application to stderr.
  --max-depth=N         Block nesting limit [default: 10000].
  --history=PATH        Interactive history file [default: ~/.stackgolf_history].
  --addr=ADDR           Address to serve on [default: 0.0.0.0:2021].
  --callers=PATH        Caller table file; kept in memory if not given.
  -h, --help            Display this help.

With no FILE or PROGRAM, lines are read from stdin and run in one persistent
session, printing the final stack at the end. If stdin is a terminal, the
session has line editing and history.

The timeout applies to each session line and each served request; 0 means no
limit, except that serve then uses 10s.
`

type config struct {
	File      string `docopt:"FILE"`
	Eval      string `docopt:"--eval"`
	Repl      bool   `docopt:"repl"`
	Serve     bool   `docopt:"serve"`
	Input     string `docopt:"--input"`
	InputFile string `docopt:"--input-file"`
	Timeout   string `docopt:"--timeout"`
	Trace     bool   `docopt:"--trace"`
	MaxDepth  int    `docopt:"--max-depth"`
	History   string `docopt:"--history"`
	Addr      string `docopt:"--addr"`
	Callers   string `docopt:"--callers"`

	timeout time.Duration
}

func parseConfig(argv []string) (cfg config, err error) {
	opts, err := docopt.ParseArgs(usage, argv, "")
	if err != nil {
		return cfg, err
	}
	if err := opts.Bind(&cfg); err != nil {
		return cfg, err
	}
	if cfg.timeout, err = time.ParseDuration(cfg.Timeout); err != nil {
		return cfg, fmt.Errorf("invalid --timeout: %w", err)
	}
	if strings.HasPrefix(cfg.History, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.History = filepath.Join(home, cfg.History[2:])
		}
	}
	return cfg, nil
}

func main() {
	var log logio.Logger
	defer func() { os.Exit(log.ExitCode()) }()

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.ErrorIf(panicerr.Recover("stackgolf", func() error {
		return run(ctx, cfg, &log)
	}))
}

func run(ctx context.Context, cfg config, log *logio.Logger) error {
	stdin := bufio.NewReader(os.Stdin)

	opts := []VMOption{
		WithOutput(os.Stdout),
		WithDiagf(log.Leveledf("ERROR")),
		WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.Trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	var input io.Reader = stdin
	switch {
	case cfg.Input != "":
		s, err := adapted.ActualBytes(cfg.Input)
		if err != nil {
			return fmt.Errorf("invalid --input: %w", err)
		}
		input = strings.NewReader(s)
	case cfg.InputFile != "":
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}
	opts = append(opts, WithInput(input))

	switch {
	case cfg.Serve:
		var store callers.Store = &callers.MemStore{}
		if cfg.Callers != "" {
			store = &callers.FileStore{Path: cfg.Callers}
		}
		srv := newServer(store, log, WithMaxDepth(cfg.MaxDepth))
		if cfg.timeout > 0 {
			srv.timeout = cfg.timeout
		}
		return srv.serve(ctx, cfg.Addr)

	case cfg.Eval != "" || cfg.File != "":
		src := cfg.Eval
		if cfg.File != "" {
			b, err := os.ReadFile(cfg.File)
			if err != nil {
				return err
			}
			src = string(b)
		}
		ctx, cancel := withTimeout(ctx, cfg.timeout)
		defer cancel()
		vals, err := RunWithInput(ctx, src, input, opts...)
		if err != nil {
			return err
		}
		_, err = fmt.Println(FormatValues(vals))
		return err
	}

	sess := NewSession(opts...)
	defer sess.Close()
	sess.Timeout = cfg.timeout
	if input == io.Reader(stdin) && isatty.IsTerminal(os.Stdin.Fd()) {
		return sess.Interact(ctx, cfg.History, os.Stdout)
	}
	return sess.RunLines(ctx, &fileinput.Input{
		Queue: []io.Reader{fileinput.Named("<stdin>", stdin)},
	}, os.Stdout)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
