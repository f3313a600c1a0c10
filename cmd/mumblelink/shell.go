package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/srediag/mumblelink/api"
	"github.com/srediag/mumblelink/internal/logs"
	"github.com/srediag/mumblelink/internal/sampler"
)

const shellHelp = `read              read and print the record
tick              print the producer's tick
poll              read and remember the record when the tick moved
history           print and forget remembered records
units <u>         metric or imperial
context <c>       none, gw2 or hex
format <f>        text, json or debug
exit              leave the shell
`

// session is the state of one interactive shell.
type session struct {
	reader  api.Reader
	sampler *sampler.Sampler
	render  *renderer
	out     io.Writer
}

func (wrapper *CliWrapper) shell(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(c)
	defer cancel()

	reg, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer reg.Shutdown()

	r := reg.Readers()[0]
	s := &session{
		reader:  r,
		sampler: sampler.New(r, cfg.History, logs.Named("shell")),
		render:  newRenderer(wrapper.out, cfg),
		out:     wrapper.out,
	}
	defer s.sampler.Close()

	input, err := readline.NewEx(&readline.Config{
		Prompt: r.Name() + "> ",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("read"),
			readline.PcItem("tick"),
			readline.PcItem("poll"),
			readline.PcItem("history"),
			readline.PcItem("units", readline.PcItem("metric"), readline.PcItem("imperial")),
			readline.PcItem("context", readline.PcItem("none"), readline.PcItem("gw2"), readline.PcItem("hex")),
			readline.PcItem("format", readline.PcItem("text"), readline.PcItem("json"), readline.PcItem("debug")),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
		HistoryFile: filepath.Join(defaultConfigDir(), "shell_history"),
		Stdout:      wrapper.out,
	})
	if err != nil {
		return errors.Wrap(err, "start shell")
	}
	defer input.Close()
	input.CaptureExitSignal()

	for {
		line, err := input.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if s.handle(line) {
			return nil
		}
	}
}

// handle runs one shell line and reports whether the shell should exit.
func (s *session) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprint(s.out, shellHelp)
	case "read":
		rec, err := s.reader.Read()
		if err != nil {
			_ = s.render.Error(s.reader.Name(), err)
			return false
		}
		_ = s.render.Render(s.reader.Name(), &rec)
	case "tick":
		tick, err := s.reader.Tick()
		if err != nil {
			_ = s.render.Error(s.reader.Name(), err)
			return false
		}
		fmt.Fprintf(s.out, "%d\n", tick)
	case "poll":
		sample, changed, err := s.sampler.Poll()
		if err != nil {
			_ = s.render.Error(s.reader.Name(), err)
			return false
		}
		fmt.Fprintf(s.out, "tick %d changed=%t\n", sample.Record.UITick, changed)
	case "history":
		for _, sample := range s.sampler.Drain() {
			fmt.Fprintf(s.out, "# %s\n", sample.At.Format("15:04:05.000"))
			_ = s.render.Render(s.reader.Name(), &sample.Record)
		}
	case keyUnits, keyContext, keyFormat:
		s.set(cmd, args)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (s *session) set(key string, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "usage: %s <value>\n", key)
		return
	}
	r := s.render
	cfg := &Config{Format: r.format, Context: r.context, Units: r.units, Interval: 1}
	switch key {
	case keyUnits:
		cfg.Units = args[0]
	case keyContext:
		cfg.Context = args[0]
	case keyFormat:
		cfg.Format = args[0]
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	r.mu.Lock()
	r.format, r.context, r.units = cfg.Format, cfg.Context, cfg.Units
	r.mu.Unlock()
}
