package main

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/srediag/mumblelink/internal/logs"
)

var (
	flagConfigDir = &cli.PathFlag{
		Name:    "config-dir",
		Usage:   "directory holding config.yaml.",
		EnvVars: []string{"MUMBLELINK_CONFIG_DIR"},
	}
	flagLogLevel = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "debug, info, warn or error.",
		EnvVars: []string{logs.EnvLogLevel},
	}
	flagNames = &cli.StringSliceFlag{
		Name:    keyNames,
		Aliases: []string{"n"},
		Usage:   "region names, the platform default when empty.",
		EnvVars: []string{"MUMBLELINK_NAMES"},
	}
	flagFormat = &cli.StringFlag{
		Name:    keyFormat,
		Aliases: []string{"f"},
		Usage:   "output format: text, json or debug.",
		EnvVars: []string{"MUMBLELINK_FORMAT"},
	}
	flagContext = &cli.StringFlag{
		Name:    keyContext,
		Usage:   "context decoding: none, gw2 or hex.",
		EnvVars: []string{"MUMBLELINK_CONTEXT"},
	}
	flagUnits = &cli.StringFlag{
		Name:    keyUnits,
		Usage:   "metric or imperial.",
		EnvVars: []string{"MUMBLELINK_UNITS"},
	}
	flagInterval = &cli.DurationFlag{
		Name:    keyInterval,
		Aliases: []string{"i"},
		Usage:   "poll interval.",
		EnvVars: []string{"MUMBLELINK_INTERVAL"},
	}
	flagHistory = &cli.Uint64Flag{
		Name:    keyHistory,
		Usage:   "number of changed records kept while watching.",
		EnvVars: []string{"MUMBLELINK_HISTORY"},
	}
	flagWait = &cli.DurationFlag{
		Name:    keyWait,
		Aliases: []string{"w"},
		Usage:   "how long to wait for a producer, 0 to not wait.",
		EnvVars: []string{"MUMBLELINK_WAIT"},
	}
	flagListen = &cli.StringFlag{
		Name:    keyListen,
		Aliases: []string{"l"},
		Usage:   "address serving /metrics, /live and /ready.",
		EnvVars: []string{"MUMBLELINK_LISTEN"},
	}
	flagWorkers = &cli.IntFlag{
		Name:    keyWorkers,
		Usage:   "concurrent reads when several regions are open.",
		EnvVars: []string{"MUMBLELINK_WORKERS"},
	}
)

type CliWrapper struct {
	app *cli.App
	out io.Writer
}

func NewCliWrapper(out io.Writer) *CliWrapper {
	wrapper := &CliWrapper{
		app: &cli.App{
			Name:    "mumblelink",
			Usage:   "read the MumbleLink positional audio region",
			Version: "0.1.0",
		},
		out: out,
	}
	wrapper.app.Writer = out
	wrapper.withFlags()
	wrapper.withBefore()
	wrapper.withCommands()
	return wrapper
}

func (wrapper *CliWrapper) Run(args []string) error {
	return wrapper.app.Run(args)
}

func (wrapper *CliWrapper) withFlags() {
	wrapper.app.Flags = []cli.Flag{
		flagConfigDir,
		flagLogLevel,
		flagNames,
		flagFormat,
		flagContext,
		flagUnits,
		flagWorkers,
	}
}

func (wrapper *CliWrapper) withBefore() {
	wrapper.app.Before = func(c *cli.Context) error {
		if s := c.String(flagLogLevel.Name); s != "" {
			l, err := zapcore.ParseLevel(s)
			if err != nil {
				return err
			}
			logs.SetLevel(l)
		}
		return nil
	}
}

func (wrapper *CliWrapper) withCommands() {
	wrapper.app.Commands = []*cli.Command{
		{
			Name:   "read",
			Usage:  "read every region once",
			Flags:  []cli.Flag{flagWait},
			Action: wrapper.read,
		},
		{
			Name:   "watch",
			Usage:  "print records whenever the producer's tick changes",
			Flags:  []cli.Flag{flagWait, flagInterval, flagHistory},
			Action: wrapper.watch,
		},
		{
			Name:   "serve",
			Usage:  "expose Prometheus metrics and health checks",
			Flags:  []cli.Flag{flagListen, flagInterval},
			Action: wrapper.serve,
		},
		{
			Name:   "shell",
			Usage:  "interactive shell over the first region",
			Action: wrapper.shell,
		},
		{
			Name:   "remove",
			Usage:  "unlink the named regions",
			Action: wrapper.remove,
		},
	}
}

// config merges the flags the user set over file and environment values.
func config(c *cli.Context) (*Config, error) {
	dir := c.Path(flagConfigDir.Name)
	if dir == "" {
		dir = defaultConfigDir()
	}
	overrides := map[string]any{}
	for _, name := range []string{keyFormat, keyContext, keyUnits, keyListen} {
		if c.IsSet(name) {
			overrides[name] = c.String(name)
		}
	}
	for _, name := range []string{keyInterval, keyWait} {
		if c.IsSet(name) {
			overrides[name] = c.Duration(name)
		}
	}
	if c.IsSet(keyNames) {
		overrides[keyNames] = c.StringSlice(keyNames)
	}
	if c.IsSet(keyHistory) {
		overrides[keyHistory] = c.Uint64(keyHistory)
	}
	if c.IsSet(keyWorkers) {
		overrides[keyWorkers] = c.Int(keyWorkers)
	}
	return loadConfig(dir, overrides)
}
