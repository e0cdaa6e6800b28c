// Command jsonmodel inspects and converts JSON-like documents with the
// jsonmodel keyed decoders.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/internal/config"
)

// Version information
const Version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Config string `help:"Path to a config file. When empty, .jsonmodel.yaml is searched upwards from the working directory." type:"path"`
	Debug  bool   `help:"Enable debug logging." short:"d"`
	Lang   string `help:"Language for decode error messages (BCP 47, e.g. ja-JP)." short:"l"`
	Driver string `help:"JSON driver (std or gojson)."`
	Format string `help:"Input format when the file extension does not tell (json, yaml, cbor, msgpack, protobuf)." short:"f"`

	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Get     GetCmd     `cmd:"" help:"Decode the value at a key path."`
	Convert ConvertCmd `cmd:"" help:"Convert a document to another format."`
	Keys    KeysCmd    `cmd:"" help:"List the keys of an object, or emit a Go key schema for them."`
}

type exitCode int

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 on success, 1 on
// a failed command, 2 on a usage error.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jsonmodel"),
		kong.Description("Decode, inspect and convert JSON documents through typed key paths"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Vars{"version": Version},
	)
	if err != nil {
		fmt.Fprintf(stderr, "jsonmodel: %v\n", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "jsonmodel: %v\n", err)
		return 1
	}
	if cli.Lang != "" {
		cfg.Language = cli.Lang
	}
	if cli.Driver != "" {
		cfg.Driver = cli.Driver
	}
	if cli.Format != "" {
		cfg.Format = cli.Format
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "jsonmodel: %v\n", err)
		return 1
	}

	logger, err := newLogger(stderr, cli.Debug, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "jsonmodel: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "jsonmodel: %v\n", err)
		return 1
	}
	defer a.restore()

	if err := ctx.Run(a); err != nil {
		if de, ok := jsonmodel.AsDecodeError(err); ok {
			logger.Debug("decode failed", zap.String("pointer", de.Pointer()), zap.String("code", de.Code()))
			fmt.Fprintln(stderr, de.Localize())
			return 1
		}
		fmt.Fprintf(stderr, "jsonmodel: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.FindConfigFile("")
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

// newLogger builds a console logger on w. Debug mode uses the development
// encoder at debug level; otherwise level comes from the config.
func newLogger(w io.Writer, debug bool, level string) (*zap.Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	lvl := zapcore.InfoLevel
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		lvl = zapcore.DebugLevel
	} else if level != "" {
		l, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = l
	}
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

var errNoInput = errors.New("no input: pass a file or '-' for stdin")
