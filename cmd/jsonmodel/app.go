package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/format"
	"github.com/reoring/jsonmodel/i18n"
	"github.com/reoring/jsonmodel/internal/config"
)

// app carries what every command needs. It is bound into kong's Run.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	opt    jsonmodel.ParseOpt
	dates  jsonmodel.DateFormatter

	prevDriver jsonmodel.JSONDriver
}

func newApp(cfg *config.Config, log *zap.Logger, stdin io.Reader, stdout io.Writer) (*app, error) {
	opt, err := cfg.ParseOpt()
	if err != nil {
		return nil, err
	}
	opt.OnIssue = func(is jsonmodel.ParseIssue) {
		log.Warn(is.Message, zap.String("code", is.Code), zap.String("path", is.Path))
	}
	dates, err := cfg.DateFormatter()
	if err != nil {
		return nil, err
	}
	driver, err := cfg.JSONDriver()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, stdin: stdin, stdout: stdout, opt: opt, dates: dates}
	a.prevDriver = jsonmodel.CurrentJSONDriver()
	jsonmodel.SetJSONDriver(driver)
	i18n.SetLanguage(cfg.Language)
	log.Debug("configured",
		zap.String("driver", driver.Name()),
		zap.String("language", i18n.Match(cfg.Language)),
		zap.String("format", cfg.Format))
	return a, nil
}

// restore undoes the process-wide settings newApp made.
func (a *app) restore() {
	jsonmodel.SetJSONDriver(a.prevDriver)
	i18n.SetLanguage("en")
}

// codec picks the input codec for file. An explicit name wins, then the
// file extension, then the configured default. Size limits apply to every
// format.
func (a *app) codec(file, name string) (format.Codec, error) {
	var (
		c   format.Codec
		err error
	)
	switch {
	case name != "":
		c, err = format.ByName(name)
	case file == "-" || file == "":
		c, err = format.ByName(a.cfg.Format)
	default:
		c, err = format.ForPath(file, a.cfg.Format)
	}
	if err != nil {
		return nil, err
	}
	if c.Name() == "json" {
		return format.JSON(a.opt), nil
	}
	return format.Limit{Inner: c, MaxDecode: int(a.opt.MaxBytes)}, nil
}

// read loads and decodes one document.
func (a *app) read(file, name string) (jsonmodel.Value, error) {
	c, err := a.codec(file, name)
	if err != nil {
		return jsonmodel.Value{}, err
	}
	var b []byte
	switch file {
	case "":
		return jsonmodel.Value{}, errNoInput
	case "-":
		b, err = io.ReadAll(a.stdin)
	default:
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return jsonmodel.Value{}, fmt.Errorf("read %s: %w", file, err)
	}
	a.log.Debug("decoding input", zap.String("file", file), zap.String("format", c.Name()), zap.Int("bytes", len(b)))
	v, err := c.Decode(b)
	if err != nil {
		return jsonmodel.Value{}, fmt.Errorf("decode %s: %w", file, err)
	}
	return v, nil
}

// pathKey is the key schema of ad hoc paths given on the command line.
type pathKey string

func splitPath(p string) []pathKey {
	if p == "" {
		return nil
	}
	parts := strings.Split(p, ".")
	keys := make([]pathKey, len(parts))
	for i, s := range parts {
		keys[i] = pathKey(s)
	}
	return keys
}
