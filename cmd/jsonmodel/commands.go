package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/format"
	"github.com/reoring/jsonmodel/internal/keygen"
)

// GetCmd decodes the value at a key path.
type GetCmd struct {
	File     string `arg:"" optional:"" default:"-" help:"Input document ('-' for stdin)."`
	Path     string `help:"Dot-separated key path, e.g. address.city." short:"p" required:""`
	As       string `help:"Decode the value as this type." enum:"raw,string,int,float,bool,date,uuid,strings,ints" default:"raw"`
	Optional bool   `help:"Print nothing for null or missing values instead of failing." short:"o"`
	Lenient  bool   `help:"For strings/ints, skip elements that do not decode instead of failing."`
	Layout   string `help:"Go time layout for --as date (default from config)."`
}

func (c *GetCmd) Run(a *app) error {
	v, err := a.read(c.File, "")
	if err != nil {
		return err
	}
	o, err := jsonmodel.From[pathKey](v)
	if err != nil {
		return err
	}
	path := splitPath(c.Path)
	if len(path) == 0 {
		return fmt.Errorf("empty key path")
	}
	dates := a.dates
	if c.Layout != "" {
		dates = jsonmodel.Layout(c.Layout)
	}

	var lines []string
	switch c.As {
	case "raw":
		lines, err = scalar(o, path, c.Optional, jsonmodel.Raw(), jsonmodel.Value.String)
	case "string":
		lines, err = scalar(o, path, c.Optional, jsonmodel.String(), identity)
	case "int":
		lines, err = scalar(o, path, c.Optional, jsonmodel.Int64(), formatInt)
	case "float":
		lines, err = scalar(o, path, c.Optional, jsonmodel.Float(), formatFloat)
	case "bool":
		lines, err = scalar(o, path, c.Optional, jsonmodel.Bool(), strconv.FormatBool)
	case "date":
		lines, err = scalar(o, path, c.Optional, jsonmodel.DateOf(dates), dates.Format)
	case "uuid":
		lines, err = scalar(o, path, c.Optional, jsonmodel.UUID(), uuid.UUID.String)
	case "strings":
		lines, err = list(o, path, c.Lenient, jsonmodel.String(), identity)
	case "ints":
		lines, err = list(o, path, c.Lenient, jsonmodel.Int64(), formatInt)
	default:
		return fmt.Errorf("unsupported type %q", c.As)
	}
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(a.stdout, l)
	}
	return nil
}

func scalar[T any](o jsonmodel.Object[pathKey], path []pathKey, optional bool, dec jsonmodel.Decoder[T], show func(T) string) ([]string, error) {
	if optional {
		p, err := jsonmodel.Optional(o, dec, path...)
		if err != nil || p == nil {
			return nil, err
		}
		return []string{show(*p)}, nil
	}
	t, err := jsonmodel.Required(o, dec, path...)
	if err != nil {
		return nil, err
	}
	return []string{show(t)}, nil
}

func list[T any](o jsonmodel.Object[pathKey], path []pathKey, lenient bool, dec jsonmodel.Decoder[T], show func(T) string) ([]string, error) {
	var (
		xs  []T
		err error
	)
	if lenient {
		xs, err = jsonmodel.FlatMap(o, dec, path...)
	} else {
		xs, err = jsonmodel.Slice(o, dec, path...)
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = show(x)
	}
	return out, nil
}

func identity(s string) string     { return s }
func formatInt(i int64) string     { return strconv.FormatInt(i, 10) }
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// ConvertCmd re-encodes a document in another format.
type ConvertCmd struct {
	File   string `arg:"" optional:"" default:"-" help:"Input document ('-' for stdin)."`
	From   string `help:"Input format (default: from the file extension, then config)."`
	To     string `help:"Output format (default: from the output file extension)." short:"t"`
	Output string `help:"Output file (default: stdout)." short:"o" type:"path"`
}

func (c *ConvertCmd) Run(a *app) error {
	v, err := a.read(c.File, c.From)
	if err != nil {
		return err
	}
	to := c.To
	if to == "" && c.Output != "" {
		to = filepath.Ext(c.Output)
		if len(to) > 0 {
			to = to[1:]
		}
	}
	if to == "" {
		return fmt.Errorf("output format required: pass --to or an output file with a known extension")
	}
	out, err := format.ByName(to)
	if err != nil {
		return err
	}
	b, err := out.Encode(v)
	if err != nil {
		return err
	}
	a.log.Debug("encoded output", zap.String("format", out.Name()), zap.Int("bytes", len(b)))
	if c.Output == "" {
		_, err = a.stdout.Write(b)
		return err
	}
	if err := os.WriteFile(c.Output, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	a.log.Info("wrote output", zap.String("file", c.Output))
	return nil
}

// KeysCmd lists object keys or renders them as a Go key schema.
type KeysCmd struct {
	File    string `arg:"" optional:"" default:"-" help:"Input document ('-' for stdin)."`
	Path    string `help:"Dot-separated key path of a nested object." short:"p"`
	Go      string `help:"Emit a Go key schema with this type name instead of a key list." placeholder:"TYPE"`
	Package string `help:"Package name for --go output." default:"main"`
}

func (c *KeysCmd) Run(a *app) error {
	v, err := a.read(c.File, "")
	if err != nil {
		return err
	}
	o, err := jsonmodel.From[pathKey](v)
	if err != nil {
		return err
	}
	if path := splitPath(c.Path); len(path) > 0 {
		if o, err = o.Object(path...); err != nil {
			return err
		}
	}
	keys := make([]string, 0)
	for _, k := range o.Keys() {
		keys = append(keys, string(k))
	}
	if c.Go != "" {
		src, err := keygen.Render(keygen.Schema{Package: c.Package, TypeName: c.Go, Keys: keys})
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(src)
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(a.stdout, k)
	}
	return nil
}
