package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/pkg"
	"github.com/ardnew/fddl/profile"
)

const configIndent = 2

// Init writes the effective flag values to a configuration file, so that a
// later run with no flags behaves like this one.
type Init struct {
	Force   bool `help:"Overwrite an existing configuration file" short:"f"`
	Project bool `help:"Write the project file in the working directory instead of the user configuration" short:"p"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)

	path, err := i.target(ktx.Model.Vars())
	if err != nil {
		return err
	}

	logger := log.Default().Component("init").With(slog.String("file", path))

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(ErrFileExists)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	var buf bytes.Buffer

	buf.WriteString("# " + pkg.Name + " configuration. Keys name flags without dashes.\n")

	enc := yaml.NewEncoder(&buf, yaml.Indent(configIndent), yaml.IndentSequence(true))
	if err := enc.EncodeContext(ctx, settings(ktx)); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
		}
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	logger.InfoContext(ctx, "configuration written", slog.Bool("project", i.Project))

	return nil
}

// target returns the file written by Run.
func (i *Init) target(vars kong.Vars) (string, error) {
	key := ConfigIdentifier
	if i.Project {
		key = ProjectIdentifier
	}

	if path := vars[key]; path != "" {
		return path, nil
	}

	return "", ErrWriteConfig.With(slog.String("var", key)).Wrap(ErrNoConfigPath)
}

// settings returns the visible flags that hold a value. Flags belonging to a
// group are nested under the group key with the group prefix removed, which
// is the shape the configuration loader flattens back into flag names.
// Help and profiling flags are never written.
func settings(ktx *kong.Context) yaml.MapSlice {
	var (
		out    yaml.MapSlice
		groups = map[string]int{}
	)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || flag.Name == "help" || strings.HasPrefix(flag.Name, profile.Tag) {
			continue
		}

		v, ok := settingValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		if flag.Group == nil {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: v})

			continue
		}

		name, ok := strings.CutPrefix(flag.Name, flag.Group.Key+"-")
		if !ok {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: v})

			continue
		}

		at, seen := groups[flag.Group.Key]
		if !seen {
			at = len(out)
			groups[flag.Group.Key] = at
			out = append(out, yaml.MapItem{Key: flag.Group.Key, Value: yaml.MapSlice{}})
		}

		nested, _ := out[at].Value.(yaml.MapSlice)
		out[at].Value = append(nested, yaml.MapItem{Key: name, Value: v})
	}

	return out
}

// settingValue reports whether v is worth writing, returning it unchanged
// if so. Empty strings, slices and maps are skipped.
func settingValue(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case []string:
		return v, len(v) > 0
	case map[string]string:
		return v, len(v) > 0
	}

	return v, true
}
