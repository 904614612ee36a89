package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yml")
//
// Keys name flags without their leading dashes. Nested mappings are joined
// with hyphens, so these two files are equivalent:
//
//	log-level: debug
//	log_pretty: false
//
//	log:
//	  level: debug
//	  pretty: false
//
// Command-line flags override config file values. An empty file yields no
// values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if errors.Is(err, io.EOF) {
		return config{}, nil
	}

	if err != nil {
		return nil, ErrConfigFile.Wrap(err)
	}

	out := make(config)
	flatten(out, "", doc)

	return out, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten copies doc into out, joining nested mapping keys with "-".
func flatten(out config, prefix string, doc map[string]any) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		if m, ok := v.(map[string]any); ok {
			flatten(out, key, m)

			continue
		}

		out[key] = scalar(v)
	}
}

// scalar converts a decoded YAML value into the form Kong parses. Kong
// requires numbers as strings; sequences become comma-separated lists.
func scalar(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(scalar(item))
		}

		return strings.Join(items, ",")
	default:
		return v
	}
}
