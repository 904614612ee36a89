package site

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ConfigurationFile is the template configuration file name.
const ConfigurationFile = "template.yml"

// NavigationItem is an entry of the site navigation.
type NavigationItem struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url"   yaml:"url"`
}

// PluginConfig enables a plugin and supplies its options.
type PluginConfig struct {
	Identifier string            `json:"identifier"        yaml:"identifier"`
	Enabled    *bool             `json:"enabled,omitempty" yaml:"enabled"`
	Options    map[string]string `json:"options,omitempty" yaml:"options"`
}

// IsEnabled reports whether the plugin should load. Plugins are enabled
// unless explicitly disabled.
func (c PluginConfig) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

// Option returns the named option, or def if it is unset.
func (c PluginConfig) Option(name, def string) string {
	if v, ok := c.Options[name]; ok && v != "" {
		return v
	}

	return def
}

// TemplateConfiguration is loaded from a template's template.yml.
type TemplateConfiguration struct {
	Name          string           `json:"name"                    yaml:"name"`
	Version       string           `json:"version,omitempty"       yaml:"version"`
	Author        string           `json:"author,omitempty"        yaml:"author"`
	Description   string           `json:"description,omitempty"   yaml:"description"`
	DefaultLayout string           `json:"defaultLayout,omitempty" yaml:"defaultLayout"`
	Outputs       []string         `json:"outputs"                 yaml:"outputs"`
	Navigation    []NavigationItem `json:"navigation"              yaml:"navigation"`
	Plugins       []PluginConfig   `json:"plugins,omitempty"       yaml:"plugins"`
	LocaleName    string           `json:"locale,omitempty"        yaml:"locale"`
	BaseURL       string           `json:"baseURL,omitempty"       yaml:"baseURL"`
}

// DefaultConfiguration returns the configuration used for a template
// declaring nothing but its name.
func DefaultConfiguration() TemplateConfiguration {
	return TemplateConfiguration{
		Name:          "default",
		Version:       "1.0",
		DefaultLayout: "page",
		Outputs:       []string{"html"},
		Navigation:    []NavigationItem{},
	}
}

// OutputTemplate is loaded from an output configuration such as html.yml.
type OutputTemplate struct {
	Format     string            `json:"format"              yaml:"format"`
	Extension  string            `json:"extension"           yaml:"extension"`
	OutputPath string            `json:"outputPath"          yaml:"outputPath"`
	View       string            `json:"view"                yaml:"view"`
	IndexView  string            `json:"indexView,omitempty" yaml:"indexView"`
	Variables  map[string]string `json:"variables,omitempty" yaml:"variables"`
	Layouts    map[string]string `json:"layouts,omitempty"   yaml:"layouts"`
	// Where is an optional boolean expression selecting the pages rendered
	// by this output. See [Selector].
	Where string `json:"where,omitempty" yaml:"where"`
}

// ViewFor returns the view path for a page layout: the layout's mapped view
// if one exists, else the default view.
func (o *OutputTemplate) ViewFor(layout string) string {
	if view, ok := o.Layouts[layout]; ok && layout != "" {
		return view
	}

	return o.View
}

// IndexViewOrDefault returns the index view, or the default view if none is
// configured.
func (o *OutputTemplate) IndexViewOrDefault() string {
	if o.IndexView != "" {
		return o.IndexView
	}

	return o.View
}

// LoadConfiguration decodes templateDir/template.yml.
func LoadConfiguration(templateDir string) (TemplateConfiguration, error) {
	path := filepath.Join(templateDir, ConfigurationFile)

	cfg := DefaultConfiguration()

	err := decodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, ErrConfigurationNotFound.With(slog.String("path", path))
	}

	return cfg, err
}

// LoadOutputTemplate decodes templateDir/<name>.yml.
func LoadOutputTemplate(templateDir, name string) (OutputTemplate, error) {
	path := filepath.Join(templateDir, name+".yml")

	var out OutputTemplate

	err := decodeFile(path, &out)
	if errors.Is(err, fs.ErrNotExist) {
		return out, ErrOutputTemplateNotFound.With(
			slog.String("name", name),
			slog.String("path", path),
		)
	}

	if err != nil {
		return out, err
	}

	out.setDefaults(name)

	return out, nil
}

// setDefaults fills fields left empty by the configuration file.
func (o *OutputTemplate) setDefaults(name string) {
	if o.Format == "" {
		o.Format = name
	}

	if o.Extension == "" {
		o.Extension = ".html"
	}

	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
}

// LoadView reads the view template templateDir/<name>.
func LoadView(templateDir, name string) (string, error) {
	path := filepath.Join(templateDir, filepath.FromSlash(name))

	data, err := os.ReadFile(path)
	if err != nil {
		return "", ErrViewNotFound.
			With(slog.String("name", name), slog.String("path", path)).
			Wrap(err)
	}

	return string(data), nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(data, v)
	if err != nil {
		return ErrDecodeConfiguration.
			With(slog.String("path", path)).
			Wrap(err)
	}

	return nil
}
