package render

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ardnew/fddl/site"
)

// DefaultAPIOutput is used when a template has no api.yml.
var DefaultAPIOutput = site.OutputTemplate{
	Format:     "api",
	Extension:  ".json",
	OutputPath: "api",
	View:       "api.json",
}

// JSON writes the whole site to site.json and each page to
// pages/<path>.json below out's output path. It returns the number of files
// written.
func (r *Renderer) JSON(ctx context.Context, s *site.Site, out site.OutputTemplate) (int, error) {
	err := r.writeJSON(outputName(out, "site.json"), s)
	if err != nil {
		return 0, err
	}

	n := 1

	for _, p := range s.Pages {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		err := r.writeJSON(outputName(out, "pages/"+p.OutputPath(".json")), p)
		if err != nil {
			return n, err
		}

		n++
	}

	r.logger.InfoContext(ctx, "rendered JSON API",
		slog.String("path", out.OutputPath),
		slog.Int("files", n),
	)

	return n, nil
}

func (r *Renderer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrEncodeJSON.With(slog.String("name", name)).Wrap(err)
	}

	_, err = r.out.Write(name, append(data, '\n'))

	return err
}
