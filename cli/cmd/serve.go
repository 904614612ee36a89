package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/fddl/build"
	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/serve"
)

// Serve builds the site, then serves it and rebuilds on every change until
// interrupted.
type Serve struct {
	Project `embed:""`

	Port int    `default:"8080"      help:"Port to listen on" short:"p"`
	Host string `default:"127.0.0.1" help:"Host to bind to"`
}

// Run executes the serve command.
func (s *Serve) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := s.generator()

	if _, err := gen.Generate(ctx, s.Template); err != nil {
		return err
	}

	logger := log.Default()
	srv := serve.New(filepath.Join(s.Directory, build.OutputDir),
		serve.WithLogger(logger.Component("serve")))

	w, err := serve.NewWatcher(func(ctx context.Context) error {
		if _, err := gen.Generate(ctx, s.Template); err != nil {
			return err
		}

		srv.Reload()

		return nil
	}, serve.WithLogger(logger.Component("watch")))
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range []string{build.ContentsDir, build.TemplatesDir} {
		if err := w.Add(filepath.Join(s.Directory, dir)); err != nil {
			return err
		}
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return w.Run(ctx) })
	eg.Go(func() error {
		return srv.ListenAndServe(ctx, net.JoinHostPort(s.Host, strconv.Itoa(s.Port)))
	})

	return eg.Wait()
}
