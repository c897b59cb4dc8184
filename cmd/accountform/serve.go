package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-accountform"
	"github.com/goliatone/go-accountform/internal/metrics"
	"github.com/goliatone/go-accountform/pkg/backendstub"
	"github.com/goliatone/go-accountform/pkg/client"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/renderers/vanilla"
	"github.com/goliatone/go-accountform/pkg/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		listen   string
		withStub bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			defer env.close()

			if listen != "" {
				env.cfg.HTTP.ListenAddr = listen
			}

			form, err := accountform.BuildForm(server.FormPath, env.cfg.UI.Schema)
			if err != nil {
				return err
			}
			renderer, err := vanilla.New(vanilla.WithAssetURLPrefix(server.AssetsPath))
			if err != nil {
				return err
			}
			submitter, err := client.New(env.cfg.Backend.Endpoint(),
				client.WithTimeout(env.cfg.Backend.Timeout),
				client.WithLogger(env.logger),
			)
			if err != nil {
				return err
			}

			front := server.New(form, renderer, submitter,
				server.WithLogger(env.logger),
				server.WithTheme(env.cfg.UI.RendererConfig()),
				server.WithAssets(accountform.AssetsFS()),
				server.WithSessionOptions(registration.WithPhaseObserver(metrics.Observe)),
			)

			servers := []*http.Server{server.NewHTTPServer(env.cfg.HTTP.ListenAddr, front.Routes())}
			if withStub {
				stub, err := backendstub.New(cmd.Context(),
					backendstub.WithFailMode(env.cfg.Stub.Fail),
					backendstub.WithLogger(env.logger),
				)
				if err != nil {
					return err
				}
				servers = append(servers, server.NewHTTPServer(env.cfg.Stub.ListenAddr, stub.Routes()))
			}
			return runServers(cmd.Context(), env.logger, servers...)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address; overrides http.listen_addr")
	cmd.Flags().BoolVar(&withStub, "with-stub", false, "Also run the development backend on stub.listen_addr")
	return cmd
}

// runServers serves until SIGINT/SIGTERM or the first listener error, then
// shuts every server down.
func runServers(parent context.Context, logger *zap.SugaredLogger, servers ...*http.Server) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Infow("http server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		logger.Infow("http servers stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
