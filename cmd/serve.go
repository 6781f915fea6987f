package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/doughepi/grain/core/loader"
	"github.com/doughepi/grain/core/logger"
	"github.com/doughepi/grain/core/middleware/auth"
	"github.com/doughepi/grain/core/middleware/rayid"
	"github.com/doughepi/grain/feature/syncapi"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/doughepi/grain/docs/swagger"
)

// @title Grain API
// @version 1.0
// @description Sync personal data into a document ingestion service.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Starts the HTTP server exposing directory syncs, the remote documents overview and the pass history.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, logg, err := setup(false)
		if err != nil {
			return err
		}
		defer logg.Sync()

		repo := openHistory(ctx, cfg, logg)
		engine, client, release, err := newEngine(ctx, cfg, logg, repo, true, false)
		if err != nil {
			return err
		}
		defer release()

		mgr := loader.NewManager(logg)
		mgr.Register(syncapi.NewFeature(engine, client, repo, cfg.Server.AllowedRoots, logg))

		app, err := newServer(logg, mgr, cfg.Server.ApiKey)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.Bool("auth", cfg.Server.AuthEnabled()))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// newServer builds the fiber app with middleware and every enabled feature.
func newServer(logg *zap.Logger, mgr *loader.Manager, apiKey string) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every log line of a request carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Use(auth.New(auth.Config{ApiKey: apiKey, Skip: []string{"/swagger"}}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
