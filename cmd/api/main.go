package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"tps-admin/interfaces/web/handlers"
	"tps-admin/interfaces/web/routes"
	"tps-admin/pkg/config"
	"tps-admin/pkg/di"
	"tps-admin/pkg/logger"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

type serveFlags struct {
	port    string
	apiURL  string
	envFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &serveFlags{}

	rootCmd := &cobra.Command{
		Use:   "tps-admin",
		Short: "Administration UI for TPS person records",
		Long: `tps-admin serves the person records administration pages. Records and
the city reference list live in the TPS API; this server only renders them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}
	addServeFlags(rootCmd, flags)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}
	addServeFlags(serveCmd, flags)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tps-admin", version)
		},
	}

	rootCmd.AddCommand(serveCmd, versionCmd)
	return rootCmd
}

func addServeFlags(cmd *cobra.Command, flags *serveFlags) {
	cmd.Flags().StringVar(&flags.port, "port", "", "listen port (overrides APP_PORT)")
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "TPS API base URL (overrides TPS_API_URL)")
	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "env file to load instead of .env")
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(flags *serveFlags) (*config.Config, error) {
	var envFiles []string
	if flags.envFile != "" {
		envFiles = append(envFiles, flags.envFile)
	}

	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return nil, err
	}
	if flags.port != "" {
		cfg.App.Port = flags.port
	}
	if flags.apiURL != "" {
		cfg.TPSAPI.BaseURL = flags.apiURL
	}
	return cfg, nil
}

func serve(flags *serveFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Log.Dir, cfg.Log.Console); err != nil {
		fmt.Printf("Warning: Failed to initialize logger: %v\n", err)
	}
	logger.Startup("logger_init", "Logger initialized", map[string]interface{}{"dir": cfg.Log.Dir})
	defer logger.Default().Close()

	// Initialize DI container
	container := di.NewContainer(cfg)
	if err := container.Initialize(); err != nil {
		logger.StartupError("container_init_failed", "Failed to initialize container", err, nil)
		return err
	}

	app := routes.NewApp(cfg.App.Name)
	routes.SetupMiddleware(app, cfg)

	h := handlers.NewHandlers(container.GetHandlerServices(), container.GetHealthHandler())
	routes.SetupRoutes(app, h, cfg)

	// Setup graceful shutdown
	setupGracefulShutdown(app)

	port := cfg.App.Port
	logger.Startup("server_starting", "Server starting", map[string]interface{}{
		"port":        port,
		"version":     version,
		"environment": cfg.App.Env,
		"ui":          fmt.Sprintf("http://localhost:%s/", port),
		"health":      fmt.Sprintf("http://localhost:%s/health", port),
	})

	listenErr := app.Listen(":" + port)

	if err := container.Cleanup(); err != nil {
		logger.StartupError("cleanup_failed", "Error during cleanup", err, nil)
	}
	if listenErr != nil {
		logger.StartupError("server_failed", "Server failed to start", listenErr, nil)
		return listenErr
	}
	logger.Startup("shutdown_complete", "Shutdown complete", nil)
	return nil
}

func setupGracefulShutdown(app *fiber.App) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Startup("shutdown_started", "Gracefully shutting down", nil)

		if err := app.Shutdown(); err != nil {
			logger.StartupError("shutdown_failed", "Error shutting down server", err, nil)
		}
	}()
}
