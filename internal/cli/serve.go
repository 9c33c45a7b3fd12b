// filepath: internal/cli/serve.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noahchrist/myCbbModel/internal/api"
	"github.com/noahchrist/myCbbModel/internal/api/handlers"
	"github.com/noahchrist/myCbbModel/internal/logging"
	"github.com/noahchrist/myCbbModel/internal/repository"
	"github.com/noahchrist/myCbbModel/internal/services"

	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API and web interface",
	Long:  `Starts the HTTP server hosting the REST API, the swagger UI and the embedded frontend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: CBB_PORT)")
	serveCmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "Frontend origin allowed by CORS. (Env: CBB_CORS_ORIGIN)")
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// --- Conditional Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return err
	}

	// Service Initialization
	databaseOK := repo.Ping() == nil
	infoService := services.NewInfoService(Version, StartTime, databaseOK)

	h := handlers.NewHandlers(infoService)

	r := api.SetupRouter(h, cfg, frontendFS)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Run server in a goroutine
	go func() {
		logging.Log.Infof("Server starting on %s (CORS origin: %s)", serverAddr, cfg.Server.CORSOrigin)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Block until a signal is received
	<-stop
	logging.Log.Info("Shutting down server...")

	// Create a deadline for existing requests to complete (30 seconds)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown the HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
