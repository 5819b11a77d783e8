package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docebot/docebot/config"
	"github.com/docebot/docebot/pkg/auth"
	"github.com/docebot/docebot/pkg/docebo"
	"github.com/docebot/docebot/pkg/intent"
	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/server"
)

// run is the entrypoint for the docebot server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring docebot: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting docebot server version %s", config.VersionString)

	config.SetLogLevel(cfg)
	appState := NewAppState(cfg)

	srv := server.Create(appState)
	done := setupSignalHandler(srv)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	<-done
}

// NewAppState creates an AppState struct from the config file / ENV and wires
// up the Docebo API client and the intent analyzer.
func NewAppState(cfg *config.Config) *models.AppState {
	return &models.AppState{
		LMSClient: docebo.NewClient(cfg),
		Analyzer:  intent.NewAnalyzer(),
		Config:    cfg,
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		dumpConfigToStdout(cfg)
		os.Exit(0)
	}
	if generateKey {
		fmt.Println(auth.GenerateJWT(cfg))
		os.Exit(0)
	}
}

// dumpConfigToStdout prints the effective config as JSON with the Docebo
// secrets masked.
func dumpConfigToStdout(cfg *config.Config) {
	masked := *cfg
	if masked.Docebo.ClientSecret != "" {
		masked.Docebo.ClientSecret = "********"
	}
	if masked.Docebo.Password != "" {
		masked.Docebo.Password = "********"
	}
	if masked.Auth.Secret != "" {
		masked.Auth.Secret = "********"
	}

	out, err := json.MarshalIndent(masked, "", "  ")
	if err != nil {
		log.Fatalf("Error dumping config: %s", err)
	}
	fmt.Println(string(out))
}

// setupSignalHandler shuts the HTTP server down cleanly on termination. The
// Docebo client is stateless beyond its cached token, so there is nothing
// else to flush.
func setupSignalHandler(srv *http.Server) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %s", err)
		}
		close(done)
	}()

	return done
}
