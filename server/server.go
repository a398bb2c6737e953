package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/mynextid/zk-base64/server/api"
	"golang.org/x/sync/errgroup"
)

type ServeConfig struct {
	// Server settings
	Host string
	Port int

	// Circuit settings
	CircuitsDir string
	Circuits    []string // Specific circuits to load (empty = all)

	// Performance settings
	MaxRequestSize  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Security settings
	EnableCORS  bool
	CorsOrigins []string

	// Observability
	EnablePprof bool
	LogLevel    string
	LogFormat   string // "json" or "text"

	// TLS settings
	EnableTLS bool
	CertFile  string
	KeyFile   string
}

// Run loads the compiled base64 circuits and serves them until ctx is done
func Run(ctx context.Context, cfg *ServeConfig) error {
	if err := validateServeConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	registry := api.NewCircuitRegistry()
	if err := loadCircuits(registry, cfg, logger); err != nil {
		return fmt.Errorf("failed to load circuits: %w", err)
	}

	httpServer := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:        NewHandler(registry, cfg, logger),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "addr", httpServer.Addr, "tls", cfg.EnableTLS)

		var err error
		if cfg.EnableTLS {
			err = httpServer.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// a listener failure cancels ctx as well, Shutdown is then a no-op
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// loadCircuits registers the setup files of the selected circuits. A circuit
// that fails to load is skipped, at least one must load.
func loadCircuits(registry *api.CircuitRegistry, cfg *ServeConfig, logger Logger) error {
	names := cfg.Circuits
	if len(names) == 0 {
		for name := range api.CircuitList {
			names = append(names, name)
		}
		slices.Sort(names)
	}

	for _, name := range names {
		ci := api.CircuitList[name]
		ci.Dir = cfg.CircuitsDir
		log := logger.With("circuit", name, "version", ci.Version)

		shape, err := ci.Shape()
		if err != nil {
			log.Warn("Invalid gadget shape", "error", err)
			continue
		}
		log = log.With("gadget_size", shape.DecodedByteSize, "encoded_size", shape.EncodedByteSize,
			"chunks", shape.Num6BitChunks, "pads", shape.NumEqualPaddings)

		if err := registry.LoadCircuit(ci); err != nil {
			log.Warn("Failed to load circuit", "error", err)
			continue
		}
		log.Info("Loaded circuit")
	}

	loaded := len(registry.Names())
	if loaded == 0 {
		return fmt.Errorf("no circuits loaded from %s", cfg.CircuitsDir)
	}
	logger.Info("Circuit loading complete", "loaded", loaded, "total", len(names))
	return nil
}

func validateServeConfig(cfg *ServeConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.MaxRequestSize <= 0 {
		return fmt.Errorf("invalid max request size: %d", cfg.MaxRequestSize)
	}

	for _, name := range cfg.Circuits {
		if _, ok := api.CircuitList[name]; !ok {
			return fmt.Errorf("unknown circuit: %s", name)
		}
	}

	if cfg.EnableTLS {
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			return errors.New("TLS enabled but cert-file or key-file not provided")
		}
		for _, f := range []string{cfg.CertFile, cfg.KeyFile} {
			if _, err := os.Stat(f); err != nil {
				return fmt.Errorf("TLS file not found: %s", f)
			}
		}
	}

	if _, err := os.Stat(cfg.CircuitsDir); err != nil {
		return fmt.Errorf("circuits directory not found: %s", cfg.CircuitsDir)
	}
	return nil
}
