package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/zittyzoom/internal/config"
	"github.com/sells-group/zittyzoom/internal/gateway"
	"github.com/sells-group/zittyzoom/pkg/geocode"
	"github.com/sells-group/zittyzoom/pkg/google"
	"github.com/sells-group/zittyzoom/pkg/weather"
	"github.com/sells-group/zittyzoom/pkg/wikipedia"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the places gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildGateway(cfg).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down gateway")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting gateway", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildGateway wires provider clients from config. Providers without a
// credential are left nil.
func buildGateway(c *config.Config) *gateway.Server {
	var up gateway.Upstreams

	if c.Google.PlacesKey != "" {
		up.Places = google.NewClient(c.Google.PlacesKey, google.WithBaseURL(c.Google.PlacesBaseURL))
	} else {
		zap.L().Warn("gateway: places key not configured")
	}
	if key := c.Google.GeocodingKey(); key != "" {
		up.Geocoder = geocode.NewClient(key,
			geocode.WithBaseURL(c.Google.GeocodeBaseURL),
			geocode.WithGeolocationURL(c.Google.GeolocationBaseURL),
		)
	}
	up.Wikipedia = wikipedia.NewClient(wikipedia.WithBaseURL(c.Wikipedia.BaseURL))
	if c.Weather.Key != "" {
		up.Weather = weather.NewClient(c.Weather.Key, weather.WithBaseURL(c.Weather.BaseURL))
	} else {
		zap.L().Warn("gateway: weather key not configured")
	}

	return gateway.New(gateway.Config{
		MapID:               c.Maps.MapID,
		AutocompleteRadiusM: c.Search.AutocompleteRadiusM,
		NearbyRadiusM:       c.Search.NearbyRadiusM,
		CORSOrigins:         c.Server.CORSOrigins,
	}, up)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
