package cli

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elemvis/elemvis/pkg/cache"
	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/pipeline"
)

// serveCommand creates the serve command for exposing charts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		dataset    string
		sheet      string
		redisURL   string
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Long: `Serve charts over HTTP.

Endpoints:

  GET /healthz              liveness probe
  GET /api/table            periodic-table chart (attribute, colorby,
                            color_scale, decimals, wide, width, height,
                            title, format query parameters)
  GET /api/scale/{scale}    electronegativity scale chart (format)

The format query parameter selects svg (default), png, html, or json.
With --redis the cache is shared across instances; otherwise the local
file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if dataset == "" {
				dataset = cfg.Dataset
			}
			if dataset == "" {
				return fmt.Errorf("dataset is required (--dataset or config file)")
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if addr == "" {
				addr = ":8080"
			}
			if redisURL == "" {
				redisURL = cfg.Serve.RedisURL
			}

			ctx := cmd.Context()
			store, err := serveCache(ctx, redisURL, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			var keyer cache.Keyer
			if redisURL != "" {
				// A shared Redis instance may serve other applications;
				// namespace the keys.
				keyer = cache.NewScopedKeyer(nil, appName+":")
			}
			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeHandler(runner, dataset, sheet, c.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			c.Logger.Info("serving charts", "addr", addr, "dataset", dataset)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&dataset, "dataset", "", "element dataset to serve (path or URL)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet name for XLSX datasets")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared cache (redis://host:port/db)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.config/elemvis/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveCache picks the cache backend for the server: Redis when a URL is
// given, the local file cache otherwise.
func serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return newCache(false)
}

// newServeHandler builds the chi router for the chart server.
func newServeHandler(runner *pipeline.Runner, dataset, sheet string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	r.Get("/api/table", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		opts := pipeline.Options{
			Source:       dataset,
			Sheet:        sheet,
			Kind:         pipeline.KindTable,
			Attribute:    q.Get("attribute"),
			ColorBy:      q.Get("colorby"),
			ColorScale:   q.Get("color_scale"),
			Decimals:     queryIntPtr(q.Get("decimals")),
			MissingColor: q.Get("missing_color"),
			Title:        q.Get("title"),
			Wide:         q.Get("wide") == "true",
			Width:        queryInt(q.Get("width")),
			Height:       queryInt(q.Get("height")),
		}
		serveChart(w, req, runner, opts, q.Get("format"))
	})

	r.Get("/api/scale/{scale}", func(w http.ResponseWriter, req *http.Request) {
		opts := pipeline.Options{
			Source: dataset,
			Sheet:  sheet,
			Kind:   pipeline.KindScale,
			Scale:  chi.URLParam(req, "scale"),
		}
		serveChart(w, req, runner, opts, req.URL.Query().Get("format"))
	})

	return r
}

// serveChart runs the pipeline for one request and writes the artifact.
func serveChart(w http.ResponseWriter, req *http.Request, runner *pipeline.Runner, opts pipeline.Options, format string) {
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeHTTPError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := runner.Execute(req.Context(), opts)
	if err != nil {
		loggerFromContext(req.Context()).Error("chart request failed",
			"kind", opts.Kind, "err", err)
		writeHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Write(result.Artifacts[format])
}

// contentType maps an output format to its MIME type.
func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatHTML:
		return "text/html; charset=utf-8"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "image/svg+xml"
	}
}

// writeHTTPError maps an error code to an HTTP status and writes the
// user-facing message.
func writeHTTPError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidColumn, errors.ErrCodeInvalidScale,
		errors.ErrCodeInvalidFormat, errors.ErrCodeMissingColumn, errors.ErrCodeInvalidDataset:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	}
	http.Error(w, errors.UserMessage(err), status)
}

// requestIDMiddleware tags every request with a UUID, attaches a
// request-scoped logger to the context, and logs the outcome.
func requestIDMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-ID", id)

			reqLogger := logger.With("request_id", id)
			req = req.WithContext(withLogger(req.Context(), reqLogger))

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, req)

			reqLogger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}

// queryInt parses an integer query parameter, treating absent or invalid
// values as zero so pipeline defaults apply.
func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// queryIntPtr parses an integer query parameter where zero is a valid
// value, returning nil when the parameter is absent or invalid.
func queryIntPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
