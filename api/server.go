package api

import (
	// Go Internal Packages
	"context"
	"errors"
	"net/http"
	"time"

	// External Packages
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter serves health and metrics, plus the transaction API when h is
// not nil. extra mounts additional handlers, e.g. broker client metrics.
func NewRouter(h *Handler, timeout time.Duration, extra map[string]http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	for path, handler := range extra {
		r.Handle(path, handler).Methods(http.MethodGet)
	}

	if h != nil {
		apiRouter := r.PathPrefix("/").Subrouter()
		apiRouter.Use(func(next http.Handler) http.Handler {
			return http.TimeoutHandler(next, timeout, `{"code":"INTERNAL_ERROR","message":"request timed out"}`)
		})
		apiRouter.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
		apiRouter.HandleFunc("/transactions/{id}", h.GetTransaction).Methods(http.MethodGet)
		apiRouter.HandleFunc("/transfer-types", h.ListTransferTypes).Methods(http.MethodGet)
		apiRouter.HandleFunc("/transaction-statuses", h.ListStatuses).Methods(http.MethodGet)
	}
	return r
}

// Serve runs the server until ctx is canceled, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down http server")
	return server.Shutdown(shutdownCtx)
}
