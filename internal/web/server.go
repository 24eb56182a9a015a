// Package web exposes the power HAL call contract over HTTP: the host
// power daemon posts interactive transitions and power hints, and can
// read module identity and status.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"powerhald/internal/governor"
)

func Handler(m *governor.Module) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, m.Snapshot())
	})

	mux.HandleFunc("/api/module", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, m.Info())
	})

	mux.HandleFunc("/api/interactive", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			On *bool `json:"on"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.On == nil {
			http.Error(w, "body must be {\"on\": bool}", http.StatusBadRequest)
			return
		}
		m.SetInteractive(*req.On)
		writeOK(w)
	})

	mux.HandleFunc("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Hint string `json:"hint"`
			Data *int   `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Hint == "" {
			http.Error(w, "body must be {\"hint\": string, \"data\": int?}", http.StatusBadRequest)
			return
		}
		// Unrecognized hints are part of the contract: the module
		// ignores them and the request still succeeds.
		m.PowerHint(governor.Hint(req.Hint), req.Data)
		writeOK(w)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte("{\"ok\":true}\n"))
}

func Serve(ctx context.Context, listenAddr string, m *governor.Module) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           Handler(m),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MiB
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
