// Package api exposes the HTTP surface: episode streaming, the manual sync
// trigger and the bulk cleanup operation.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"bitbucket.org/jayflux/mypodcasts_library/config"
	"bitbucket.org/jayflux/mypodcasts_library/library"
	"bitbucket.org/jayflux/mypodcasts_library/stream"
)

// Serve builds the router and blocks on the listener.
func Serve(cfg *config.Config) error {
	log.Printf("api: listening on %s", cfg.Server.Address)
	return http.ListenAndServe(cfg.Server.Address, NewRouter(cfg))
}

// NewRouter wires all endpoints. Split out from Serve so tests can drive
// the router through httptest.
func NewRouter(cfg *config.Config) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/stream/{token}", stream.Handler(cfg)).Methods("GET")
	router.HandleFunc("/sync", syncHandler(cfg)).Methods("POST")
	router.HandleFunc("/cleanup", requireAdmin(cfg, cleanupHandler(cfg))).Methods("POST")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	}).Methods("GET")
	return router
}

// syncHandler kicks off a synchronization cycle in the background. There is
// no mutual exclusion against the scheduled cycle, creation is existence
// gated and therefore safe under that race.
func syncHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go library.Synchronize(cfg)
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprintln(w, "synchronization started")
	}
}

func cleanupHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := library.CleanupEpisodeFiles(cfg.Library.Path)
		if err != nil {
			log.Printf("api: cleanup: %v", err)
			http.Error(w, "cleanup failed", http.StatusInternalServerError)
			return
		}
		log.Printf("api: cleanup removed %d files", deleted)
		fmt.Fprintf(w, "%d files deleted\n", deleted)
	}
}

// requireAdmin stands in for the host's authorization layer: the caller
// must present the configured admin token.
func requireAdmin(cfg *config.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Server.AdminToken == "" || r.Header.Get("X-Admin-Token") != cfg.Server.AdminToken {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
