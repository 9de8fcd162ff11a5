package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bekzodm/sayohat/config"
	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/session"
	"github.com/bekzodm/sayohat/internal/transport"
	"github.com/bekzodm/sayohat/pkg/event"
	"github.com/bekzodm/sayohat/pkg/logger"
	"github.com/bekzodm/sayohat/pkg/metrics"
)

// boot loads config and wires the session store, transport client, resource
// cache and services. Every command goes through here.
func boot() (*api.API, session.Store, error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}

	sess, err := session.New()
	if err != nil {
		return nil, nil, fmt.Errorf("session store: %w", err)
	}

	opts := []transport.Option{transport.WithTimeout(config.HTTPTimeout())}
	if config.BreakerEnabled() {
		opts = append(opts, transport.WithBreaker())
	}
	client := transport.New(config.APIBaseURL(), sess, opts...)

	event.Listen(event.SessionExpired, func(payload any) {
		fmt.Println("Session expired, please log in again.")
	})

	// Long-lived gateway deployments scrape the client's metrics.
	if addr := config.Get("METRICS_ADDR", ""); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics endpoint", "addr", addr, "error", err)
			}
		}()
	}

	return api.New(client, cache.NewStore(), sess), sess, nil
}

// bootSignedIn is boot plus a token check, so commands fail fast with a
// friendly message instead of a 401 round trip.
func bootSignedIn() (*api.API, error) {
	a, sess, err := boot()
	if err != nil {
		return nil, err
	}
	token := sess.Token()
	if token == "" || session.Expired(token) {
		return nil, errors.New("not signed in, run `sayohat login` first")
	}
	return a, nil
}
