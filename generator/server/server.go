package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"znkr.io/doxymd/generator/site"
)

// Server serves a preview of a single site via HTTP.
type Server struct {
	http    *http.Server
	handler *handler
	addr    string
	errc    chan error
}

// Run creates a new server and runs it in a new goroutine.
func Run(addr string, site *site.Site, log *slog.Logger) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	h := &handler{log: log}
	h.store(site)

	s := &Server{
		http: &http.Server{
			Handler: h,
		},
		handler: h,
		addr:    l.Addr().String(),
		errc:    make(chan error, 1),
	}

	go func() {
		if err := s.http.Serve(l); err != nil && err != http.ErrServerClosed {
			s.errc <- err
		}
	}()

	log.Info("serving preview", "addr", l.Addr().String())
	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// ReplaceSite replaces the site to serve with the one provided.
func (s *Server) ReplaceSite(site *site.Site) {
	s.handler.store(site)
}

// Shutdown gracefully stops the sever.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP sever: %v", err)
	}
	close(s.errc)
	return nil
}

// Error returns a channel to listen to errors while serving.
func (s *Server) Error() <-chan error {
	return s.errc
}
