package net

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/mdns"
)

// Server exposes a Pad over HTTP and optionally announces it via mDNS.
type Server struct {
	http *http.Server
	ln   net.Listener
	mdns *mdns.Server
}

// Serve starts listening on addr and serving pad on PadPath.
func Serve(addr string, pad *Pad) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(PadPath, pad)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s := &Server{
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:   ln,
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[PAD] Server stopped: %v", err)
		}
	}()
	log.Printf("[PAD] Waiting for a gamepad on %s", PadURL(OutgoingIP(), s.Port()))
	return s, nil
}

// Advertise announces the server on the local network until Close.
func (s *Server) Advertise(session string) error {
	m, err := Advertise(s.Port(), session)
	if err != nil {
		return err
	}
	s.mdns = m
	return nil
}

func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *Server) Addr() string { return s.ln.Addr().String() }

func (s *Server) Close() error {
	if s.mdns != nil {
		if err := s.mdns.Shutdown(); err != nil {
			log.Printf("[PAD] mDNS shutdown: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
