package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
)

// configureTLS sets up TLS configuration based on the mode
func (s *Server) configureTLS(httpServer *http.Server) error {
	addr := httpServer.Addr

	switch s.TLSConfig.Mode {
	case "server":
		return s.configureServerTLS(httpServer, addr)
	case "disabled", "":
		fmt.Printf("Starting server on http://%s\n", addr)
		fmt.Println("TLS mode: Disabled (HTTP only)")
		return nil
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", s.TLSConfig.Mode)
	}
}

// configureServerTLS sets up server-only TLS
func (s *Server) configureServerTLS(httpServer *http.Server, addr string) error {
	fmt.Printf("Starting server with HTTPS on https://%s\n", addr)

	tlsConfig, err := s.buildTLSConfig()
	if err != nil {
		return fmt.Errorf("failed to set up TLS: %w", err)
	}
	httpServer.TLSConfig = tlsConfig

	return nil
}

// buildTLSConfig validates the certificate files and assembles the TLS config
func (s *Server) buildTLSConfig() (*tls.Config, error) {
	if s.TLSConfig.CertFile == "" || s.TLSConfig.KeyFile == "" {
		return nil, fmt.Errorf("TLS mode %q requires certFile and keyFile", s.TLSConfig.Mode)
	}

	for _, f := range []string{s.TLSConfig.CertFile, s.TLSConfig.KeyFile} {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("cannot access TLS file %s: %w", f, err)
		}
	}

	minVersion, err := parseTLSVersion(s.TLSConfig.MinVersion)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		MinVersion: minVersion,
	}, nil
}

// parseTLSVersion maps the configured version string to the tls constant
func parseTLSVersion(version string) (uint16, error) {
	switch version {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("unsupported TLS minimum version: %s (must be '1.2' or '1.3')", version)
	}
}
