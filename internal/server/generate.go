// Package server provides the HTTP API for venuemap: market reads, sync
// triggers and realtime sync events.
//
// The layering is CLI → Application → Server → Router → Handlers:
//
//   - Server: lifecycle and hook wiring between the client and the event broker
//   - Config: listen address, middleware switches and cache TTL
//   - Router: route registration and middleware chain
//   - Handlers: HTTP request handlers organized by domain
//
// Usage:
//
//	srv, err := server.New(app, server.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	srv.Start() // background services
//	httpSrv := srv.HTTPServer(":8080")
//	err = httpSrv.ListenAndServe()
package server

//go:generate gomarkdoc --output README.md .
