// Package server hosts a route tree and navigation session over HTTP
// and WebSocket so external tooling can inspect routes and drive or
// observe navigation.
//
// # Endpoints
//
//   - GET /resolve?path= canonicalizes the given path and resolves it
//     against the route tree, returning the match chain, params and
//     wildcard rest as JSON
//   - GET /routes returns the route table ordered by specificity
//   - GET /healthz is a liveness probe
//   - GET /metrics exposes Prometheus metrics
//   - GET /ws upgrades to the WebSocket sync protocol
//
// # Sync Protocol
//
// Frames are JSON text messages. On connect the server sends a hello
// frame carrying the client ID and the current location. Every session
// navigation is then broadcast to all connected clients as a nav frame
// with the action, location, cursor and history length.
//
// Clients send commands: navigate (path, optional replace and state),
// back, forward and go (delta). Invalid commands produce an error
// frame; the connection stays open.
//
// Each client gets a buffered send channel drained by a dedicated
// write pump. Broadcasts run inside the session's notify path and never
// block: a client whose buffer is full is dropped.
//
// # Example Usage
//
//	root, _ := router.BuildTree(decls)
//	session := nav.NewSession(nav.Location{Path: "/"})
//
//	srv := server.New(root, session, &server.Config{
//	    Address: ":4000",
//	})
//
//	srv.Run()
//
// # Thread Safety
//
// Server.mu guards the client map and every send into or close of a
// client send channel. A client is removed from the map and has its
// channel closed in the same critical section, so no frame is ever
// sent on a closed channel.
package server
