// Package server implements the MCP (Model Context Protocol) server for floor
// plan reconstruction.
//
// This package provides a JSON-RPC 2.0 server that exposes the floorplan
// engine through the MCP protocol. A vision front-end (or an AI client that
// ran one) sends detected line segments and rectangles; the server returns a
// clean, centered plan ready for a 3D scene.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Pipeline:
//   - floorplan_reconstruct: Full reconstruction, result cached under a plan_id
//
// Individual stages:
//   - floorplan_resolve_walls: Interior wall resolution only
//   - floorplan_classify_openings: Door and window classification only
//   - floorplan_normalize: Centering and scaling only
//
// Cached plans:
//   - floorplan_get: Fetch a plan by plan_id
//   - floorplan_wall_placements: Wall, opening and floor placement data
//
// # Plan Caching
//
// Plans produced by floorplan_reconstruct are kept in a bounded in-memory
// cache (see package plancache). The oldest plan is dropped once the cache is
// full, and nothing survives a restart.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments, invalid rectangles or an oversized
//     segment list; -32000 for any other failure
//   - message: Human-readable error description
//   - data: The error string, or the list of offending primitives
//
// # Logging
//
// Every tool call is logged to the configured logrus logger with a
// request_id and the tool name. Nothing but protocol messages is written to
// stdout.
//
// # Usage
//
//	cfg := config.Load()
//	logger := cfg.NewLogger(os.Stderr)
//	engine, err := floorplan.NewEngine(cfg.EngineParams(), logger)
//	if err != nil {
//	    logger.Fatal(err)
//	}
//	srv := server.New(engine, plancache.New(cfg.CacheSize), logger)
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    logger.Fatal(err)
//	}
package server
