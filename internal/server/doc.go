// Package server implements the MCP (Model Context Protocol) server that
// exposes the border-crop operation to an orchestrating host.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - image_crop: Extract a known rectangular region
//
// Border Operations:
//   - image_detect_border: Report the border rectangle and color
//   - image_crop_border: Detect and remove a uniform white/black border
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Border detection outcomes that leave the image unchanged are successful
// results carrying an "outcome" field, not errors.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(config.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
