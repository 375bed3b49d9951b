// Package handler exposes the graph, interaction, and render API over HTTP.
//
// GraphHandler translates JSON requests into service and engine calls:
// graph mutations, search and highlight, pointer and wheel events, viewport
// resizes, and on-demand SVG or PNG renders of the current frame. The
// package also provides the middleware (Recover, CORS, Logger) applied
// around the mux in main.
package handler
