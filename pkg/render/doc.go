// Package render turns component trees into static HTML: standalone
// markup strings for tests and site export, or a live document with node
// IDs for session hydration, plus the HTML page shell around either.
package render
