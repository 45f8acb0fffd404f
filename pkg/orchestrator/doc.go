// Package orchestrator coordinates the full pipeline from KML document to
// rendered output: loading, style resolution, scene assembly, preset
// application, render passes, and renderer dispatch. Defaults cover the
// common path (stdlib loader, built-in geometry adapters, the three bundled
// renderers) while every stage stays open to dependency injection.
package orchestrator
