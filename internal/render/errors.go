package render

import "errors"

// Sentinel kinds for renderer failures. A render error means the geometry
// violated an internal invariant; no partial document is ever returned.
var (
	ErrRender = errors.New("render failed")
)
