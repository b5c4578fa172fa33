// Package render defines the renderer contract and the helpers renderers
// share: a name-keyed Registry, the per-request RenderOptions, the FormView
// projection of a validator.Instance and the mapping of server error payloads
// onto field names.
package render
