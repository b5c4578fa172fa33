// Package source describes where rule documents and OpenAPI documents come
// from. A Source names a file, an fs.FS entry or a URL; a Loader turns it into
// a Document holding the raw bytes. Loading is offline-first: HTTP sources are
// rejected unless a client or the HTTP fallback is configured. Implementations
// live in internal/loader and are constructed through the root package.
package source
