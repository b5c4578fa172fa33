package source

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a document originated.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() Kind       { return KindFile }

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() Kind       { return KindFS }

// FromFS returns a Source identifying a resource inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() Kind       { return KindURL }

// FromURL parses raw and returns a Source. It panics on invalid URLs to surface
// configuration mistakes early; use ParseURL to handle them.
func FromURL(raw string) Source {
	src, err := ParseURL(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}

// ParseURL validates raw and returns a URL Source.
func ParseURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("source: empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("source: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}

// Parse picks a Source for a command-line style reference: http(s) URLs become
// URL sources, everything else a file source. Empty input returns nil.
func Parse(raw string) Source {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		src, err := ParseURL(trimmed)
		if err != nil {
			return nil
		}
		return src
	}
	return FromFile(trimmed)
}

// Extension returns the lower-cased file extension of a source location,
// ignoring URL query strings.
func Extension(src Source) string {
	if src == nil {
		return ""
	}
	location := src.Location()
	if src.Kind() == KindURL {
		if parsed, err := url.Parse(location); err == nil {
			location = parsed.Path
		}
	}
	return strings.ToLower(path.Ext(location))
}
