package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	formvalidator "github.com/goliatone/go-formvalidator"
	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(out, "\nLint OpenAPI documents for unsupported %s extensions.\n", ruleset.ExtensionNamespace)
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(context.Background(), paths, os.Stderr))
}

func run(ctx context.Context, paths []string, out io.Writer) int {
	parser := formvalidator.NewParser(pkgopenapi.WithPartialDocuments(true))

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, parser, path)
		if err != nil {
			fmt.Fprintf(out, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}
	if len(violations) == 0 {
		return 0
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(out, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintFile(ctx context.Context, parser pkgopenapi.Parser, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := source.NewDocument(source.FromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []violation
	for _, id := range ids {
		op := operations[id]
		base := []string{"operation", id}
		result = append(result, lintExtensions(path, base, op.Extensions)...)
		result = append(result, lintSchema(path, append(base, "requestBody"), op.RequestBody)...)
	}
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	result := lintExtensions(file, path, schema.Extensions)

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, lintSchema(file, appendPath(path, "properties."+key), schema.Properties[key])...)
	}

	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	if len(extensions) == 0 {
		return nil
	}

	var result []violation
	if nested, ok := extensions[ruleset.ExtensionNamespace]; ok {
		if _, isObject := nested.(map[string]any); !isObject {
			result = append(result, violation{
				file:     file,
				location: formatLocation(path),
				message:  fmt.Sprintf("%s must be an object, found %T", ruleset.ExtensionNamespace, nested),
			})
		}
	}

	values := ruleset.ExtensionValues(extensions)
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		location := formatLocation(appendPath(path, key))
		if key == "" {
			result = append(result, violation{file: file, location: location, message: "extension key is empty"})
			continue
		}
		if err := ruleset.CheckExtension(key, values[key], nil); err != nil {
			result = append(result, violation{file: file, location: location, message: err.Error()})
		}
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
