package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	formvalidator "github.com/goliatone/go-formvalidator"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

func main() {
	var (
		schemaPath  = flag.String("schema", "", "JSON Schema document to export")
		sourcePath  = flag.String("source", "", "OpenAPI document to export, used with -operation")
		operationID = flag.String("operation", "", "operation ID whose request body is exported")
		outputPath  = flag.String("output", "", "output path for the rule file (stdout if empty)")
	)
	flag.Parse()

	payload, err := export(context.Background(), *schemaPath, *sourcePath, *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to export rules: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "" {
		_, _ = os.Stdout.Write(payload)
		return
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write rules: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote rule file to %s\n", *outputPath)
}

func export(ctx context.Context, schemaPath, sourcePath, operationID string) ([]byte, error) {
	req := orchestrator.Request{}
	switch {
	case schemaPath != "" && sourcePath != "":
		return nil, errors.New("-schema and -source are exclusive")
	case schemaPath != "":
		req.Schema = source.Parse(schemaPath)
	case sourcePath != "":
		req.Source = source.Parse(sourcePath)
		req.OperationID = operationID
	default:
		return nil, errors.New("one of -schema or -source is required")
	}

	def, err := formvalidator.NewOrchestrator().Definition(ctx, req)
	if err != nil {
		return nil, err
	}
	return ruleset.Export(def)
}
