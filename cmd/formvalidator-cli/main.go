package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	formvalidator "github.com/goliatone/go-formvalidator"
	"github.com/goliatone/go-formvalidator/components/timezones"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/renderers/html"
	"github.com/goliatone/go-formvalidator/pkg/renderers/tui"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

type config struct {
	rules       string
	schema      string
	source      string
	operation   string
	values      string
	interactive bool
	format      string
	html        bool
	output      string
	action      string
	title       string
}

// errInvalid marks a batch validation that found errors.
var errInvalid = errors.New("submission invalid")

type report struct {
	Valid  bool           `json:"valid"`
	Errors rules.ErrorMap `json:"errors,omitempty"`
}

func main() {
	var cfg config
	flag.StringVar(&cfg.rules, "rules", "", "rule file path or URL (YAML or JSON)")
	flag.StringVar(&cfg.schema, "schema", "", "JSON Schema document path or URL")
	flag.StringVar(&cfg.source, "source", "", "OpenAPI document path or URL, used with -operation")
	flag.StringVar(&cfg.operation, "operation", "", "operation ID whose request body defines the rules")
	flag.StringVar(&cfg.values, "values", "", "YAML or JSON file of field values to validate")
	flag.BoolVar(&cfg.interactive, "interactive", false, "fill the form in the terminal")
	flag.StringVar(&cfg.format, "format", string(tui.OutputFormatJSON), "interactive output format: json, form or pretty")
	flag.BoolVar(&cfg.html, "html", false, "render the HTML form (default when neither -values nor -interactive is set)")
	flag.StringVar(&cfg.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&cfg.action, "action", "", "form action for HTML output")
	flag.StringVar(&cfg.title, "title", "", "form title")
	flag.Parse()

	output, err := run(context.Background(), cfg, nil)
	if output != nil {
		if writeErr := writeOutput(cfg.output, output); writeErr != nil {
			log.Fatalf("Failed to write output: %v", writeErr)
		}
	}
	if errors.Is(err, errInvalid) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("formvalidator: %v", err)
	}
}

// run executes one command. driver overrides the terminal prompts.
func run(ctx context.Context, cfg config, driver tui.PromptDriver) ([]byte, error) {
	req, err := buildRequest(cfg)
	if err != nil {
		return nil, err
	}

	format, ok := tui.ParseOutputFormat(cfg.format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", cfg.format)
	}
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(tui.WithPromptDriver(driver), tui.WithOutputFormat(format))
	if err != nil {
		return nil, err
	}
	registry, err := render.NewRegistry(htmlRenderer, tuiRenderer)
	if err != nil {
		return nil, err
	}
	customs := ruleset.NewCustomRegistry()
	if err := timezones.Register(customs); err != nil {
		return nil, err
	}
	orch := formvalidator.NewOrchestrator(
		orchestrator.WithRegistry(registry),
		orchestrator.WithCustoms(customs),
	)

	switch {
	case cfg.values != "" && (cfg.interactive || cfg.html):
		return nil, errors.New("-values cannot be combined with -interactive or -html")
	case cfg.interactive && cfg.html:
		return nil, errors.New("-interactive and -html are exclusive")
	case cfg.values != "":
		return validateValues(ctx, orch, req, cfg.values)
	case cfg.interactive:
		req.Renderer = tui.Name
	default:
		req.Renderer = html.Name
	}
	return orch.Generate(ctx, req)
}

func buildRequest(cfg config) (orchestrator.Request, error) {
	req := orchestrator.Request{
		RenderOptions: render.RenderOptions{Action: cfg.action, Title: cfg.title},
	}
	set := 0
	for _, value := range []string{cfg.rules, cfg.schema, cfg.source} {
		if value != "" {
			set++
		}
	}
	if set > 1 {
		return req, errors.New("-rules, -schema and -source are exclusive")
	}
	switch {
	case cfg.rules != "":
		req.Rules = source.Parse(cfg.rules)
	case cfg.schema != "":
		req.Schema = source.Parse(cfg.schema)
	case cfg.source != "":
		if cfg.operation == "" {
			return req, errors.New("-operation is required with -source")
		}
		req.Source = source.Parse(cfg.source)
		req.OperationID = cfg.operation
	default:
		return req, errors.New("one of -rules, -schema or -source is required")
	}
	return req, nil
}

func validateValues(ctx context.Context, orch *orchestrator.Orchestrator, req orchestrator.Request, path string) ([]byte, error) {
	values, err := readValues(path)
	if err != nil {
		return nil, err
	}
	form, err := orch.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	result := form.HandleSubmit(values)
	out, err := json.MarshalIndent(report{Valid: result.Submitted, Errors: result.Errors}, "", "  ")
	if err != nil {
		return nil, err
	}
	out = append(out, '\n')
	if !result.Submitted {
		return out, errInvalid
	}
	return out, nil
}

// readValues decodes a YAML or JSON mapping. Nested mappings flatten into
// dotted names and scalars are formatted as strings.
func readValues(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	out := make(map[string]string, len(decoded))
	flattenValues("", decoded, out)
	return out, nil
}

func flattenValues(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flattenValues(next, v[key], out)
		}
	case []any:
		for idx, item := range v {
			flattenValues(prefix+"["+strconv.Itoa(idx)+"]", item, out)
		}
	case nil:
		out[prefix] = ""
	case string:
		out[prefix] = v
	default:
		out[prefix] = strings.TrimSpace(fmt.Sprint(v))
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Output written to %s\n", path)
	return nil
}
