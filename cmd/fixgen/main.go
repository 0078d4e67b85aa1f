package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	fixgen "github.com/goliatone/go-fixgen"
	"github.com/goliatone/go-fixgen/pkg/fixture"
	pkgopenapi "github.com/goliatone/go-fixgen/pkg/openapi"
	"github.com/goliatone/go-fixgen/pkg/payload"
)

func main() {
	source := flag.String("source", "openapi.json", "OpenAPI document path or URL")
	opID := flag.String("operation", "", "operation ID to generate a payload for (prompted if empty)")
	overridesPath := flag.String("overrides", "", "YAML file with field overrides")
	output := flag.String("output", "", "output file (stdout if empty)")
	indent := flag.String("indent", "  ", "JSON indent (empty for compact output)")
	list := flag.Bool("list", false, "list operation IDs and exit")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	loader := fixgen.NewLoader(pkgopenapi.WithHTTPFallback(30 * time.Second))
	gen := payload.New(payload.WithLoader(loader), payload.WithIndent(*indent))

	if *list {
		ids, err := gen.Operations(ctx, payload.Request{Source: src})
		if err != nil {
			log.Fatalf("Failed to list operations: %v", err)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	operation := *opID
	if operation == "" {
		ids, err := gen.Operations(ctx, payload.Request{Source: src})
		if err != nil {
			log.Fatalf("Failed to list operations: %v", err)
		}
		operation, err = promptOperation(ids)
		if err != nil {
			log.Fatalf("Failed to select operation: %v", err)
		}
	}

	var overrides fixture.Overrides
	if *overridesPath != "" {
		var err error
		overrides, err = payload.LoadOverrides(*overridesPath)
		if err != nil {
			log.Fatalf("Failed to load overrides: %v", err)
		}
	}

	data, err := gen.Generate(ctx, payload.Request{
		Source:      src,
		OperationID: operation,
		Overrides:   overrides,
	})
	if err != nil {
		log.Fatalf("Failed to generate payload: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Payload written to %s\n", *output)
	} else {
		fmt.Println(string(data))
	}
}

func promptOperation(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("document has no operations")
	}
	if len(ids) == 1 {
		return ids[0], nil
	}

	prompt := &survey.Select{
		Message:  "Operation:",
		Options:  ids,
		PageSize: 10,
	}
	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errors.New("selection cancelled")
		}
		return "", err
	}
	return selected, nil
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}
