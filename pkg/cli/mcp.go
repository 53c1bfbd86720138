package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/plugdev/manifestlint/pkg/constants"
	"github.com/plugdev/manifestlint/pkg/diag"
	"github.com/plugdev/manifestlint/pkg/pipeline"
	"github.com/plugdev/manifestlint/pkg/schema"
)

// validateArgs is the input of the validate_manifest tool
type validateArgs struct {
	Content string `json:"content" jsonschema:"YAML document text to validate"`
	Kind    string `json:"kind,omitempty" jsonschema:"schema kind: manifest, tool or provider"`
	Path    string `json:"path,omitempty" jsonschema:"file path used to infer the kind when kind is not given"`
}

// validateResult is the structured output of the validate_manifest tool
type validateResult struct {
	Valid       bool              `json:"valid"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// ServeMCP runs a stdio MCP server exposing validation as a tool, so
// editors and agents can consume diagnostics without shelling out per file
func ServeMCP(version string) error {
	cfg, err := LoadConfig(".")
	if err != nil {
		return err
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{Name: constants.CLIName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_manifest",
		Description: "Validate a plugin YAML document (manifest, tool or provider) against its schema and return diagnostics with source ranges.",
	}, func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[validateArgs]) (*mcp.CallToolResultFor[any], error) {
		kind, err := resolveKind(params.Arguments)
		if err != nil {
			return nil, err
		}

		doc := pipeline.Document{URI: params.Arguments.Path, Text: params.Arguments.Content, Version: 1}
		diags := p.Run(doc, kind)
		if diags == nil {
			diags = []diag.Diagnostic{}
		}

		out, err := json.Marshal(validateResult{Valid: len(diags) == 0, Diagnostics: diags})
		if err != nil {
			return nil, err
		}
		return &mcp.CallToolResultFor[any]{
			Content: []mcp.Content{&mcp.TextContent{Text: string(out)}},
		}, nil
	})

	return server.Run(context.Background(), mcp.NewStdioTransport())
}

func resolveKind(args validateArgs) (schema.Kind, error) {
	switch schema.Kind(args.Kind) {
	case schema.KindManifest, schema.KindTool, schema.KindProvider:
		return schema.Kind(args.Kind), nil
	case "":
		if kind, ok := schema.KindForPath(args.Path); ok {
			return kind, nil
		}
		return "", fmt.Errorf("cannot infer schema kind from path %q; pass kind explicitly", args.Path)
	default:
		return "", fmt.Errorf("unknown schema kind %q", args.Kind)
	}
}
