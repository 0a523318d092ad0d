package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/generator"
	"github.com/erraggy/oas2puml/render"
)

// Output formats of the diagram tool.
const (
	outputPUML = "puml"
	outputJSON = "json"
)

type diagramInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The Swagger 2.0 document to draw"`
	Type        string    `json:"type,omitempty"         jsonschema:"Diagram type: full, model or entity (default from OAS2PUML_TYPE, else full)"`
	Cardinality *bool     `json:"cardinality,omitempty"  jsonschema:"Label class edges with 1..* or 0..* (default from OAS2PUML_CARDINALITY, else true)"`
	Format      string    `json:"format,omitempty"       jsonschema:"Output: puml (PlantUML source, default) or json (projected diagram model)"`
	ImageFormat string    `json:"image_format,omitempty" jsonschema:"Image format of image_url: svg (default) or png"`
}

type diagramOutput struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Version       string `json:"version,omitempty"`
	DiagramCount  int    `json:"diagram_count"`
	RelationCount int    `json:"relation_count"`
	PlantUML      string `json:"plantuml,omitempty"`
	Model         string `json:"model,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

func handleDiagram(ctx context.Context, _ *mcp.CallToolRequest, input diagramInput) (*mcp.CallToolResult, diagramOutput, error) {
	typ := input.Type
	if typ == "" {
		typ = cfg.Diagram.Type
	}
	parsedType, err := diagram.ParseType(typ)
	if err != nil {
		return errResult(err), diagramOutput{}, nil
	}
	cardinality := cfg.Diagram.Cardinality
	if input.Cardinality != nil {
		cardinality = *input.Cardinality
	}
	format := input.Format
	if format == "" {
		format = outputPUML
	}
	if format != outputPUML && format != outputJSON {
		return errResult(fmt.Errorf("invalid format %q; valid values: %s, %s", format, outputPUML, outputJSON)), diagramOutput{}, nil
	}
	imageFormat := render.FormatSVG
	if input.ImageFormat != "" {
		if imageFormat, err = render.ParseFormat(input.ImageFormat); err != nil {
			return errResult(err), diagramOutput{}, nil
		}
	}

	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), diagramOutput{}, nil
	}

	result, err := generator.GenerateWithOptions(ctx,
		generator.WithParsed(*parsed),
		generator.WithDiagramType(parsedType),
		generator.WithCardinality(cardinality),
	)
	if err != nil {
		return errResult(err), diagramOutput{}, nil
	}

	props := result.Properties
	output := diagramOutput{
		Type:          string(result.DiagramType),
		DiagramCount:  result.DiagramCount,
		RelationCount: result.RelationCount,
	}
	output.Title, _ = props[diagram.KeyTitle].(string)
	output.Version, _ = props[diagram.KeyVersion].(string)

	src := result.Source()
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(props, "", "  ")
		if err != nil {
			return errResult(err), diagramOutput{}, nil
		}
		output.Model = string(data)
	default:
		output.PlantUML = string(src)
	}

	renderer := render.New()
	renderer.Server = cfg.Diagram.PlantUMLServer
	if output.ImageURL, err = renderer.URL(src, imageFormat); err != nil {
		return errResult(err), diagramOutput{}, nil
	}
	return nil, output, nil
}

type plantUMLURLInput struct {
	Source      string `json:"source"                 jsonschema:"PlantUML source, including @startuml and @enduml"`
	ImageFormat string `json:"image_format,omitempty" jsonschema:"svg (default) or png"`
}

type plantUMLURLOutput struct {
	URL     string `json:"url"`
	Encoded string `json:"encoded"`
}

func handlePlantUMLURL(_ context.Context, _ *mcp.CallToolRequest, input plantUMLURLInput) (*mcp.CallToolResult, plantUMLURLOutput, error) {
	if input.Source == "" {
		return errResult(fmt.Errorf("source is required")), plantUMLURLOutput{}, nil
	}
	format := render.FormatSVG
	if input.ImageFormat != "" {
		var err error
		if format, err = render.ParseFormat(input.ImageFormat); err != nil {
			return errResult(err), plantUMLURLOutput{}, nil
		}
	}

	renderer := render.New()
	renderer.Server = cfg.Diagram.PlantUMLServer
	url, err := renderer.URL([]byte(input.Source), format)
	if err != nil {
		return errResult(err), plantUMLURLOutput{}, nil
	}
	encoded, err := render.Encode([]byte(input.Source))
	if err != nil {
		return errResult(err), plantUMLURLOutput{}, nil
	}
	return nil, plantUMLURLOutput{URL: url, Encoded: encoded}, nil
}
