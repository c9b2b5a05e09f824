package mcp

import (
	"context"
	"encoding/json"

	"github.com/chuanjin/toonbench/internal/bench"
	"github.com/chuanjin/toonbench/internal/logger"
	"github.com/chuanjin/toonbench/internal/parser"
	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server wraps the MCP server with the format registry
type Server struct {
	registry  *parser.Registry
	mcpServer *mcp.Server
}

// NewServer creates a new MCP server over the given registry
func NewServer(r *parser.Registry, version string) *Server {
	s := &Server{registry: r}

	impl := &mcp.Implementation{
		Name:    "toonbench",
		Version: version,
	}
	s.mcpServer = mcp.NewServer(impl, nil)

	s.registerResources()
	s.registerTools()

	return s
}

// Run starts the MCP server over stdio transport
func (s *Server) Run(ctx context.Context) error {
	logger.Info("Starting toonbench MCP server...")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "format://list",
		Name:        "Format List",
		Description: "Names of all registered parsers",
		MIMEType:    "application/json",
	}, s.handleFormatList)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "format://example",
		Name:        "Format Example",
		Description: "The same payload encoded as JSON and as TOON",
		MIMEType:    "application/json",
	}, s.handleExample)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "parse",
		Description: "Parse content with a registered format parser and report the processing time",
	}, s.handleParse)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compare",
		Description: "Parse a JSON payload and a TOON payload and compare time and size",
	}, s.handleCompare)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_formats",
		Description: "List all available format parsers",
	}, s.handleListFormats)
}

// Resource Handlers

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) handleFormatList(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.registry.Formats())
}

func (s *Server) handleExample(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, map[string]any{
		"json": json.RawMessage(parser.ExampleJSON),
		"toon": parser.ExampleTOON,
	})
}

// Tool Handlers

type ParseInput struct {
	Format  string `json:"format" jsonschema:"Registered format name, e.g. json or toon"`
	Content string `json:"content" jsonschema:"Raw text to parse"`
}

type ParseOutput struct {
	Success        bool    `json:"success" jsonschema:"Whether parsing succeeded"`
	Data           any     `json:"data,omitempty" jsonschema:"Parsed structure"`
	Error          string  `json:"error,omitempty" jsonschema:"Parser diagnostic on failure"`
	ProcessingTime string  `json:"processingTime" jsonschema:"Elapsed time rendered in milliseconds"`
	ElapsedMs      float64 `json:"elapsedMs" jsonschema:"Elapsed time in milliseconds"`
}

func newParseOutput(res parser.Result) ParseOutput {
	return ParseOutput{
		Success:        res.Success,
		Data:           res.Data,
		Error:          res.Error,
		ProcessingTime: res.ProcessingTime(),
		ElapsedMs:      res.ElapsedMs(),
	}
}

func (s *Server) handleParse(ctx context.Context, req *mcp.CallToolRequest, input ParseInput) (*mcp.CallToolResult, ParseOutput, error) {
	res, err := s.registry.Parse(input.Format, input.Content)
	if err != nil {
		return nil, ParseOutput{}, errors.Wrap(err, "parse failed")
	}

	logger.Info("MCP: Parsed content", zap.String("format", input.Format), zap.Bool("success", res.Success))

	return nil, newParseOutput(res), nil
}

type CompareInput struct {
	JSON string `json:"json" jsonschema:"Payload in JSON format"`
	TOON string `json:"toon" jsonschema:"Payload in TOON format"`
}

type CompareOutput struct {
	JSON    ParseOutput   `json:"json" jsonschema:"Result of the JSON parser"`
	TOON    ParseOutput   `json:"toon" jsonschema:"Result of the TOON parser"`
	Summary bench.Summary `json:"summary" jsonschema:"Time and size comparison"`
}

func (s *Server) handleCompare(ctx context.Context, req *mcp.CallToolRequest, input CompareInput) (*mcp.CallToolResult, CompareOutput, error) {
	jsonRes := parser.ParseJSON(input.JSON)
	toonRes := parser.ParseTOON(input.TOON)

	summary := bench.Summarize(jsonRes.ElapsedMs(), toonRes.ElapsedMs(), len(input.JSON), len(input.TOON))
	logger.Info("MCP: Compared formats", zap.String("faster", summary.Faster))

	return nil, CompareOutput{
		JSON:    newParseOutput(jsonRes),
		TOON:    newParseOutput(toonRes),
		Summary: summary,
	}, nil
}

type ListFormatsOutput struct {
	Formats []string `json:"formats" jsonschema:"Registered format names"`
}

func (s *Server) handleListFormats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListFormatsOutput, error) {
	formats := s.registry.Formats()
	logger.Info("MCP: Listed formats", zap.Int("count", len(formats)))

	return nil, ListFormatsOutput{Formats: formats}, nil
}
