// Package mcptools exposes the content pipeline over the Model Context
// Protocol so agent frontends can call it as structured tools.
package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/gates"
	"github.com/dusk-indust/draftsmith/internal/pipeline"
)

// version is stamped by the build; mirrors the CLI version.
var version = "dev"

// Runner is the pipeline capability the MCP service needs. *pipeline.Pipeline
// satisfies it.
type Runner interface {
	Run(ctx context.Context, brief article.Brief) *pipeline.Result
}

// Service handles MCP tool calls for the draftsmith server mode.
type Service struct {
	runner      Runner
	defaultGoal int
}

// NewService creates a Service running briefs through runner. defaultGoal is
// used when a call omits wordCountGoal.
func NewService(runner Runner, defaultGoal int) *Service {
	return &Service{runner: runner, defaultGoal: defaultGoal}
}

// GeneratePost runs the full pipeline for one brief.
func (s *Service) GeneratePost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GeneratePostInput,
) (*mcp.CallToolResult, GeneratePostOutput, error) {
	goal := input.WordCountGoal
	if goal <= 0 {
		goal = s.defaultGoal
	}

	res := s.runner.Run(ctx, article.Brief{
		Topic:         input.Topic,
		TargetKeyword: input.TargetKeyword,
		WordCountGoal: goal,
		ClientProfile: input.ClientProfile,
		Voice:         input.Voice,
		Ref:           input.Ref,
	})

	out := GeneratePostOutput{
		RunID:      res.RunID,
		Success:    res.Success,
		Error:      res.Error,
		RetryCount: res.RetryCount,
		Sections:   res.Sections,
		SEO:        res.SEO,
		VoiceTone:  res.VoiceTone,
		Gates:      res.Gates,
	}
	if res.Success {
		out.Draft = pipeline.AssembleDraft(res.Sections)
	}
	return nil, out, nil
}

// CheckOutline validates an outline without spending any generation calls.
func (s *Service) CheckOutline(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CheckOutlineInput,
) (*mcp.CallToolResult, CheckOutlineOutput, error) {
	gr := gates.Outline(input.Outline)
	return nil, CheckOutlineOutput{
		Passed: gr.Passed,
		Score:  gr.Score,
		Issues: gr.Issues,
	}, nil
}

// NewServer creates an MCP server with the draftsmith tools registered.
func NewServer(runner Runner, defaultGoal int) *mcp.Server {
	svc := NewService(runner, defaultGoal)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "draftsmith",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_post",
		Description: "Run the full content pipeline for a topic brief: research, outline, drafting, SEO, and brand-voice audit. Returns the sections, metadata, and quality-gate outcomes.",
	}, svc.GeneratePost)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_outline",
		Description: "Validate an article outline against the structural quality gate without calling the generation model.",
	}, svc.CheckOutline)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
