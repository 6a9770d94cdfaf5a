// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server implements the MCP server that exposes study-plan generation
// as a tool and the knowledge base and persisted plan as resources.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tombee/studyplan/pkg/studyplan"
)

// Resource URIs exposed by the server.
const (
	KnowledgeURI        = "concepts://src"
	PlanURI             = "study-plan://src"
	GreetingURITemplate = "greeting://{name}"
)

const methodResourceUpdated = "notifications/resources/updated"

// Server wraps the MCP server and the study-plan pipeline.
type Server struct {
	mcpServer   *server.MCPServer
	name        string
	version     string
	generator   *studyplan.Generator
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// ServerConfig configures the MCP server
type ServerConfig struct {
	// Name is the server name (default: "studyplan")
	Name string

	// Version is the studyplan version
	Version string

	// Generator runs the plan pipeline (required)
	Generator *studyplan.Generator

	// RateLimitPerMinute caps tool calls. Zero disables limiting.
	RateLimitPerMinute int

	// Logger writes to stderr; stdout carries the protocol (default: slog.Default())
	Logger *slog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(config ServerConfig) (*Server, error) {
	if config.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if config.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("rate limit must not be negative, got %d", config.RateLimitPerMinute)
	}
	if config.Name == "" {
		config.Name = "studyplan"
	}
	if config.Version == "" {
		config.Version = "dev"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(config.Name, config.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	s := &Server{
		mcpServer:   mcpServer,
		name:        config.Name,
		version:     config.Version,
		generator:   config.Generator,
		rateLimiter: NewRateLimiter(config.RateLimitPerMinute),
		logger:      config.Logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

const instructions = `Generates week-by-week study plans from a tagged knowledge base.
Call generateStudyPlan with a role, a duration in weeks and one to five focus keywords.
The full plan is then readable at study-plan://src; the knowledge base is at concepts://src.`

// registerTools registers the generateStudyPlan and add tools.
func (s *Server) registerTools() {
	generate := mcp.NewTool("generateStudyPlan",
		mcp.WithDescription("Generate a week-by-week study plan for a role from knowledge-base topics matching the focus areas. The plan is saved to study-plan://src and a preview is returned."),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Target role"),
			mcp.Enum(studyplan.RoleNames()...),
		),
		mcp.WithNumber("weeksDuration",
			mcp.Required(),
			mcp.Description("Plan length in whole weeks"),
			mcp.Min(studyplan.MinWeeks),
			mcp.Max(studyplan.MaxWeeks),
		),
		mcp.WithArray("focusAreas",
			mcp.Required(),
			mcp.Description("Keywords matched case-insensitively against knowledge-base topic lines"),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.MinItems(studyplan.MinFocusAreas),
			mcp.MaxItems(studyplan.MaxFocusAreas),
		),
	)
	s.mcpServer.AddTool(generate, s.instrument(generate.Name, s.handleGenerateStudyPlan))

	add := mcp.NewTool("add",
		mcp.WithDescription("Add two numbers"),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("First operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Second operand")),
	)
	s.mcpServer.AddTool(add, s.instrument(add.Name, s.handleAdd))
}

// registerResources registers the knowledge base, the plan and the greeting template.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcp.NewResource(KnowledgeURI, "Knowledge base",
			mcp.WithResourceDescription("Tagged knowledge-base document topics are parsed from"),
			mcp.WithMIMEType("text/markdown"),
		),
		s.documentHandler(s.generator.ReadKnowledge),
	)

	s.mcpServer.AddResource(
		mcp.NewResource(PlanURI, "Study plan",
			mcp.WithResourceDescription("Most recently generated study plan"),
			mcp.WithMIMEType("text/markdown"),
		),
		s.documentHandler(s.generator.ReadPlan),
	)

	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(GreetingURITemplate, "Greeting",
			mcp.WithTemplateDescription("Personalized greeting"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		s.handleGreeting,
	)
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Run serves the MCP protocol over stdio until ctx is cancelled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves the MCP protocol over the given streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("starting studyplan MCP server",
		slog.String("name", s.name),
		slog.String("version", s.version),
	)

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down studyplan MCP server")
	// Listen returns once its context is cancelled; nothing else holds resources.
	return nil
}

// NotifyResourceUpdated tells subscribed clients that uri changed.
func (s *Server) NotifyResourceUpdated(uri string) {
	s.mcpServer.SendNotificationToAllClients(methodResourceUpdated, map[string]any{"uri": uri})
	s.logger.Debug("resource update notification sent", slog.String("resource", uri))
}

// Helper function to create error response
func errorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// Helper function to create success response
func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
