// Package mcp exposes workflow generation as MCP tools, so agent hosts can
// build workflows over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/flowsmith/flowsmith"
	"github.com/flowsmith/flowsmith/pkg/dsl"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
)

// GenerateResponse is the structured result of the generation tools.
type GenerateResponse struct {
	RunID       string   `json:"run_id" jsonschema_description:"Run ID, needed to resume a clarification-parked run"`
	Success     bool     `json:"success" jsonschema_description:"True when a document was generated"`
	Questions   []string `json:"questions,omitempty" jsonschema_description:"Open clarification questions, same order as question_ids"`
	QuestionIDs []string `json:"question_ids,omitempty" jsonschema_description:"IDs to key the answers by when resuming"`
	Score       int      `json:"score,omitempty" jsonschema_description:"Overall quality score 0-100"`
	Grade       string   `json:"grade,omitempty" jsonschema_description:"Letter grade A-F"`
	Readiness   string   `json:"readiness,omitempty" jsonschema_description:"Deployment readiness level"`
	Document    string   `json:"document,omitempty" jsonschema_description:"Generated workflow document as YAML"`
}

// Server wraps the Engine and exposes it as an MCP server.
type Server struct {
	engine    *flowsmith.Engine
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server instance.
func NewServer(engine *flowsmith.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("flowsmith-mcp", strings.TrimSpace(flowsmith.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_workflow",
		mcp.WithDescription("Generate a workflow document from a free-text automation request. May return clarification questions instead of a document."),
		mcp.WithString("user_input", mcp.Required(), mcp.Description("The automation request in plain language")),
		mcp.WithString("answers", mcp.Description("JSON object of clarification answers keyed by question ID (optional)")),
		mcp.WithString("pattern", mcp.Description("Force a structural pattern: linear, conditional, parallel, rag_pipeline, rag_routing (optional)")),
		mcp.WithString("complexity", mcp.Description("Force a complexity tier: simple, moderate, complex, enterprise (optional)")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	resumeTool := mcp.NewTool("resume_workflow",
		mcp.WithDescription("Resume a clarification-parked run with collected answers."),
		mcp.WithString("run_id", mcp.Required(), mcp.Description("The run ID returned by generate_workflow")),
		mcp.WithString("answers", mcp.Required(), mcp.Description("JSON object of answers keyed by question ID")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(resumeTool, mcp.NewStructuredToolHandler(s.handleResume))

	s.mcpServer.AddTool(mcp.NewTool("list_patterns",
		mcp.WithDescription("List the structural workflow patterns the generator can build."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.engine.Patterns())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	userInput, _ := args["user_input"].(string)
	if userInput == "" {
		return GenerateResponse{}, fmt.Errorf("user_input is required")
	}

	req := pipeline.Request{UserInput: userInput}
	if answersStr, ok := args["answers"].(string); ok && answersStr != "" {
		if err := json.Unmarshal([]byte(answersStr), &req.ClarificationAnswers); err != nil {
			return GenerateResponse{}, fmt.Errorf("invalid answers: %w", err)
		}
	}

	prefs := map[string]any{}
	if pattern, ok := args["pattern"].(string); ok && pattern != "" {
		prefs["pattern"] = pattern
	}
	if complexity, ok := args["complexity"].(string); ok && complexity != "" {
		prefs["complexity"] = complexity
	}
	if len(prefs) > 0 {
		req.Preferences = prefs
	}

	result, err := s.engine.Generate(ctx, req)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generation failed: %w", err)
	}
	return toResponse(result)
}

func (s *Server) handleResume(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	runID, _ := args["run_id"].(string)
	answersStr, _ := args["answers"].(string)

	var answers map[string]string
	if err := json.Unmarshal([]byte(answersStr), &answers); err != nil {
		return GenerateResponse{}, fmt.Errorf("invalid answers: %w", err)
	}

	result, err := s.engine.Resume(ctx, runID, answers)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("resume failed: %w", err)
	}
	return toResponse(result)
}

func toResponse(result flowsmith.RunResult) (GenerateResponse, error) {
	resp := GenerateResponse{
		RunID:   result.RunID,
		Success: result.Success,
	}

	if result.Clarification != nil {
		for _, q := range result.Clarification.Questions {
			resp.Questions = append(resp.Questions, q.Question)
			resp.QuestionIDs = append(resp.QuestionIDs, q.ID)
		}
		return resp, nil
	}

	if result.Assessment != nil {
		resp.Score = result.Assessment.OverallScore
		resp.Grade = result.Assessment.Grade
		resp.Readiness = string(result.Assessment.Readiness)
	}
	if result.Document != nil {
		data, err := dsl.MarshalYAML(*result.Document)
		if err != nil {
			return resp, fmt.Errorf("failed to serialize document: %w", err)
		}
		resp.Document = string(data)
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("flowsmith://patterns", "Workflow Pattern Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Patterns())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal patterns: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "flowsmith://patterns",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
