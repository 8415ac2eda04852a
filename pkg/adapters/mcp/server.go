package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/decisiontree"
	"github.com/aretw0/decisiontree/internal/logging"
	"github.com/aretw0/decisiontree/internal/runtime"
	"github.com/aretw0/decisiontree/internal/sanitize"
	"github.com/aretw0/decisiontree/pkg/adapters/synonym"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// OutcomesURI is the resource exposing the outcome table.
const OutcomesURI = "decisiontree://outcomes"

// Skill is what the MCP server needs from the decision tree.
type Skill interface {
	Handle(ctx context.Context, req *domain.Request) *domain.Response
	Recommend(values map[domain.Category]string) (domain.Outcome, error)
	Outcomes() *outcome.Table
}

// Answers are the four answers as free text. Synonyms are resolved through the catalog.
type Answers struct {
	SalaryImportance string `json:"salaryImportance"`
	Personality      string `json:"personality"`
	BloodTolerance   string `json:"bloodTolerance"`
	PreferredSpecies string `json:"preferredSpecies"`
}

func (a Answers) byCategory() map[domain.Category]string {
	return map[domain.Category]string{
		domain.CategorySalaryImportance: a.SalaryImportance,
		domain.CategoryPersonality:      a.Personality,
		domain.CategoryBloodTolerance:   a.BloodTolerance,
		domain.CategoryPreferredSpecies: a.PreferredSpecies,
	}
}

// TurnArgs describes one dialog turn for decide_turn.
type TurnArgs struct {
	Answers
	Completed bool `json:"completed"`
}

// RecommendResponse is the structured result of the recommend tool.
type RecommendResponse struct {
	Key       string         `json:"key" jsonschema_description:"Outcome key: salary-personality-blood-species"`
	Outcome   domain.Outcome `json:"outcome" jsonschema_description:"The recommended occupation"`
	Statement string         `json:"statement" jsonschema_description:"What the skill would say"`
}

// TurnResponse is the structured result of the decide_turn tool.
type TurnResponse struct {
	Speech           string                   `json:"speech,omitempty" jsonschema_description:"Spoken text"`
	Reprompt         string                   `json:"reprompt,omitempty"`
	Directives       []domain.OutputDirective `json:"directives,omitempty" jsonschema_description:"Dialog directives for the platform"`
	ShouldEndSession bool                     `json:"should_end_session"`
	Outcome          *domain.Outcome          `json:"outcome,omitempty"`
}

// Server exposes the skill as an MCP server.
type Server struct {
	skill     Skill
	catalog   *synonym.Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog replaces the default synonym catalog.
func WithCatalog(c *synonym.Catalog) Option {
	return func(s *Server) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(skill Skill, opts ...Option) *Server {
	s := &Server{
		skill:     skill,
		catalog:   synonym.Default(),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("decisiontree-mcp", decisiontree.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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

func answerOptions(required bool) []mcp.ToolOption {
	var opts []mcp.ToolOption
	for _, c := range domain.KeyOrder() {
		propOpts := []mcp.PropertyOption{
			mcp.Description(fmt.Sprintf("Answer for %s, e.g. one of %v or a synonym", c, c.Domain())),
		}
		if required {
			propOpts = append(propOpts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(c.String(), propOpts...))
	}
	return opts
}

func (s *Server) registerTools() {
	// TOOL: recommend
	recommendOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Recommend an occupation from the four answers."),
		mcp.WithOutputSchema[RecommendResponse](),
	}, answerOptions(true)...)
	s.mcpServer.AddTool(mcp.NewTool("recommend", recommendOpts...), mcp.NewStructuredToolHandler(s.handleRecommend))

	// TOOL: decide_turn
	turnOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Simulate one dialog turn: resolve the given answers and return what the skill would say and do."),
		mcp.WithBoolean("completed", mcp.Description("Whether the platform considers the dialog complete")),
		mcp.WithOutputSchema[TurnResponse](),
	}, answerOptions(false)...)
	s.mcpServer.AddTool(mcp.NewTool("decide_turn", turnOpts...), mcp.NewStructuredToolHandler(s.handleDecideTurn))

	// TOOL: list_outcomes
	s.mcpServer.AddTool(mcp.NewTool("list_outcomes",
		mcp.WithDescription("List every answer combination and its recommended occupation."),
	), s.handleListOutcomes)
}

func (s *Server) resolveAnswer(c domain.Category, raw string) (domain.Slot, error) {
	clean, err := sanitize.Line(raw)
	if err != nil {
		s.logger.Warn("MCP: input rejected", "slot", c, "err", err, "size", len(raw))
		return domain.Slot{}, fmt.Errorf("%s: %w", c, err)
	}
	return s.catalog.Resolve(c, clean), nil
}

func (s *Server) handleRecommend(ctx context.Context, request mcp.CallToolRequest, args Answers) (RecommendResponse, error) {
	values := make(map[domain.Category]string, 4)
	var errs []error
	for c, raw := range args.byCategory() {
		slot, err := s.resolveAnswer(c, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(slot.Resolutions) == 0 {
			errs = append(errs, fmt.Errorf("%s: answer is required", c))
			continue
		}
		auth := slot.Resolutions[0]
		switch {
		case auth.Code != domain.CodeSuccessMatch:
			errs = append(errs, fmt.Errorf("%s: %q is not one of %v", c, slot.Value, c.Domain()))
		case len(auth.Values) > 1:
			errs = append(errs, fmt.Errorf("%s: %q is ambiguous between %v", c, slot.Value, auth.Values))
		default:
			values[c] = auth.Values[0]
		}
	}
	if err := errors.Join(errs...); err != nil {
		return RecommendResponse{}, err
	}

	values = outcome.Normalize(values)
	result, err := s.skill.Recommend(values)
	if err != nil {
		return RecommendResponse{}, fmt.Errorf("recommend failed: %w", err)
	}

	return RecommendResponse{
		Key:       outcome.Key(values),
		Outcome:   result,
		Statement: runtime.FinalStatement(values, result),
	}, nil
}

func (s *Server) handleDecideTurn(ctx context.Context, request mcp.CallToolRequest, args TurnArgs) (TurnResponse, error) {
	intent := &domain.Intent{Name: "RecommendationIntent", Slots: make(map[string]domain.Slot, 4)}
	for c, raw := range args.byCategory() {
		slot, err := s.resolveAnswer(c, raw)
		if err != nil {
			return TurnResponse{}, err
		}
		intent.Slots[c.String()] = slot
	}

	req := &domain.Request{
		Type:        domain.RequestIntent,
		RequestID:   "mcp",
		DialogState: "IN_PROGRESS",
		Intent:      intent,
	}
	if args.Completed {
		req.DialogState = domain.DialogStateCompleted
	}

	resp := s.skill.Handle(ctx, req)
	return TurnResponse{
		Speech:           resp.Speech,
		Reprompt:         resp.Reprompt,
		Directives:       resp.Directives,
		ShouldEndSession: resp.ShouldEndSession,
		Outcome:          resp.Outcome,
	}, nil
}

func (s *Server) handleListOutcomes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(s.skill.Outcomes().Entries())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: decisiontree://outcomes
	s.mcpServer.AddResource(mcp.NewResource(OutcomesURI, "Outcome Table",
		mcp.WithResourceDescription("The occupations and the answer keys that lead to them"),
		mcp.WithMIMEType("application/yaml"),
	), s.readOutcomes)
}

func (s *Server) readOutcomes(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var buf strings.Builder
	if err := s.skill.Outcomes().WriteYAML(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode outcome table: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      OutcomesURI,
			MIMEType: "application/yaml",
			Text:     buf.String(),
		},
	}, nil
}
