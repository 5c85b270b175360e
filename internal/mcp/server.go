package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sketchpad/internal/domain"
	"sketchpad/internal/service"
)

// Server is the MCP server for the sketchpad. It exposes tools so AI
// agents can inspect and edit boards through the same controller the UI
// uses, which keeps every agent edit undoable.
type Server struct {
	mcp      *server.MCPServer
	emitter  EventEmitter
	approval *ApprovalQueue

	boards domain.BoardStore
	open   func(boardID string) (*service.BoardService, error)

	// One controller per board, created on first use.
	services map[string]*service.BoardService

	// Active board context (set by set_active_board tool)
	activeBoardID string
}

// Deps holds all dependencies passed from the app layer to the MCP server.
type Deps struct {
	Emitter EventEmitter
	Boards  domain.BoardStore
	// OpenBoard returns the board controller for an ID. The app passes
	// its live controllers so agent edits land on the visible canvas;
	// standalone mode builds headless ones.
	OpenBoard func(boardID string) (*service.BoardService, error)
	// AutoApprove skips the human approval step for destructive tools.
	// Only set in standalone mode, where no frontend can answer.
	AutoApprove bool
}

// New creates and configures a new MCP server with all board tools.
func New(ctx context.Context, deps Deps) *Server {
	approval := NewApprovalQueue(ctx, deps.Emitter)
	if deps.AutoApprove {
		approval.AutoApprove()
	}
	s := &Server{
		emitter:  deps.Emitter,
		approval: approval,
		boards:   deps.Boards,
		open:     deps.OpenBoard,
		services: make(map[string]*service.BoardService),
	}

	s.mcp = server.NewMCPServer(
		"sketchpad-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerBoardTools()
	s.registerElementTools()
	s.registerLayerTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// resolveBoard returns the controller for the boardId in the tool args,
// falling back to the active board.
func (s *Server) resolveBoard(args map[string]any) (*service.BoardService, error) {
	id, _ := args["boardId"].(string)
	if id == "" {
		id = s.activeBoardID
	}
	if id == "" {
		return nil, fmt.Errorf("no boardId provided and no active board set (use set_active_board first)")
	}
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	svc, err := s.open(id)
	if err != nil {
		return nil, err
	}
	s.services[id] = svc
	return svc, nil
}

// emitBoardChanged notifies the frontend that an agent edited a board.
func (s *Server) emitBoardChanged(ctx context.Context, boardID string) {
	s.emitter.Emit(ctx, "mcp:board-changed", map[string]string{"boardId": boardID})
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }
