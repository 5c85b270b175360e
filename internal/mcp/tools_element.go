package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"sketchpad/internal/domain"
)

func (s *Server) registerElementTools() {
	s.mcp.AddTool(mcp.NewTool("list_board_elements",
		mcp.WithDescription("List all elements on a board with their IDs, types, layers and bounding boxes"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleListElements)

	s.mcp.AddTool(mcp.NewTool("add_text_element",
		mcp.WithDescription("Add a text box to a board at board coordinates"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("text", mcp.Description("Text content"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Y position"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("Box width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("Box height"), mcp.Required()),
	), s.handleAddTextElement)

	s.mcp.AddTool(mcp.NewTool("move_element",
		mcp.WithDescription("Move an element so its bounding box starts at the given coordinates (undoable)"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
	), s.handleMoveElement)

	s.mcp.AddTool(mcp.NewTool("resize_element",
		mcp.WithDescription("Resize an element's bounding box, scaling stroke points proportionally (undoable)"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height"), mcp.Required()),
	), s.handleResizeElement)

	s.mcp.AddTool(mcp.NewTool("delete_element",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove an element by ID (undoable). Requires user approval."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("elementId", mcp.Description("Element ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteElement)
}

// elementSummary is the agent-facing view of one element.
type elementSummary struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`
	Layer  string      `json:"layer"`
	Rect   domain.Rect `json:"rect"`
	Text   string      `json:"text,omitempty"`
	Points int         `json:"points,omitempty"`
}

func (s *Server) handleListElements(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.resolveBoard(req.GetArguments())
	if err != nil {
		return nil, err
	}
	els := svc.Elements()
	out := make([]elementSummary, 0, len(els))
	for _, el := range els {
		out = append(out, elementSummary{
			ID:     el.ID,
			Type:   string(el.Type),
			Layer:  el.LayerID,
			Rect:   el.Rect,
			Text:   el.Text,
			Points: len(el.Points),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleAddTextElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	text, _ := args["text"].(string)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	w, _ := args["width"].(float64)
	h, _ := args["height"].(float64)

	existing := make(map[string]bool, len(svc.Elements()))
	for _, el := range svc.Elements() {
		existing[el.ID] = true
	}

	svc.InsertText(text, domain.Rect{X: x, Y: y, Width: w, Height: h})
	s.emitBoardChanged(ctx, svc.BoardID())

	for _, el := range svc.Elements() {
		if !existing[el.ID] {
			return jsonResult(el)
		}
	}
	return textResult("Text added"), nil
}

func (s *Server) handleMoveElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	id, _ := args["elementId"].(string)
	if id == "" {
		return nil, fmt.Errorf("elementId is required")
	}
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	svc.MoveElementTo(id, x, y)
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult(fmt.Sprintf("Moved %s to (%.1f, %.1f)", id, x, y)), nil
}

func (s *Server) handleResizeElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	id, _ := args["elementId"].(string)
	if id == "" {
		return nil, fmt.Errorf("elementId is required")
	}
	w, _ := args["width"].(float64)
	h, _ := args["height"].(float64)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("width and height must be positive")
	}

	svc.ResizeElementTo(id, w, h)
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult(fmt.Sprintf("Resized %s to %.1fx%.1f", id, w, h)), nil
}

func (s *Server) handleDeleteElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	id, _ := args["elementId"].(string)
	if id == "" {
		return nil, fmt.Errorf("elementId is required")
	}

	desc := fmt.Sprintf("Delete element %s from board %s", id, svc.BoardID())
	meta := fmt.Sprintf(`{"elementIds":[%q]}`, id)
	if ok, err := s.approval.Request("delete_element", desc, meta); !ok {
		return nil, err
	}

	svc.DeleteElement(id)
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult(fmt.Sprintf("Deleted %s", id)), nil
}
