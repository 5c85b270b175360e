package mcpserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"sketchpad/internal/domain"
	"sketchpad/internal/export"
)

func (s *Server) registerBoardTools() {
	s.mcp.AddTool(mcp.NewTool("list_boards",
		mcp.WithDescription("List all boards with their IDs and names"),
	), s.handleListBoards)

	s.mcp.AddTool(mcp.NewTool("create_board",
		mcp.WithDescription("Create a new empty board"),
		mcp.WithString("name", mcp.Description("Board name"), mcp.Required()),
	), s.handleCreateBoard)

	s.mcp.AddTool(mcp.NewTool("set_active_board",
		mcp.WithDescription("Set the board that subsequent tools operate on by default"),
		mcp.WithString("boardId", mcp.Description("Board ID"), mcp.Required()),
	), s.handleSetActiveBoard)

	s.mcp.AddTool(mcp.NewTool("undo_board",
		mcp.WithDescription("Undo the last action on a board"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleUndoBoard)

	s.mcp.AddTool(mcp.NewTool("redo_board",
		mcp.WithDescription("Redo the last undone action on a board"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleRedoBoard)

	s.mcp.AddTool(mcp.NewTool("clear_board",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove every element from a board (undoable). Requires user approval."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleClearBoard)

	s.mcp.AddTool(mcp.NewTool("export_board_pdf",
		mcp.WithDescription("Export the visible elements of a board to a PDF file"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("path", mcp.Description("Destination file path"), mcp.Required()),
	), s.handleExportBoardPDF)
}

func (s *Server) handleListBoards(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.boards.ListBoards()
	if err != nil {
		return nil, err
	}
	return jsonResult(boards)
}

func (s *Server) handleCreateBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := req.GetArguments()["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	board := &domain.Board{ID: uuid.New().String(), Name: name}
	if err := s.boards.CreateBoard(board); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, "mcp:board-created", map[string]string{"boardId": board.ID})
	return jsonResult(board)
}

func (s *Server) handleSetActiveBoard(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := req.GetArguments()["boardId"].(string)
	if id == "" {
		return nil, fmt.Errorf("boardId is required")
	}
	if _, err := s.boards.GetBoard(id); err != nil {
		return nil, err
	}
	s.activeBoardID = id
	return textResult(fmt.Sprintf("Active board set to %s", id)), nil
}

func (s *Server) handleUndoBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.resolveBoard(req.GetArguments())
	if err != nil {
		return nil, err
	}
	svc.Undo()
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult("Undone"), nil
}

func (s *Server) handleRedoBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.resolveBoard(req.GetArguments())
	if err != nil {
		return nil, err
	}
	svc.Redo()
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult("Redone"), nil
}

func (s *Server) handleClearBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.resolveBoard(req.GetArguments())
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Clear all %d element(s) from board %s", len(svc.Elements()), svc.BoardID())
	if ok, err := s.approval.Request("clear_board", desc); !ok {
		return nil, err
	}

	svc.ClearAll()
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult("Board cleared"), nil
}

func (s *Server) handleExportBoardPDF(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	path, _ := args["path"].(string)
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if err := export.BoardPDF(path, svc.Elements(), svc.Layers()); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Exported board %s to %s", svc.BoardID(), path)), nil
}
