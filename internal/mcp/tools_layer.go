package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerLayerTools() {
	s.mcp.AddTool(mcp.NewTool("list_layers",
		mcp.WithDescription("List a board's layers bottom-to-top, with visibility and which one is current"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleListLayers)

	s.mcp.AddTool(mcp.NewTool("add_layer",
		mcp.WithDescription("Add a new layer on top of the stack and make it current"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("label", mcp.Description("Layer label"), mcp.Required()),
	), s.handleAddLayer)

	s.mcp.AddTool(mcp.NewTool("toggle_layer",
		mcp.WithDescription("Toggle a layer's visibility. Hidden layers stop rendering and hit-testing"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("layerId", mcp.Description("Layer ID"), mcp.Required()),
	), s.handleToggleLayer)

	s.mcp.AddTool(mcp.NewTool("set_current_layer",
		mcp.WithDescription("Route new elements to the given layer"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("layerId", mcp.Description("Layer ID"), mcp.Required()),
	), s.handleSetCurrentLayer)
}

func (s *Server) handleListLayers(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.resolveBoard(req.GetArguments())
	if err != nil {
		return nil, err
	}
	return jsonResult(svc.Layers())
}

func (s *Server) handleAddLayer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	label, _ := args["label"].(string)
	if label == "" {
		return nil, fmt.Errorf("label is required")
	}
	layer := svc.AddLayer(label)
	s.emitBoardChanged(ctx, svc.BoardID())
	return jsonResult(layer)
}

func (s *Server) handleToggleLayer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	id, _ := args["layerId"].(string)
	if id == "" {
		return nil, fmt.Errorf("layerId is required")
	}
	svc.ToggleLayerVisibility(id)
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult(fmt.Sprintf("Toggled layer %s", id)), nil
}

func (s *Server) handleSetCurrentLayer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	svc, err := s.resolveBoard(args)
	if err != nil {
		return nil, err
	}
	id, _ := args["layerId"].(string)
	if id == "" {
		return nil, fmt.Errorf("layerId is required")
	}
	svc.SetCurrentLayer(id)
	s.emitBoardChanged(ctx, svc.BoardID())
	return textResult(fmt.Sprintf("Current layer set to %s", id)), nil
}
