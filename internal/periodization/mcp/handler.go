package mcp

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
)

type contextKey int

const userIDKey contextKey = iota

// WithUserID returns a context carrying the user the tools act for.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

func userIDFromHeader(ctx context.Context, raw string) context.Context {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return ctx
	}
	return WithUserID(ctx, id)
}

// Handler handles MCP tool requests: parses input, calls the service, formats the result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error encoding response: " + err.Error())
	}
	return mcp.NewToolResultText(string(raw))
}

func errorResult(msg string, err error) *mcp.CallToolResult {
	log.Debugf("mcp: %s: %s", msg, err)
	return mcp.NewToolResultError(msg + ": " + err.Error())
}

func unknownUser() *mcp.CallToolResult {
	return mcp.NewToolResultError("Unknown user: send the " + UserHeader + " header")
}

func (h *Handler) GetSchemaTool() server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema", err), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func (h *Handler) GetActiveMesocycleTool() server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, ok := UserIDFromContext(ctx)
		if !ok {
			return unknownUser(), nil
		}
		m, err := h.service.GetActiveMesocycle(ctx, userID)
		if err != nil {
			return errorResult("Error fetching active mesocycle", err), nil
		}
		return jsonResult(m), nil
	}
}

func (h *Handler) RecommendNextWeekTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, ok := UserIDFromContext(ctx)
		if !ok {
			return unknownUser(), nil
		}
		rec, err := h.service.RecommendNextWeek(ctx, userID, req.GetBool("fresh", false))
		if err != nil {
			return errorResult("Error recommending next week", err), nil
		}
		return jsonResult(rec), nil
	}
}

func (h *Handler) GetSessionTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, ok := UserIDFromContext(ctx)
		if !ok {
			return unknownUser(), nil
		}
		sessionID, err := req.RequireInt("session_id")
		if err != nil {
			return mcp.NewToolResultError("session_id parameter is required"), nil
		}
		session, err := h.service.GetSession(ctx, userID, sessionID)
		if err != nil {
			return errorResult("Error fetching session", err), nil
		}
		return jsonResult(session), nil
	}
}

func (h *Handler) ListExercisesTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := catalog.ListParams{
			MuscleGroup: req.GetString("muscle_group", ""),
		}
		if raw := req.GetString("category", ""); raw != "" {
			category, err := catalog.ParseCategory(raw)
			if err != nil {
				return mcp.NewToolResultError("Invalid category: use compound, isolation or bodyweight"), nil
			}
			params.Category = category
		}
		exercises, err := h.service.ListExercises(ctx, params)
		if err != nil {
			return errorResult("Error listing exercises", err), nil
		}
		return jsonResult(exercises), nil
	}
}
