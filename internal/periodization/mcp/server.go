package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// UserHeader names the user the MCP tools act for.
const UserHeader = "X-MESO-USER-ID"

// NewServer builds an MCP server with the periodization tools: schema, active
// mesocycle, next week recommendation, session, exercise catalog.
func NewServer(svc *ContextService, version string) *server.MCPServer {
	h := NewHandler(svc)
	s := server.NewMCPServer("mesoplan", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Mesoplan training periodization server. Read the active mesocycle, its sessions, the exercise catalog and next week's volume recommendation. All data is scoped to the user in the X-MESO-USER-ID header."),
	)

	s.AddTools(
		server.ServerTool{
			Tool: mcp.NewTool("get_mesoplan_schema",
				mcp.WithDescription("Returns the DB schema of the periodization tables: table names, columns, types, nullable, default."),
			),
			Handler: h.GetSchemaTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("get_active_mesocycle",
				mcp.WithDescription("Returns the user's active mesocycle: start date, total weeks, current week and phase (accumulation, intensification, deload)."),
			),
			Handler: h.GetActiveMesocycleTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("recommend_next_week",
				mcp.WithDescription("Returns next week's target sets per muscle group, the deload flag, a phase transition suggestion and fatigue feedback from recent check-ins."),
				mcp.WithBoolean("fresh", mcp.Description("Skip the cached recommendation and compute a new one. Defaults to false.")),
			),
			Handler: h.RecommendNextWeekTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("get_session",
				mcp.WithDescription("Returns one workout session with its exercises in order, including sets, target reps, rest and logged performance."),
				mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Session id")),
			),
			Handler: h.GetSessionTool(),
		},
		server.ServerTool{
			Tool: mcp.NewTool("list_exercises",
				mcp.WithDescription("Lists the exercise catalog with categories and trained muscle groups."),
				mcp.WithString("muscle_group", mcp.Description("Filter by muscle group (e.g. chest, quads)")),
				mcp.WithString("category", mcp.Description("Filter by category"), mcp.Enum("compound", "isolation", "bodyweight")),
			),
			Handler: h.ListExercisesTool(),
		},
	)

	return s
}

// NewHTTPHandler serves s over streamable HTTP, taking the user from UserHeader.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return userIDFromHeader(ctx, r.Header.Get(UserHeader))
		}),
	)
}
