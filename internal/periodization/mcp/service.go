package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/recommender"
	"github.com/2beens/mesoplan/internal/periodization/training"
)

type mesocycleGetter interface {
	GetActive(ctx context.Context, userID int) (*training.Mesocycle, error)
}

type sessionGetter interface {
	GetSession(ctx context.Context, sessionID int) (*training.Session, error)
}

type nextWeekRecommender interface {
	NextWeek(ctx context.Context, userID int, fresh bool) (*recommender.Recommendation, error)
}

type exerciseLister interface {
	List(ctx context.Context, params catalog.ListParams) ([]*catalog.Exercise, error)
}

// contextService is what the tool handlers read from. Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetActiveMesocycle(ctx context.Context, userID int) (*training.Mesocycle, error)
	RecommendNextWeek(ctx context.Context, userID int, fresh bool) (*recommender.Recommendation, error)
	GetSession(ctx context.Context, userID, sessionID int) (*training.Session, error)
	ListExercises(ctx context.Context, params catalog.ListParams) ([]*catalog.Exercise, error)
}

// ContextService gives agents a read-only view of a user's training.
type ContextService struct {
	schema      SchemaRepo
	mesocycles  mesocycleGetter
	sessions    sessionGetter
	recommender nextWeekRecommender
	catalog     exerciseLister
}

func NewContextService(
	schemaRepo SchemaRepo,
	mesocycles mesocycleGetter,
	sessions sessionGetter,
	recommender nextWeekRecommender,
	catalog exerciseLister,
) *ContextService {
	return &ContextService{
		schema:      schemaRepo,
		mesocycles:  mesocycles,
		sessions:    sessions,
		recommender: recommender,
		catalog:     catalog,
	}
}

// GetSchema returns the DB schema of the periodization tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Mesoplan DB Schema\n\nNo mesoplan tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Mesoplan DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(tableOrder, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) GetActiveMesocycle(ctx context.Context, userID int) (*training.Mesocycle, error) {
	return s.mesocycles.GetActive(ctx, userID)
}

func (s *ContextService) RecommendNextWeek(ctx context.Context, userID int, fresh bool) (*recommender.Recommendation, error) {
	return s.recommender.NextWeek(ctx, userID, fresh)
}

// GetSession returns the session only when userID owns it.
func (s *ContextService) GetSession(ctx context.Context, userID, sessionID int) (*training.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, training.NotFoundf("session %d", sessionID)
	}
	return session, nil
}

func (s *ContextService) ListExercises(ctx context.Context, params catalog.ListParams) ([]*catalog.Exercise, error) {
	return s.catalog.List(ctx, params)
}
