package landmarks

import (
	"context"
	"fmt"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=landmarks_mocks_test.go -package=landmarks_test

type landmarksRepo interface {
	ListForUser(ctx context.Context, userID int) ([]*VolumeLandmark, error)
	ListForMuscleGroups(ctx context.Context, userID int, muscleGroupIDs []string) ([]*VolumeLandmark, error)
	Upsert(ctx context.Context, l VolumeLandmark) (*VolumeLandmark, error)
	SetRecoveryLevel(ctx context.Context, userID int, muscleGroupID string, level float64) error
}

type Service struct {
	repo        landmarksRepo
	invalidator training.Invalidator
}

func NewService(repo landmarksRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// WithInvalidator sets what gets invalidated after landmarks of the user change.
func (s *Service) WithInvalidator(inv training.Invalidator) *Service {
	s.invalidator = inv
	return s
}

func (s *Service) List(ctx context.Context, userID int) ([]*VolumeLandmark, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) ListForMuscleGroups(ctx context.Context, userID int, muscleGroupIDs []string) ([]*VolumeLandmark, error) {
	return s.repo.ListForMuscleGroups(ctx, userID, muscleGroupIDs)
}

func (s *Service) Upsert(ctx context.Context, l VolumeLandmark) (*VolumeLandmark, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	stored, err := s.repo.Upsert(ctx, l)
	if err != nil {
		return nil, err
	}
	training.Invalidate(ctx, s.invalidator, l.UserID)
	return stored, nil
}

// SubmitFeedback stores a user reported recovery level for one muscle group.
func (s *Service) SubmitFeedback(ctx context.Context, userID int, muscleGroupID string, recoveryLevel float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.landmarks.feedback")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.String("muscle_group", muscleGroupID))

	if err := ValidateRecoveryLevel(recoveryLevel); err != nil {
		return err
	}
	if err := s.repo.SetRecoveryLevel(ctx, userID, muscleGroupID, recoveryLevel); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	training.Invalidate(ctx, s.invalidator, userID)
	return nil
}

// SetRecoveryLevel stores a recovery level, clamped into the valid range.
func (s *Service) SetRecoveryLevel(ctx context.Context, userID int, muscleGroupID string, level float64) error {
	level = min(max(level, MinRecoveryLevel), MaxRecoveryLevel)
	if err := s.repo.SetRecoveryLevel(ctx, userID, muscleGroupID, level); err != nil {
		return err
	}
	training.Invalidate(ctx, s.invalidator, userID)
	return nil
}
