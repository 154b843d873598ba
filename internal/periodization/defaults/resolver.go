package defaults

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/landmarks"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=defaults_mocks_test.go -package=defaults_test

type exerciseGetter interface {
	Get(ctx context.Context, id string) (*catalog.Exercise, error)
}

type landmarkLister interface {
	ListForMuscleGroups(ctx context.Context, userID int, muscleGroupIDs []string) ([]*landmarks.VolumeLandmark, error)
}

// Resolver computes smart defaults for one user and exercise.
type Resolver struct {
	policy    Policy
	catalog   exerciseGetter
	landmarks landmarkLister
}

func NewResolver(policy Policy, catalog exerciseGetter, landmarks landmarkLister) *Resolver {
	return &Resolver{
		policy:    policy,
		catalog:   catalog,
		landmarks: landmarks,
	}
}

func (r *Resolver) Policy() Policy {
	return r.policy
}

// ForExercise returns the prescription for exerciseID. An unknown exercise
// is a NotFound error.
func (r *Resolver) ForExercise(ctx context.Context, userID int, exerciseID string) (_ Prescription, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "defaults.for-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.String("exercise.id", exerciseID))

	exercise, err := r.catalog.Get(ctx, exerciseID)
	if err != nil {
		return Prescription{}, err
	}

	ls, err := r.landmarks.ListForMuscleGroups(ctx, userID, exercise.MuscleGroups)
	if err != nil {
		return Prescription{}, fmt.Errorf("landmarks for %s: %w", exerciseID, err)
	}

	p := Compute(r.policy, exercise.Category, ls)
	span.SetAttributes(attribute.Int("sets", p.Sets))
	return p, nil
}
