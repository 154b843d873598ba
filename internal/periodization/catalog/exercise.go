package catalog

import "github.com/2beens/mesoplan/internal/periodization/training"

type Category string

const (
	CategoryCompound   Category = "compound"
	CategoryIsolation  Category = "isolation"
	CategoryBodyweight Category = "bodyweight"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryCompound, CategoryIsolation, CategoryBodyweight:
		return c, nil
	default:
		return "", training.Validationf("unknown exercise category %q", s)
	}
}

type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	MuscleGroups []string `json:"muscleGroups"`
}

type MuscleGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListParams struct {
	MuscleGroup string
	Category    Category
}
