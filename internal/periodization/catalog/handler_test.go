package catalog_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/training"
)

func newRouter(h *catalog.Handler) *mux.Router {
	r := mux.NewRouter()
	h.SetupRoutes(r)
	return r
}

func TestHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	r := newRouter(catalog.NewHandler(source))

	source.EXPECT().
		List(gomock.Any(), catalog.ListParams{MuscleGroup: "chest", Category: catalog.CategoryCompound}).
		Return([]*catalog.Exercise{benchPress}, nil)

	req := httptest.NewRequest(http.MethodGet, "/catalog/exercises?muscle_group=chest&category=compound", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []*catalog.Exercise
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, benchPress, got[0])
}

func TestHandler_HandleList_InvalidCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newRouter(catalog.NewHandler(NewMockexerciseSource(ctrl)))

	req := httptest.NewRequest(http.MethodGet, "/catalog/exercises?category=cardio", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	r := newRouter(catalog.NewHandler(source))

	source.EXPECT().Get(gomock.Any(), "bench_press").Return(benchPress, nil)
	source.EXPECT().Get(gomock.Any(), "nope").Return(nil, training.NotFoundf("exercise nope"))
	source.EXPECT().Get(gomock.Any(), "broken").Return(nil, errors.New("conn reset"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/exercises/bench_press", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got catalog.Exercise
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, *benchPress, got)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/exercises/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/exercises/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "conn reset")
}

func TestHandler_HandleListMuscleGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	r := newRouter(catalog.NewHandler(source))

	source.EXPECT().ListMuscleGroups(gomock.Any()).Return([]*catalog.MuscleGroup{{ID: "abs", Name: "Abs"}}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/musclegroups", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"abs","name":"Abs"}]`, rec.Body.String())
}
