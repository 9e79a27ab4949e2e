package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripforge/internal/planner"
)

type stubGenerator struct {
	itinerary *planner.Itinerary
	err       error
	calls     int
}

func (s *stubGenerator) Generate(_ context.Context, _ planner.TravelRequest) (*planner.Itinerary, error) {
	s.calls++
	return s.itinerary, s.err
}

type stubArchive struct {
	saved   []*planner.Itinerary
	saveErr error
	byID    map[string]*planner.Itinerary
	recent  []planner.ArchiveSummary
}

func (s *stubArchive) Save(_ context.Context, it *planner.Itinerary) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, it)
	return "id-1", nil
}

func (s *stubArchive) Get(_ context.Context, id string) (*planner.Itinerary, error) {
	it, ok := s.byID[id]
	if !ok {
		return nil, planner.ErrNotFound
	}
	return it, nil
}

func (s *stubArchive) ListRecent(_ context.Context, _ int) ([]planner.ArchiveSummary, error) {
	return s.recent, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(gen Generator, archive Archive) *gin.Engine {
	return NewServer(gen, archive, nil, 0).Router("")
}

const validBody = `{
	"destination": {"name": "Kyoto", "country": "Japan"},
	"preferences": {
		"budget": "moderate",
		"dateRange": {"start": "2025-04-01T00:00:00Z", "end": "2025-04-03T00:00:00Z"}
	},
	"mode": "luxury"
}`

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, nil)
	w := getPath(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHandleGenerateSuccess(t *testing.T) {
	it := &planner.Itinerary{
		Destination: planner.Destination{Name: "Kyoto", Country: "Japan"},
		Duration:    3,
	}
	gen := &stubGenerator{itinerary: it}
	archive := &stubArchive{}
	r := newTestRouter(gen, archive)

	w := postJSON(t, r, "/api/itineraries", validBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "id-1", resp.ID)
	require.NotNil(t, resp.Itinerary)
	assert.Equal(t, "Kyoto", resp.Itinerary.Destination.Name)
	assert.Len(t, archive.saved, 1)
}

func TestHandleGenerateNoArchive(t *testing.T) {
	gen := &stubGenerator{itinerary: &planner.Itinerary{}}
	r := newTestRouter(gen, nil)

	w := postJSON(t, r, "/api/itineraries", validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.ID)
}

func TestHandleGenerateArchiveFailureStillResponds(t *testing.T) {
	gen := &stubGenerator{itinerary: &planner.Itinerary{}}
	archive := &stubArchive{saveErr: errors.New("db down")}
	r := newTestRouter(gen, archive)

	w := postJSON(t, r, "/api/itineraries", validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.ID)
	require.NotNil(t, resp.Itinerary)
}

func TestHandleGenerateBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"destination": `},
		{"missing destination", `{"preferences": {"dateRange": {"start": "2025-04-01T00:00:00Z", "end": "2025-04-03T00:00:00Z"}}}`},
		{"missing country", `{"destination": {"name": "Kyoto"}, "preferences": {"dateRange": {"start": "2025-04-01T00:00:00Z", "end": "2025-04-03T00:00:00Z"}}}`},
		{"missing date range", `{"destination": {"name": "Kyoto", "country": "Japan"}, "preferences": {"budget": "moderate"}}`},
		{"unknown mode", `{"destination": {"name": "Kyoto", "country": "Japan"}, "preferences": {"dateRange": {"start": "2025-04-01T00:00:00Z", "end": "2025-04-03T00:00:00Z"}}, "mode": "economy"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{itinerary: &planner.Itinerary{}}
			r := newTestRouter(gen, nil)
			w := postJSON(t, r, "/api/itineraries", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Zero(t, gen.calls, "bad requests must not reach the pipeline")
		})
	}
}

func TestHandleGenerateDefaultsToLuxury(t *testing.T) {
	gen := &stubGenerator{itinerary: &planner.Itinerary{}}
	r := newTestRouter(gen, nil)

	body := `{"destination": {"name": "Kyoto", "country": "Japan"}, "preferences": {"dateRange": {"start": "2025-04-01T00:00:00Z", "end": "2025-04-03T00:00:00Z"}}}`
	w := postJSON(t, r, "/api/itineraries", body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, gen.calls)
}

func TestHandleGeneratePipelineFailure(t *testing.T) {
	gen := &stubGenerator{err: &planner.GenerationError{
		Stage:    "validation",
		Attempts: 3,
		Err:      errors.New("schema never satisfied"),
	}}
	r := newTestRouter(gen, nil)

	w := postJSON(t, r, "/api/itineraries", validBody)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body["stage"])
}

func TestHandleGenerateTimeout(t *testing.T) {
	gen := &stubGenerator{err: context.DeadlineExceeded}
	r := newTestRouter(gen, nil)

	w := postJSON(t, r, "/api/itineraries", validBody)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestHandleGetItinerary(t *testing.T) {
	it := &planner.Itinerary{Destination: planner.Destination{Name: "Kyoto", Country: "Japan"}}
	archive := &stubArchive{byID: map[string]*planner.Itinerary{"abc": it}}
	r := newTestRouter(&stubGenerator{}, archive)

	w := getPath(r, "/api/itineraries/abc")
	require.Equal(t, http.StatusOK, w.Code)

	var got planner.Itinerary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Kyoto", got.Destination.Name)

	w = getPath(r, "/api/itineraries/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListRecent(t *testing.T) {
	archive := &stubArchive{recent: []planner.ArchiveSummary{
		{ID: "a", Destination: "Kyoto"},
		{ID: "b", Destination: "Osaka"},
	}}
	r := newTestRouter(&stubGenerator{}, archive)

	w := getPath(r, "/api/itineraries")
	require.Equal(t, http.StatusOK, w.Code)

	var got []planner.ArchiveSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestHandleListRecentNoArchive(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, nil)
	w := getPath(r, "/api/itineraries")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
