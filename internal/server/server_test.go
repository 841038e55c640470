package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/profile-extractor/internal/config"
	"github.com/jonathan/profile-extractor/internal/db"
	"github.com/jonathan/profile-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const capturedText = `Jane Smith
Senior Software Engineer at Acme Corp
Austin, Texas
500+ connections
About
Builds data platforms for retail analytics teams.
Experience
Senior Software Engineer
Acme Corp
Jan 2020 - Present · 4 yrs
Skills
Python · SQL`

// fakeRunStore is an in-memory RunStore for unit tests.
type fakeRunStore struct {
	runs     map[uuid.UUID]*db.Run
	profiles map[uuid.UUID]*types.Profile
	texts    map[uuid.UUID]map[string]string
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{
		runs:     make(map[uuid.UUID]*db.Run),
		profiles: make(map[uuid.UUID]*types.Profile),
		texts:    make(map[uuid.UUID]map[string]string),
	}
}

func (f *fakeRunStore) CreateRun(_ context.Context, sourceURL, locale string, textLength int) (uuid.UUID, error) {
	id := uuid.New()
	f.runs[id] = &db.Run{
		ID:         id,
		SourceURL:  sourceURL,
		Locale:     locale,
		Status:     db.StatusRunning,
		TextLength: textLength,
		CreatedAt:  time.Now(),
	}
	return id, nil
}

func (f *fakeRunStore) CompleteRun(_ context.Context, runID uuid.UUID, status string) error {
	run, ok := f.runs[runID]
	if !ok {
		return fmt.Errorf("run not found")
	}
	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	return nil
}

func (f *fakeRunStore) GetRun(_ context.Context, runID uuid.UUID) (*db.Run, error) {
	run, ok := f.runs[runID]
	if !ok {
		return nil, nil
	}
	return run, nil
}

func (f *fakeRunStore) ListRuns(_ context.Context, filters db.RunFilters) ([]db.Run, error) {
	var runs []db.Run
	for _, run := range f.runs {
		if filters.Status != "" && run.Status != filters.Status {
			continue
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

func (f *fakeRunStore) DeleteRun(_ context.Context, runID uuid.UUID) error {
	if _, ok := f.runs[runID]; !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	delete(f.runs, runID)
	delete(f.profiles, runID)
	delete(f.texts, runID)
	return nil
}

func (f *fakeRunStore) SaveProfile(_ context.Context, runID uuid.UUID, profile *types.Profile) error {
	f.profiles[runID] = profile
	return nil
}

func (f *fakeRunStore) GetProfile(_ context.Context, runID uuid.UUID) (*types.Profile, error) {
	return f.profiles[runID], nil
}

func (f *fakeRunStore) SaveTextArtifact(_ context.Context, runID uuid.UUID, step, text string) error {
	if f.texts[runID] == nil {
		f.texts[runID] = make(map[string]string)
	}
	f.texts[runID][step] = text
	return nil
}

func (f *fakeRunStore) GetTextArtifact(_ context.Context, runID uuid.UUID, step string) (string, error) {
	return f.texts[runID][step], nil
}

func (f *fakeRunStore) Close() {}

// newTestServer builds a server with an in-memory store and no authentication.
func newTestServer(store RunStore) *Server {
	return &Server{store: store}
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(nil)

	w := doRequest(s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestParseEndpoint(t *testing.T) {
	s := newTestServer(nil)

	w := doRequest(s, http.MethodPost, "/profile/parse", map[string]string{
		"profile_text": capturedText,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, len(capturedText), resp.TextLength)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Jane Smith", resp.Data.Personal.FullName)
	require.Len(t, resp.Data.Experience, 1)
	assert.Equal(t, "Acme Corp", resp.Data.Experience[0].Org)
}

func TestParseEndpoint_EmptyBody(t *testing.T) {
	s := newTestServer(nil)

	w := doRequest(s, http.MethodPost, "/profile/parse", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "profile_text or profile_html")
}

func TestParseEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/profile/parse", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRunEndpoint(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	w := doRequest(s, http.MethodPost, "/runs", map[string]string{
		"profile_text": capturedText,
		"source_url":   "https://example.com/in/janesmith",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, db.StatusCompleted, resp.Status)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Jane Smith", resp.Profile.Personal.FullName)

	runID, err := uuid.Parse(resp.RunID)
	require.NoError(t, err)

	// Run, profile, and text capture were all persisted
	run := store.runs[runID]
	require.NotNil(t, run)
	assert.Equal(t, db.StatusCompleted, run.Status)
	assert.Equal(t, "https://example.com/in/janesmith", run.SourceURL)
	assert.NotNil(t, run.CompletedAt)
	assert.NotNil(t, store.profiles[runID])
	assert.Equal(t, capturedText, store.texts[runID][db.StepCaptureText])
}

func TestCreateRunEndpoint_NoStore(t *testing.T) {
	s := newTestServer(nil)

	w := doRequest(s, http.MethodPost, "/runs", map[string]string{
		"profile_text": capturedText,
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetRunEndpoint(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	runID, err := store.CreateRun(context.Background(), "https://example.com/in/janesmith", "en", 100)
	require.NoError(t, err)

	w := doRequest(s, http.MethodGet, "/runs/"+runID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var run db.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, db.StatusRunning, run.Status)
}

func TestGetRunEndpoint_NotFound(t *testing.T) {
	s := newTestServer(newFakeRunStore())

	w := doRequest(s, http.MethodGet, "/runs/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRunEndpoint_InvalidID(t *testing.T) {
	s := newTestServer(newFakeRunStore())

	w := doRequest(s, http.MethodGet, "/runs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRunsEndpoint(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	_, err := store.CreateRun(context.Background(), "https://example.com/a", "en", 10)
	require.NoError(t, err)
	_, err = store.CreateRun(context.Background(), "https://example.com/b", "en", 20)
	require.NoError(t, err)

	w := doRequest(s, http.MethodGet, "/runs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Runs  []db.Run `json:"runs"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Runs, 2)
}

func TestListRunsEndpoint_InvalidLimit(t *testing.T) {
	s := newTestServer(newFakeRunStore())

	w := doRequest(s, http.MethodGet, "/runs?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRunEndpoint(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	runID, err := store.CreateRun(context.Background(), "", "en", 10)
	require.NoError(t, err)

	w := doRequest(s, http.MethodDelete, "/runs/"+runID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.runs)

	// Deleting again reports not found
	w = doRequest(s, http.MethodDelete, "/runs/"+runID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRunProfileEndpoint(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	// Create a run through the API so a profile is stored
	w := doRequest(s, http.MethodPost, "/runs", map[string]string{
		"profile_text": capturedText,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(s, http.MethodGet, "/runs/"+created.RunID+"/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile types.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Jane Smith", profile.Personal.FullName)
}

func TestGetRunProfileEndpoint_NotStored(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	runID, err := store.CreateRun(context.Background(), "", "en", 10)
	require.NoError(t, err)

	w := doRequest(s, http.MethodGet, "/runs/"+runID.String()+"/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRunLinesEndpoint(t *testing.T) {
	store := newFakeRunStore()
	s := newTestServer(store)

	w := doRequest(s, http.MethodPost, "/runs", map[string]string{
		"profile_text": capturedText,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(s, http.MethodGet, "/runs/"+created.RunID+"/lines", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LinesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.RunID, resp.RunID)
	require.NotEmpty(t, resp.Lines)

	labels := make(map[types.LineLabel]bool)
	for _, line := range resp.Lines {
		labels[line.Label] = true
	}
	assert.True(t, labels[types.LabelTitle])
	assert.True(t, labels[types.LabelDateRange])
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	jwtConfig := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	}
	s := &Server{
		store:       newFakeRunStore(),
		jwtService:  NewJWTService(jwtConfig),
		authEnabled: true,
	}

	// No token
	w := doRequest(s, http.MethodPost, "/profile/parse", map[string]string{
		"profile_text": capturedText,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health stays open
	w = doRequest(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Valid token passes
	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"profile_text": capturedText})
	req := httptest.NewRequest(http.MethodPost, "/profile/parse", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePasswordRoute(t *testing.T) {
	jwtConfig := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	}
	jwtSvc := NewJWTService(jwtConfig)
	userSvc := NewUserService(newFakeUserDB(), testPasswordConfig())
	s := &Server{
		jwtService:  jwtSvc,
		userService: userSvc,
		authHandler: NewAuthHandler(userSvc, jwtSvc),
		authEnabled: true,
	}

	// Register through the route to get a user and token
	w := doRequest(s, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Jane Smith",
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	body, _ := json.Marshal(map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword",
	})
	req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// New password works
	w = doRequest(s, http.MethodPost, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRoutes_NoPersistence(t *testing.T) {
	s := newTestServer(nil)

	w := doRequest(s, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Jane Smith",
		"email":    "jane@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
