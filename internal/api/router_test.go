package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/classify"
	"github.com/causehire/recruit-api/internal/config"
	"github.com/causehire/recruit-api/internal/database"
	"github.com/causehire/recruit-api/internal/domain"
	"github.com/causehire/recruit-api/internal/drafts"
	"github.com/causehire/recruit-api/internal/flags"
	"github.com/causehire/recruit-api/internal/generation"
	"github.com/causehire/recruit-api/internal/logger"
	"github.com/causehire/recruit-api/internal/metrics"
)

// fakeDraftStore implements drafts.Store in memory with the repository's
// state guards.
type fakeDraftStore struct {
	rows map[uuid.UUID]*domain.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{rows: make(map[uuid.UUID]*domain.Draft)}
}

func (s *fakeDraftStore) owned(id uuid.UUID, ownerID string) (*domain.Draft, error) {
	d, ok := s.rows[id]
	if !ok || d.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (s *fakeDraftStore) Create(_ context.Context, draft *domain.Draft) error {
	cp := *draft
	s.rows[draft.ID] = &cp
	return nil
}

func (s *fakeDraftStore) GetByID(_ context.Context, id uuid.UUID, ownerID string) (*domain.Draft, error) {
	d, err := s.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	cp := *d
	return &cp, nil
}

func (s *fakeDraftStore) ListByOwner(_ context.Context, ownerID string, _ int) ([]domain.Draft, error) {
	var out []domain.Draft
	for _, d := range s.rows {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *fakeDraftStore) Start(_ context.Context, id uuid.UUID, ownerID string) error {
	d, err := s.owned(id, ownerID)
	if err != nil {
		return err
	}
	if !d.CanStart() {
		return domain.ErrNotFound
	}
	d.Status = domain.DraftStatusProcessing
	return nil
}

func (s *fakeDraftStore) Complete(_ context.Context, id uuid.UUID, ownerID, text string) error {
	d, err := s.owned(id, ownerID)
	if err != nil {
		return err
	}
	d.Status = domain.DraftStatusCompleted
	d.GeneratedText = &text
	d.ErrorDetail = nil
	return nil
}

func (s *fakeDraftStore) Fail(_ context.Context, id uuid.UUID, ownerID, detail string) error {
	d, err := s.owned(id, ownerID)
	if err != nil {
		return err
	}
	d.Status = domain.DraftStatusFailed
	d.ErrorDetail = &detail
	d.GeneratedText = nil
	return nil
}

type fakeGen struct {
	err error
}

func (g *fakeGen) Generate(context.Context, generation.Request) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return "## About the Role", nil
}

type fakeFlagStore struct {
	values map[string]bool
}

func (s *fakeFlagStore) Get(_ context.Context, userID string) (*domain.ProgressFlags, error) {
	f := domain.DefaultFlags(userID)
	f.HasGeneratedJD = s.values["has_generated_jd"]
	return f, nil
}

func (s *fakeFlagStore) Set(ctx context.Context, userID, name string, value bool) error {
	return s.SetMany(ctx, userID, map[string]bool{name: value})
}

func (s *fakeFlagStore) SetMany(_ context.Context, _ string, values map[string]bool) error {
	if s.values == nil {
		s.values = make(map[string]bool)
	}
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

type routerFixture struct {
	engine *gin.Engine
	store  *fakeDraftStore
	gen    *fakeGen
	mock   sqlmock.Sqlmock
	token  string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })
	db := sqlx.NewDb(rawDB, "sqlmock")

	store := newFakeDraftStore()
	gen := &fakeGen{}
	log := logger.NewNopLogger()
	tracker := flags.NewTracker(&fakeFlagStore{}, log)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	cfg := &config.Config{
		Debug: true,
		Server: config.ServerConfig{
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Classify: config.ClassifyConfig{
			LinkWordThreshold:  8,
			MinBriefWords:      10,
			UploadTextCap:      5000,
			MaxUploadSizeBytes: 10 << 20,
		},
	}

	jwtManager := auth.NewManager("test-secret-key-32-chars-minimum", time.Hour)
	token, err := jwtManager.GenerateToken("org-1")
	require.NoError(t, err)

	svc := drafts.NewService(store, gen, classify.NewClassifier(cfg.Classify), tracker, m, log)

	router := NewRouter(Deps{
		Drafts:    svc,
		Tracker:   tracker,
		Jobs:      database.NewJobRepository(db),
		Apps:      database.NewApplicationRepository(db),
		ErrorLogs: database.NewErrorLogRepository(db),
		JWT:       jwtManager,
		DB:        db,
		Gatherer:  reg,
		Metrics:   m,
		Config:    cfg,
		Logger:    log,
	})

	return &routerFixture{
		engine: router.Engine(),
		store:  store,
		gen:    gen,
		mock:   mock,
		token:  token,
	}
}

func (f *routerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestGenerateDraftEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/drafts/generate", gin.H{
		"text": "We need a part-time volunteer coordinator for our food bank " +
			"with weekend availability and strong people skills",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status    string `json:"status"`
		Progress  string `json:"progress"`
		Retriable bool   `json:"retriable"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "ready for review", resp.Progress)
	assert.False(t, resp.Retriable)
}

func TestGenerateDraftFailureStillReturnsDraft(t *testing.T) {
	f := newRouterFixture(t)
	f.gen.err = fmt.Errorf("%w: upstream timeout", domain.ErrGeneration)

	w := f.do(t, http.MethodPost, "/api/v1/drafts/generate", gin.H{
		"text": "Seeking a grants writer for a youth mentoring nonprofit " +
			"in Manchester with flexible hybrid working",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID        uuid.UUID `json:"id"`
		Status    string    `json:"status"`
		Retriable bool      `json:"retriable"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.True(t, resp.Retriable)

	// And the retry endpoint recovers it on the same row.
	f.gen.err = nil
	w = f.do(t, http.MethodPost, "/api/v1/drafts/"+resp.ID.String()+"/retry", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var retried struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &retried))
	assert.Equal(t, resp.ID, retried.ID)
	assert.Equal(t, "completed", retried.Status)
}

func TestGenerateDraftInsufficientDetail(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/drafts/generate", gin.H{
		"text": "need a developer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRetryCompletedDraftConflicts(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/drafts/generate", gin.H{
		"text": "Hiring an operations director for a housing charity " +
			"based in Glasgow with occasional regional travel",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = f.do(t, http.MethodPost, "/api/v1/drafts/"+resp.ID.String()+"/retry", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUploadDraftEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "role.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 binary"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("extracted_text",
		"Programme manager responsibilities and person specification"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		InputCategory string `json:"input_category"`
		Status        string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "upload", resp.InputCategory)
	assert.Equal(t, "completed", resp.Status)
}

func TestUploadDraftRejectsBadExtension(t *testing.T) {
	f := newRouterFixture(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "payload.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestDraftsRequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProgressEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var before domain.ProgressFlags
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))
	assert.False(t, before.HasGeneratedJD)

	w = f.do(t, http.MethodPatch, "/api/v1/progress", gin.H{
		"has_generated_jd": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var after domain.ProgressFlags
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.True(t, after.HasGeneratedJD)
}

func TestProgressRejectsUnknownFlag(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPatch, "/api/v1/progress", gin.H{
		"has_won_lottery": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicJobsNeedNoAuth(t *testing.T) {
	f := newRouterFixture(t)

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "title", "description", "location", "status",
		"draft_id", "published_at", "created_at", "updated_at",
	}).AddRow(uuid.New(), "org-1", "Outreach Worker", "Desc", "Bristol",
		"published", nil, time.Now(), time.Now(), time.Now())
	f.mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs(50).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/jobs", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.Contains(w.Body.String(), "Outreach Worker"))
}

func TestHealthEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recruit-api")
}
