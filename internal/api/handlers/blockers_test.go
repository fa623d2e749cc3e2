package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/blockers"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/services"
)

type fakeStore struct {
	summaries map[string]*models.Summary
	byTeam    map[string][]models.Summary
	integs    map[string]*models.Integration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		summaries: map[string]*models.Summary{},
		byTeam:    map[string][]models.Summary{},
		integs:    map[string]*models.Integration{},
	}
}

func (f *fakeStore) GetSummary(_ context.Context, id string) (*models.Summary, error) {
	s, ok := f.summaries[id]
	if !ok {
		return nil, blockers.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) UpdateBlockerStatus(_ context.Context, id string, overlay []byte) error {
	s, ok := f.summaries[id]
	if !ok {
		return blockers.ErrNotFound
	}
	s.BlockerStatus = append([]byte(nil), overlay...)
	return nil
}

func (f *fakeStore) ListWithBlockersByTeam(_ context.Context, teamID string) ([]models.Summary, error) {
	return f.byTeam[teamID], nil
}

func (f *fakeStore) Upsert(_ context.Context, i *models.Integration) error {
	f.integs[i.UserID+"/"+i.Platform] = i
	return nil
}

func (f *fakeStore) Get(_ context.Context, userID, platform string) (*models.Integration, error) {
	return f.integs[userID+"/"+platform], nil
}

func (f *fakeStore) Delete(_ context.Context, userID, platform string) error {
	delete(f.integs, userID+"/"+platform)
	return nil
}

func sqlString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func testUser(c *fiber.Ctx) error {
	c.Locals("user_context", &middleware.UserContext{UserID: "user-1", Email: "dev@example.com"})
	return c.Next()
}

func newBlockersApp(store *fakeStore) *fiber.App {
	svc := &services.Services{
		Blockers:    blockers.NewService(store),
		Integration: services.NewIntegrationService(store),
	}

	app := fiber.New()
	app.Post("/api/blockers/resolve", testUser, ResolveBlocker(svc))
	app.Get("/api/blockers", testUser, ListBlockers(svc))
	app.Get("/api/blockers/:summaryId", testUser, GetBlockerStatus(svc))
	return app
}

func TestResolveBlocker(t *testing.T) {
	store := newFakeStore()
	store.summaries["sum-1"] = &models.Summary{
		ID:       "sum-1",
		Blockers: []string{"CI is red", "waiting on design"},
	}
	app := newBlockersApp(store)

	body, _ := json.Marshal(fiber.Map{
		"summaryId":  "sum-1",
		"blockIndex": 1,
		"resolvedAt": "2026-08-29T10:00:00Z",
	})
	req := httptest.NewRequest("POST", "/api/blockers/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Success       bool             `json:"success"`
		BlockerStatus []blockers.Entry `json:"blocker_status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	require.Len(t, out.BlockerStatus, 2)
	assert.Equal(t, blockers.StatusActive, out.BlockerStatus[0].Status)
	assert.Equal(t, blockers.StatusResolved, out.BlockerStatus[1].Status)
	require.NotNil(t, out.BlockerStatus[1].ResolvedBy)
	assert.Equal(t, "user-1", *out.BlockerStatus[1].ResolvedBy)
	require.NotNil(t, out.BlockerStatus[1].ResolvedAt)
	assert.Equal(t, "2026-08-29T10:00:00Z", *out.BlockerStatus[1].ResolvedAt)
}

func TestResolveBlocker_IndexZeroAccepted(t *testing.T) {
	store := newFakeStore()
	store.summaries["sum-1"] = &models.Summary{ID: "sum-1", Blockers: []string{"only one"}}
	app := newBlockersApp(store)

	body, _ := json.Marshal(fiber.Map{
		"summaryId":  "sum-1",
		"blockIndex": 0,
		"resolvedAt": "2026-08-29T10:00:00Z",
	})
	req := httptest.NewRequest("POST", "/api/blockers/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResolveBlocker_MissingFields(t *testing.T) {
	app := newBlockersApp(newFakeStore())

	for _, body := range []string{
		`{}`,
		`{"summaryId":"s"}`,
		`{"summaryId":"s","blockIndex":0}`,
		`{"blockIndex":0,"resolvedAt":"now"}`,
	} {
		req := httptest.NewRequest("POST", "/api/blockers/resolve", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body %s", body)

		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "Missing required fields")
	}
}

func TestResolveBlocker_NegativeIndex(t *testing.T) {
	app := newBlockersApp(newFakeStore())

	body, _ := json.Marshal(fiber.Map{
		"summaryId":  "sum-1",
		"blockIndex": -1,
		"resolvedAt": "2026-08-29T10:00:00Z",
	})
	req := httptest.NewRequest("POST", "/api/blockers/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestResolveBlocker_UnknownSummary(t *testing.T) {
	app := newBlockersApp(newFakeStore())

	body, _ := json.Marshal(fiber.Map{
		"summaryId":  "missing",
		"blockIndex": 0,
		"resolvedAt": "2026-08-29T10:00:00Z",
	})
	req := httptest.NewRequest("POST", "/api/blockers/resolve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetBlockerStatus(t *testing.T) {
	store := newFakeStore()
	store.summaries["sum-1"] = &models.Summary{
		ID:            "sum-1",
		Blockers:      []string{"a", "b"},
		BlockerStatus: json.RawMessage(`[{"status":"resolved","resolved_at":"t","resolved_by":"u"}]`),
	}
	app := newBlockersApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/blockers/sum-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		BlockerStatus []blockers.Entry `json:"blocker_status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	// Reads return the overlay as stored, without padding to the
	// blockers length.
	require.Len(t, out.BlockerStatus, 1)
	assert.Equal(t, blockers.StatusResolved, out.BlockerStatus[0].Status)
}

func TestListBlockers_NoIntegration(t *testing.T) {
	app := newBlockersApp(newFakeStore())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/blockers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Summaries []models.Summary `json:"summaries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Summaries)
}

func TestListBlockers(t *testing.T) {
	store := newFakeStore()
	store.integs["user-1/slack"] = &models.Integration{
		UserID:   "user-1",
		Platform: models.PlatformSlack,
		TeamID:   sqlString("T123"),
	}
	store.byTeam["T123"] = []models.Summary{
		{ID: "sum-2", TeamID: "T123", Blockers: []string{"x"}},
		{ID: "sum-1", TeamID: "T123", Blockers: []string{"y"}},
	}
	app := newBlockersApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/blockers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Summaries []models.Summary `json:"summaries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Summaries, 2)
	assert.Equal(t, "sum-2", out.Summaries[0].ID)
}
