package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/entity"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

func newTestServer(t *testing.T) *StatusServer {
	t.Helper()

	w, err := world.NewWorld(world.Params{
		Title:         "test",
		Seed:          "abc",
		Player:        entity.NewPlayer(vec.Vec3F{}),
		ViewDistanceX: 2,
		ViewDistanceZ: 2,
		TickInterval:  time.Millisecond,
	})
	require.NoError(t, err)

	return NewStatusServer(w, 0)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	server.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "test", body["world"])
	assert.Equal(t, "abc", body["seed"])
	assert.Equal(t, "stopped", body["state"])
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	// Хотя бы одна операция с кешем, чтобы метрики движка появились в регистре
	server.world.Cache().LoadOrCreate(vec.Vec2{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "world_chunk", "Метрики движка должны экспортироваться")
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	server.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
