package datasource_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"source-manager/core/settings"
	"source-manager/core/volume"
	"source-manager/feature/datasource"
	"source-manager/feature/datasource/models"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *datasource.Manager, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/media/usb/LB/Data", 0755))
	require.NoError(t, afero.WriteFile(fsys, "/media/usb/LB/Data/Platforms.xml", []byte("<x/>"), 0644))
	require.NoError(t, fsys.MkdirAll("/media/usb/Empty", 0755))

	store, err := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.yml"))
	require.NoError(t, err)

	cfg := volume.Config{DocumentName: "RetroPass.xml", MarkerDepth: 8}
	manager := datasource.NewManager(fsys, volume.StaticScanner{Mounts: []string{"/media/usb"}}, store, cfg, zap.NewNop())

	app := fiber.New()
	feature := datasource.NewFeature(manager)
	assert.Equal(t, "datasource", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, manager, fsys
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandler_AddFlow(t *testing.T) {
	app, manager, fsys := setupApp(t)

	status, body := do(t, app, "POST", "/datasources/validate", `{"path":"/media/usb/LB"}`)
	require.Equal(t, fiber.StatusOK, status)
	var report models.ValidationReport
	require.NoError(t, json.Unmarshal(body, &report))
	require.NotNil(t, report.Candidate)
	assert.Equal(t, "LB", report.Candidate.Name())

	status, _ = do(t, app, "POST", "/datasources", `{"path":"/media/usb/LB"}`)
	assert.Equal(t, fiber.StatusCreated, status)

	exists, err := afero.Exists(fsys, "/media/usb/RetroPass.xml")
	require.NoError(t, err)
	assert.True(t, exists)

	// Second add hits advisory issues.
	status, body = do(t, app, "POST", "/datasources", `{"path":"/media/usb/LB"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, string(body), string(models.IssueDuplicatePath))

	status, _ = do(t, app, "POST", "/datasources", `{"path":"/media/usb/Empty","force":true}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = do(t, app, "POST", "/datasources", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, "GET", "/datasources", "")
	require.Equal(t, fiber.StatusOK, status)
	var list []models.DataSource
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusInactive, list[0].Status)
	assert.Len(t, manager.DataSources(), 1)
}

func TestHandler_StatusFlow(t *testing.T) {
	app, manager, _ := setupApp(t)
	report := manager.Validate(context.Background(), "/media/usb/LB")
	require.NotNil(t, report.Candidate)
	require.NoError(t, manager.AddDataSource(context.Background(), *report.Candidate))

	status, body := do(t, app, "PUT", "/datasources/LB/status", `{"status":"active"}`)
	require.Equal(t, fiber.StatusOK, status)
	var ds models.DataSource
	require.NoError(t, json.Unmarshal(body, &ds))
	assert.Equal(t, models.StatusActive, ds.Status)

	status, body = do(t, app, "GET", "/datasources/active", "")
	require.Equal(t, fiber.StatusOK, status)
	var active []models.DataSource
	require.NoError(t, json.Unmarshal(body, &active))
	assert.Len(t, active, 1)

	status, _ = do(t, app, "PUT", "/datasources/LB/status", `{"status":"sleeping"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "PUT", "/datasources/Missing/status", `{"status":"active"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, "PUT", "/datasources/LB/status", `{"status":"unavailable"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, body = do(t, app, "DELETE", "/datasources/unavailable", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"removed":1}`, string(body))
	assert.False(t, manager.HasDataSources())

	// The volume document still lists it, so a scan brings it back inactive.
	status, body = do(t, app, "POST", "/datasources/scan", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"changed":1`)
	got, ok := manager.Get("LB")
	require.True(t, ok)
	assert.Equal(t, models.StatusInactive, got.Status)
}
