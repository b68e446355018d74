package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/models"
)

func newFakeAPI(t *testing.T, status int) (*httptest.Server, *models.AnalysisRequest) {
	t.Helper()
	var got models.AnalysisRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.HandleFunc(handlers.APIPrefix+"/analyze", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		w.WriteHeader(status)
		w.Write([]byte(`{"success":true,"match_score":0.5}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestCheckHealth(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK)
	assert.True(t, checkHealth(srv.URL))

	srv.Close()
	assert.False(t, checkHealth(srv.URL))
	assert.False(t, waitForServer(srv.URL, 2, time.Millisecond))
}

func TestPostAnalysis(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK)

	body, err := postAnalysis(srv.URL, models.AnalysisRequest{ResumeText: "resume", JobDescription: "jd"}, time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"match_score":0.5}`, string(body))
	assert.Equal(t, "resume", got.ResumeText)
	assert.Equal(t, "jd", got.JobDescription)
}

func TestPostAnalysisServerError(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusInternalServerError)

	_, err := postAnalysis(srv.URL, models.AnalysisRequest{}, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestReadPayloadAndSaveResult(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"resume_text":"r","job_description":"j"}`), 0o644))

	req, err := readPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisRequest{ResumeText: "r", JobDescription: "j"}, req)

	_, err = readPayload(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	out := filepath.Join(dir, "nested", "results.json")
	pretty, err := saveResult(out, []byte(`{"success":true}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"success\": true\n}", string(pretty))

	saved, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, pretty, saved)
}
