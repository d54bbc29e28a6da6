package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/coldmail/internal/config"
)

func newDownloadServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"No email has been generated yet."}`))
			return
		}
		w.Write([]byte(`{"email":"Hi John"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newDownloadConfig(t *testing.T, serverURL string) (*config.Config, string) {
	t.Helper()
	t.Setenv("COLDMAIL_HOME", t.TempDir())
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.SetServerURL(serverURL)
	cfg.SetDownloadDir(dir)
	return cfg, dir
}

func TestDownloadResumesSavedSession(t *testing.T) {
	srv := newDownloadServer(t)
	cfg, dir := newDownloadConfig(t, srv.URL)
	require.NoError(t, config.SaveSession(srv.URL, []*http.Cookie{{Name: "session", Value: "abc"}}))

	path, err := downloadLastEmail(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cold_email.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi John", string(data))
}

func TestDownloadWithoutSessionFails(t *testing.T) {
	srv := newDownloadServer(t)
	cfg, dir := newDownloadConfig(t, srv.URL)

	_, err := downloadLastEmail(context.Background(), cfg)
	assert.ErrorContains(t, err, "no conversation")

	_, err = os.Stat(filepath.Join(dir, "cold_email.txt"))
	assert.True(t, os.IsNotExist(err))
}
