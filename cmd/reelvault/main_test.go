package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelvault/internal/catalog"
	"reelvault/internal/envelope"
)

const testPassphrase = "open sesame"

type cliTestEnv struct {
	configPath string
	blobPath   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		blobPath:   filepath.Join(base, "library.enc"),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer catalog-key" {
			t.Errorf("Authorization = %q, want bearer catalog-key", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		link := r.PostForm.Get("link")
		json.NewEncoder(w).Encode(map[string]any{
			"filename": "stream.mkv",
			"download": link + "?direct",
		})
	}))
	t.Cleanup(server.Close)

	cat := catalog.Catalog{
		Version: 1,
		Updated: "2026-08-01T00:00:00Z",
		RDKey:   "catalog-key",
		Items: []catalog.Item{
			{
				ID:       "m1",
				Filename: "Heat.1995.1080p.BluRay.mkv",
				Title:    "Heat",
				Type:     catalog.TypeMovie,
				Year:     1995,
				Size:     9 << 30,
				Added:    "2024-02-01T10:00:00.000Z",
				Links:    []string{"https://real-debrid.example/raw/A"},
				TMDB:     &catalog.Metadata{Rating: 7.9, Genres: []string{"Action", "Crime"}},
			},
			{
				ID:       "p2",
				Filename: "Severance.S01.COMPLETE.1080p.WEB.mkv",
				Title:    "Severance",
				Type:     catalog.TypeTV,
				Season:   1,
				Size:     40 << 30,
				Added:    "2024-03-01T10:00:00.000Z",
				Links:    []string{"https://real-debrid.example/raw/B1", "https://real-debrid.example/raw/B2"},
				IsPack:   true,
				Episodes: []catalog.Episode{
					{Filename: "Severance.S01E01.1080p.mkv", Season: 1, Episode: 1, Size: 20 << 30},
					{Filename: "Severance.S01E02.1080p.mkv", Season: 1, Episode: 2, Size: 20 << 30},
				},
			},
		},
	}
	plaintext, err := json.Marshal(cat)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	sealed, err := envelope.Seal(string(plaintext), testPassphrase)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(sealed)
	if err := os.WriteFile(env.blobPath, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}

	content := fmt.Sprintf(`[library]
url = %q
session_path = %q

[debrid]
base_url = %q

[logging]
level = "error"
`, env.blobPath, filepath.Join(base, "session"), server.URL)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLISessionLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("REELVAULT_PASSPHRASE", testPassphrase)

	out, _, err := runCLI(t, env.configPath, "login")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Unlocked catalog: 2 items") {
		t.Fatalf("unexpected login output: %q", out)
	}

	// Later invocations resume from the saved session.
	out, _, err = runCLI(t, env.configPath, "search")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Heat (1995)") || !strings.Contains(out, "Severance Season 1") {
		t.Fatalf("search output missing items: %q", out)
	}
	if !strings.Contains(out, "2 items") {
		t.Fatalf("search output missing count: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "search", "--type", "movie")
	if err != nil {
		t.Fatalf("search --type movie: %v", err)
	}
	if !strings.Contains(out, "Heat") || strings.Contains(out, "Severance") {
		t.Fatalf("movie filter not applied: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "search", "runner")
	if err != nil {
		t.Fatalf("search runner: %v", err)
	}
	if !strings.Contains(out, "No matches.") {
		t.Fatalf("expected no matches, got %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "show", "p2")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "S01E01") || !strings.Contains(out, "S01E02") {
		t.Fatalf("show output missing episodes: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out, "Session cleared.") {
		t.Fatalf("unexpected logout output: %q", out)
	}

	_, _, err = runCLI(t, env.configPath, "search")
	if err == nil || !strings.Contains(err.Error(), "login") {
		t.Fatalf("search after logout = %v, want login guidance", err)
	}
}

func TestCLIResolve(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("REELVAULT_PASSPHRASE", testPassphrase)

	if _, _, err := runCLI(t, env.configPath, "login"); err != nil {
		t.Fatalf("login: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "resolve", "m1")
	if err != nil {
		t.Fatalf("resolve movie: %v", err)
	}
	if !strings.Contains(out, "https://real-debrid.example/raw/A?direct") {
		t.Fatalf("unexpected resolve output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "resolve", "p2", "--episode", "S01E02")
	if err != nil {
		t.Fatalf("resolve episode: %v", err)
	}
	if !strings.Contains(out, "https://real-debrid.example/raw/B2?direct") {
		t.Fatalf("unexpected episode resolve output: %q", out)
	}

	_, _, err = runCLI(t, env.configPath, "resolve", "p2")
	if err == nil || !strings.Contains(err.Error(), "season pack") {
		t.Fatalf("resolve pack without episode = %v, want pack guidance", err)
	}

	_, _, err = runCLI(t, env.configPath, "resolve", "p2", "--episode", "S09E09")
	if err == nil || !strings.Contains(err.Error(), "no episode") {
		t.Fatalf("resolve missing episode = %v, want lookup error", err)
	}
}

func TestCLILoginWrongPassphrase(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("REELVAULT_PASSPHRASE", "wrong")

	_, _, err := runCLI(t, env.configPath, "login")
	if err == nil || !strings.Contains(err.Error(), "passphrase rejected") {
		t.Fatalf("login with wrong passphrase = %v", err)
	}
}
