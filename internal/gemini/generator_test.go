package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func stubServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			return
		}
		if text == "" {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
			return
		}
		quoted, _ := json.Marshal(text)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + string(quoted) + `}]}}]}`))
	}))
}

func isFallback(comment string) bool {
	for _, fb := range fallbackComments {
		if comment == fb {
			return true
		}
	}
	return false
}

func TestGenerate_ReturnsModelText(t *testing.T) {
	srv := stubServer(t, http.StatusOK, "  What a great walkthrough! 🔥  ")
	defer srv.Close()

	g := NewGeneratorWithBase("test-key", srv.URL, srv.Client())
	got := g.Generate(context.Background(), "Title", "Description", "Be nice")
	if got != "What a great walkthrough! 🔥" {
		t.Errorf("got %q, want trimmed model text", got)
	}
}

func TestGenerate_FallbackOnServerError(t *testing.T) {
	srv := stubServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	g := NewGeneratorWithBase("test-key", srv.URL, srv.Client())
	got := g.Generate(context.Background(), "Title", "", "Be nice")
	if !isFallback(got) {
		t.Errorf("got %q, want one of the fallback comments", got)
	}
}

func TestGenerate_FallbackOnEmptyCandidates(t *testing.T) {
	srv := stubServer(t, http.StatusOK, "")
	defer srv.Close()

	g := NewGeneratorWithBase("test-key", srv.URL, srv.Client())
	got := g.Generate(context.Background(), "Title", "", "Be nice")
	if !isFallback(got) {
		t.Errorf("got %q, want one of the fallback comments", got)
	}
}

func TestGenerate_TruncatesLongComments(t *testing.T) {
	long := strings.Repeat("é", maxCommentLen+50)
	srv := stubServer(t, http.StatusOK, long)
	defer srv.Close()

	g := NewGeneratorWithBase("test-key", srv.URL, srv.Client())
	got := g.Generate(context.Background(), "Title", "", "Be nice")
	if utf8.RuneCountInString(got) != maxCommentLen {
		t.Errorf("rune count = %d, want %d", utf8.RuneCountInString(got), maxCommentLen)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
}

func TestBuildPrompt(t *testing.T) {
	long := strings.Repeat("d", maxDescriptionLen+100)
	prompt := buildPrompt("My Video", long, "Keep it casual")

	if !strings.Contains(prompt, `"My Video"`) {
		t.Error("prompt missing the title")
	}
	if !strings.Contains(prompt, "Keep it casual") {
		t.Error("prompt missing the operator prompt")
	}
	if strings.Contains(prompt, strings.Repeat("d", maxDescriptionLen+1)) {
		t.Error("description not truncated")
	}

	empty := buildPrompt("My Video", "", "Keep it casual")
	if !strings.Contains(empty, "No description available") {
		t.Error("empty description placeholder missing")
	}
}

func TestTestConnection(t *testing.T) {
	up := stubServer(t, http.StatusOK, "Hello")
	defer up.Close()
	g := NewGeneratorWithBase("test-key", up.URL, up.Client())
	if !g.TestConnection(context.Background()) {
		t.Error("expected reachable")
	}

	down := stubServer(t, http.StatusServiceUnavailable, "")
	defer down.Close()
	g = NewGeneratorWithBase("test-key", down.URL, down.Client())
	if g.TestConnection(context.Background()) {
		t.Error("expected unreachable")
	}
}
