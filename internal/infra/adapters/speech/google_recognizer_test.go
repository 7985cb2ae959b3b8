package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"telegram-ai-companion/internal/domain"
)

func TestGoogleRecognizer_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") != "ru-RU" {
			t.Errorf("unexpected lang query: %s", r.URL.Query().Get("lang"))
		}
		w.Write([]byte("{\"result\":[]}\n"))
		w.Write([]byte(`{"result":[{"alternative":[{"transcript":"привет мир","confidence":0.93}],"final":true}],"result_index":0}`))
	}))
	defer srv.Close()

	g := NewGoogleRecognizer(srv.URL, "test-key", "ru-RU")
	text, err := g.Transcribe(context.Background(), []byte("pcm-bytes"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if text != "привет мир" {
		t.Errorf("unexpected transcript %q", text)
	}
}

func TestGoogleRecognizer_NotUnderstood(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\"result\":[]}\n"))
	}))
	defer srv.Close()

	g := NewGoogleRecognizer(srv.URL, "test-key", "ru-RU")
	_, err := g.Transcribe(context.Background(), []byte("pcm-bytes"))
	if !errors.Is(err, domain.ErrSpeechNotUnderstood) {
		t.Fatalf("expected ErrSpeechNotUnderstood, got: %v", err)
	}
}

func TestGoogleRecognizer_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGoogleRecognizer(srv.URL, "test-key", "ru-RU")
	_, err := g.Transcribe(context.Background(), []byte("pcm-bytes"))
	if !errors.Is(err, domain.ErrSpeechServiceUnavailable) {
		t.Fatalf("expected ErrSpeechServiceUnavailable, got: %v", err)
	}
}

func TestGoogleRecognizer_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed on purpose

	g := NewGoogleRecognizer(srv.URL, "test-key", "ru-RU")
	_, err := g.Transcribe(context.Background(), []byte("pcm-bytes"))
	if !errors.Is(err, domain.ErrSpeechServiceUnavailable) {
		t.Fatalf("expected ErrSpeechServiceUnavailable, got: %v", err)
	}
}
