package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/suPer8Hu/chatrelay/internal/chat"
	"github.com/suPer8Hu/chatrelay/internal/store"
	"github.com/suPer8Hu/chatrelay/internal/webhook"
)

type fixture struct {
	svc      *Service
	webhooks *webhook.Registry
	chats    *chat.Registry
}

func newFixture(t *testing.T, timeout time.Duration) *fixture {
	t.Helper()
	s := store.New(store.NewFileBackend(t.TempDir()))
	f := &fixture{webhooks: webhook.NewRegistry(s), chats: chat.NewRegistry(s)}
	f.svc = NewService(f.webhooks, f.chats, NewClient(timeout))
	return f
}

func TestSend_PostsEnvelopeAndReturnsReply(t *testing.T) {
	var got Envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"reply":"hi there"}`))
	}))
	defer srv.Close()

	f := newFixture(t, time.Second)
	ctx := context.Background()
	if _, err := f.webhooks.Create(ctx, "main", srv.URL); err != nil {
		t.Fatal(err)
	}
	c, _ := f.chats.Create(ctx, "u1", "t")

	reply, err := f.svc.Send(ctx, Request{
		UserID: "u1", Username: "alice", ChatID: c.ID, SessionID: c.SessionID, Message: "hello",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("unexpected reply %q", reply)
	}
	want := Envelope{UserMessage: "hello", SessionID: c.SessionID, Username: "alice"}
	if got != want {
		t.Fatalf("envelope: got %+v, want %+v", got, want)
	}

	after, _ := f.chats.GetByID(ctx, c.ID)
	if !after.UpdatedAt.After(c.UpdatedAt) {
		t.Fatalf("chat not touched")
	}
}

func TestSend_UsesExplicitWebhook(t *testing.T) {
	hit := ""
	mk := func(name string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit = name
			_, _ = w.Write([]byte(`{"reply":"` + name + `"}`))
		}))
	}
	first, second := mk("first"), mk("second")
	defer first.Close()
	defer second.Close()

	f := newFixture(t, time.Second)
	ctx := context.Background()
	_, _ = f.webhooks.Create(ctx, "first", first.URL)
	w2, _ := f.webhooks.Create(ctx, "second", second.URL)

	if _, err := f.svc.Send(ctx, Request{Message: "m"}); err != nil || hit != "first" {
		t.Fatalf("default webhook: hit=%q err=%v", hit, err)
	}
	if _, err := f.svc.Send(ctx, Request{Message: "m", WebhookID: w2.ID}); err != nil || hit != "second" {
		t.Fatalf("explicit webhook: hit=%q err=%v", hit, err)
	}
}

func TestSend_ResolutionErrors(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()

	if _, err := f.svc.Send(ctx, Request{Message: "m"}); !errors.Is(err, ErrNoWebhook) {
		t.Fatalf("expected ErrNoWebhook, got %v", err)
	}
	_, _ = f.webhooks.Create(ctx, "x", "http://127.0.0.1:1")
	if _, err := f.svc.Send(ctx, Request{Message: "m", WebhookID: "nope"}); !errors.Is(err, ErrWebhookNotFound) {
		t.Fatalf("expected ErrWebhookNotFound, got %v", err)
	}
}

func TestSend_UpstreamFailures(t *testing.T) {
	cases := []struct {
		name        string
		handler     http.HandlerFunc
		wantTimeout bool
		wantMissing bool
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
		{
			name: "missing reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"output":"x"}`))
			},
			wantMissing: true,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			},
			wantTimeout: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			f := newFixture(t, 200*time.Millisecond)
			ctx := context.Background()
			_, _ = f.webhooks.Create(ctx, "x", srv.URL)

			_, err := f.svc.Send(ctx, Request{Message: "m"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantMissing {
				if !errors.Is(err, ErrMissingReply) {
					t.Fatalf("expected ErrMissingReply, got %v", err)
				}
				return
			}
			var ue *UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *UpstreamError, got %T %v", err, err)
			}
			if ue.Timeout != tc.wantTimeout {
				t.Fatalf("timeout=%v, want %v (err=%v)", ue.Timeout, tc.wantTimeout, err)
			}
		})
	}
}

func TestClient_NonStringReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reply":{"text":"structured"}}`))
	}))
	defer srv.Close()

	reply, err := NewClient(time.Second).Post(context.Background(), srv.URL, Envelope{})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if reply != `{"text":"structured"}` {
		t.Fatalf("unexpected reply %q", reply)
	}
}
