package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/contentloom/contentloom/pkg/client"
)

type statusServer struct {
	status  client.SubscriptionStatus
	fail    int32
	block   chan struct{} // when set, handler waits before answering
	entered chan struct{} // when set, signaled once a request arrives
}

func (s *statusServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/subscription/status", func(w http.ResponseWriter, r *http.Request) {
		if s.entered != nil {
			select {
			case s.entered <- struct{}{}:
			default:
			}
		}
		if s.block != nil {
			<-s.block
		}
		if atomic.LoadInt32(&s.fail) != 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeData(w, s.status)
	})
	return mux
}

func expiredStatus() client.SubscriptionStatus {
	return client.SubscriptionStatus{
		IsActive:  false,
		IsExpired: true,
		CanAccess: false,
	}
}

func newPromptFixture(t *testing.T, srv *statusServer) (*client.UpgradePrompt, *client.FileStore) {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	c := client.NewClient(client.Config{BaseURL: ts.URL})
	c.SetToken("test-token")

	store, err := client.NewFileStore(filepath.Join(t.TempDir(), "flags.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return client.NewUpgradePrompt(c, store), store
}

func TestUpgradePrompt_ShowsOncePerSession(t *testing.T) {
	prompt, _ := newPromptFixture(t, &statusServer{status: expiredStatus()})
	ctx := context.Background()

	if d := prompt.Check(ctx, 1); d != client.PromptShow {
		t.Fatalf("first Check() = %s, want SHOW", d)
	}
	if d := prompt.Check(ctx, 1); d != client.PromptNone {
		t.Errorf("second Check() = %s, want NONE", d)
	}
}

func TestUpgradePrompt_NoPromptWithAccess(t *testing.T) {
	prompt, _ := newPromptFixture(t, &statusServer{status: client.SubscriptionStatus{
		IsActive:  true,
		CanAccess: true,
	}})

	if d := prompt.Check(context.Background(), 1); d != client.PromptNone {
		t.Errorf("Check() = %s, want NONE for a team with access", d)
	}
}

func TestUpgradePrompt_RedirectAfterDismissal(t *testing.T) {
	prompt, _ := newPromptFixture(t, &statusServer{status: expiredStatus()})
	ctx := context.Background()

	if d := prompt.Check(ctx, 1); d != client.PromptShow {
		t.Fatalf("Check() = %s, want SHOW", d)
	}
	if err := prompt.Dismiss(1); err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}
	if d := prompt.Check(ctx, 1); d != client.PromptRedirect {
		t.Errorf("Check() after dismissal = %s, want REDIRECT", d)
	}
}

func TestUpgradePrompt_EpochResetOnUserChange(t *testing.T) {
	prompt, store := newPromptFixture(t, &statusServer{status: expiredStatus()})
	ctx := context.Background()

	if d := prompt.Check(ctx, 1); d != client.PromptShow {
		t.Fatalf("Check() = %s, want SHOW", d)
	}
	if err := prompt.Dismiss(1); err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}

	// A different user on the same device gets their own prompt and the
	// previous user's dismissal is cleared.
	if d := prompt.Check(ctx, 2); d != client.PromptShow {
		t.Errorf("Check() for new user = %s, want SHOW", d)
	}
	if _, ok := store.Get("trial_modal_dismissed_1"); ok {
		t.Error("previous user's dismissal flag survived the epoch reset")
	}
}

func TestUpgradePrompt_NetworkFailureIsNoOp(t *testing.T) {
	srv := &statusServer{status: expiredStatus()}
	atomic.StoreInt32(&srv.fail, 1)
	prompt, _ := newPromptFixture(t, srv)
	ctx := context.Background()

	var logged bool
	prompt.Logf = func(format string, v ...interface{}) { logged = true }

	if d := prompt.Check(ctx, 1); d != client.PromptNone {
		t.Fatalf("Check() during outage = %s, want NONE", d)
	}
	if !logged {
		t.Error("expected the failed check to be logged")
	}

	// The next cycle still gets to show the prompt.
	atomic.StoreInt32(&srv.fail, 0)
	if d := prompt.Check(ctx, 1); d != client.PromptShow {
		t.Errorf("Check() after recovery = %s, want SHOW", d)
	}
}

func TestUpgradePrompt_OverlappingCheckSkipped(t *testing.T) {
	srv := &statusServer{
		status:  expiredStatus(),
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	prompt, _ := newPromptFixture(t, srv)
	ctx := context.Background()

	first := make(chan client.PromptDecision, 1)
	go func() { first <- prompt.Check(ctx, 1) }()

	// Wait until the first check is stuck on the network, then the
	// overlapping check must bail out immediately.
	<-srv.entered
	if d := prompt.Check(ctx, 1); d != client.PromptNone {
		t.Errorf("overlapping Check() = %s, want NONE", d)
	}

	close(srv.block)
	if d := <-first; d != client.PromptShow {
		t.Errorf("blocked Check() = %s, want SHOW", d)
	}
}
