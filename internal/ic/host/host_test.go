package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/pkg/principal"
)

type call struct {
	service, method string
	err             error
}

type fakeRecorder struct{ calls []call }

func (f *fakeRecorder) ExternalCall(service, method string, err error) {
	f.calls = append(f.calls, call{service, method, err})
}

func TestCaller(t *testing.T) {
	if !Caller(context.Background()).IsAnonymous() {
		t.Error("missing caller should be anonymous")
	}

	p := principal.MustFromText("ryjl3-tyaaa-aaaaa-aaaba-cai")
	if got := Caller(WithCaller(context.Background(), p)); !got.Equal(p) {
		t.Errorf("Caller() = %s, want %s", got, p)
	}
}

func TestStatic(t *testing.T) {
	ctrl := principal.MustFromText("ryjl3-tyaaa-aaaaa-aaaba-cai")
	rt := &Static{
		ID:          principal.ManagementCanister(),
		Controllers: []principal.Principal{ctrl},
		Clock:       func() uint64 { return 42 },
	}

	if !rt.IsController(ctrl) {
		t.Error("controller not recognized")
	}
	if rt.IsController(principal.Anonymous()) {
		t.Error("anonymous should not be a controller")
	}
	if rt.Time() != 42 {
		t.Errorf("Time() = %d", rt.Time())
	}
	if (&Static{}).Time() == 0 {
		t.Error("wall clock should be non-zero")
	}
}

func TestGate_Records(t *testing.T) {
	rec := &fakeRecorder{}
	g := NewGate(0, 0, rec)
	boom := errors.New("boom")

	if err := g.Call(context.Background(), "ledger", "transfer", func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := g.Call(context.Background(), "ledger", "transfer", func(context.Context) error { return boom }); err != boom {
		t.Errorf("Call() = %v, want boom", err)
	}

	if len(rec.calls) != 2 || rec.calls[0].err != nil || rec.calls[1].err != boom {
		t.Errorf("recorded = %+v", rec.calls)
	}
}

func TestGate_CancelledWait(t *testing.T) {
	rec := &fakeRecorder{}
	g := NewGate(0.001, 1, rec)

	// Consume the only token.
	g.Call(context.Background(), "cmc", "rate", func(context.Context) error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ran := false
	err := g.Call(ctx, "cmc", "rate", func(context.Context) error { ran = true; return nil })
	if ran {
		t.Error("fn ran without a slot")
	}
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("Call() = %v, want ServiceUnavailable", err)
	}
	if len(rec.calls) != 2 || rec.calls[1].err == nil {
		t.Errorf("recorded = %+v", rec.calls)
	}
}
