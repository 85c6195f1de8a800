package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSearchHooks{}
	s.OnSearchStart(ctx, "id", `"parser"+in:name`)
	s.OnEnrichComplete(ctx, "id", "https://api.github.com/repos/a/b/languages", time.Second, nil)
	s.OnSearchComplete(ctx, "id", 10, time.Second, errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	if Search() != custom {
		t.Error("SetSearchHooks should set custom hooks")
	}

	SetSearchHooks(nil)
	if Search() != custom {
		t.Error("SetSearchHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)

	ctx := context.Background()
	Search().OnSearchStart(ctx, "abc", "q")
	Search().OnSearchComplete(ctx, "abc", 3, time.Millisecond, nil)

	if custom.started != "abc" {
		t.Errorf("started = %q, want %q", custom.started, "abc")
	}
	if custom.results != 3 {
		t.Errorf("results = %d, want 3", custom.results)
	}
}

type testSearchHooks struct {
	started string
	results int
}

func (h *testSearchHooks) OnSearchStart(_ context.Context, id, _ string) { h.started = id }
func (h *testSearchHooks) OnEnrichComplete(context.Context, string, string, time.Duration, error) {
}
func (h *testSearchHooks) OnSearchComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.results = n
}
