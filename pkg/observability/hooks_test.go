package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCycleHooks{}
	c.OnConstructStart(ctx, 5)
	c.OnConstructComplete(ctx, 5, 120, time.Millisecond, nil)
	c.OnVerifyStart(ctx, 5, "lehmer")
	c.OnVerifyComplete(ctx, 5, "lehmer", true, time.Millisecond, nil)

	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "cycle")
	k.OnCacheMiss(ctx, "cycle")
	k.OnCacheSet(ctx, "cycle", 120)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "id", "GET", "/v1/cycles/{n}")
	h.OnResponse(ctx, "id", "GET", "/v1/cycles/{n}", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Cycle().(NoopCycleHooks); !ok {
		t.Error("Cycle() should return NoopCycleHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCycle := &testCycleHooks{}
	SetCycleHooks(customCycle)
	if Cycle() != customCycle {
		t.Error("SetCycleHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Cycle().(NoopCycleHooks); !ok {
		t.Error("Reset() should restore NoopCycleHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testCycleHooks{}
	SetCycleHooks(custom)
	SetCycleHooks(nil)

	if Cycle() != custom {
		t.Error("SetCycleHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnConstructComplete(ctx, 4, 24, time.Millisecond, nil)
	h.OnConstructComplete(ctx, 30, 0, 0, errors.New("out of range"))
	h.OnCacheHit(ctx, "cycle")
	h.OnResponse(ctx, "abc", "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"construct done", "length=24", "construct failed", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testCycleHooks struct{ NoopCycleHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
