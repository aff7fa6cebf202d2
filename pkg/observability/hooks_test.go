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

	p := NoopPipelineHooks{}
	p.OnAssembleStart(ctx, "stage", 2)
	p.OnAssembleComplete(ctx, "stage", 1, time.Second, nil)
	p.OnRenderStart(ctx, []string{"sch"})
	p.OnRenderComplete(ctx, []string{"sch"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "design")
	c.OnCacheMiss(ctx, "poles")
	c.OnCacheSet(ctx, "design", 1024)

	NoopHTTPHooks{}.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestUseLogger(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	UseLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	ctx := context.Background()
	Pipeline().OnAssembleComplete(ctx, "cascade", 3, time.Millisecond, errors.New("boom"))
	Cache().OnCacheMiss(ctx, "poles")
	HTTP().OnResponse(ctx, "POST", "/v1/designs", 400, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"assemble done", "stages=3", "err=boom", "cache miss", "type=poles", "route=/v1/designs", "status=400"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
