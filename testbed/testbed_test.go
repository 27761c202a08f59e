package testbed

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wippyai/checkdenormal/backend"
	"github.com/wippyai/checkdenormal/config"
	"github.com/wippyai/checkdenormal/hostcap"
	"github.com/wippyai/checkdenormal/wasmhost"
)

// kernelWASM imports interflop.mul_double and exports
// kernel(a, b f64) f64 = mul_double(a, b).
var kernelWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	// Type section: (f64, f64) -> f64
	0x01, 0x07, 0x01, 0x60, 0x02, 0x7c, 0x7c, 0x01, 0x7c,
	// Import section: "interflop" "mul_double" func type 0
	0x02, 0x18, 0x01,
	0x09, 0x69, 0x6e, 0x74, 0x65, 0x72, 0x66, 0x6c, 0x6f, 0x70,
	0x0a, 0x6d, 0x75, 0x6c, 0x5f, 0x64, 0x6f, 0x75, 0x62, 0x6c, 0x65,
	0x00, 0x00,
	// Function section: func 1 uses type 0
	0x03, 0x02, 0x01, 0x00,
	// Export section: "kernel" -> func 1
	0x07, 0x0a, 0x01, 0x06, 0x6b, 0x65, 0x72, 0x6e, 0x65, 0x6c, 0x00, 0x01,
	// Code section: local.get 0, local.get 1, call 0
	0x0a, 0x0a, 0x01, 0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x00, 0x0b,
}

// RecordingHandler counts denormal reports from every guest instance.
type RecordingHandler struct {
	count int
	mu    sync.Mutex
}

func (h *RecordingHandler) Report() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
}

func (h *RecordingHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

type host struct {
	backend *backend.Backend
	desc    backend.Descriptor
	handler *RecordingHandler
	rt      *wasmhost.Runtime
}

func newHost(t *testing.T, configYAML string) *host {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "backend.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	file, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	h := &host{handler: &RecordingHandler{}}
	caps := hostcap.Default()
	caps.DenormalHandler = h.handler.Report
	caps.Getenv = func(string) (string, bool) { return "TRUE", true }
	caps.Panic = func(msg string) { t.Fatalf("fatal: %s", msg) }

	h.backend = backend.New(caps)
	bctx := h.backend.PreInit(nil, nil)
	h.backend.Configure(file.Config, bctx)
	if err := h.backend.CLI(file.Args, bctx); err != nil {
		t.Fatalf("cli: %v", err)
	}
	if file.Mode == config.ModeCheckOnly {
		h.desc = h.backend.InitCheckOnly(bctx)
	} else {
		h.desc = h.backend.InitCompute(bctx)
	}

	h.rt, err = wasmhost.New(ctx, &h.desc)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	t.Cleanup(func() {
		h.rt.Close(ctx)
		h.desc.Finalize(bctx)
	})
	return h
}

func TestKernel_FlushFromConfig(t *testing.T) {
	ctx := context.Background()
	h := newHost(t, "flush_to_zero: false\nmode: compute\nargs: [\"--flush-to-zero\"]\n")

	if !h.desc.Context().FlushToZero {
		t.Fatal("args from config did not enable flush-to-zero")
	}

	mod, err := h.rt.LoadWASM(ctx, kernelWASM)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	defer inst.Close(ctx)

	out, err := inst.Call(ctx, "kernel", 0x1p-600, 0x1p-450)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if out[0] != 0 {
		t.Errorf("kernel = %g, want 0", out[0])
	}
	if n := h.handler.Count(); n != 1 {
		t.Errorf("handler count = %d, want 1", n)
	}

	h.desc.Finalize(h.desc.Context())
	if h.backend.State() != backend.StateFinalized {
		t.Errorf("state = %v, want FINALIZED", h.backend.State())
	}
}

func TestKernel_ConcurrentInstances(t *testing.T) {
	ctx := context.Background()
	h := newHost(t, "flush_to_zero: false\n")

	mod, err := h.rt.LoadWASM(ctx, kernelWASM)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	const workers, calls = 8, 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := mod.Instantiate(ctx)
			if err != nil {
				errs <- err
				return
			}
			defer inst.Close(ctx)

			for i := range calls {
				a, b := 0x1p-600, 0x1p-450
				if i%2 == 1 {
					a, b = 3, 7
				}
				if _, err := inst.Call(ctx, "kernel", a, b); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("worker: %v", err)
	}
	if n := h.handler.Count(); n != workers*calls/2 {
		t.Errorf("handler count = %d, want %d", n, workers*calls/2)
	}
}

func TestKernel_CheckOnlyRejectsComputeImport(t *testing.T) {
	h := newHost(t, "mode: check-only\n")

	if _, err := h.rt.LoadWASM(context.Background(), kernelWASM); err == nil {
		t.Fatal("check-only descriptor accepted a compute-signature import")
	}
}
