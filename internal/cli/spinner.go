package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/metro/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates on a terminal line while the pipeline runs. It receives
// pipeline hooks and shows the stage currently running.
type Spinner struct {
	observability.NoopPipelineHooks

	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	stage string
	width int // widest line drawn, for clearing
	once  sync.Once
}

// newSpinner creates a spinner that stops when ctx is cancelled.
func newSpinner(ctx context.Context, w io.Writer, stage string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:      w,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		stage:  stage,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Stage returns the stage text currently shown.
func (s *Spinner) Stage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

func (s *Spinner) setStage(format string, args ...any) {
	s.mu.Lock()
	s.stage = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(s.stage)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.stage))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

func (s *Spinner) OnDecodeStart(_ context.Context, format string) {
	s.setStage("Decoding %s script...", format)
}

func (s *Spinner) OnLayoutStart(_ context.Context, collapse string, events int) {
	s.setStage("Laying out %d events (%s)...", events, collapse)
}

func (s *Spinner) OnRenderStart(_ context.Context, formats []string) {
	s.setStage("Rendering %s...", strings.Join(formats, ", "))
}

// teeHooks forwards pipeline hooks to several receivers in order.
type teeHooks []observability.PipelineHooks

func (t teeHooks) OnDecodeStart(ctx context.Context, format string) {
	for _, h := range t {
		h.OnDecodeStart(ctx, format)
	}
}

func (t teeHooks) OnDecodeComplete(ctx context.Context, format string, events int, d time.Duration, err error) {
	for _, h := range t {
		h.OnDecodeComplete(ctx, format, events, d, err)
	}
}

func (t teeHooks) OnLayoutStart(ctx context.Context, collapse string, events int) {
	for _, h := range t {
		h.OnLayoutStart(ctx, collapse, events)
	}
}

func (t teeHooks) OnLayoutComplete(ctx context.Context, collapse string, rows int, d time.Duration, err error) {
	for _, h := range t {
		h.OnLayoutComplete(ctx, collapse, rows, d, err)
	}
}

func (t teeHooks) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range t {
		h.OnRenderStart(ctx, formats)
	}
}

func (t teeHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range t {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}

// withSpinner runs fn with s receiving pipeline hooks alongside the hooks
// already registered.
func withSpinner(s *Spinner, fn func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(teeHooks{prev, s})
	defer observability.SetPipelineHooks(prev)

	s.Start()
	defer s.Stop()
	fn()
}
