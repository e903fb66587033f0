package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/metro/pkg/observability"
)

// logHooks reports pipeline and cache events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// registerHooks routes pipeline and cache events to the logger.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnDecodeStart(context.Context, string) {}

func (h *logHooks) OnDecodeComplete(_ context.Context, format string, events int, d time.Duration, err error) {
	h.stage("decode", err, "format", format, "events", events, "duration", d)
}

func (h *logHooks) OnLayoutStart(context.Context, string, int) {}

func (h *logHooks) OnLayoutComplete(_ context.Context, collapse string, rows int, d time.Duration, err error) {
	h.stage("layout", err, "collapse", collapse, "rows", rows, "duration", d)
}

func (h *logHooks) OnRenderStart(context.Context, []string) {}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.stage("render", err, "formats", formats, "duration", d)
}

func (h *logHooks) stage(name string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(name+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(name+" done", kv...)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
