package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger. The CLI installs it under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnConstructStart(_ context.Context, n int) {
	h.Logger.Debug("construct start", "n", n)
}

func (h *LogHooks) OnConstructComplete(_ context.Context, n, length int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("construct failed", "n", n, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("construct done", "n", n, "length", length, "duration", d)
}

func (h *LogHooks) OnVerifyStart(_ context.Context, n int, strategy string) {
	h.Logger.Debug("verify start", "n", n, "strategy", strategy)
}

func (h *LogHooks) OnVerifyComplete(_ context.Context, n int, strategy string, valid bool, d time.Duration, err error) {
	h.Logger.Debug("verify done", "n", n, "strategy", strategy, "valid", valid, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, route string) {
	h.Logger.Debug("request", "id", id, "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "id", id, "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ CycleHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
