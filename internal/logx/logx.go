package logx

import (
	"context"

	"github.com/NexusOnePlus/spacedrive/schema"
	"pkt.systems/pslog"
)

type contextKey int

const (
	tabKey contextKey = iota
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return pslog.Ctx(ctx)
}

// WithTab annotates the context logger with the tab id if present.
func WithTab(ctx context.Context, tabID schema.TabID) pslog.Logger {
	log := Ctx(ctx)
	if tabID == "" {
		return log
	}
	if ctx != nil {
		if current, ok := ctx.Value(tabKey).(schema.TabID); ok && current == tabID {
			return log
		}
	}
	return log.With("tab", tabID)
}

// WithTabFields annotates an existing logger with tab metadata.
func WithTabFields(log pslog.Logger, tab schema.Tab) pslog.Logger {
	if tab.ID != "" {
		log = log.With("tab", tab.ID)
	}
	if tab.SavedPath != "" {
		log = log.With("path", tab.SavedPath)
	}
	return log
}

// ContextWithTab stores the tab marker on the context for log de-duplication.
func ContextWithTab(ctx context.Context, tabID schema.TabID) context.Context {
	if ctx == nil || tabID == "" {
		return ctx
	}
	return context.WithValue(ctx, tabKey, tabID)
}

// ContextWithTabLogger attaches the logger and tab marker to the context.
func ContextWithTabLogger(ctx context.Context, log pslog.Logger, tabID schema.TabID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithTab(ctx, tabID)
}
