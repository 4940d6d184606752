package crawler

import (
	"context"
	"runtime/debug"

	"github.com/BenjaminSRussell/siteaudit/internal/logging"
	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
)

// visitSafely wraps visit with panic recovery. A panicking or failing page
// is abandoned: it is never recorded and never queued again.
func (s *Session) visitSafely(ctx context.Context, page renderer.Page, u string, audit bool) {
	defer func() {
		if r := recover(); r != nil {
			s.stats.Panics++
			logging.Emitf(s.sink, "[PANIC] URL: %s, Error: %v", u, r)
			logging.Emitf(s.sink, "[PANIC] Stack trace:\n%s", debug.Stack())
			s.abandon(u)
		}
	}()

	if err := s.visit(ctx, page, u, audit); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Emitf(s.sink, "Visit failed (%s): %v", u, err)
		s.abandon(u)
	}
}

func (s *Session) abandon(u string) {
	s.failed[u] = struct{}{}
	s.stats.Errors++
}
