package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/BenjaminSRussell/siteaudit/internal/logging"
	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

// ErrFatalBackend marks failures that end a session before traversal:
// browser launch, opening a page, or reaching the login page.
var ErrFatalBackend = errors.New("fatal browser backend error")

// progressEvery controls how often a progress line is emitted
const progressEvery = 10

// Auditor runs the accessibility engine against the loaded page
type Auditor interface {
	Run(ctx context.Context, page renderer.Page) ([]types.Violation, error)
}

// Session is a single crawl. It drives one page sequentially and is not
// safe for concurrent use; a Session can run once.
type Session struct {
	config   types.Config
	launcher renderer.Launcher
	auditor  Auditor
	sink     logging.Sink

	filter   *Filter
	frontier *Frontier
	mapper   *GNBMapper

	gnb        types.GnbMap
	titles     map[string]string
	audits     []types.AuditResult
	failed     map[string]struct{}
	loginState LoginState
	stats      types.Stats
	started    bool
}

// New creates a session. auditor may be nil for inventory-only crawls and
// sink may be nil to discard messages.
func New(config types.Config, launcher renderer.Launcher, auditor Auditor, sink logging.Sink) (*Session, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if launcher == nil {
		return nil, fmt.Errorf("launcher is required")
	}
	if sink == nil {
		sink = logging.Discard
	}

	filter, err := NewFilter(config.BaseURL, config.ExcludeExtensions)
	if err != nil {
		return nil, err
	}

	start, ok := filter.Normalize(config.BaseURL, "")
	if !ok {
		return nil, fmt.Errorf("invalid base URL %q", config.BaseURL)
	}

	frontier := NewFrontier()
	frontier.Seed(start)

	return &Session{
		config:   config,
		launcher: launcher,
		auditor:  auditor,
		sink:     sink,
		filter:   filter,
		frontier: frontier,
		mapper:   NewGNBMapper(config.BaseURL, filter, sink),
		gnb:      make(types.GnbMap),
		titles:   make(map[string]string),
		audits:   make([]types.AuditResult, 0),
		failed:   make(map[string]struct{}),
	}, nil
}

// Crawl visits every reachable same-host page and returns the inventory in
// visit order. On a fatal backend error the slice is empty and the error
// wraps ErrFatalBackend. On cancellation the pages gathered so far are
// returned with ctx.Err().
func (s *Session) Crawl(ctx context.Context) ([]types.CrawlResult, error) {
	err := s.run(ctx, false)
	if errors.Is(err, ErrFatalBackend) {
		return []types.CrawlResult{}, err
	}

	results := make([]types.CrawlResult, 0, len(s.titles))
	for _, u := range s.frontier.Visited() {
		results = append(results, BuildCrawlResult(u, s.titles[u], s.gnb))
	}

	if err == nil {
		s.sink.Emit("Crawl complete!")
	}
	return results, err
}

// CrawlWithAudit is Crawl with the accessibility engine run on every page
func (s *Session) CrawlWithAudit(ctx context.Context) ([]types.AuditResult, error) {
	if s.auditor == nil {
		return []types.AuditResult{}, fmt.Errorf("%w: no auditor configured", ErrFatalBackend)
	}

	err := s.run(ctx, true)
	if errors.Is(err, ErrFatalBackend) {
		return []types.AuditResult{}, err
	}

	results := make([]types.AuditResult, len(s.audits))
	copy(results, s.audits)

	if err == nil {
		s.sink.Emit("Accessibility audit complete!")
	}
	return results, err
}

// Stats returns the session counters
func (s *Session) Stats() types.Stats {
	stats := s.stats
	stats.Discovered = s.frontier.Discovered()
	return stats
}

// GnbMap returns the navigation labels found before traversal
func (s *Session) GnbMap() types.GnbMap {
	return s.gnb
}

// LoginState returns where the login gate ended
func (s *Session) LoginState() LoginState {
	return s.loginState
}

func (s *Session) fatal(err error) error {
	err = fmt.Errorf("%w: %w", ErrFatalBackend, err)
	logging.Emitf(s.sink, "Fatal error: %v", err)
	return err
}

// run performs login, GNB mapping and the traversal loop
func (s *Session) run(ctx context.Context, audit bool) error {
	if s.started {
		return fmt.Errorf("session already used")
	}
	s.started = true

	browser, err := s.launcher.Launch(ctx)
	if err != nil {
		return s.fatal(fmt.Errorf("failed to launch browser: %w", err))
	}
	defer browser.Close()

	page, err := browser.NewPage(ctx)
	if err != nil {
		return s.fatal(fmt.Errorf("failed to open page: %w", err))
	}

	state, err := NewLoginGate(s.config, s.sink).Run(ctx, page)
	s.loginState = state
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return s.fatal(err)
	}
	s.stats.LoginTimedOut = state == LoginTimedOut

	s.sink.Emit("Analyzing GNB (navigation menu)...")
	s.gnb = s.mapper.Build(ctx, page, s.config.GNBSelector)

	if audit {
		logging.Emitf(s.sink, "Starting accessibility audit crawl: %s", s.config.BaseURL)
	} else {
		logging.Emitf(s.sink, "Starting crawl: %s", s.config.BaseURL)
	}

	for {
		if err := ctx.Err(); err != nil {
			logging.Emitf(s.sink, "Crawl stopped: %v", err)
			return err
		}

		u, ok := s.frontier.Dequeue()
		if !ok {
			break
		}
		if s.frontier.IsVisited(u) {
			continue
		}

		s.visitSafely(ctx, page, u, audit)

		if s.stats.Processed > 0 && s.stats.Processed%progressEvery == 0 {
			logging.Emitf(s.sink, "Discovered: %d | Processed: %d | Errors: %d | Pending: %d",
				s.frontier.Discovered(), s.stats.Processed, s.stats.Errors, s.frontier.Size())
		}
	}

	return nil
}

// visit loads one page, records it and queues its links. A returned error
// abandons the URL without recording it.
func (s *Session) visit(ctx context.Context, page renderer.Page, u string, audit bool) error {
	if audit {
		logging.Emitf(s.sink, "[auditing] %s", u)
	} else {
		logging.Emitf(s.sink, "Visiting: %s", u)
	}

	if err := page.Navigate(ctx, u, s.config.NavigationTimeout); err != nil {
		return err
	}
	if err := page.WaitForLoadState(ctx, renderer.LoadStateDOMContentLoaded, s.config.NavigationTimeout); err != nil {
		return err
	}

	if audit {
		if err := page.WaitForLoadState(ctx, renderer.LoadStateNetworkIdle, s.config.NetworkIdleTimeout); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.sink.Emit("Network idle wait timed out (continuing audit)")
		}
	}

	title, err := page.Title(ctx)
	if err != nil {
		return err
	}

	var result types.AuditResult
	if audit {
		crawled := BuildCrawlResult(u, title, s.gnb)
		violations, err := s.auditor.Run(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Emitf(s.sink, "Audit incomplete for %s: %v", u, err)
			result = types.NewIncompleteAuditResult(crawled, err)
			s.stats.AuditsIncomplete++
		} else {
			result = types.NewAuditResult(crawled, violations)
		}
	}

	for _, link := range s.extractLinks(ctx, page, u) {
		if link == u {
			continue
		}
		if _, failed := s.failed[link]; failed {
			continue
		}
		if !s.frontier.IsVisited(link) {
			s.frontier.EnqueueIfNew(link)
		}
	}

	s.frontier.MarkVisited(u)
	s.titles[u] = title
	if audit {
		s.audits = append(s.audits, result)
	}
	s.stats.Processed++

	// cancellation is picked up by the traversal loop
	_ = sleepCtx(ctx, s.config.PageDelay)
	return nil
}

// extractLinks returns the distinct valid links on the loaded page
func (s *Session) extractLinks(ctx context.Context, page renderer.Page, pageURL string) []string {
	var hrefs []string
	if err := page.Evaluate(ctx, renderer.ScriptAnchorHrefs, &hrefs); err != nil {
		logging.Emitf(s.sink, "Error extracting links: %v", err)
		return nil
	}

	seen := make(map[string]struct{}, len(hrefs))
	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		normalized, ok := s.filter.Normalize(href, pageURL)
		if !ok || !s.filter.Valid(normalized) {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	}
	return links
}
