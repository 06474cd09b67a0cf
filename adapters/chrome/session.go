// adapters/chrome/session.go
// Package chrome adapts the element core to a live Chrome/Chromium page
// driven over the DevTools protocol. DOM nodes are wrapped as elements
// with attributes snapshotted at discovery time; gestures are delivered
// through the CDP input domain; scheduled actions are serialized onto the
// session's CDP run loop.
package chrome

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bootstraponline/droiddriver/internal/config"
	"github.com/bootstraponline/droiddriver/pkg/actions"
	"github.com/bootstraponline/droiddriver/pkg/events"
	"github.com/bootstraponline/droiddriver/pkg/ui"
)

// Session owns one browser tab and the wiring needed to wrap its DOM
// nodes as elements.
type Session struct {
	id     string
	cfg    config.ChromeConfig
	logger *zap.Logger

	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	injector events.Injector
	actor    ui.Actor

	// currentHost is captured at Navigate and snapshotted into elements
	// as their package name.
	currentHost string
}

// NewSession launches (or attaches to) a browser and opens one tab.
func NewSession(parent context.Context, cfg config.Interface, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	chromeCfg := cfg.Chrome()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if chromeCfg.Headless {
		allocOpts = append(allocOpts, chromedp.Headless)
	}
	if chromeCfg.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromeCfg.ExecPath))
	}
	if chromeCfg.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(chromeCfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	id := uuid.NewString()
	s := &Session{
		id:          id,
		cfg:         chromeCfg,
		logger:      logger.Named("chrome").With(zap.String("session_id", id)),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		ctx:         tabCtx,
		cancel:      tabCancel,
	}

	s.injector = events.NewRateLimited(&cdpInjector{
		run:    s.runActions,
		logger: s.logger.Named("injector"),
	}, cfg.Driver().EventRate)
	s.actor = actions.NewEventActor(s.injector, s.logger.Named("actor"))

	// Start the browser eagerly so construction fails fast when no
	// binary is available.
	if err := chromedp.Run(tabCtx); err != nil {
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	s.logger.Info("Browser session started.")
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Close tears down the tab and the browser allocator.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
	s.logger.Info("Browser session closed.")
}

// Navigate loads the given URL and waits for the document to be ready,
// bounded by the configured navigation timeout.
func (s *Session) Navigate(ctx context.Context, rawURL string) error {
	timeout := s.cfg.NavigationTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("Navigating.", zap.String("url", rawURL))
	err := s.runActions(navCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if navCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("navigation to %s timed out after %v: %w", rawURL, timeout, navCtx.Err())
		}
		return fmt.Errorf("navigation failed: %w", err)
	}

	if u, err := url.Parse(rawURL); err == nil {
		s.currentHost = u.Host
	}
	return nil
}

// runActions executes chromedp actions on the session's tab context while
// honoring the caller's operational context.
func (s *Session) runActions(ctx context.Context, acts ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(s.ctx, acts...)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// schedule implements ui.ScheduleFunc for this session: the action runs
// serialized on the tab's CDP run loop, and the caller's wait is bounded
// by the action timeout. A timeout abandons the wait, not the dispatched
// work.
func (s *Session) schedule(ctx context.Context, task *ui.FutureTask, timeout time.Duration) error {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(s.ctx, chromedp.ActionFunc(func(context.Context) error {
			task.Run()
			return nil
		}))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("dispatch to browser run loop: %w", err)
		}
		return nil
	case <-opCtx.Done():
		return opCtx.Err()
	}
}
