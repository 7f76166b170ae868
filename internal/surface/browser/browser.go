package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/surface"
)

// DefaultGameURL is used when the caller supplies no locator.
const DefaultGameURL = "https://playtictactoe.org/"

// cellSelectors are tried in order until one yields a full board. The list
// covers the markup of common tic-tac-toe pages; plain buttons are the last
// resort.
var cellSelectors = []string{
	"button.square",
	"button.cell",
	`[role="gridcell"]`,
	".cell",
	".square",
	"td.cell",
	"td.square",
	"div.cell",
	"div.square",
	"button[data-cell]",
	"button[data-square]",
	"button",
}

// Factory launches a headless browser per acquired session.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger.With("component", "browser")}
}

// Acquire - starts a browser, navigates to the game page and returns the
// session. The browser is torn down by Release.
func (that *Factory) Acquire(ctx context.Context, locator string) (surface.Session, error) {
	if locator == "" {
		locator = DefaultGameURL
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	that.logger.Info("navigating to game page", "url", locator)
	if err := chromedp.Run(browserCtx, chromedp.Navigate(locator), chromedp.WaitReady("body")); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to open %s: %w", locator, err)
	}

	return &session{
		logger:        that.logger,
		ctx:           browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

type session struct {
	logger *slog.Logger

	ctx           context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc

	mu       sync.Mutex
	released bool
}

// cellHandle wraps the DOM node of one board cell.
type cellHandle struct {
	node *cdp.Node
}

// ListCells - finds the nine board cells. Each selector candidate is tried
// in order; the first one matching at least nine elements wins and its first
// nine matches are returned in document order, which the target pages lay
// out row-major.
func (that *session) ListCells(ctx context.Context) ([]surface.CellHandle, error) {
	if err := that.alive(); err != nil {
		return nil, err
	}

	for _, selector := range cellSelectors {
		var nodes []*cdp.Node

		err := that.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
		if err != nil {
			return nil, fmt.Errorf("failed to query %q: %w", selector, err)
		}

		if len(nodes) < entity.CellCount {
			continue
		}

		that.logger.Debug("found board cells", "selector", selector, "count", len(nodes))

		handles := make([]surface.CellHandle, 0, entity.CellCount)
		for _, node := range nodes[:entity.CellCount] {
			handles = append(handles, &cellHandle{node: node})
		}

		return handles, nil
	}

	return nil, nil
}

// ReadCell - returns the cell's inner text, falling back to its aria-label
// when the text is blank.
func (that *session) ReadCell(ctx context.Context, handle surface.CellHandle) (string, error) {
	cell, err := that.unwrap(handle)
	if err != nil {
		return "", err
	}

	var text string
	if err = that.run(ctx, chromedp.Text(cell.node.FullXPath(), &text, chromedp.BySearch)); err != nil {
		return "", fmt.Errorf("failed to read cell text: %w", err)
	}

	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	return cell.node.AttributeValue("aria-label"), nil
}

// Activate - clicks the cell.
func (that *session) Activate(ctx context.Context, handle surface.CellHandle) error {
	cell, err := that.unwrap(handle)
	if err != nil {
		return err
	}

	if err = that.run(ctx, chromedp.MouseClickNode(cell.node)); err != nil {
		return fmt.Errorf("failed to click cell: %w", err)
	}

	return nil
}

// Payload - returns the full rendered page content.
func (that *session) Payload(ctx context.Context) (string, error) {
	if err := that.alive(); err != nil {
		return "", err
	}

	var html string
	if err := that.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	return html, nil
}

// Release - tears down the browser. Safe to call once per session.
func (that *session) Release() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.released {
		return apperror.ErrSessionReleased
	}
	that.released = true

	that.browserCancel()
	that.allocCancel()

	return nil
}

// run - executes chromedp actions on the session's browser context while
// honoring the caller's deadline.
func (that *session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := that.ctx

	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(runCtx, deadline)
		defer cancel()
	}

	return chromedp.Run(runCtx, actions...)
}

func (that *session) unwrap(handle surface.CellHandle) (*cellHandle, error) {
	if err := that.alive(); err != nil {
		return nil, err
	}

	cell, ok := handle.(*cellHandle)
	if !ok {
		return nil, apperror.ErrForeignHandle
	}

	return cell, nil
}

func (that *session) alive() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.released {
		return apperror.ErrSessionReleased
	}

	return nil
}
