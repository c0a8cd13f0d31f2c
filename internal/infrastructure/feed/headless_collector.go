package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"lawjobs/internal/domain/job"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

type renderFunc func(ctx context.Context, pageURL, waitFor string) (string, error)

// HeadlessCollector loads a careers portal in headless Chrome, waits for the
// card selector to appear, then reads postings from the rendered DOM.
type HeadlessCollector struct {
	logger  *log.Logger
	timeout time.Duration
	settle  time.Duration
	render  renderFunc
}

func NewHeadlessCollector(logger *log.Logger) *HeadlessCollector {
	h := &HeadlessCollector{logger: logger, timeout: 30 * time.Second, settle: 1500 * time.Millisecond}
	h.render = h.renderChrome
	return h
}

func (h *HeadlessCollector) Fetch(ctx context.Context, src Source) ([]job.Record, error) {
	if h == nil || h.render == nil {
		return nil, errors.New("nil headless collector")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := h.render(ctx, src.URL, src.Selectors.Card)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("[Import] headless render error source=%s err=%v", src.Name, err)
		}
		return nil, fmt.Errorf("render %s: %w", src.Name, err)
	}
	return parseRendered(html, src)
}

func (h *HeadlessCollector) renderChrome(ctx context.Context, pageURL, waitFor string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, h.timeout)
	defer reqCancel()

	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.WaitReady(waitFor, chromedp.ByQuery),
		chromedp.Sleep(h.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

func parseRendered(html string, src Source) ([]job.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered %s: %w", src.Name, err)
	}

	base, _ := url.Parse(src.URL)
	absolute := func(href string) string {
		if base == nil {
			return href
		}
		u, err := base.Parse(href)
		if err != nil {
			return href
		}
		return u.String()
	}

	records := make([]job.Record, 0)
	doc.Find(src.Selectors.Card).Each(func(_ int, card *goquery.Selection) {
		records = append(records, readCard(card, src, absolute))
	})
	return records, nil
}
