package feed

import (
	"context"
	"errors"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"lawjobs/internal/domain/job"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const userAgent = "LawJobsImporter/1.0"

// HTMLCollector scrapes a single listing page with colly, reading one record
// per element matched by the source's card selector.
type HTMLCollector struct {
	logger *log.Logger
	delay  time.Duration
}

func NewHTMLCollector(logger *log.Logger) *HTMLCollector {
	return &HTMLCollector{logger: logger, delay: 400 * time.Millisecond}
}

func (h *HTMLCollector) Fetch(ctx context.Context, src Source) ([]job.Record, error) {
	if h == nil {
		return nil, errors.New("nil html collector")
	}

	var c *colly.Collector
	if allowed := hostFromURL(src.URL); allowed == "" {
		c = colly.NewCollector(colly.UserAgent(userAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(userAgent), colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: h.delay})
	c.SetRequestTimeout(20 * time.Second)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	records := make([]job.Record, 0)
	c.OnHTML(src.Selectors.Card, func(e *colly.HTMLElement) {
		records = append(records, readCard(e.DOM, src, e.Request.AbsoluteURL))
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
		if h.logger != nil {
			h.logger.Printf("[Import] html fetch error source=%s status=%d err=%v", src.Name, r.StatusCode, err)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(src.URL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// readCard maps one posting card to a record. Static and rendered pages share it.
func readCard(card *goquery.Selection, src Source, absolute func(string) string) job.Record {
	sel := src.Selectors
	rec := job.Record{
		Title:               childText(card, sel.Title),
		FirmName:            childText(card, sel.Firm),
		Location:            childText(card, sel.Location),
		AreaOfLaw:           childText(card, sel.AreaOfLaw),
		ApplicationDeadline: childText(card, sel.Deadline),
		Description:         childText(card, sel.Description),
	}
	if rec.FirmName == "" {
		rec.FirmName = src.Firm
	}
	if strings.TrimSpace(sel.Link) != "" {
		href, _ := card.Find(sel.Link).First().Attr("href")
		if href = strings.TrimSpace(href); href != "" {
			rec.URL = absolute(href)
		}
	}
	return rec
}

func childText(card *goquery.Selection, selector string) string {
	if strings.TrimSpace(selector) == "" {
		return ""
	}
	return strings.TrimSpace(card.Find(selector).First().Text())
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// Router picks the fetcher for a source kind.
type Router struct {
	JSON     Fetcher
	HTML     Fetcher
	Headless Fetcher
}

func (r Router) Fetch(ctx context.Context, src Source) ([]job.Record, error) {
	switch src.Kind {
	case KindJSON:
		if r.JSON == nil {
			return nil, errors.New("json fetcher not configured")
		}
		return r.JSON.Fetch(ctx, src)
	case KindHTML:
		if r.HTML == nil {
			return nil, errors.New("html fetcher not configured")
		}
		return r.HTML.Fetch(ctx, src)
	case KindHeadless:
		if r.Headless == nil {
			return nil, errors.New("headless fetcher not configured")
		}
		return r.Headless.Fetch(ctx, src)
	default:
		return nil, ErrInvalidSource
	}
}
