// Package feeds retrieves articles from RSS/Atom sources.
//
// Fetches go through a shared rate limiter so a sweep over many feeds does
// not hammer the upstream hosts. When a feed is flagged full_content, each
// article page is fetched and run through readability to replace the usual
// RSS summary.
package feeds

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/logger"

	"codeberg.org/readeck/go-readability/v2"
)

const (
	userAgent       = "vigie/1.0 (+https://github.com/vigie-app/vigie)"
	maxContentRunes = 10000
	pageFetchTries  = 2
)

type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	group    singleflight.Group
	parallel int
}

type NewFetcherParams struct {
	Timeout time.Duration
	// MinDelay spaces successive HTTP requests across all feeds.
	MinDelay time.Duration
	// Parallel bounds concurrent article-page fetches for full_content feeds.
	Parallel int
}

func NewFetcher(params NewFetcherParams) *Fetcher {
	if params.Timeout <= 0 {
		params.Timeout = 20 * time.Second
	}
	if params.MinDelay <= 0 {
		params.MinDelay = 500 * time.Millisecond
	}
	if params.Parallel <= 0 {
		params.Parallel = 4
	}
	return &Fetcher{
		client:   &http.Client{Timeout: params.Timeout},
		limiter:  rate.NewLimiter(rate.Every(params.MinDelay), 1),
		parallel: params.Parallel,
	}
}

type FetchedArticle struct {
	ID          string
	Title       string
	Content     string
	Link        string
	Source      string
	PublishedAt time.Time
}

// FetchFeed downloads and parses one feed. Returned articles carry
// deterministic IDs so a refetch yields the same rows.
func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string, fullContent bool) ([]FetchedArticle, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	parser := gofeed.NewParser()
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		if u, err := url.Parse(feedURL); err == nil {
			source = u.Host
		}
	}

	now := time.Now()
	articles := make([]FetchedArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" && item.Link == "" {
			continue
		}
		articles = append(articles, convertItem(item, source, now))
	}

	if fullContent {
		f.loadFullContent(ctx, articles)
	}

	return articles, nil
}

func (f *Fetcher) loadFullContent(ctx context.Context, articles []FetchedArticle) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.parallel)

	for i := range articles {
		g.Go(func() error {
			link := articles[i].Link
			if link == "" {
				return nil
			}
			text, err := util.RetryWithContext(gctx, pageFetchTries, func(ctx context.Context) (string, error) {
				return f.readablePage(ctx, link)
			})
			if err != nil {
				logger.Warn("[Feeds] Falling back to feed summary", "link", link, "err", err)
				return nil
			}
			if text != "" {
				articles[i].Content = util.TruncateRunes(text, maxContentRunes)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// readablePage fetches an article page and extracts its main text.
// Concurrent requests for the same link are collapsed.
func (f *Fetcher) readablePage(ctx context.Context, link string) (string, error) {
	result, err, _ := f.group.Do(link, func() (any, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
		}

		pageURL, err := url.Parse(link)
		if err != nil {
			return "", fmt.Errorf("failed to parse url: %w", err)
		}
		article, err := readability.FromReader(resp.Body, pageURL)
		if err != nil {
			return "", fmt.Errorf("failed to parse html: %w", err)
		}

		var builder strings.Builder
		if err := article.RenderText(&builder); err != nil {
			return "", fmt.Errorf("failed to render article text: %w", err)
		}

		return util.CollapseWhitespace(builder.String()), nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func convertItem(item *gofeed.Item, source string, fetchTime time.Time) FetchedArticle {
	published := fetchTime
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return FetchedArticle{
		ID:          generateID(item),
		Title:       util.CollapseWhitespace(stripHTML(item.Title)),
		Content:     util.TruncateRunes(util.CollapseWhitespace(stripHTML(summary)), maxContentRunes),
		Link:        item.Link,
		Source:      source,
		PublishedAt: published,
	}
}

// stripHTML flattens markup that feeds embed in titles and descriptions.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// generateID derives a stable ID from the GUID, falling back to the link,
// then to title plus publication time.
func generateID(item *gofeed.Item) string {
	if item.GUID != "" {
		return hashString(item.GUID)
	}
	if item.Link != "" {
		return hashString(item.Link)
	}
	key := item.Title
	if item.PublishedParsed != nil {
		key += item.PublishedParsed.String()
	}
	return hashString(key)
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}
