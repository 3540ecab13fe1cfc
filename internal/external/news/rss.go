package news

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/wonny/swingtrader/internal/contracts"
)

// FetchRSS fetches up to max items of one feed
func (f *Fetcher) FetchRSS(ctx context.Context, feedURL string, max int) ([]contracts.Article, error) {
	if max <= 0 {
		return []contracts.Article{}, nil
	}

	body, err := f.httpClient.GetBody(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	articles, err := parseFeed(body, max)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}
	return articles, nil
}

// parseFeed handles RSS 0.9x/1.0 (RDF)/2.0 and Atom, declared charsets included
func parseFeed(body []byte, max int) ([]contracts.Article, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = "RSS Feed"
	}

	articles := make([]contracts.Article, 0, max)
	for _, item := range feed.Items {
		if len(articles) >= max {
			break
		}
		articles = append(articles, contracts.Article{
			Title:       stripHTML(item.Title),
			Description: stripHTML(item.Description),
			URL:         strings.TrimSpace(item.Link),
			Source:      source,
			PublishedAt: publishedAt(item),
			Content:     stripHTML(item.Content),
		})
	}

	return articles, nil
}

// stripHTML reduces markup in feed fields to plain text
func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// publishedAt prefers the publish date, then the update date
func publishedAt(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}
