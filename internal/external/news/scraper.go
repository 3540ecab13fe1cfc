package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
)

// DefaultMoneycontrolURL hosts the per-company tag pages
const DefaultMoneycontrolURL = "https://www.moneycontrol.com"

// Scraper reads company headlines from Moneycontrol tag pages
type Scraper struct {
	baseURL string
	timeout time.Duration
	logger  *logger.Logger
}

// NewScraper creates a tag-page scraper
func NewScraper(baseURL string, timeout time.Duration, log *logger.Logger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultMoneycontrolURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scraper{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout, logger: log}
}

// TagURL returns the tag page for a company ("Tata Motors" → /news/tags/tata-motors.html)
func (s *Scraper) TagURL(companyName string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(companyName), "-"))
	return fmt.Sprintf("%s/news/tags/%s.html", s.baseURL, slug)
}

// Scrape collects up to max headlines for companyName
func (s *Scraper) Scrape(ctx context.Context, companyName string, max int) ([]contracts.Article, error) {
	articles := []contracts.Article{}
	if max <= 0 || strings.TrimSpace(companyName) == "" {
		return articles, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.UserAgent(httputil.DefaultUserAgent),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	c.OnHTML("li.clearfix", func(e *colly.HTMLElement) {
		if len(articles) >= max {
			return
		}

		title := strings.TrimSpace(e.ChildText("h2 a, h3 a"))
		if title == "" {
			return
		}

		link := e.Request.AbsoluteURL(e.ChildAttr("h2 a, h3 a", "href"))

		articles = append(articles, contracts.Article{
			Title:       title,
			Description: strings.TrimSpace(e.ChildText("p")),
			URL:         link,
			Source:      "Moneycontrol",
		})
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("scrape %s: status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	target := s.TagURL(companyName)
	if err := c.Visit(target); err != nil && scrapeErr == nil {
		scrapeErr = fmt.Errorf("visit %s: %w", target, err)
	}
	c.Wait()

	if scrapeErr != nil {
		return articles, scrapeErr
	}

	s.logger.WithFields(map[string]interface{}{
		"company":  companyName,
		"articles": len(articles),
	}).Debug("Scraped company news")

	return articles, nil
}
