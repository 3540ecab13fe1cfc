package news

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

// DefaultGlobalFeeds are the global market RSS feeds
var DefaultGlobalFeeds = []string{
	"https://feeds.finance.yahoo.com/rss/2.0/headline?s=%5EGSPC&region=US&lang=en-US",
	"https://feeds.finance.yahoo.com/rss/2.0/headline?s=%5EDJI&region=US&lang=en-US",
	"http://feeds.marketwatch.com/marketwatch/marketpulse/",
	"https://www.cnbc.com/id/100003114/device/rss/rss.html",
	"https://feeds.bbci.co.uk/news/business/rss.xml",
}

// DefaultIndianFeeds are the Indian market RSS feeds
var DefaultIndianFeeds = []string{
	"https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms",
	"https://economictimes.indiatimes.com/markets/stocks/rssfeeds/2146842.cms",
	"https://www.moneycontrol.com/rss/marketreports.xml",
	"https://www.business-standard.com/rss/markets-106.rss",
	"https://www.livemint.com/rss/markets",
}

const globalQuery = "stock market global economy"

// Fetcher collects global, Indian market and company news.
// A failing source is logged and skipped; it never fails the collection.
// ⭐ SSOT: 뉴스 수집은 여기서만
type Fetcher struct {
	httpClient    *httputil.Client
	newsAPIClient *httputil.Client
	newsAPIKey    string
	newsAPIBase   string
	scraper       *Scraper
	cache         *redis.Cache
	feedLimiter   *rate.Limiter
	globalFeeds   []string
	indianFeeds   []string
	perSource     int
	logger        *logger.Logger
}

// NewFetcher creates a fetcher with the default feed lists
func NewFetcher(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Fetcher {
	perSource := cfg.Market.NewsPerSource
	if perSource <= 0 {
		perSource = 10
	}
	feedRate := cfg.Market.FeedRatePerSec
	if feedRate <= 0 {
		feedRate = 1
	}

	return &Fetcher{
		httpClient:    httpClient,
		newsAPIClient: httpClient,
		newsAPIKey:    cfg.NewsAPI.APIKey,
		newsAPIBase:   strings.TrimRight(cfg.NewsAPI.BaseURL, "/"),
		scraper:       NewScraper(DefaultMoneycontrolURL, cfg.Market.RequestTimeout, log),
		cache:         cache,
		feedLimiter:   rate.NewLimiter(rate.Limit(feedRate), 1),
		globalFeeds:   DefaultGlobalFeeds,
		indianFeeds:   DefaultIndianFeeds,
		perSource:     perSource,
		logger:        log,
	}
}

// WithFeeds overrides the RSS feed lists (nil keeps the current list)
func (f *Fetcher) WithFeeds(global, indian []string) *Fetcher {
	if global != nil {
		f.globalFeeds = global
	}
	if indian != nil {
		f.indianFeeds = indian
	}
	return f
}

// WithNewsAPIClient uses a separately throttled client for NewsAPI
func (f *Fetcher) WithNewsAPIClient(c *httputil.Client) *Fetcher {
	f.newsAPIClient = c
	return f
}

// WithScraper replaces the company-news scraper
func (f *Fetcher) WithScraper(s *Scraper) *Fetcher {
	f.scraper = s
	return f
}

// WithFeedRate changes the delay between feed requests
func (f *Fetcher) WithFeedRate(perSecond float64) *Fetcher {
	f.feedLimiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	return f
}

// FetchAll implements contracts.NewsProvider. The three categories are
// fetched concurrently.
func (f *Fetcher) FetchAll(ctx context.Context, companyName, symbol string) (contracts.NewsCollection, error) {
	if companyName == "" {
		companyName = contracts.BareSymbol(symbol)
	}

	var global, indian, company []contracts.Article

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		global = f.cached(gctx, contracts.CategoryGlobal, "global", func() []contracts.Article {
			return f.FetchGlobal(gctx, f.perSource)
		})
		return nil
	})
	g.Go(func() error {
		indian = f.cached(gctx, contracts.CategoryIndianMarket, "indian", func() []contracts.Article {
			return f.FetchIndianMarket(gctx, f.perSource)
		})
		return nil
	})
	g.Go(func() error {
		company = f.cached(gctx, contracts.CategoryCompany, companyName, func() []contracts.Article {
			return f.FetchCompany(gctx, companyName, f.perSource)
		})
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	news := contracts.NewsCollection{
		contracts.CategoryGlobal:       tag(global, contracts.CategoryGlobal),
		contracts.CategoryIndianMarket: tag(indian, contracts.CategoryIndianMarket),
		contracts.CategoryCompany:      tag(company, contracts.CategoryCompany),
	}

	summary := news.Summary()
	f.logger.WithFields(map[string]interface{}{
		"symbol":  symbol,
		"global":  summary.GlobalNewsCount,
		"indian":  summary.IndianNewsCount,
		"company": summary.CompanyNewsCount,
	}).Info("Fetched news")

	return news, nil
}

// FetchGlobal combines NewsAPI with the global RSS feeds
func (f *Fetcher) FetchGlobal(ctx context.Context, max int) []contracts.Article {
	articles := []contracts.Article{}

	fromAPI, err := f.FetchNewsAPI(ctx, globalQuery, max)
	if err != nil {
		f.logger.WithError(err).Warn("Error fetching global market news")
	}
	articles = append(articles, fromAPI...)
	articles = append(articles, f.fetchFeeds(ctx, f.globalFeeds, max)...)

	return truncate(articles, max)
}

// FetchIndianMarket reads the Indian market RSS feeds
func (f *Fetcher) FetchIndianMarket(ctx context.Context, max int) []contracts.Article {
	return truncate(f.fetchFeeds(ctx, f.indianFeeds, max), max)
}

// FetchCompany combines NewsAPI with the Moneycontrol tag page.
// Either source may come back empty.
func (f *Fetcher) FetchCompany(ctx context.Context, companyName string, max int) []contracts.Article {
	articles := []contracts.Article{}

	fromAPI, err := f.FetchNewsAPI(ctx, fmt.Sprintf("%s stock India", companyName), max/2)
	if err != nil {
		f.logger.WithError(err).Warn("Error fetching company news from NewsAPI")
	}
	articles = append(articles, fromAPI...)

	if f.scraper != nil && len(articles) < max {
		scraped, err := f.scraper.Scrape(ctx, companyName, max-len(articles))
		if err != nil {
			f.logger.WithError(err).WithField("company", companyName).Warn("Could not scrape company news")
		}
		articles = append(articles, scraped...)
	}

	return truncate(articles, max)
}

// fetchFeeds reads each feed in turn, max/len(feeds) items apiece
func (f *Fetcher) fetchFeeds(ctx context.Context, feeds []string, max int) []contracts.Article {
	articles := []contracts.Article{}
	if len(feeds) == 0 {
		return articles
	}
	perFeed := max / len(feeds)
	if perFeed == 0 {
		return articles
	}

	for _, feedURL := range feeds {
		if err := f.feedLimiter.Wait(ctx); err != nil {
			break
		}
		items, err := f.FetchRSS(ctx, feedURL, perFeed)
		if err != nil {
			f.logger.WithError(err).WithField("feed", feedURL).Warn("Error fetching RSS feed")
			continue
		}
		articles = append(articles, items...)
	}
	return articles
}

// cached wraps a category fetch with the Redis news cache
func (f *Fetcher) cached(ctx context.Context, category contracts.NewsCategory, query string, fetch func() []contracts.Article) []contracts.Article {
	if f.cache == nil {
		return fetch()
	}

	key := redis.NewsKey(string(category), query)

	var articles []contracts.Article
	found, err := f.cache.Get(ctx, key, &articles)
	if err != nil {
		f.logger.WithError(err).WithField("key", key).Warn("News cache read failed")
	}
	if found {
		return articles
	}

	articles = fetch()
	if len(articles) > 0 {
		if err := f.cache.Set(ctx, key, articles, redis.TTLNews); err != nil {
			f.logger.WithError(err).WithField("key", key).Warn("News cache write failed")
		}
	}
	return articles
}

func tag(articles []contracts.Article, category contracts.NewsCategory) []contracts.Article {
	if articles == nil {
		return []contracts.Article{}
	}
	for i := range articles {
		articles[i].Category = category
	}
	return articles
}

func truncate(articles []contracts.Article, max int) []contracts.Article {
	if max >= 0 && len(articles) > max {
		return articles[:max]
	}
	return articles
}
