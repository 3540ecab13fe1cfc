package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>ET Markets</title>
  <item>
    <title>Sensex surges 500 points</title>
    <description><![CDATA[<p>Banks <b>lead</b> the rally &amp; IT follows</p>]]></description>
    <link>https://example.com/a</link>
    <pubDate>Mon, 06 Jan 2025 10:00:00 +0530</pubDate>
  </item>
  <item>
    <title>Nifty ends flat</title>
    <description>Range-bound session</description>
    <link>https://example.com/b</link>
  </item>
  <item>
    <title>Third story</title>
  </item>
</channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Global Wire</title>
  <entry>
    <title>Stocks slide on rate fears</title>
    <summary>Treasury yields climb</summary>
    <link href="https://example.com/atom1"/>
    <updated>2025-01-06T08:00:00Z</updated>
  </entry>
</feed>`

// latin1Feed carries ISO-8859-1 bytes (0xe9 is "é")
const latin1Feed = "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
	"<rss version=\"2.0\"><channel><title>Business Standard</title>\n" +
	"<item><title>Nestl\xe9 India raises prices</title><link>https://example.com/l1</link></item>\n" +
	"</channel></rss>"

const rdfFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/">
  <channel rdf:about="https://example.com/rdf">
    <title>Livemint Markets</title>
    <link>https://example.com/rdf</link>
    <description>Markets</description>
  </channel>
  <item rdf:about="https://example.com/r1">
    <title>RBI keeps repo rate unchanged</title>
    <link>https://example.com/r1</link>
    <description>Policy stance stays neutral</description>
  </item>
  <item rdf:about="https://example.com/r2">
    <title>Rupee firms against dollar</title>
    <link>https://example.com/r2</link>
  </item>
</rdf:RDF>`

const newsAPIBody = `{
  "status": "ok",
  "articles": [
    {"source": {"name": "Reuters"}, "title": "Tata Motors beats estimates", "description": "JLR strong", "url": "https://example.com/n1", "publishedAt": "2025-01-06T09:00:00Z"},
    {"source": {}, "title": "Second", "description": "", "url": "https://example.com/n2", "publishedAt": "bad"}
  ]
}`

const tagPage = `<html><body><ul>
  <li class="clearfix"><h2><a href="/news/business/tata-1.html">Tata Motors EV sales jump</a></h2><p>Record month</p></li>
  <li class="clearfix"><h2><a href="https://www.moneycontrol.com/x.html">Tata Motors recalls cars</a></h2><p>Minor issue</p></li>
  <li class="clearfix"><p>no headline here</p></li>
</ul></body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(rssFeed)) })
	mux.HandleFunc("/atom", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(atomFeed)) })
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) })
	mux.HandleFunc("/v2/everything", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "publishedAt", r.URL.Query().Get("sortBy"))
		_, _ = w.Write([]byte(newsAPIBody))
	})
	mux.HandleFunc("/news/tags/tata-motors.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tagPage))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(t *testing.T, srv *httptest.Server, apiKey string) *Fetcher {
	t.Helper()
	cfg := &config.Config{
		NewsAPI: config.NewsAPIConfig{APIKey: apiKey, BaseURL: srv.URL + "/v2"},
		Market:  config.MarketConfig{NewsPerSource: 4, FeedRatePerSec: 1000, RequestTimeout: 5 * time.Second},
	}
	log := logger.NewNop()
	f := NewFetcher(cfg, httputil.New(cfg, log).DisableRetry(), redis.NewCache(redis.Disabled(), "test"), log)
	return f.
		WithFeeds([]string{srv.URL + "/atom", srv.URL + "/broken"}, []string{srv.URL + "/rss", srv.URL + "/broken"}).
		WithScraper(NewScraper(srv.URL, 5*time.Second, log))
}

func TestParseFeed_RSS(t *testing.T) {
	articles, err := parseFeed([]byte(rssFeed), 2)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Sensex surges 500 points", articles[0].Title)
	assert.Equal(t, "Banks lead the rally & IT follows", articles[0].Description)
	assert.Equal(t, "ET Markets", articles[0].Source)
	assert.Equal(t, "https://example.com/a", articles[0].URL)
	assert.Equal(t, time.Date(2025, 1, 6, 4, 30, 0, 0, time.UTC), articles[0].PublishedAt)
	assert.True(t, articles[1].PublishedAt.IsZero())
}

func TestParseFeed_Atom(t *testing.T) {
	articles, err := parseFeed([]byte(atomFeed), 5)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "Global Wire", articles[0].Source)
	assert.Equal(t, "https://example.com/atom1", articles[0].URL)
	assert.Equal(t, "Treasury yields climb", articles[0].Description)
}

func TestParseFeed_Latin1(t *testing.T) {
	articles, err := parseFeed([]byte(latin1Feed), 5)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "Nestl\u00e9 India raises prices", articles[0].Title)
	assert.Equal(t, "Business Standard", articles[0].Source)
}

func TestParseFeed_RDF(t *testing.T) {
	articles, err := parseFeed([]byte(rdfFeed), 5)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Livemint Markets", articles[0].Source)
	assert.Equal(t, "RBI keeps repo rate unchanged", articles[0].Title)
	assert.Equal(t, "Policy stance stays neutral", articles[0].Description)
	assert.Equal(t, "https://example.com/r2", articles[1].URL)
}

func TestParseFeed_Garbage(t *testing.T) {
	_, err := parseFeed([]byte("not xml at all <"), 5)
	assert.Error(t, err)
}

func TestFetchNewsAPI_NoKey(t *testing.T) {
	srv := newServer(t)
	f := newFetcher(t, srv, "")

	articles, err := f.FetchNewsAPI(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestFetchNewsAPI(t *testing.T) {
	srv := newServer(t)
	f := newFetcher(t, srv, "secret")

	articles, err := f.FetchNewsAPI(context.Background(), "Tata Motors stock India", 5)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Reuters", articles[0].Source)
	assert.Equal(t, "NewsAPI", articles[1].Source)
	assert.True(t, articles[1].PublishedAt.IsZero())
}

func TestScraper(t *testing.T) {
	srv := newServer(t)
	s := NewScraper(srv.URL, 5*time.Second, logger.NewNop())

	assert.Equal(t, srv.URL+"/news/tags/tata-motors.html", s.TagURL("  Tata   Motors "))

	articles, err := s.Scrape(context.Background(), "Tata Motors", 5)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Tata Motors EV sales jump", articles[0].Title)
	assert.Equal(t, srv.URL+"/news/business/tata-1.html", articles[0].URL)
	assert.Equal(t, "Record month", articles[0].Description)
	assert.Equal(t, "Moneycontrol", articles[1].Source)
}

func TestScraper_MissingPage(t *testing.T) {
	srv := newServer(t)
	s := NewScraper(srv.URL, 5*time.Second, logger.NewNop())

	articles, err := s.Scrape(context.Background(), "Unknown Co", 5)
	assert.Error(t, err)
	assert.Empty(t, articles)
}

func TestFetchAll(t *testing.T) {
	srv := newServer(t)
	f := newFetcher(t, srv, "secret")

	news, err := f.FetchAll(context.Background(), "Tata Motors", "TATAMOTORS.NS")
	require.NoError(t, err)

	// NewsAPI (2) + atom feed (1), capped at 4
	global := news[contracts.CategoryGlobal]
	assert.Len(t, global, 3)

	// one good feed, two items per feed
	indian := news[contracts.CategoryIndianMarket]
	assert.Len(t, indian, 2)

	// NewsAPI gets max/2 = 2, scraper fills the rest
	company := news[contracts.CategoryCompany]
	assert.Len(t, company, 4)

	for category, articles := range news {
		for _, a := range articles {
			assert.Equal(t, category, a.Category)
		}
	}

	assert.Equal(t, contracts.NewsSummary{GlobalNewsCount: 3, IndianNewsCount: 2, CompanyNewsCount: 4}, news.Summary())
}

func TestFetchAll_AllSourcesDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := newFetcher(t, srv, "secret")

	news, err := f.FetchAll(context.Background(), "Tata Motors", "TATAMOTORS")
	require.NoError(t, err)
	for _, category := range contracts.AllCategories {
		assert.NotNil(t, news[category])
		assert.Empty(t, news[category])
	}
}

func TestFormatForAnalysis(t *testing.T) {
	text := FormatForAnalysis(contracts.NewsCollection{
		contracts.CategoryIndianMarket: {{Title: "Nifty up", Description: "Banks lead", Source: "ET"}},
		contracts.CategoryGlobal:       {},
	})

	assert.True(t, strings.Index(text, "=== GLOBAL NEWS ===") < strings.Index(text, "=== INDIAN MARKET NEWS ==="))
	assert.Contains(t, text, "Title: Nifty up\nDescription: Banks lead\nSource: ET\n---\n")
	assert.NotContains(t, text, "COMPANY NEWS")
}
