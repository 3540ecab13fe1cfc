package news

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wonny/swingtrader/internal/contracts"
)

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// FetchNewsAPI searches newsapi.org /everything. Without an API key it
// returns no articles and no error.
func (f *Fetcher) FetchNewsAPI(ctx context.Context, query string, max int) ([]contracts.Article, error) {
	if f.newsAPIKey == "" {
		f.logger.Debug("NewsAPI key not provided, skipping NewsAPI")
		return []contracts.Article{}, nil
	}
	if max <= 0 {
		return []contracts.Article{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", f.newsAPIKey)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(max))
	params.Set("language", "en")

	var resp newsAPIResponse
	if err := f.newsAPIClient.GetJSON(ctx, f.newsAPIBase+"/everything?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("newsapi %q: %w", query, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi %q: %s %s", query, resp.Code, resp.Message)
	}

	articles := make([]contracts.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		source := a.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, contracts.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      source,
			PublishedAt: published,
			Content:     a.Content,
		})
	}
	return articles, nil
}
