package contracts

import "time"

// NewsCategory is the fixed set of news buckets
type NewsCategory string

const (
	CategoryGlobal       NewsCategory = "GLOBAL"
	CategoryIndianMarket NewsCategory = "INDIAN_MARKET"
	CategoryCompany      NewsCategory = "COMPANY"
)

// AllCategories lists every category in report order
var AllCategories = []NewsCategory{CategoryGlobal, CategoryIndianMarket, CategoryCompany}

// Title returns a display heading ("INDIAN MARKET NEWS")
func (c NewsCategory) Title() string {
	switch c {
	case CategoryGlobal:
		return "GLOBAL NEWS"
	case CategoryIndianMarket:
		return "INDIAN MARKET NEWS"
	case CategoryCompany:
		return "COMPANY NEWS"
	default:
		return string(c)
	}
}

// Article is one news item from RSS, NewsAPI or a scraper
type Article struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Source      string       `json:"source"`
	PublishedAt time.Time    `json:"published_at"`
	Content     string       `json:"content,omitempty"`
	Category    NewsCategory `json:"category"`
}

// Text returns the text scored for sentiment
func (a Article) Text() string {
	return a.Title + " " + a.Description
}

// NewsCollection maps category → articles
type NewsCollection map[NewsCategory][]Article

// Count returns the number of articles in a category
func (n NewsCollection) Count(c NewsCategory) int {
	return len(n[c])
}

// NewsSummary reports article counts per category
type NewsSummary struct {
	GlobalNewsCount  int `json:"global_news_count"`
	IndianNewsCount  int `json:"indian_news_count"`
	CompanyNewsCount int `json:"company_news_count"`
}

// Summary counts articles per category
func (n NewsCollection) Summary() NewsSummary {
	return NewsSummary{
		GlobalNewsCount:  n.Count(CategoryGlobal),
		IndianNewsCount:  n.Count(CategoryIndianMarket),
		CompanyNewsCount: n.Count(CategoryCompany),
	}
}
