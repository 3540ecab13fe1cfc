package contracts

import "context"

// MarketDataProvider supplies price history, quote and ratios for a symbol
// ⭐ SSOT: 시장 데이터 수집 인터페이스
type MarketDataProvider interface {
	Fetch(ctx context.Context, symbol string) (*StockDataBundle, error)
}

// NewsProvider supplies categorized news for a company
// ⭐ SSOT: 뉴스 수집 인터페이스
type NewsProvider interface {
	FetchAll(ctx context.Context, companyName, symbol string) (NewsCollection, error)
}
