package marketdata

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/external/kite"
	"github.com/wonny/swingtrader/internal/external/yahoo"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/database"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

type fakeProvider struct {
	bundle *contracts.StockDataBundle
	err    error
	calls  []string
}

func (f *fakeProvider) Fetch(_ context.Context, symbol string) (*contracts.StockDataBundle, error) {
	f.calls = append(f.calls, symbol)
	if f.err != nil {
		return nil, f.err
	}
	b := *f.bundle
	return &b, nil
}

type fakeStore struct {
	saved   map[string][]contracts.PriceBar
	stored  []contracts.PriceBar
	loadErr error
	from    time.Time
}

func (f *fakeStore) SaveBars(_ context.Context, symbol string, bars []contracts.PriceBar) error {
	if f.saved == nil {
		f.saved = map[string][]contracts.PriceBar{}
	}
	f.saved[symbol] = bars
	return nil
}

func (f *fakeStore) LoadBars(_ context.Context, _ string, from time.Time) ([]contracts.PriceBar, error) {
	f.from = from
	return f.stored, f.loadErr
}

func bars(closes ...float64) []contracts.PriceBar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]contracts.PriceBar, len(closes))
	for i, c := range closes {
		out[i] = contracts.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return out
}

func newService(p contracts.MarketDataProvider, store BarStore) *Service {
	s := NewService(p, redis.NewCache(redis.Disabled(), "test"), store, ".NS", 30, logger.NewNop())
	s.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestService_FetchStoresFreshBars(t *testing.T) {
	price := 101.0
	p := &fakeProvider{bundle: &contracts.StockDataBundle{CurrentPrice: &price, History: bars(99, 100, 101)}}
	store := &fakeStore{}

	got, err := newService(p, store).Fetch(context.Background(), "  tcs ")
	require.NoError(t, err)

	assert.Equal(t, []string{"TCS.NS"}, p.calls)
	assert.Equal(t, 101.0, *got.CurrentPrice)
	assert.Len(t, store.saved["TCS.NS"], 3)
}

func TestService_FallsBackToStoredBars(t *testing.T) {
	p := &fakeProvider{bundle: &contracts.StockDataBundle{History: []contracts.PriceBar{}}}
	store := &fakeStore{stored: bars(10, 11, 12)}

	got, err := newService(p, store).Fetch(context.Background(), "INFY")
	require.NoError(t, err)

	assert.Len(t, got.History, 3)
	require.NotNil(t, got.CurrentPrice)
	assert.Equal(t, 12.0, *got.CurrentPrice)
	assert.Equal(t, time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), store.from)
}

func TestService_StoreFailureIsSoft(t *testing.T) {
	p := &fakeProvider{bundle: &contracts.StockDataBundle{History: []contracts.PriceBar{}}}
	store := &fakeStore{loadErr: errors.New("db down")}

	got, err := newService(p, store).Fetch(context.Background(), "INFY")
	require.NoError(t, err)
	assert.Empty(t, got.History)
	assert.Nil(t, got.CurrentPrice)
}

func TestService_NoStore(t *testing.T) {
	price := 5.0
	p := &fakeProvider{bundle: &contracts.StockDataBundle{CurrentPrice: &price}}

	got, err := newService(p, nil).Fetch(context.Background(), "ITC")
	require.NoError(t, err)
	assert.Equal(t, 5.0, *got.CurrentPrice)
}

func TestService_Errors(t *testing.T) {
	p := &fakeProvider{err: contracts.ErrNoPriceData}
	svc := newService(p, nil)

	_, err := svc.Fetch(context.Background(), "ITC")
	assert.ErrorIs(t, err, contracts.ErrNoPriceData)

	_, err = svc.Fetch(context.Background(), "bad symbol")
	assert.ErrorIs(t, err, contracts.ErrInvalidSymbol)
	assert.Len(t, p.calls, 1)
}

func TestNewProvider(t *testing.T) {
	log := logger.NewNop()

	cfg := &config.Config{Market: config.MarketConfig{ExchangeSuffix: ".NS", HistoryDays: 365}}
	_, isYahoo := NewProvider(cfg, httputil.New(cfg, log), nil, log).(*yahoo.Client)
	assert.True(t, isYahoo)

	cfg.Kite = config.KiteConfig{APIKey: "key", AccessToken: "token"}
	_, isKite := NewProvider(cfg, httputil.New(cfg, log), nil, log).(*kite.Client)
	assert.True(t, isKite)
}

func TestPriceRepository_RoundTrip(t *testing.T) {
	if testing.Short() || os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()

	repo := NewPriceRepository(db.Pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	symbol := "TEST" + time.Now().Format("150405") + ".NS"
	require.NoError(t, repo.SaveBars(ctx, symbol, bars(1, 2, 3)))
	// upsert
	require.NoError(t, repo.SaveBars(ctx, symbol, bars(4)))

	got, err := repo.LoadBars(ctx, symbol, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 4.0, got[0].Close)
	assert.Equal(t, 3.0, got[2].Close)

	_, err = db.Pool.Exec(ctx, "DELETE FROM market.daily_bars WHERE symbol = $1", symbol)
	require.NoError(t, err)
}
