package strategyconfig

import (
	"github.com/wonny/swingtrader/internal/recommend"
	"github.com/wonny/swingtrader/internal/technical"
)

// Config는 스윙 추천 전략의 전체 설정
type Config struct {
	Meta      Meta                 `yaml:"meta" json:"meta"`
	Synthesis Synthesis            `yaml:"synthesis" json:"synthesis"`
	Technical technical.Thresholds `yaml:"technical" json:"technical"`
	Watchlist Watchlist            `yaml:"watchlist" json:"watchlist"`
	News      News                 `yaml:"news" json:"news"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
	Timezone   string `yaml:"timezone" json:"timezone"`
}

// Synthesis 가중치와 판정 기준
type Synthesis struct {
	Weights    recommend.Weights    `yaml:"weights" json:"weights"`
	Thresholds recommend.Thresholds `yaml:"thresholds" json:"thresholds"`
}

// Watchlist 정기 분석 대상
type Watchlist struct {
	Symbols      []string `yaml:"symbols" json:"symbols"`
	HorizonWeeks int      `yaml:"horizon_weeks" json:"horizon_weeks"`
	Schedule     string   `yaml:"schedule" json:"schedule"` // cron, seconds field first
	Parallel     int      `yaml:"parallel" json:"parallel"`
	Alerts       bool     `yaml:"alerts" json:"alerts"`
}

// News 뉴스 수집 설정 (비어 있으면 기본 피드)
type News struct {
	GlobalFeeds []string `yaml:"global_feeds" json:"global_feeds"`
	IndianFeeds []string `yaml:"indian_feeds" json:"indian_feeds"`
	PerSource   int      `yaml:"per_source" json:"per_source"`
}

// Default returns the built-in strategy; YAML files override it field by field
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "swing_default",
			Version:    "1",
			Timezone:   "Asia/Kolkata",
		},
		Synthesis: Synthesis{
			Weights:    recommend.DefaultWeights(),
			Thresholds: recommend.DefaultThresholds(),
		},
		Technical: technical.DefaultThresholds(),
		Watchlist: Watchlist{
			HorizonWeeks: 2,
			Schedule:     "0 30 16 * * 1-5", // 장 마감 후
			Parallel:     2,
			Alerts:       true,
		},
		News: News{PerSource: 10},
	}
}
