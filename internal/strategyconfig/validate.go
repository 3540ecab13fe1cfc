package strategyconfig

import (
	"fmt"
	"math"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/wonny/swingtrader/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Synthesis ===
	w := cfg.Synthesis.Weights
	for field, v := range map[string]float64{
		"synthesis.weights.technical":           w.Technical,
		"synthesis.weights.fundamental":         w.Fundamental,
		"synthesis.weights.sentiment":           w.Sentiment,
		"synthesis.weights.fundamental_damping": w.FundamentalDamping,
	} {
		if err := validateUnit(v); err != nil {
			return ValidationError{field, err.Error()}
		}
	}

	th := cfg.Synthesis.Thresholds
	if th.Buy <= 0 || th.Buy > 100 {
		return ValidationError{"synthesis.thresholds.buy", "must be in (0, 100]"}
	}
	if th.Sell >= 0 || th.Sell < -100 {
		return ValidationError{"synthesis.thresholds.sell", "must be in [-100, 0)"}
	}
	if th.ConfidentAbove < 0 || th.ConfidentAbove > 100 {
		return ValidationError{"synthesis.thresholds.confident_above", "must be in [0, 100]"}
	}

	// === Technical ===
	if cfg.Technical.RSIOversold >= cfg.Technical.RSIOverbought {
		return ValidationError{"technical", "rsi_oversold must be < rsi_overbought"}
	}
	if cfg.Technical.RSIOversold < 0 || cfg.Technical.RSIOverbought > 100 {
		return ValidationError{"technical", "rsi levels must be in [0, 100]"}
	}

	// === Watchlist ===
	if cfg.Watchlist.HorizonWeeks < 1 {
		return ValidationError{"watchlist.horizon_weeks", "must be >= 1"}
	}
	if cfg.Watchlist.Parallel < 1 {
		return ValidationError{"watchlist.parallel", "must be >= 1"}
	}
	if _, err := cronParser.Parse(cfg.Watchlist.Schedule); err != nil {
		return ValidationError{"watchlist.schedule", err.Error()}
	}
	for i, s := range cfg.Watchlist.Symbols {
		if _, err := contracts.FormatSymbol(s, ""); err != nil {
			return ValidationError{fmt.Sprintf("watchlist.symbols[%d]", i), fmt.Sprintf("%q is not a valid symbol", s)}
		}
	}

	// === News ===
	if cfg.News.PerSource < 0 {
		return ValidationError{"news.per_source", "must be >= 0"}
	}
	for i, u := range append(append([]string{}, cfg.News.GlobalFeeds...), cfg.News.IndianFeeds...) {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return ValidationError{fmt.Sprintf("news.feeds[%d]", i), "must be an http(s) URL"}
		}
	}

	return nil
}

// Warn returns recommended-practice violations
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	w := cfg.Synthesis.Weights
	if sum := w.Technical + w.Fundamental + w.Sentiment; math.Abs(sum-1.0) > 1e-6 {
		warnings = append(warnings, Warning{
			Code:    "WEIGHTS_SUM",
			Message: fmt.Sprintf("synthesis weights sum to %.4f, scores will not span ±100", sum),
		})
	}

	if th := cfg.Synthesis.Thresholds; th.Buy != -th.Sell {
		warnings = append(warnings, Warning{
			Code:    "ASYMMETRIC_THRESHOLDS",
			Message: fmt.Sprintf("buy=%.1f sell=%.1f", th.Buy, th.Sell),
		})
	}

	if len(cfg.Watchlist.Symbols) == 0 {
		warnings = append(warnings, Warning{
			Code:    "EMPTY_WATCHLIST",
			Message: "scheduler will have nothing to analyze",
		})
	}

	return warnings
}

func validateUnit(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("must be in [0, 1]")
	}
	return nil
}
