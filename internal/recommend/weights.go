package recommend

// Weights blends the three analyses into one score
type Weights struct {
	Technical   float64 `yaml:"technical" json:"technical"`
	Fundamental float64 `yaml:"fundamental" json:"fundamental"`
	Sentiment   float64 `yaml:"sentiment" json:"sentiment"`

	// FundamentalDamping shrinks the re-centered fundamental term
	FundamentalDamping float64 `yaml:"fundamental_damping" json:"fundamental_damping"`
}

// DefaultWeights 기술 40% / 펀더멘털 35% / 감성 25%
func DefaultWeights() Weights {
	return Weights{
		Technical:          0.40,
		Fundamental:        0.35,
		Sentiment:          0.25,
		FundamentalDamping: 0.70,
	}
}

// Thresholds holds the decision and risk cut-offs
type Thresholds struct {
	Buy  float64 `yaml:"buy" json:"buy"`  // ws >= Buy → BUY
	Sell float64 `yaml:"sell" json:"sell"` // ws <= Sell → SELL

	HighATRRatio      float64 `yaml:"high_atr_ratio" json:"high_atr_ratio"`
	WeakFundamental   float64 `yaml:"weak_fundamental" json:"weak_fundamental"`
	ExtremeSentiment  float64 `yaml:"extreme_sentiment" json:"extreme_sentiment"`
	HighDailyVolatile float64 `yaml:"high_daily_volatility" json:"high_daily_volatility"`
	ConfidentAbove    float64 `yaml:"confident_above" json:"confident_above"`
}

// DefaultThresholds are the standard decision cut-offs
func DefaultThresholds() Thresholds {
	return Thresholds{
		Buy:               30,
		Sell:              -30,
		HighATRRatio:      0.05,
		WeakFundamental:   40,
		ExtremeSentiment:  0.5,
		HighDailyVolatile: 0.03,
		ConfidentAbove:    70,
	}
}
