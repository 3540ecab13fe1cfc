package contracts

// MetricStatus marks a ratio as healthy or worth a second look
type MetricStatus string

const (
	StatusGood    MetricStatus = "GOOD"
	StatusCaution MetricStatus = "CAUTION"
)

// Assessment is the overall fundamental verdict
type Assessment string

const (
	AssessmentStrong   Assessment = "STRONG"
	AssessmentModerate Assessment = "MODERATE"
	AssessmentWeak     Assessment = "WEAK"
	AssessmentNeutral  Assessment = "NEUTRAL"
	AssessmentError    Assessment = "ERROR"
)

// FundamentalRatios are raw ratios as reported by the data provider.
// Percent-type ratios (ROE, ROA, margins, growth) are fractions: 0.18 = 18%.
type FundamentalRatios struct {
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	ForwardPE        *float64 `json:"forward_pe,omitempty"`
	PBRatio          *float64 `json:"pb_ratio,omitempty"`
	PEGRatio         *float64 `json:"peg_ratio,omitempty"`
	DebtToEquity     *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio     *float64 `json:"current_ratio,omitempty"`
	QuickRatio       *float64 `json:"quick_ratio,omitempty"`
	ROE              *float64 `json:"roe,omitempty"`
	ROA              *float64 `json:"roa,omitempty"`
	ProfitMargin     *float64 `json:"profit_margin,omitempty"`
	OperatingMargin  *float64 `json:"operating_margin,omitempty"`
	RevenueGrowth    *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth   *float64 `json:"earnings_growth,omitempty"`
	DividendYield    *float64 `json:"dividend_yield,omitempty"`
	Beta             *float64 `json:"beta,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"52_week_high,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"52_week_low,omitempty"`
	BookValue        *float64 `json:"book_value,omitempty"`
	EnterpriseValue  *float64 `json:"enterprise_value,omitempty"`
}

// FundamentalMetricRecord is the scaled value and status of one scored ratio
type FundamentalMetricRecord struct {
	Value  float64      `json:"value"`
	Status MetricStatus `json:"status"`
}

// FundamentalAssessment is the output of the fundamental scorer
// ⭐ SSOT: 펀더멘털 분석 → 합성기 전달
type FundamentalAssessment struct {
	Score             float64                            `json:"score"` // 0 ~ 100
	MaxScore          float64                            `json:"max_score"`
	Metrics           map[string]FundamentalMetricRecord `json:"metrics"`
	Strengths         []string                           `json:"strengths"`
	Weaknesses        []string                           `json:"weaknesses"`
	OverallAssessment Assessment                         `json:"overall_assessment"`
	MetricsPresent    int                                `json:"metrics_present"`
}
