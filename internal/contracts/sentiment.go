package contracts

// SentimentLabel buckets a polarity score in [-1, 1]
type SentimentLabel string

const (
	SentimentVeryPositive SentimentLabel = "VERY_POSITIVE"
	SentimentPositive     SentimentLabel = "POSITIVE"
	SentimentNeutral      SentimentLabel = "NEUTRAL"
	SentimentNegative     SentimentLabel = "NEGATIVE"
	SentimentVeryNegative SentimentLabel = "VERY_NEGATIVE"
)

// ClassifySentiment maps a score to its label
// ≥0.5 VERY_POSITIVE, ≥0.1 POSITIVE, ≥-0.1 NEUTRAL, ≥-0.5 NEGATIVE
func ClassifySentiment(score float64) SentimentLabel {
	switch {
	case score >= 0.5:
		return SentimentVeryPositive
	case score >= 0.1:
		return SentimentPositive
	case score >= -0.1:
		return SentimentNeutral
	case score >= -0.5:
		return SentimentNegative
	default:
		return SentimentVeryNegative
	}
}

// ArticleSentiment is the scored form of one article
type ArticleSentiment struct {
	Title         string         `json:"article_title"`
	Source        string         `json:"source"`
	Category      NewsCategory   `json:"category"`
	LexiconScore  float64        `json:"lexicon_score"`
	PatternScore  float64        `json:"pattern_score"`
	CombinedScore float64        `json:"combined_score"`
	Label         SentimentLabel `json:"sentiment"`
}

// CategorySentiment aggregates one category.
// Count == 0 means "no data", which is not the same as a measured neutral 0.0.
type CategorySentiment struct {
	Articles         []ArticleSentiment `json:"articles"`
	AverageSentiment float64            `json:"average_sentiment"`
	Count            int                `json:"count"`
	Label            SentimentLabel     `json:"sentiment_label,omitempty"`
}

// SentimentAggregate is the output of the sentiment aggregator
// ⭐ SSOT: 뉴스 감성 → 합성기 전달
type SentimentAggregate struct {
	Categories   map[NewsCategory]CategorySentiment `json:"categories"`
	Overall      float64                            `json:"overall_sentiment"`
	OverallLabel SentimentLabel                     `json:"overall_sentiment_label,omitempty"`
	TotalCount   int                                `json:"total_count"`
	Breakdown    map[SentimentLabel]int             `json:"sentiment_breakdown"`
}

// HasData reports whether at least one article was scored
func (s SentimentAggregate) HasData() bool {
	return s.TotalCount > 0
}

// Category returns the aggregate of c (zero value when absent)
func (s SentimentAggregate) Category(c NewsCategory) CategorySentiment {
	return s.Categories[c]
}

// LabelOrNeutral returns the overall label, NEUTRAL when there was no data
func (s SentimentAggregate) LabelOrNeutral() SentimentLabel {
	if s.OverallLabel == "" {
		return SentimentNeutral
	}
	return s.OverallLabel
}
