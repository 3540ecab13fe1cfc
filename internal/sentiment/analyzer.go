package sentiment

import (
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/logger"
)

// Estimator scores free text in [-1, 1]
type Estimator interface {
	Polarity(text string) float64
}

// Analyzer scores articles and aggregates them per news category
// ⭐ SSOT: 뉴스 감성 집계는 여기서만
type Analyzer struct {
	lexicon Estimator
	pattern Estimator
	logger  *logger.Logger
}

// NewAnalyzer creates an analyzer with VADER and the adjective-pattern estimator
func NewAnalyzer(log *logger.Logger) *Analyzer {
	return NewAnalyzerWithEstimators(NewVaderEstimator(), NewPatternEstimator(), log)
}

// NewAnalyzerWithEstimators creates an analyzer with custom estimators
func NewAnalyzerWithEstimators(lexicon, pattern Estimator, log *logger.Logger) *Analyzer {
	return &Analyzer{
		lexicon: lexicon,
		pattern: pattern,
		logger:  log,
	}
}

// AnalyzeArticle scores title + description with both estimators.
// An estimator panic degrades the article to a neutral 0.
func (a *Analyzer) AnalyzeArticle(article contracts.Article) (result contracts.ArticleSentiment) {
	result = contracts.ArticleSentiment{
		Title:    article.Title,
		Source:   article.Source,
		Category: article.Category,
		Label:    contracts.SentimentNeutral,
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.WithFields(map[string]interface{}{
				"title": article.Title,
				"panic": r,
			}).Error("Article sentiment failed")
			result.LexiconScore, result.PatternScore, result.CombinedScore = 0, 0, 0
			result.Label = contracts.SentimentNeutral
		}
	}()

	text := article.Text()
	result.LexiconScore = a.lexicon.Polarity(text)
	result.PatternScore = a.pattern.Polarity(text)
	result.CombinedScore = (result.LexiconScore + result.PatternScore) / 2
	result.Label = contracts.ClassifySentiment(result.CombinedScore)

	return result
}

// Aggregate scores every article and blends category means into an
// overall score weighted by article count. Empty categories are left
// out of the overall and keep Count == 0.
func (a *Analyzer) Aggregate(news contracts.NewsCollection) contracts.SentimentAggregate {
	agg := contracts.SentimentAggregate{
		Categories: make(map[contracts.NewsCategory]contracts.CategorySentiment),
		Breakdown:  make(map[contracts.SentimentLabel]int),
	}

	var weighted float64

	for _, category := range contracts.AllCategories {
		articles := news[category]
		cs := contracts.CategorySentiment{Articles: []contracts.ArticleSentiment{}}

		if len(articles) == 0 {
			agg.Categories[category] = cs
			continue
		}

		var sum float64
		for _, article := range articles {
			if article.Category == "" {
				article.Category = category
			}
			scored := a.AnalyzeArticle(article)
			cs.Articles = append(cs.Articles, scored)
			sum += scored.CombinedScore
		}

		cs.Count = len(cs.Articles)
		cs.AverageSentiment = sum / float64(cs.Count)
		cs.Label = contracts.ClassifySentiment(cs.AverageSentiment)
		agg.Categories[category] = cs
		agg.Breakdown[cs.Label]++

		weighted += cs.AverageSentiment * float64(cs.Count)
		agg.TotalCount += cs.Count
	}

	if agg.TotalCount > 0 {
		agg.Overall = weighted / float64(agg.TotalCount)
		agg.OverallLabel = contracts.ClassifySentiment(agg.Overall)
	}

	a.logger.WithFields(map[string]interface{}{
		"articles": agg.TotalCount,
		"overall":  agg.Overall,
		"label":    agg.LabelOrNeutral(),
	}).Debug("Aggregated news sentiment")

	return agg
}
