package sentiment

// negations flip the sign of what follows
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nor": true, "neither": true,
	"without": true, "cannot": true, "can't": true, "don't": true, "doesn't": true, "didn't": true,
	"isn't": true, "aren't": true, "wasn't": true, "weren't": true, "won't": true, "hasn't": true,
	"haven't": true, "hardly": true,
}

// polarity is the adjective lexicon used by the pattern estimator, scored -1 ~ +1
var polarity = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1.0, "best": 1.0, "better": 0.5, "strong": 0.43,
	"stronger": 0.5, "robust": 0.5, "solid": 0.4, "healthy": 0.5, "positive": 0.23, "bullish": 0.6,
	"optimistic": 0.5, "upbeat": 0.6, "profitable": 0.5, "successful": 0.75, "favorable": 0.6,
	"attractive": 0.6, "impressive": 0.9, "remarkable": 0.75, "stable": 0.3, "high": 0.16,
	"higher": 0.25, "new": 0.14, "big": 0.0, "record": 0.2, "confident": 0.5, "innovative": 0.5,
	"steady": 0.3, "resilient": 0.5, "significant": 0.38, "happy": 0.8, "encouraging": 0.6,
	"bad": -0.7, "worse": -0.4, "worst": -1.0, "poor": -0.4, "weak": -0.38, "weaker": -0.4,
	"negative": -0.3, "bearish": -0.6, "pessimistic": -0.5, "volatile": -0.3, "uncertain": -0.25,
	"risky": -0.5, "low": -0.2, "lower": -0.25, "sluggish": -0.4, "disappointing": -0.6,
	"terrible": -1.0, "awful": -1.0, "serious": -0.33, "severe": -0.6, "difficult": -0.5,
	"dismal": -0.8, "slow": -0.3, "tough": -0.39, "unstable": -0.4, "failed": -0.5, "sharp": -0.1,
	"heavy": -0.2, "concerned": -0.3, "worried": -0.5, "fraudulent": -0.8, "bankrupt": -0.8,
}

// intensifiers multiply the next adjective
var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "highly": 1.3, "really": 1.3, "incredibly": 1.5, "exceptionally": 1.5,
	"so": 1.3, "too": 1.3, "most": 1.3, "quite": 1.1, "fairly": 0.9, "slightly": 0.7, "somewhat": 0.8,
}
