package news

import (
	"strings"

	"github.com/wonny/swingtrader/internal/contracts"
)

// FormatForAnalysis renders a collection as a plain-text digest,
// one block per category in report order.
func FormatForAnalysis(news contracts.NewsCollection) string {
	var lines []string

	for _, category := range contracts.AllCategories {
		articles, ok := news[category]
		if !ok {
			continue
		}
		lines = append(lines, "\n=== "+category.Title()+" ===\n")
		for _, a := range articles {
			lines = append(lines,
				"Title: "+a.Title,
				"Description: "+a.Description,
				"Source: "+a.Source,
				"---\n",
			)
		}
	}

	return strings.Join(lines, "\n")
}
