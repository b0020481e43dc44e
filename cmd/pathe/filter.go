package main

import (
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
)

// titleSimilarity is the minimum Jaro-Winkler score for a title to match a search.
const titleSimilarity = 0.85

// filterByTitle keeps items whose title contains query or is close to it. List views truncate
// long titles, so substring and fuzzy matches are both accepted.
func filterByTitle(items []model.HistoryItem, query string) []model.HistoryItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	out := make([]model.HistoryItem, 0, len(items))
	for _, item := range items {
		title := strings.ToLower(item.Event.Title)
		if strings.Contains(title, query) || matchr.JaroWinkler(title, query, false) >= titleSimilarity {
			out = append(out, item)
		}
	}
	return out
}
