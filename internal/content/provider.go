// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"sort"
	"strings"
)

// Provider supplies the current editorial content in the baseline
// language. Implementations may hit the network; both methods honor
// the context.
type Provider interface {
	LatestResearch(ctx context.Context) ([]ResearchArticle, error)
	LatestTreatments(ctx context.Context) ([]Treatment, error)
}

// dedupeArticles drops articles whose normalized title was already seen
// and sorts the rest newest first.
func dedupeArticles(articles []ResearchArticle) []ResearchArticle {
	seen := make(map[string]struct{}, len(articles))
	out := make([]ResearchArticle, 0, len(articles))
	for _, a := range articles {
		key := strings.ToLower(strings.TrimSpace(a.Title))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublicationDate.After(out[j].PublicationDate)
	})
	return out
}

// dedupeTreatments drops treatments whose normalized name was already seen.
func dedupeTreatments(treatments []Treatment) []Treatment {
	seen := make(map[string]struct{}, len(treatments))
	out := make([]Treatment, 0, len(treatments))
	for _, t := range treatments {
		key := strings.ToLower(strings.TrimSpace(t.Name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
