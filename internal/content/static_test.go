// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_LatestResearch(t *testing.T) {
	p := NewStatic()
	articles, err := p.LatestResearch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, articles)

	seen := map[string]bool{}
	for _, a := range articles {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Summary)
		assert.False(t, a.PublicationDate.IsZero(), "article %s has no date", a.ID)
		assert.NotEmpty(t, a.Authors)
		assert.False(t, seen[a.ID], "duplicate article id %s", a.ID)
		seen[a.ID] = true
	}

	// Newest first.
	for i := 1; i < len(articles); i++ {
		assert.False(t, articles[i].PublicationDate.After(articles[i-1].PublicationDate),
			"articles not sorted newest first at index %d", i)
	}
}

func TestStaticProvider_LatestTreatments(t *testing.T) {
	p := NewStatic()
	treatments, err := p.LatestTreatments(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, treatments)

	valid := map[string]bool{StatusApproved: true, StatusClinicalTrial: true, StatusResearch: true}
	for _, tr := range treatments {
		assert.NotEmpty(t, tr.ID)
		assert.NotEmpty(t, tr.Name)
		assert.NotEmpty(t, tr.Description)
		assert.True(t, valid[tr.Status], "treatment %s has invalid status %q", tr.ID, tr.Status)
		if tr.Status == StatusApproved {
			assert.NotNil(t, tr.ApprovalDate, "approved treatment %s needs an approval date", tr.ID)
		}
	}
}

func TestTranslatableFields_PointIntoReceiver(t *testing.T) {
	a := ResearchArticle{Title: "Original title", Summary: "Original summary"}
	fields := a.TranslatableFields()
	require.Len(t, fields, 2)

	*fields[0] = "Translated title"
	assert.Equal(t, "Translated title", a.Title)
	assert.Equal(t, "Original summary", a.Summary)

	tr := Treatment{Name: "Name", Description: "Desc", Status: StatusResearch}
	for _, f := range tr.TranslatableFields() {
		*f = "X"
	}
	assert.Equal(t, "X", tr.Name)
	assert.Equal(t, "X", tr.Description)
	assert.Equal(t, StatusResearch, tr.Status, "status must never be translated")
}

func TestDedupeArticles(t *testing.T) {
	in := []ResearchArticle{
		{ID: "a", Title: "Same Title", PublicationDate: date(2024, 1, 1)},
		{ID: "b", Title: "  same title ", PublicationDate: date(2024, 2, 1)},
		{ID: "c", Title: "Other", PublicationDate: date(2024, 3, 1)},
	}
	out := dedupeArticles(in)
	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].ID, "newest first")
	assert.Equal(t, "a", out[1].ID, "first occurrence wins on duplicate title")
}

func TestDedupeTreatments(t *testing.T) {
	in := []Treatment{
		{ID: "a", Name: "Lecanemab"},
		{ID: "b", Name: "lecanemab "},
		{ID: "c", Name: "Donanemab"},
	}
	out := dedupeTreatments(in)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}
