// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const efetchFixture = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>11111</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2024</Year><Month>Mar</Month><Day>15</Day></PubDate>
          </JournalIssue>
          <Title>Test Neurology Journal</Title>
        </Journal>
        <ArticleTitle>Amyloid clearance in early Alzheimer's disease</ArticleTitle>
        <Abstract>
          <AbstractText>Background section.</AbstractText>
          <AbstractText>Findings on amyloid clearance and cognition.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author><LastName>Doe</LastName><ForeName>Jane</ForeName></Author>
          <Author><LastName>Smith</LastName><ForeName>John</ForeName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>22222</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2024</Year><Month>Apr</Month></PubDate>
          </JournalIssue>
          <Title>Unrelated Journal</Title>
        </Journal>
        <ArticleTitle>Crop rotation yields in northern climates</ArticleTitle>
        <Abstract>
          <AbstractText>A study about agriculture with no medical relevance.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>33333</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><Year>2024</Year></PubDate></JournalIssue>
          <Title>No Abstract Journal</Title>
        </Journal>
        <ArticleTitle>Dementia care without an abstract</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func testPubMed(t *testing.T, search, fetch http.HandlerFunc) *PubMedProvider {
	t.Helper()
	searchSrv := httptest.NewServer(search)
	fetchSrv := httptest.NewServer(fetch)
	t.Cleanup(searchSrv.Close)
	t.Cleanup(fetchSrv.Close)

	p := NewPubMed(slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.searchURL = searchSrv.URL
	p.fetchURL = fetchSrv.URL
	p.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

func TestPubMedProvider_FiltersIrrelevantAndAbstractless(t *testing.T) {
	p := testPubMed(t,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"esearchresult":{"idlist":["11111","22222","33333"]}}`))
		},
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(efetchFixture))
		})

	articles, err := p.LatestResearch(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1, "irrelevant and abstractless articles must be dropped")

	a := articles[0]
	assert.Equal(t, "11111", a.ID)
	assert.Equal(t, "Amyloid clearance in early Alzheimer's disease", a.Title)
	assert.Equal(t, "Background section. Findings on amyloid clearance and cognition.", a.Summary)
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, a.Authors)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), a.PublicationDate)
	assert.Equal(t, "Test Neurology Journal", a.Source)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/11111/", a.URL)
}

func TestPubMedProvider_FallsBackToCuratedOnError(t *testing.T) {
	p := testPubMed(t,
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

	articles, err := p.LatestResearch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, articles, "curated fallback must serve articles")

	curated, err := NewStatic().LatestResearch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(curated), len(articles))
}

func TestPubMedProvider_FallsBackWhenNothingRelevant(t *testing.T) {
	p := testPubMed(t,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
		},
		func(w http.ResponseWriter, _ *http.Request) {
			t.Error("efetch must not be called for an empty id list")
		})

	articles, err := p.LatestResearch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, articles)
}

func TestPubMedProvider_TreatmentsAreCurated(t *testing.T) {
	p := NewPubMed(slog.New(slog.NewTextHandler(io.Discard, nil)))
	treatments, err := p.LatestTreatments(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, treatments)
}

func TestPubMedProvider_TruncatesLongAbstractOnRuneBoundary(t *testing.T) {
	// Multi-byte runes placed so a byte-indexed cut would land mid-rune.
	abstract := "dementia: " + strings.Repeat("é", 300)
	fixture := fmt.Sprintf(`<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>44444</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><Year>2024</Year></PubDate></JournalIssue>
          <Title>Test Journal</Title>
        </Journal>
        <ArticleTitle>Dementia progression study</ArticleTitle>
        <Abstract><AbstractText>%s</AbstractText></Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`, abstract)

	p := testPubMed(t,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"esearchresult":{"idlist":["44444"]}}`))
		},
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(fixture))
		})

	articles, err := p.LatestResearch(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)

	summary := articles[0].Summary
	assert.True(t, utf8.ValidString(summary), "summary must stay valid UTF-8: %q", summary)
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.LessOrEqual(t, len(summary), maxSummaryLen)
}

func TestParseMonth(t *testing.T) {
	assert.Equal(t, time.March, parseMonth("Mar"))
	assert.Equal(t, time.March, parseMonth("march"))
	assert.Equal(t, time.September, parseMonth("09"))
	assert.Equal(t, time.January, parseMonth("bogus"))
}
