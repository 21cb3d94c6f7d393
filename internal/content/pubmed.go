// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	pubmedSearchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedFetchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	pubmedTerm      = "(Alzheimer's disease OR dementia OR cognitive decline OR neurodegenerative)"

	maxArticles    = 10
	maxSummaryLen  = 500
	maxAuthorCount = 3
)

// Keywords that mark an article as relevant to the site's topic. PubMed
// search terms are broad, so results are filtered again by title and
// abstract before publication.
var relevantKeywords = []string{
	"alzheimer", "dementia", "cognitive decline", "cognitive impairment",
	"memory loss", "neurodegenerative", "amyloid", "tau protein",
	"mild cognitive impairment", "mci", "frontotemporal", "vascular dementia",
	"lewy body", "parkinson", "neurodegeneration",
}

// PubMedProvider fetches research articles live from the NCBI E-utilities
// API. Treatments come from the curated set; when the article fetch fails
// the curated articles are served instead, so page generation never starts
// from an empty site.
type PubMedProvider struct {
	client    *http.Client
	searchURL string
	fetchURL  string
	fallback  *StaticProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewPubMed creates the live research provider.
func NewPubMed(logger *slog.Logger) *PubMedProvider {
	return &PubMedProvider{
		client:    &http.Client{Timeout: 30 * time.Second},
		searchURL: pubmedSearchURL,
		fetchURL:  pubmedFetchURL,
		fallback:  NewStatic(),
		logger:    logger,
		now:       time.Now,
	}
}

// LatestResearch implements Provider.
func (p *PubMedProvider) LatestResearch(ctx context.Context) ([]ResearchArticle, error) {
	articles, err := p.fetchArticles(ctx)
	if err != nil {
		p.logger.Warn("pubmed fetch failed, serving curated articles", "error", err)
		return p.fallback.LatestResearch(ctx)
	}
	if len(articles) == 0 {
		p.logger.Warn("pubmed returned no relevant articles, serving curated articles")
		return p.fallback.LatestResearch(ctx)
	}
	return dedupeArticles(articles), nil
}

// LatestTreatments implements Provider.
// TODO: fetch live trials from the ClinicalTrials.gov v2 API once its bot
// detection stops rejecting unauthenticated server-side clients.
func (p *PubMedProvider) LatestTreatments(ctx context.Context) ([]Treatment, error) {
	return p.fallback.LatestTreatments(ctx)
}

func (p *PubMedProvider) fetchArticles(ctx context.Context) ([]ResearchArticle, error) {
	// Fetch more than needed so the relevance filter can discard freely.
	ids, err := p.search(ctx, maxArticles*3)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return p.fetch(ctx, ids)
}

func (p *PubMedProvider) search(ctx context.Context, count int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", pubmedTerm)
	params.Set("retmax", strconv.Itoa(count))
	params.Set("sort", "pub_date")
	params.Set("retmode", "json")

	body, err := p.get(ctx, p.searchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse esearch response: %w", err)
	}
	return result.ESearchResult.IDList, nil
}

type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID    string `xml:"MedlineCitation>PMID"`
	Title   string `xml:"MedlineCitation>Article>ArticleTitle"`
	Journal string `xml:"MedlineCitation>Article>Journal>Title"`
	Abstract []struct {
		Text string `xml:",chardata"`
	} `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Authors []struct {
		LastName string `xml:"LastName"`
		ForeName string `xml:"ForeName"`
	} `xml:"MedlineCitation>Article>AuthorList>Author"`
	PubDate struct {
		Year  string `xml:"Year"`
		Month string `xml:"Month"`
		Day   string `xml:"Day"`
	} `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate"`
}

func (p *PubMedProvider) fetch(ctx context.Context, ids []string) ([]ResearchArticle, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := p.get(ctx, p.fetchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var set pubmedArticleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parse efetch response: %w", err)
	}

	articles := make([]ResearchArticle, 0, maxArticles)
	for _, raw := range set.Articles {
		article, ok := p.convert(raw)
		if !ok {
			continue
		}
		articles = append(articles, article)
		if len(articles) >= maxArticles {
			break
		}
	}
	return articles, nil
}

func (p *PubMedProvider) convert(raw pubmedArticle) (ResearchArticle, bool) {
	var parts []string
	for _, n := range raw.Abstract {
		if s := strings.TrimSpace(n.Text); s != "" {
			parts = append(parts, s)
		}
	}
	abstract := strings.Join(parts, " ")
	if abstract == "" {
		return ResearchArticle{}, false
	}
	if !isRelevant(raw.Title, abstract) {
		return ResearchArticle{}, false
	}
	if len(abstract) > maxSummaryLen {
		// Cut on a rune boundary, abstracts are not pure ASCII.
		cut := maxSummaryLen - 3
		for cut > 0 && !utf8.RuneStart(abstract[cut]) {
			cut--
		}
		abstract = abstract[:cut] + "..."
	}

	var authors []string
	for _, a := range raw.Authors {
		if a.LastName == "" {
			continue
		}
		authors = append(authors, strings.TrimSpace(a.ForeName+" "+a.LastName))
		if len(authors) >= maxAuthorCount {
			break
		}
	}
	if len(authors) == 0 {
		authors = []string{"Author information not available"}
	}

	source := raw.Journal
	if source == "" {
		source = "PubMed"
	}

	return ResearchArticle{
		ID:              raw.PMID,
		Title:           raw.Title,
		Summary:         abstract,
		PublicationDate: p.parseDate(raw.PubDate.Year, raw.PubDate.Month, raw.PubDate.Day),
		Authors:         authors,
		URL:             fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", raw.PMID),
		Source:          source,
	}, true
}

func (p *PubMedProvider) parseDate(year, month, day string) time.Time {
	y, err := strconv.Atoi(year)
	if err != nil {
		return p.now()
	}
	m := parseMonth(month)
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		d = 1
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Month() != m {
		// Day overflowed the month, fall back to the first.
		t = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

func parseMonth(s string) time.Month {
	switch strings.ToLower(s) {
	case "jan", "january", "1", "01":
		return time.January
	case "feb", "february", "2", "02":
		return time.February
	case "mar", "march", "3", "03":
		return time.March
	case "apr", "april", "4", "04":
		return time.April
	case "may", "5", "05":
		return time.May
	case "jun", "june", "6", "06":
		return time.June
	case "jul", "july", "7", "07":
		return time.July
	case "aug", "august", "8", "08":
		return time.August
	case "sep", "september", "9", "09":
		return time.September
	case "oct", "october", "10":
		return time.October
	case "nov", "november", "11":
		return time.November
	case "dec", "december", "12":
		return time.December
	default:
		return time.January
	}
}

func isRelevant(title, abstract string) bool {
	text := strings.ToLower(title + " " + abstract)
	for _, kw := range relevantKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (p *PubMedProvider) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pubmed api status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}
