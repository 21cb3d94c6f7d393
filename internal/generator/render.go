// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/demres/demres-go/internal/content"
	"github.com/demres/demres-go/internal/i18n"
	"github.com/demres/demres-go/internal/util"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageData is the translated content for one language page.
type PageData struct {
	Lang       string
	Articles   []content.ResearchArticle
	Treatments []content.Treatment
	Date       time.Time
}

// archiveMeta records per-snapshot item counts next to each archived
// page so the archive index can display them later.
type archiveMeta struct {
	ResearchCount  int `json:"research_count"`
	TreatmentCount int `json:"treatment_count"`
}

// Renderer turns page data into static HTML files.
type Renderer struct {
	templates *template.Template
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{
		templates: templates,
		markdown:  goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
	}, nil
}

type langOption struct {
	Code     string
	Name     string
	Selected bool
}

type articleView struct {
	Slug    string
	Title   string
	Summary template.HTML
	Date    string
	Authors string
	URL     string
	Source  string
}

type treatmentView struct {
	Slug        string
	Name        string
	Description template.HTML
	StatusLabel string
	StatusClass string
	Year        string
	URL         string
}

type pageView struct {
	Lang        string
	LangName    string
	Languages   []langOption
	UI          map[string]string
	Articles    []articleView
	Treatments  []treatmentView
	UpdateDate  string
	CurrentYear int
	IsArchived  bool
	ArchiveDate string
}

type archiveMonthView struct {
	Folder         string
	DisplayName    string
	ItemCount      int
	ResearchCount  int
	TreatmentCount int
}

type archiveIndexView struct {
	Lang        string
	LangName    string
	Languages   []langOption
	UI          map[string]string
	Months      []archiveMonthView
	CurrentYear int
}

func languageOptions(catalog *i18n.Catalog, current string) []langOption {
	opts := make([]langOption, 0, len(catalog.Languages()))
	for _, code := range catalog.Languages() {
		opts = append(opts, langOption{
			Code:     code,
			Name:     i18n.LanguageName(code),
			Selected: code == current,
		})
	}
	return opts
}

// renderText converts a markdown-capable text body into sanitized HTML.
func (r *Renderer) renderText(s string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes()))
}

func (r *Renderer) articleViews(articles []content.ResearchArticle, lang string) []articleView {
	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		authors := strings.Join(firstN(a.Authors, 2), ", ")
		if len(a.Authors) > 2 {
			authors += " et al."
		}
		views = append(views, articleView{
			Slug:    util.Slugify(a.Title),
			Title:   a.Title,
			Summary: r.renderText(a.Summary),
			Date:    i18n.FormatDate(a.PublicationDate, lang),
			Authors: authors,
			URL:     a.URL,
			Source:  a.Source,
		})
	}
	return views
}

func (r *Renderer) treatmentViews(ui map[string]string, treatments []content.Treatment) []treatmentView {
	views := make([]treatmentView, 0, len(treatments))
	for _, t := range treatments {
		var label, class string
		switch t.Status {
		case content.StatusApproved:
			label, class = ui["status_approved"], "bg-green-100 text-green-800"
		case content.StatusClinicalTrial:
			label, class = ui["status_trial"], "bg-yellow-100 text-yellow-800"
		default:
			label, class = ui["status_research"], "bg-blue-100 text-blue-800"
		}
		var year string
		if t.ApprovalDate != nil {
			year = strconv.Itoa(t.ApprovalDate.Year())
		}
		views = append(views, treatmentView{
			Slug:        util.Slugify(t.Name),
			Name:        t.Name,
			Description: r.renderText(t.Description),
			StatusLabel: label,
			StatusClass: class,
			Year:        year,
			URL:         t.URL,
		})
	}
	return views
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (r *Renderer) pageView(catalog *i18n.Catalog, page PageData, archived bool) pageView {
	ui := catalog.UI(page.Lang)
	formatted := i18n.FormatDate(page.Date, page.Lang)
	return pageView{
		Lang:        page.Lang,
		LangName:    i18n.LanguageName(page.Lang),
		Languages:   languageOptions(catalog, page.Lang),
		UI:          ui,
		Articles:    r.articleViews(page.Articles, page.Lang),
		Treatments:  r.treatmentViews(ui, page.Treatments),
		UpdateDate:  formatted,
		CurrentYear: page.Date.Year(),
		IsArchived:  archived,
		ArchiveDate: formatted,
	}
}

// writeFile renders to memory first so a template error never leaves a
// truncated page behind, then writes in one shot.
func (r *Renderer) writeFile(name string, data any, path string) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteLanguagePage writes the current page for one language.
func (r *Renderer) WriteLanguagePage(catalog *i18n.Catalog, page PageData, path string) error {
	return r.writeFile("language_page.html.tmpl", r.pageView(catalog, page, false), path)
}

// WriteArchivedPage writes a monthly snapshot of the page plus a
// metadata file with its item counts.
func (r *Renderer) WriteArchivedPage(catalog *i18n.Catalog, page PageData, dir string) error {
	if err := r.writeFile("language_page.html.tmpl", r.pageView(catalog, page, true),
		filepath.Join(dir, "index.html")); err != nil {
		return err
	}
	meta := archiveMeta{
		ResearchCount:  len(page.Articles),
		TreatmentCount: len(page.Treatments),
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "meta.json"), data, 0o644)
}

// WriteArchiveIndex scans langDir/archive for monthly snapshots and
// writes the localized archive listing, newest month first.
func (r *Renderer) WriteArchiveIndex(catalog *i18n.Catalog, lang, langDir string, currentYear int) error {
	months, err := collectArchiveMonths(filepath.Join(langDir, "archive"), lang)
	if err != nil {
		return err
	}
	view := archiveIndexView{
		Lang:        lang,
		LangName:    i18n.LanguageName(lang),
		Languages:   languageOptions(catalog, lang),
		UI:          catalog.UI(lang),
		Months:      months,
		CurrentYear: currentYear,
	}
	return r.writeFile("archive_page.html.tmpl", view, filepath.Join(langDir, "archive", "index.html"))
}

func collectArchiveMonths(archiveDir, lang string) ([]archiveMonthView, error) {
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var months []archiveMonthView
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, month, ok := parseArchiveFolder(entry.Name())
		if !ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(archiveDir, entry.Name(), "index.html")); err != nil {
			continue
		}

		view := archiveMonthView{
			Folder:      entry.Name(),
			DisplayName: i18n.FormatMonthYear(year, month, lang),
		}
		if data, err := os.ReadFile(filepath.Join(archiveDir, entry.Name(), "meta.json")); err == nil {
			var meta archiveMeta
			if json.Unmarshal(data, &meta) == nil {
				view.ResearchCount = meta.ResearchCount
				view.TreatmentCount = meta.TreatmentCount
				view.ItemCount = meta.ResearchCount + meta.TreatmentCount
			}
		}
		months = append(months, view)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Folder > months[j].Folder
	})
	return months, nil
}

// parseArchiveFolder validates a YYYY-MM folder name.
func parseArchiveFolder(name string) (int, time.Month, bool) {
	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 2000 || year > 9999 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
