// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the editorial data model and the providers
// that supply research articles and treatment records.
package content

import "time"

// Treatment status values.
const (
	StatusApproved      = "approved"
	StatusClinicalTrial = "clinical_trial"
	StatusResearch      = "research"
)

// ResearchArticle is a single research news item.
type ResearchArticle struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Summary         string    `json:"summary" yaml:"summary"`
	PublicationDate time.Time `json:"publication_date" yaml:"publication_date"`
	Authors         []string  `json:"authors" yaml:"authors"`
	URL             string    `json:"url" yaml:"url"`
	Source          string    `json:"source" yaml:"source"`
}

// TranslatableFields implements Translatable. Titles and summaries are
// translated; authors, URLs and source names are kept verbatim.
func (a *ResearchArticle) TranslatableFields() []*string {
	return []*string{&a.Title, &a.Summary}
}

// Treatment is a treatment or clinical trial record.
type Treatment struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description" yaml:"description"`
	Status       string     `json:"status" yaml:"status"`
	ApprovalDate *time.Time `json:"approval_date,omitempty" yaml:"approval_date,omitempty"`
	URL          string     `json:"url" yaml:"url"`
	Source       string     `json:"source" yaml:"source"`
}

// TranslatableFields implements Translatable. The status stays a machine
// token; its display label comes from the UI catalog.
func (t *Treatment) TranslatableFields() []*string {
	return []*string{&t.Name, &t.Description}
}

// Translatable is implemented by records whose text fields can be
// rewritten in place by the page generator. Implementations return
// pointers into the receiver, so callers must work on copies when the
// original must stay untouched.
type Translatable interface {
	TranslatableFields() []*string
}
