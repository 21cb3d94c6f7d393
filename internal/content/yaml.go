// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider reads editorial content from a YAML file maintained by
// hand. The file is re-read on every call, so edits take effect on the
// next content refresh without a restart.
type YAMLProvider struct {
	path string
}

type yamlContentFile struct {
	Research   []ResearchArticle `yaml:"research"`
	Treatments []Treatment       `yaml:"treatments"`
}

// NewYAML creates a provider backed by the YAML file at path.
func NewYAML(path string) *YAMLProvider {
	return &YAMLProvider{path: path}
}

func (p *YAMLProvider) load() (*yamlContentFile, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	var file yamlContentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse content file %s: %w", p.path, err)
	}
	return &file, nil
}

// LatestResearch implements Provider.
func (p *YAMLProvider) LatestResearch(_ context.Context) ([]ResearchArticle, error) {
	file, err := p.load()
	if err != nil {
		return nil, err
	}
	return dedupeArticles(file.Research), nil
}

// LatestTreatments implements Provider.
func (p *YAMLProvider) LatestTreatments(_ context.Context) ([]Treatment, error) {
	file, err := p.load()
	if err != nil {
		return nil, err
	}
	for i := range file.Treatments {
		switch file.Treatments[i].Status {
		case StatusApproved, StatusClinicalTrial, StatusResearch:
		case "in_trial":
			// Accepted alias from older content files.
			file.Treatments[i].Status = StatusClinicalTrial
		default:
			return nil, fmt.Errorf("content file %s: treatment %q has unknown status %q",
				p.path, file.Treatments[i].ID, file.Treatments[i].Status)
		}
	}
	return dedupeTreatments(file.Treatments), nil
}
