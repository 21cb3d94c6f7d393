// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"time"
)

// StaticProvider serves a curated, hand-maintained content set. It is the
// default source and the fallback when live sources are unreachable.
type StaticProvider struct{}

// NewStatic creates the curated content provider.
func NewStatic() *StaticProvider {
	return &StaticProvider{}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// LatestResearch implements Provider.
func (p *StaticProvider) LatestResearch(_ context.Context) ([]ResearchArticle, error) {
	return dedupeArticles([]ResearchArticle{
		{
			ID:              "lecanemab_clarity",
			Title:           "Lecanemab in Early Alzheimer's Disease",
			Summary:         "The CLARITY AD phase 3 trial showed that lecanemab, an antibody targeting amyloid-beta protofibrils, slowed cognitive decline by 27% over 18 months in participants with early Alzheimer's disease. The results supported regulatory approval in several regions and renewed interest in amyloid-targeting therapies.",
			PublicationDate: date(2023, time.January, 5),
			Authors:         []string{"Christopher H. van Dyck", "Chad J. Swanson", "Paul Aisen"},
			URL:             "https://www.nejm.org/doi/full/10.1056/NEJMoa2212948",
			Source:          "The New England Journal of Medicine",
		},
		{
			ID:              "ptau217_biomarker",
			Title:           "Blood Phospho-Tau217 as a Diagnostic Biomarker for Alzheimer's Disease",
			Summary:         "Plasma p-tau217 measurements distinguish Alzheimer's disease from other neurodegenerative disorders with accuracy approaching cerebrospinal fluid and PET based methods. A simple blood test could make early diagnosis accessible far beyond specialist memory clinics.",
			PublicationDate: date(2024, time.February, 12),
			Authors:         []string{"Oskar Hansson", "Sebastian Palmqvist"},
			URL:             "https://jamanetwork.com/journals/jamaneurology",
			Source:          "JAMA Neurology",
		},
		{
			ID:              "finger_lifestyle",
			Title:           "Multidomain Lifestyle Intervention and Cognitive Function: the FINGER Trial",
			Summary:         "The Finnish FINGER trial demonstrated that a combined intervention of diet, exercise, cognitive training and vascular risk monitoring can maintain or improve cognitive functioning in older adults at elevated risk of dementia. Follow-up studies across Europe are testing the model at larger scale.",
			PublicationDate: date(2023, time.June, 20),
			Authors:         []string{"Miia Kivipelto", "Tiia Ngandu", "Alina Solomon"},
			URL:             "https://alzheimer-europe.org/research/finger-study",
			Source:          "Alzheimer Europe",
		},
		{
			ID:              "gamma_40hz",
			Title:           "Gamma Frequency Sensory Stimulation and Amyloid Load",
			Summary:         "Exposure to 40Hz light and sound stimulation entrains gamma oscillations in the brain and, in animal models, reduces amyloid plaque burden and improves memory performance. Early human studies suggest the approach is safe and may preserve brain volume in mild Alzheimer's disease.",
			PublicationDate: date(2024, time.April, 3),
			Authors:         []string{"Li-Huei Tsai", "Ed Boyden"},
			URL:             "https://picower.mit.edu/research",
			Source:          "MIT Picower Institute",
		},
		{
			ID:              "glp1_neuroprotection",
			Title:           "GLP-1 Receptor Agonists and Neuroprotection in Dementia",
			Summary:         "Diabetes drugs of the GLP-1 class, including semaglutide, are associated with lower dementia incidence in large cohort studies. Randomized trials are now testing whether the anti-inflammatory and metabolic effects of these drugs translate into slower cognitive decline in Alzheimer's disease.",
			PublicationDate: date(2024, time.August, 15),
			Authors:         []string{"Ivan Koychev", "Paul Edison"},
			URL:             "https://www.brightfocus.org/resource/can-glp-1-weight-loss-drugs-treat-alzheimers/",
			Source:          "BrightFocus Foundation",
		},
	}), nil
}

// LatestTreatments implements Provider.
func (p *StaticProvider) LatestTreatments(_ context.Context) ([]Treatment, error) {
	return dedupeTreatments([]Treatment{
		{
			ID:           "lecanemab_eu",
			Name:         "Lecanemab (Leqembi)",
			Description:  "Lecanemab is a humanized IgG1 monoclonal antibody that targets aggregated soluble protofibrils and insoluble forms of amyloid-beta. Clinical trials showed it slowed cognitive decline by 27% over 18 months in early Alzheimer's patients. Approved by EMA in 2024.",
			Status:       StatusApproved,
			ApprovalDate: datePtr(2024, time.November, 14),
			URL:          "https://www.ema.europa.eu/en/medicines/human/EPAR/leqembi",
			Source:       "European Medicines Agency",
		},
		{
			ID:          "donanemab_eu",
			Name:        "Donanemab",
			Description: "Donanemab is a monoclonal antibody targeting a modified form of deposited amyloid-beta plaques. Phase 3 trials show it slowed cognitive decline by up to 35% in early symptomatic Alzheimer's disease. EMA review is ongoing for European approval.",
			Status:      StatusClinicalTrial,
			URL:         "https://www.ema.europa.eu/en/medicines/human/summaries-opinion/donanemab",
			Source:      "European Medicines Agency",
		},
		{
			ID:          "brightfocus_glp1",
			Name:        "GLP-1 Receptor Agonists for Alzheimer's",
			Description: "GLP-1 analogs, originally developed for diabetes and weight loss, show promise for Alzheimer's treatment. Research suggests these drugs may protect brain health, improve memory, and slow neurodegeneration by reducing inflammation and supporting brain cell survival.",
			Status:      StatusResearch,
			URL:         "https://www.brightfocus.org/resource/can-glp-1-weight-loss-drugs-treat-alzheimers/",
			Source:      "BrightFocus Foundation",
		},
		{
			ID:          "brightfocus_light_sound",
			Name:        "40Hz Light and Sound Stimulation (HOPE Study)",
			Description: "Non-invasive therapy using 40Hz frequency light and sound stimulation to target gamma brain waves. The HOPE Study investigates how this therapy may protect memory, thinking abilities, and daily function in Alzheimer's patients by potentially reducing harmful brain proteins.",
			Status:      StatusClinicalTrial,
			URL:         "https://www.brightfocus.org/resource/non-invasive-light-and-sound-stimulation-therapy-in-alzheimers-update-on-hope-study/",
			Source:      "BrightFocus Foundation",
		},
		{
			ID:          "brightfocus_regenbrain",
			Name:        "ReGenBRAIN: Brain Regeneration Therapy",
			Description: "The ReGenBRAIN clinical trial explores whether brain tissue can be regenerated in Alzheimer's patients. This approach investigates therapies that may stimulate brain cell regeneration and repair damaged neural networks.",
			Status:      StatusClinicalTrial,
			URL:         "https://www.brightfocus.org/resource/can-brain-tissue-be-regenerated-inside-the-regenbrain-trial/",
			Source:      "BrightFocus Foundation",
		},
		{
			ID:          "light_therapy_eu",
			Name:        "LUMIPOSA Light Therapy",
			Description: "The LUMIPOSA trial at Charité Berlin investigates 40Hz invisible spectral light therapy for mild to moderate Alzheimer's. The study uses gamma frequency light stimulation to potentially reduce amyloid plaques and improve cognitive function through non-invasive brain stimulation.",
			Status:      StatusClinicalTrial,
			URL:         "https://www.clinicaltrialsregister.eu/ctr-search/search?query=NCT05955534",
			Source:      "EU Clinical Trials Register",
		},
		{
			ID:          "mediterranean_diet_eu",
			Name:        "Mediterranean-DASH Diet (MIND)",
			Description: "European multicenter trials (FINGER, LipiDiDiet) demonstrate that the MIND diet, combining Mediterranean and DASH diets, may slow cognitive decline. The diet emphasizes olive oil, fish, vegetables, berries, and nuts while limiting red meat and saturated fats.",
			Status:      StatusResearch,
			URL:         "https://alzheimer-europe.org/research/finger-study",
			Source:      "Alzheimer Europe",
		},
		{
			ID:          "gantenerumab_eu",
			Name:        "Gantenerumab",
			Description: "Gantenerumab is a fully human IgG1 monoclonal antibody designed to bind aggregated amyloid-beta. Despite initial setbacks, European trials continue with higher dosing regimens. Recent studies show some promise in reducing amyloid plaques in early Alzheimer's disease.",
			Status:      StatusClinicalTrial,
			URL:         "https://www.ema.europa.eu/en/medicines/human/summaries-opinion/gantenerumab",
			Source:      "European Medicines Agency",
		},
		{
			ID:          "tdcs_eu",
			Name:        "Transcranial Direct Current Stimulation (tDCS)",
			Description: "European research centers investigate non-invasive tDCS therapy for Alzheimer's. Low-intensity electrical stimulation targets brain regions involved in memory and cognition. Multiple EU trials show modest improvements in cognitive performance and daily functioning.",
			Status:      StatusResearch,
			URL:         "https://www.alzheimer-europe.org/research/understanding-dementia-research/types-research/non-drug-research",
			Source:      "Alzheimer Europe",
		},
		{
			ID:           "memantine_extended_eu",
			Name:         "Memantine Extended-Release Combinations",
			Description:  "European trials investigate extended-release memantine, an NMDA receptor antagonist, combined with acetylcholinesterase inhibitors for moderate to severe Alzheimer's. Studies focus on optimized dosing schedules and combination therapies to maximize cognitive benefits.",
			Status:       StatusApproved,
			ApprovalDate: datePtr(2002, time.May, 15),
			URL:          "https://www.ema.europa.eu/en/medicines/human/EPAR/ebixa",
			Source:       "European Medicines Agency",
		},
	}), nil
}
