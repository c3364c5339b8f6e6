package service

import (
	"github.com/knockknock1010/Back/model"
)

// ReportLabel is the display title and summary line attached to a
// persisted analysis report.
type ReportLabel struct {
	Title   string
	Summary string
}

var reportLabels = map[model.Category]ReportLabel{
	model.CategoryRealEstate: {
		Title:   "Housing & Lease Protection Report",
		Summary: "Deposit-fraud risk and tenant-protection analysis",
	},
	model.CategoryWork: {
		Title:   "Workplace Legal Advisory Report",
		Summary: "In-depth analysis based on labor-standards and subcontracting law",
	},
	model.CategoryConsumer: {
		Title:   "Consumer Rights Protection Report",
		Summary: "Analysis based on consumer-dispute standards and door-to-door sales law",
	},
	model.CategoryNDA: {
		Title:   "IP & Career Protection Report",
		Summary: "Analysis based on unfair-competition law and trade-secret case law",
	},
	model.CategoryGeneral: {
		Title:   "General Legal Document Report",
		Summary: "Analysis based on the good-faith principle and the act on standard terms",
	},
}

var defaultReportLabel = ReportLabel{
	Title:   "Legal Advisory Report",
	Summary: "AI legal advisory result",
}

// LabelFor returns the report label for a category. Unrecognized
// categories get a generic label; the registry has already rejected
// truly unknown ones earlier in the pipeline.
func LabelFor(category model.Category) ReportLabel {
	if label, ok := reportLabels[category]; ok {
		return label
	}
	return defaultReportLabel
}
