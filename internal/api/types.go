package api

import (
	"timeledger/internal/domain"
	"timeledger/internal/report"
	"timeledger/internal/target"
)

// Session is a timer entry together with its project.
type Session struct {
	Project        *domain.Project   `json:"project"`
	Entry          *domain.TimeEntry `json:"entry"`
	ElapsedSeconds int64             `json:"elapsed_seconds"`
}

// PeriodView is an aggregated period ready for display.
type PeriodView struct {
	Label        string             `json:"label"`
	Report       report.PeriodReport `json:"report"`
	ProjectNames map[string]string  `json:"project_names"`
}

// ProjectName resolves an entry's project for display.
func (v *PeriodView) ProjectName(entry domain.TimeEntry) string {
	if entry.ProjectID == nil {
		return ""
	}
	return v.ProjectNames[*entry.ProjectID]
}

// TargetStatus is a project's standing against its monthly target.
// HasTarget is false when the project carries no positive target.
type TargetStatus struct {
	Project     *domain.Project    `json:"project"`
	HasTarget   bool               `json:"has_target"`
	Calculation target.Calculation `json:"calculation"`
}

// ProjectUpdate lists the fields of a project edit; nil fields are kept.
// ClearTarget removes the monthly target.
type ProjectUpdate struct {
	Name        *string
	Target      *float64
	ClearTarget bool
}
