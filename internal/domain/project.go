package domain

import (
	"strings"
	"time"
)

// Project represents a project that time entries are recorded against.
type Project struct {
	ID                 string
	Name               string
	CreatedAt          time.Time
	Archived           bool
	MonthlyTargetHours *float64
}

// NewProject creates a new active Project. The name is trimmed.
func NewProject(id string, name string, monthlyTargetHours *float64, createdAt time.Time) Project {
	return Project{
		ID:                 id,
		Name:               strings.TrimSpace(name),
		CreatedAt:          createdAt,
		MonthlyTargetHours: monthlyTargetHours,
	}
}

// MonthlyTarget returns the monthly target in hours. A missing or
// non-positive target means the project does not track a target.
func (p Project) MonthlyTarget() (float64, bool) {
	if p.MonthlyTargetHours == nil || *p.MonthlyTargetHours <= 0 {
		return 0, false
	}
	return *p.MonthlyTargetHours, true
}

// IsValid checks if the project has valid data.
func (p Project) IsValid() bool {
	return strings.TrimSpace(p.Name) != ""
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}
