package validation

import (
	"math"
	"strconv"
	"strings"

	"timeledger/internal/config"
	"timeledger/internal/domain"
)

// ProjectValidator provides validation for project operations
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator with default limits
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

// NewProjectValidatorWithConfig creates a project validator with configured limits
func NewProjectValidatorWithConfig(cfg *config.Config) *ProjectValidator {
	return &ProjectValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateProjectName validates a name for creation or rename and returns it trimmed
func (pv *ProjectValidator) ValidateProjectName(name string) (string, error) {
	validationError := NewValidationError()
	trimmed := pv.validator.TrimAndValidateString(name)

	if !pv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("name")
		return "", validationError
	}
	if !pv.validator.IsValidProjectNameLength(trimmed) {
		validationError.AddInvalidLengthError("name", trimmed, 1, pv.validator.ProjectNameMaxLength())
		return "", validationError
	}

	return trimmed, nil
}

// ParseTarget parses user input for a monthly hours target. Empty input
// means no target; otherwise the value must be a positive, finite number.
func (pv *ProjectValidator) ParseTarget(input string) (*float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	hours, err := strconv.ParseFloat(strings.Replace(input, ",", ".", 1), 64)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("monthly_target_hours", input, "a number of hours such as 40 or 12.5")
		return nil, validationError
	}
	if err := pv.ValidateTarget(&hours); err != nil {
		return nil, err
	}
	return &hours, nil
}

// ValidateTarget checks a monthly target; nil means no target and is valid
func (pv *ProjectValidator) ValidateTarget(target *float64) error {
	if target == nil {
		return nil
	}
	if math.IsNaN(*target) || math.IsInf(*target, 0) || *target <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("monthly_target_hours", *target, "must be a positive number of hours")
		return validationError
	}
	return nil
}

// ValidateProjectID validates a project identifier
func (pv *ProjectValidator) ValidateProjectID(id string) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("project_id", id, "UUID")
		return validationError
	}
	return nil
}

// ValidateProject validates a complete domain project
func (pv *ProjectValidator) ValidateProject(project domain.Project) error {
	validationError := NewValidationError()

	if project.ID != "" {
		validationError.Merge(pv.ValidateProjectID(project.ID))
	}
	if _, err := pv.ValidateProjectName(project.Name); err != nil {
		validationError.Merge(err)
	}
	validationError.Merge(pv.ValidateTarget(project.MonthlyTargetHours))

	return validationError.OrNil()
}
