package candidate

import (
	"errors"
	"fmt"

	"github.com/okian/ctcpredict/internal/domain/frame"
)

// Passing year bounds enforced by the form.
const (
	MinPassingYear = 1900
	MaxPassingYear = 3000
)

// ErrInvalidForm is returned by Validate for out-of-range inputs.
var ErrInvalidForm = errors.New("invalid form")

// Form mirrors the inputs of the submission form. Passing years are
// optional: a candidate without a doctorate leaves Passing_Year_Of_PHD out.
type Form struct {
	ApplicantID            int `json:"applicant_id"`
	TotalExperience        int `json:"total_experience"`
	TotalExperienceInField int `json:"total_experience_in_field"`

	Department  string `json:"department"`
	Role        string `json:"role"`
	Industry    string `json:"industry"`
	Designation string `json:"designation"`

	Education                string `json:"education"`
	PassingYearGraduation    *int   `json:"passing_year_graduation,omitempty"`
	GraduationSpecialization string `json:"graduation_specialization"`
	PassingYearPG            *int   `json:"passing_year_pg,omitempty"`
	PGSpecialization         string `json:"pg_specialization"`
	PassingYearPHD           *int   `json:"passing_year_phd,omitempty"`
	PHDSpecialization        string `json:"phd_specialization"`
	Certifications           int    `json:"certifications"`
	Publications             int    `json:"publications"`
	InternationalDegrees     int    `json:"international_degrees"`

	LastAppraisalRating string  `json:"last_appraisal_rating"`
	InhandOffer         string  `json:"inhand_offer"`
	CurrentCTC          float64 `json:"current_ctc"`
	NoOfCompanies       int     `json:"no_of_companies"`
}

// Validate applies the form's own input bounds. Categorical values are
// not checked against the option lists; the estimator owns that.
func (f Form) Validate() error {
	years := []struct {
		name string
		v    *int
	}{
		{"passing_year_graduation", f.PassingYearGraduation},
		{"passing_year_pg", f.PassingYearPG},
		{"passing_year_phd", f.PassingYearPHD},
	}
	for _, y := range years {
		if y.v != nil && (*y.v < MinPassingYear || *y.v > MaxPassingYear) {
			return fmt.Errorf("%w: %s must be within [%d, %d]", ErrInvalidForm, y.name, MinPassingYear, MaxPassingYear)
		}
	}

	counts := []struct {
		name string
		v    int
	}{
		{"total_experience", f.TotalExperience},
		{"total_experience_in_field", f.TotalExperienceInField},
		{"certifications", f.Certifications},
		{"publications", f.Publications},
		{"international_degrees", f.InternationalDegrees},
		{"no_of_companies", f.NoOfCompanies},
	}
	for _, c := range counts {
		if c.v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidForm, c.name)
		}
	}
	if f.CurrentCTC < 0 {
		return fmt.Errorf("%w: current_ctc must not be negative", ErrInvalidForm)
	}
	return nil
}

// Record assembles the record handed to the pipeline. Empty categorical
// inputs and absent passing years become missing cells.
func (f Form) Record() frame.Record {
	rec := frame.Record{
		ColApplicantID:              frame.Int(f.ApplicantID),
		ColTotalExperience:          frame.Int(f.TotalExperience),
		ColTotalExperienceInField:   frame.Int(f.TotalExperienceInField),
		ColDepartment:               text(f.Department),
		ColRole:                     text(f.Role),
		ColIndustry:                 text(f.Industry),
		ColDesignation:              text(f.Designation),
		ColEducation:                text(f.Education),
		ColGraduationSpecialization: text(f.GraduationSpecialization),
		ColPassingYearGraduation:    year(f.PassingYearGraduation),
		ColPGSpecialization:         text(f.PGSpecialization),
		ColPassingYearPG:            year(f.PassingYearPG),
		ColPHDSpecialization:        text(f.PHDSpecialization),
		ColPassingYearPHD:           year(f.PassingYearPHD),
		ColCurrentCTC:               frame.Number(f.CurrentCTC),
		ColInhandOffer:              text(f.InhandOffer),
		ColLastAppraisalRating:      text(f.LastAppraisalRating),
		ColNoOfCompaniesWorked:      frame.Int(f.NoOfCompanies),
		ColNumberOfPublications:     frame.Int(f.Publications),
		ColCertifications:           frame.Int(f.Certifications),
		ColInternationalDegree:      frame.Int(f.InternationalDegrees),
	}
	for _, c := range placeholderZero {
		rec[c] = frame.Int(0)
	}
	for _, c := range placeholderText {
		rec[c] = frame.Text("NA")
	}
	return rec
}

// Frame wraps the form's record as a single-row batch in schema order.
func (f Form) Frame() *frame.Frame {
	return frame.FromRecords(Columns, f.Record())
}

// text keeps the value verbatim; only the empty string is missing.
func text(s string) frame.Value {
	if s == "" {
		return frame.Missing()
	}
	return frame.Text(s)
}

func year(y *int) frame.Value {
	if y == nil {
		return frame.Missing()
	}
	return frame.Int(*y)
}
