package candidatesim

import (
	"math/rand/v2"

	"github.com/okian/ctcpredict/internal/domain/candidate"
)

// Generation ranges.
const (
	maxExperienceYears = 25
	maxCompanies       = 8
	maxCertifications  = 4
	maxPublications    = 9
	minGraduationYear  = 1985
	maxGraduationYear  = 2022
	pgAfterGrad        = 2
	phdAfterPG         = 4
	maxCurrentCTC      = 4_000_000
	blankPercent       = 10 // chance a categorical answer is left empty
)

// Generator produces random but internally consistent candidate forms.
type Generator struct {
	rng  *rand.Rand
	opts candidate.Options
}

// NewGenerator returns a generator drawing from opts with a fixed seed.
func NewGenerator(seed uint64, opts candidate.Options) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		opts: opts,
	}
}

// Generate returns n forms with applicant ids 1..n.
func (g *Generator) Generate(n int) []candidate.Form {
	forms := make([]candidate.Form, n)
	for i := range forms {
		forms[i] = g.next(i + 1)
	}
	return forms
}

func (g *Generator) next(id int) candidate.Form {
	total := g.rng.IntN(maxExperienceYears + 1)
	f := candidate.Form{
		ApplicantID:            id,
		TotalExperience:        total,
		TotalExperienceInField: g.rng.IntN(total + 1),
		Department:             g.maybe(g.opts.Departments),
		Role:                   g.maybe(g.opts.Roles),
		Industry:               g.maybe(g.opts.Industries),
		Designation:            g.maybe(g.opts.Designations),
		Education:              g.pick(g.opts.Educations),
		Certifications:         g.rng.IntN(maxCertifications + 1),
		InternationalDegrees:   g.rng.IntN(2),
		LastAppraisalRating:    g.maybe(g.opts.AppraisalRatings),
		InhandOffer:            g.pick(g.opts.InhandOffers),
		CurrentCTC:             float64(g.rng.IntN(maxCurrentCTC)),
		NoOfCompanies:          g.rng.IntN(maxCompanies + 1),
	}
	if total == 0 {
		f.NoOfCompanies = 0
	}

	// Degree fields follow the highest education level.
	grad := minGraduationYear + g.rng.IntN(maxGraduationYear-minGraduationYear+1)
	switch f.Education {
	case "Doctorate":
		f.PassingYearPHD = intPtr(grad + pgAfterGrad + phdAfterPG)
		f.PHDSpecialization = g.pick(g.opts.PHDSpecializations)
		f.Publications = g.rng.IntN(maxPublications + 1)
		fallthrough
	case "PG":
		f.PassingYearPG = intPtr(grad + pgAfterGrad)
		f.PGSpecialization = g.pick(g.opts.PGSpecializations)
		fallthrough
	case "Grad":
		f.PassingYearGraduation = intPtr(grad)
		f.GraduationSpecialization = g.pick(g.opts.GraduationSpecializations)
	}
	return f
}

func (g *Generator) pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[g.rng.IntN(len(values))]
}

// maybe leaves the answer blank some of the time so the fill path is exercised.
func (g *Generator) maybe(values []string) string {
	if g.rng.IntN(100) < blankPercent {
		return ""
	}
	return g.pick(values)
}

func intPtr(v int) *int { return &v }
