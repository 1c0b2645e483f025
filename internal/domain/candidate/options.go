package candidate

// Options holds the closed option lists offered by the form. Values are
// passed to the estimator verbatim, so typos such as "Botony" and the
// leading space in " N" are part of the contract.
type Options struct {
	Departments               []string `json:"departments"`
	Roles                     []string `json:"roles"`
	Industries                []string `json:"industries"`
	Designations              []string `json:"designations"`
	Educations                []string `json:"educations"`
	GraduationSpecializations []string `json:"graduation_specializations"`
	PGSpecializations         []string `json:"pg_specializations"`
	PHDSpecializations        []string `json:"phd_specializations"`
	AppraisalRatings          []string `json:"appraisal_ratings"`
	InhandOffers              []string `json:"inhand_offers"`
}

// DefaultOptions returns a fresh copy of the form option lists.
func DefaultOptions() Options {
	return Options{
		Departments: []string{
			"IT-Software", "Accounts", "Top Management", "Engineering", "Education", "Banking",
			"HR", "Sales", "Healthcare", "Analytics/BI", "Marketing", "Others",
		},
		Roles: []string{
			"Consultant", "Financial Analyst", "Project Manager", "Area Sales Manager", "Team Lead",
			"Analyst", "CEO", "Business Analyst", "Sales Manager", "Bio statistician", "Scientist",
			"Research Scientist", "Head", "Associate", "Senior Researcher", "Sales Execituve",
			"Sr. Business Analyst", "Principal Analyst", "Data scientist", "Researcher",
			"Senior Analyst", "Professor", "Lab Executuve", "Others",
		},
		Industries: []string{
			"Analytics", "Training", "Aviation", "Insurance", "Retail", "FMCG", "Telecom",
			"Automobile", "IT", "BFSI", "Others",
		},
		Designations: []string{
			"HR", "Medical Officer", "Director", "Marketing Manager", "Manager", "Product Manager",
			"Consultant", "CA", "Research Scientist", "Sr.Manager", "Data Analyst",
			"Assistant Manager", "Web Designer", "Research Analyst", "Software Developer",
			"Network Engineer", "Scientist", "Others",
		},
		Educations: []string{"PG", "Doctorate", "Grad", "Under Grad"},
		GraduationSpecializations: []string{
			"NA", "Arts", "Chemistry", "Zoology", "Sociology", "Psychology", "Mathematics",
			"Engineering", "Botony", "Statistics", "Economics", "Others",
		},
		PGSpecializations: []string{
			"NA", "Zoology", "Chemistry", "Psychology", "Mathematics", "Engineering", "Sociology",
			"Arts", "Statistics", "Economics", "Botony", "Others",
		},
		PHDSpecializations: []string{
			"NA", "Chemistry", "Zoology", "Psychology", "Engineering", "Botony", "Arts",
			"Statistics", "Economics", "Mathematics", "Sociology", "Others",
		},
		AppraisalRatings: []string{"NA", "Key_Performer", "A", "B", "C", "D"},
		InhandOffers:     []string{"Y", " N"},
	}
}
