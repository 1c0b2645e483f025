// Package candidate is the form boundary: it turns one submitted form
// into the record the fitted pipeline expects.
package candidate

// Column names exactly as the fitted pipeline saw them during training.
// Spelling (e.g. Curent_Location) must not be corrected.
const (
	ColIndex                    = "index"
	ColIDX                      = "IDX"
	ColApplicantID              = "Applicant_ID"
	ColTotalExperience          = "Total_Experience"
	ColTotalExperienceInField   = "Total_Experience_in_field_applied"
	ColDepartment               = "Department"
	ColRole                     = "Role"
	ColIndustry                 = "Industry"
	ColOrganization             = "Organization"
	ColDesignation              = "Designation"
	ColEducation                = "Education"
	ColGraduationSpecialization = "Graduation_Specialization"
	ColUniversityGrad           = "University_Grad"
	ColPassingYearGraduation    = "Passing_Year_Of_Graduation"
	ColPGSpecialization         = "PG_Specialization"
	ColUniversityPG             = "University_PG"
	ColPassingYearPG            = "Passing_Year_Of_PG"
	ColPHDSpecialization        = "PHD_Specialization"
	ColUniversityPHD            = "University_PHD"
	ColPassingYearPHD           = "Passing_Year_Of_PHD"
	ColCurrentLocation          = "Curent_Location"
	ColPreferredLocation        = "Preferred_location"
	ColCurrentCTC               = "Current_CTC"
	ColInhandOffer              = "Inhand_Offer"
	ColLastAppraisalRating      = "Last_Appraisal_Rating"
	ColNoOfCompaniesWorked      = "No_Of_Companies_worked"
	ColNumberOfPublications     = "Number_of_Publications"
	ColCertifications           = "Certifications"
	ColInternationalDegree      = "International_degree_any"
)

// Columns is the full record schema in order.
var Columns = []string{
	ColIndex,
	ColIDX,
	ColApplicantID,
	ColTotalExperience,
	ColTotalExperienceInField,
	ColDepartment,
	ColRole,
	ColIndustry,
	ColOrganization,
	ColDesignation,
	ColEducation,
	ColGraduationSpecialization,
	ColUniversityGrad,
	ColPassingYearGraduation,
	ColPGSpecialization,
	ColUniversityPG,
	ColPassingYearPG,
	ColPHDSpecialization,
	ColUniversityPHD,
	ColPassingYearPHD,
	ColCurrentLocation,
	ColPreferredLocation,
	ColCurrentCTC,
	ColInhandOffer,
	ColLastAppraisalRating,
	ColNoOfCompaniesWorked,
	ColNumberOfPublications,
	ColCertifications,
	ColInternationalDegree,
}

// placeholderText lists columns the form never collects; they carry "NA"
// so the fitted column set stays intact.
var placeholderText = []string{
	ColOrganization,
	ColUniversityGrad,
	ColUniversityPG,
	ColUniversityPHD,
	ColCurrentLocation,
	ColPreferredLocation,
}

// placeholderZero lists positional columns that must be present with 0.
var placeholderZero = []string{ColIndex, ColIDX}
