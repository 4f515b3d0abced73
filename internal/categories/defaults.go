package categories

// Unknown is the sentinel category for values outside a closed vocabulary.
const Unknown = "Unknown"

// CustomerAgeRanges is the customer age vocabulary that census age bands map onto.
var CustomerAgeRanges = []string{"18-24", "23 to 30", "30 to 40", "40 to 55", "55 to 65", "65 and over", Unknown}

// EducationLevels is the shared education vocabulary both tables land on.
var EducationLevels = []string{"High School", "University", "Professional", "PhD", "Grade 11 or Lower", Unknown}

// DefaultMappings returns the mapping tables that align the customer and
// census vocabularies.
func DefaultMappings() Mappings {
	return Mappings{
		// Census age bands are finer than the customer ranges.
		CensusAge: CategoryMap{
			Attribute: "AGE",
			Values: map[string]string{
				"18-24":   "18-24",
				"25-29":   "23 to 30",
				"30-34":   "30 to 40",
				"35-39":   "30 to 40",
				"40-44":   "40 to 55",
				"45-54":   "40 to 55",
				"55-64":   "55 to 65",
				"65-74":   "65 and over",
				"75+":     "65 and over",
				"Unknown": Unknown,
			},
			Unknown: PolicySentinel,
		},
		CensusMaritalStatus: CategoryMap{
			Attribute: "MARITAL_STATUS",
			Values: map[string]string{
				"Divorced or Separated": "Divorced",
			},
			Unknown: PolicyPassThrough,
		},
		CensusEducation: CategoryMap{
			Attribute: "EDUCATION",
			Values: map[string]string{
				"Professional Degree": "Professional",
				"Doctorate Degree":    "PhD",
			},
			Unknown: PolicyPassThrough,
		},
		CustomerEducation: CategoryMap{
			Attribute: "EDUCATION_LEVEL",
			Values: map[string]string{
				"College": "University",
			},
			Unknown: PolicyPassThrough,
		},
		// Census only distinguishes Employed, Unemployed and Not in Labor Force.
		CustomerEmployment: CategoryMap{
			Attribute: "EMPLOYMENT_STATUS",
			Values: map[string]string{
				"Selfemployed": "Employed",
				"Homemaker":    "Not in Labor Force",
				"Retired":      "Not in Labor Force",
			},
			Unknown: PolicyPassThrough,
		},
		Income: IncomeBands{
			Edges:  []float64{0, 15000, 35000, 75000, 125000, 200000},
			Labels: []string{"Under 15k", "15k-35k", "35k-75k", "75k-125k", "125k-200k", "200K+"},
		},
		LocationUnknown: PolicySentinel,
	}
}
