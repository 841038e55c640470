package types

// CandidateRecord is a provisional work-experience or education entry produced
// by proximity association, before sanitization. For education entries Title
// holds the degree and Org the school.
type CandidateRecord struct {
	Title       string `json:"title"`
	Org         string `json:"org"`
	DateRange   string `json:"date_range,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// PersonalInfo holds contact and identity fields extracted from a profile.
type PersonalInfo struct {
	FullName  string `json:"full_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Headline  string `json:"headline,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
}

// Certification is a named credential with an optional issuing organization.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
}

// Profile is the consolidated career-profile record returned to callers.
// Every record in it has passed validation and list fields carry no
// case-insensitive duplicates.
type Profile struct {
	Personal       PersonalInfo      `json:"personal"`
	Summary        string            `json:"summary,omitempty"`
	Experience     []CandidateRecord `json:"experience"`
	Education      []CandidateRecord `json:"education"`
	Skills         []string          `json:"skills"`
	Certifications []Certification   `json:"certifications,omitempty"`
}

// NewProfile returns an empty profile with initialized collections, so a
// failed extraction still serializes as empty arrays rather than nulls.
func NewProfile() *Profile {
	return &Profile{
		Experience:     []CandidateRecord{},
		Education:      []CandidateRecord{},
		Skills:         []string{},
		Certifications: []Certification{},
	}
}

// Clone returns a deep copy of the profile. The pipeline returns clones so
// callers never alias intermediate extraction state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Experience = append([]CandidateRecord{}, p.Experience...)
	out.Education = append([]CandidateRecord{}, p.Education...)
	out.Skills = append([]string{}, p.Skills...)
	out.Certifications = append([]Certification{}, p.Certifications...)
	return &out
}

// IsEmpty reports whether the profile carries no extracted content at all.
func (p *Profile) IsEmpty() bool {
	return p == nil ||
		(p.Personal == PersonalInfo{} &&
			p.Summary == "" &&
			len(p.Experience) == 0 &&
			len(p.Education) == 0 &&
			len(p.Skills) == 0 &&
			len(p.Certifications) == 0)
}
