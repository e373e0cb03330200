package dto

// ==========================
// Requests
// ==========================

type CreateProfileRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      string `json:"role" validate:"required,is-user-role"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,max=500"`
	Bio       string `json:"bio" validate:"omitempty,max=2000"`
	Location  string `json:"location" validate:"omitempty,max=120"`

	TrainerFields
	CompanyFields
}

// UpdateProfileRequest - частичное обновление, nil поля не трогаются. Роль не меняется.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,max=500"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=120"`

	TrainerFields
	CompanyFields
}

type TrainerFields struct {
	Skills          []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=60"`
	Languages       []string `json:"languages,omitempty" validate:"omitempty,max=20,dive,max=60"`
	Education       []string `json:"education,omitempty" validate:"omitempty,max=20"`
	Certifications  []string `json:"certifications,omitempty" validate:"omitempty,max=20"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty" validate:"omitempty,min=0"`
	ExperienceYears *int     `json:"experience_years,omitempty" validate:"omitempty,min=0,max=70"`
}

type CompanyFields struct {
	CompanySize        *string  `json:"company_size,omitempty" validate:"omitempty,max=40"`
	FoundedYear        *int     `json:"founded_year,omitempty" validate:"omitempty,min=1800,max=2100"`
	Website            *string  `json:"website,omitempty" validate:"omitempty,url"`
	Specializations    []string `json:"specializations,omitempty" validate:"omitempty,max=30"`
	TrainingPhilosophy *string  `json:"training_philosophy,omitempty" validate:"omitempty,max=2000"`
	AffiliatedColleges []string `json:"affiliated_colleges,omitempty" validate:"omitempty,max=30"`
}

// ==========================
// Query params
// ==========================

type ProfileListQuery struct {
	Role string `form:"role" validate:"required,is-user-role"`
}
