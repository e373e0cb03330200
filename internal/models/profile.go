package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Profile - публичные данные пользователя. ID совпадает с ID учетной записи
// у провайдера аутентификации.
type Profile struct {
	BaseModel
	Name      string   `gorm:"not null;default:''" json:"name"`
	Email     string   `gorm:"index" json:"email"`
	Role      UserRole `gorm:"type:varchar(20);index" json:"role"`
	AvatarURL string   `json:"avatar_url"`
	Bio       string   `json:"bio"`
	Location  string   `json:"location"`

	// Поля тренера
	Skills          datatypes.JSON `json:"skills,omitempty"`
	Languages       datatypes.JSON `json:"languages,omitempty"`
	Education       datatypes.JSON `json:"education,omitempty"`
	Certifications  datatypes.JSON `json:"certifications,omitempty"`
	HourlyRate      *float64       `json:"hourly_rate,omitempty"`
	ExperienceYears *int           `json:"experience_years,omitempty"`

	// Поля компании
	CompanySize        string         `json:"company_size,omitempty"`
	FoundedYear        *int           `json:"founded_year,omitempty"`
	Website            string         `json:"website,omitempty"`
	Specializations    datatypes.JSON `json:"specializations,omitempty"`
	TrainingPhilosophy string         `json:"training_philosophy,omitempty"`
	AffiliatedColleges datatypes.JSON `json:"affiliated_colleges,omitempty"`
}

// CompanySummary - проекция для списка компаний
type CompanySummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// GetSkills возвращает навыки тренера как slice строк
func (p *Profile) GetSkills() []string {
	return decodeList(p.Skills)
}

func (p *Profile) SetSkills(skills []string) {
	p.Skills = EncodeList(skills)
}

func (p *Profile) GetSpecializations() []string {
	return decodeList(p.Specializations)
}

func (p *Profile) SetSpecializations(items []string) {
	p.Specializations = EncodeList(items)
}

func decodeList(raw datatypes.JSON) []string {
	var items []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &items)
	}
	return items
}

// EncodeList сериализует список строк в JSON-колонку. nil остается NULL.
func EncodeList(items []string) datatypes.JSON {
	if items == nil {
		return nil
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}
