package models

type Job struct {
	BaseModel
	CompanyID        string     `gorm:"type:uuid;not null;index" json:"company_id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	Rate             string     `json:"rate"`
	Duration         string     `json:"duration"`
	StartDate        string     `json:"start_date"`
	Requirements     StringList `json:"requirements"`
	Responsibilities StringList `json:"responsibilities"`
	Skills           StringList `json:"skills"`
	ApplicationCount int        `gorm:"not null;default:0" json:"application_count"`

	// Relations
	Company *Profile `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

type JobApplication struct {
	BaseModel
	JobID     string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applications_job_trainer" json:"job_id"`
	TrainerID string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applications_job_trainer;index" json:"trainer_id"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CoverNote string            `json:"cover_note,omitempty"`

	// Relations
	Job     *Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Trainer *Profile `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}
