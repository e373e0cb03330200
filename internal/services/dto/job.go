package dto

import "trainertrust_backend/internal/models"

type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"omitempty,max=5000"`
	Location         string   `json:"location" validate:"omitempty,max=200"`
	Rate             string   `json:"rate" validate:"omitempty,max=100"`
	Duration         string   `json:"duration" validate:"omitempty,max=100"`
	StartDate        string   `json:"start_date" validate:"omitempty,max=40"`
	Requirements     []string `json:"requirements" validate:"omitempty,max=50"`
	Responsibilities []string `json:"responsibilities" validate:"omitempty,max=50"`
	Skills           []string `json:"skills" validate:"omitempty,max=50"`
}

type JobListQuery struct {
	CompanyID string `form:"company_id" validate:"omitempty,uuid"`
}

type ApplyRequest struct {
	CoverNote string `json:"cover_note" validate:"omitempty,max=2000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,is-application-status"`
}

// HasAppliedResponse - ответ на проверку "уже откликался?"
type HasAppliedResponse struct {
	JobID      string `json:"job_id"`
	HasApplied bool   `json:"has_applied"`
}

type ApplicationListResponse struct {
	Applications []models.JobApplication `json:"applications"`
	Total        int                     `json:"total"`
}
