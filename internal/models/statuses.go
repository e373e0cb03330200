package models

type UserRole string
type ApplicationStatus string

const (
	UserRoleTrainer UserRole = "trainer"
	UserRoleCompany UserRole = "company"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

// IsKnown сообщает, является ли роль одной из поддерживаемых.
func (r UserRole) IsKnown() bool {
	return r == UserRoleTrainer || r == UserRoleCompany
}

func (s ApplicationStatus) IsKnown() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusInterview, ApplicationStatusRejected, ApplicationStatusCompleted:
		return true
	default:
		return false
	}
}

// ApplicationStatuses - все известные статусы в порядке жизненного цикла
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusInterview,
	ApplicationStatusRejected,
	ApplicationStatusCompleted,
}
