package staff

type CreateStaffRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	PositionID   string `json:"position_id" binding:"required,oneof=ra custodian admin_support rd ad senior_leadership"`
	SupervisorID string `json:"supervisor_id" binding:"omitempty,uuid"`
}

type UpdateStaffRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	PositionID   string `json:"position_id" binding:"required,oneof=ra custodian admin_support rd ad senior_leadership"`
	SupervisorID string `json:"supervisor_id" binding:"omitempty,uuid"`
}

type StaffResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PositionID   string `json:"position_id"`
	PositionName string `json:"position_name"`
	Framework    string `json:"framework"`
	SupervisorID string `json:"supervisor_id,omitempty"`
	Active       bool   `json:"active"`
}
