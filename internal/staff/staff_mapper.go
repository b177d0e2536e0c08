package staff

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/google/uuid"
)

func mapToResponse(s Staff) StaffResponse {
	resp := StaffResponse{
		ID:           s.ID.String(),
		FullName:     s.FullName,
		Email:        s.Email,
		PositionID:   s.PositionID,
		SupervisorID: uuidToString(s.SupervisorID),
		Active:       !s.DeletedAt.Valid,
	}
	if p, err := rubric.PositionByID(rubric.PositionID(s.PositionID)); err == nil {
		resp.PositionName = p.Name
		resp.Framework = string(p.Framework)
	}
	return resp
}

func mapToListResponse(rows []Staff) []StaffResponse {
	res := make([]StaffResponse, len(rows))
	for i, s := range rows {
		res[i] = mapToResponse(s)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
