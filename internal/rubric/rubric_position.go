package rubric

import (
	"fmt"

	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"
)

// PositionID identifies one of the fixed job types. Stored data uses these values.
type PositionID string

const (
	PositionRA               PositionID = "ra"
	PositionCustodian        PositionID = "custodian"
	PositionAdminSupport     PositionID = "admin_support"
	PositionRD               PositionID = "rd"
	PositionAD               PositionID = "ad"
	PositionSeniorLeadership PositionID = "senior_leadership"
)

type Position struct {
	ID        PositionID    `json:"id"`
	Name      string        `json:"name"`
	Framework FrameworkCode `json:"framework"`
}

var positions = []Position{
	{ID: PositionRA, Name: "Resident Assistant", Framework: Ascend},
	{ID: PositionCustodian, Name: "Custodian", Framework: Ascend},
	{ID: PositionAdminSupport, Name: "Administrative Support", Framework: Ascend},
	{ID: PositionRD, Name: "Residence Director", Framework: North},
	{ID: PositionAD, Name: "Assistant Director", Framework: North},
	{ID: PositionSeniorLeadership, Name: "Senior Leadership", Framework: North},
}

// Positions returns every known position in a fixed order.
func Positions() []Position {
	out := make([]Position, len(positions))
	copy(out, positions)
	return out
}

func PositionByID(id PositionID) (Position, error) {
	for _, p := range positions {
		if p.ID == id {
			return p, nil
		}
	}
	return Position{}, fmt.Errorf("%w: %q", rubricerrors.ErrPositionNotFound, id)
}

// FrameworkFor resolves the framework a position is scored against.
func FrameworkFor(id PositionID) (Framework, error) {
	p, err := PositionByID(id)
	if err != nil {
		return Framework{}, err
	}
	return FrameworkByCode(p.Framework)
}
