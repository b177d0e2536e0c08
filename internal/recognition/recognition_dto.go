package recognition

type RecomputeRequest struct {
	Kind string `json:"kind" binding:"required,oneof=weekly monthly quarterly"`
	// Key defaults to the period containing today.
	Key string `json:"key"`
}

type PeriodQuery struct {
	Kind string `form:"kind" binding:"required,oneof=weekly monthly quarterly"`
	Key  string `form:"key" binding:"required"`
}

type ReportQuery struct {
	Kind      string `form:"kind" binding:"required,oneof=weekly monthly quarterly"`
	Key       string `form:"key" binding:"required"`
	Narrative bool   `form:"narrative"`
	Persona   string `form:"persona" binding:"omitempty,oneof=director celebratory concise"`
}

type TrendQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type AveragesQuery struct {
	Framework string `form:"framework" binding:"required,oneof=ASCEND NORTH"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type PeriodResponse struct {
	Kind  string `json:"kind"`
	Key   string `json:"key"`
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type WinnerResponse struct {
	Period         PeriodResponse `json:"period"`
	Framework      string         `json:"framework"`
	StaffID        string         `json:"staff_id"`
	StaffName      string         `json:"staff_name"`
	PositionID     string         `json:"position_id"`
	EvaluationID   string         `json:"evaluation_id"`
	EvaluationDate string         `json:"evaluation_date"`
	Score          string         `json:"score"`
	MaxScore       int            `json:"max_score"`
	Justification  string         `json:"justification"`
	SelectedBy     string         `json:"selected_by,omitempty"`
	SelectedAt     string         `json:"selected_at,omitempty"`
}

// PeriodWinnersResponse lists every framework; Winner is nil where nobody
// qualified.
type PeriodWinnersResponse struct {
	Period  PeriodResponse       `json:"period"`
	Winners []FrameworkWinnerRow `json:"winners"`
}

type FrameworkWinnerRow struct {
	Framework string          `json:"framework"`
	Winner    *WinnerResponse `json:"winner"`
}

type TrendPointResponse struct {
	Date         string `json:"date"`
	EvaluationID string `json:"evaluation_id"`
	OverallScore string `json:"overall_score"`
}

type TrendResponse struct {
	StaffID string               `json:"staff_id"`
	Points  []TrendPointResponse `json:"points"`
}

type PillarAverageResponse struct {
	Letter  string `json:"letter"`
	Name    string `json:"name"`
	Average string `json:"average"`
}

type AveragesResponse struct {
	Framework   string                  `json:"framework"`
	From        string                  `json:"from,omitempty"`
	To          string                  `json:"to,omitempty"`
	Evaluations int                     `json:"evaluations"`
	Pillars     []PillarAverageResponse `json:"pillars"`
}

type ReportResponse struct {
	Period    PeriodResponse `json:"period"`
	Markdown  string         `json:"markdown"`
	Narrative string         `json:"narrative,omitempty"`
}
