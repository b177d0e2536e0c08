package evaluation

type PillarScoreRequest struct {
	Pillar  string `json:"pillar" binding:"required,len=1"`
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}

type SubmitEvaluationRequest struct {
	ID             string               `json:"id" binding:"omitempty,uuid"`
	StaffID        string               `json:"staff_id" binding:"required,uuid"`
	EvaluationDate string               `json:"evaluation_date" binding:"required,datetime=2006-01-02"`
	Scores         []PillarScoreRequest `json:"scores" binding:"required,dive"`
}

type ListQuery struct {
	StaffID     string `form:"staff_id" binding:"omitempty,uuid"`
	EvaluatorID string `form:"evaluator_id" binding:"omitempty,uuid"`
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type CriterionLevelResponse struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DraftPillarResponse struct {
	Letter   string                   `json:"letter"`
	Name     string                   `json:"name"`
	Focus    string                   `json:"focus"`
	Criteria []CriterionLevelResponse `json:"criteria"`
}

type DraftResponse struct {
	StaffID     string                `json:"staff_id"`
	StaffName   string                `json:"staff_name"`
	EvaluatorID string                `json:"evaluator_id"`
	PositionID  string                `json:"position_id"`
	Framework   string                `json:"framework"`
	MinScore    int                   `json:"min_score"`
	MaxScore    int                   `json:"max_score"`
	Pillars     []DraftPillarResponse `json:"pillars"`
}

type PillarScoreResponse struct {
	Pillar  string `json:"pillar"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Level   int    `json:"level"`
	Comment string `json:"comment"`
}

type EvaluationResponse struct {
	ID             string                `json:"id"`
	StaffID        string                `json:"staff_id"`
	EvaluatorID    string                `json:"evaluator_id"`
	PositionID     string                `json:"position_id"`
	Framework      string                `json:"framework"`
	EvaluationDate string                `json:"evaluation_date"`
	OverallScore   string                `json:"overall_score"`
	MaxScore       int                   `json:"max_score"`
	Scores         []PillarScoreResponse `json:"scores"`
}
