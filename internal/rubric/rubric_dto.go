package rubric

type UpdateCriterionRequest struct {
	Pillar      string `json:"pillar" binding:"required"`
	Level       int    `json:"level" binding:"required,min=1,max=4"`
	Description string `json:"description" binding:"required"`
}

type LevelResponse struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PillarResponse struct {
	Letter string          `json:"letter"`
	Name   string          `json:"name"`
	Focus  string          `json:"focus"`
	Levels []LevelResponse `json:"levels"`
}

type RubricResponse struct {
	PositionID   string             `json:"position_id"`
	PositionName string             `json:"position_name"`
	Framework    string             `json:"framework"`
	MinScore     int                `json:"min_score"`
	MaxScore     int                `json:"max_score"`
	Pillars      []PillarResponse   `json:"pillars"`
	Missing      []MissingCriterion `json:"missing,omitempty"`
}

type PositionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Framework string `json:"framework"`
}

type CompletenessResponse struct {
	Complete bool               `json:"complete"`
	Missing  []MissingCriterion `json:"missing"`
}
