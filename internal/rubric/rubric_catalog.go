package rubric

import (
	"fmt"
	"sort"
	"strings"

	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"
)

// Criteria holds, per pillar letter, the behavioral text for levels 1..4
// (index 0 is level 1).
type Criteria map[string][NumLevels]string

// PositionRubric is the criteria table of one position.
type PositionRubric struct {
	Position  PositionID    `json:"position_id"`
	Framework FrameworkCode `json:"framework"`
	Criteria  Criteria      `json:"criteria"`
}

// NewPositionRubric returns an empty rubric bound to the framework of position.
func NewPositionRubric(position PositionID) (PositionRubric, error) {
	fw, err := FrameworkFor(position)
	if err != nil {
		return PositionRubric{}, err
	}
	return PositionRubric{Position: position, Framework: fw.Code(), Criteria: Criteria{}}, nil
}

// Text returns the criterion for (letter, level), or "" when absent.
func (r PositionRubric) Text(letter string, level int) string {
	if level < 1 || level > NumLevels {
		return ""
	}
	return r.Criteria[letter][level-1]
}

// WithCriterion returns a copy of r with one criterion replaced.
func (r PositionRubric) WithCriterion(letter string, level int, text string) (PositionRubric, error) {
	fw, err := FrameworkByCode(r.Framework)
	if err != nil {
		return r, err
	}
	if _, ok := fw.Pillar(letter); !ok {
		return r, fmt.Errorf("%w: %s not in %s", rubricerrors.ErrUnknownPillar, letter, fw.Code())
	}
	if level < 1 || level > NumLevels {
		return r, fmt.Errorf("%w: %d", rubricerrors.ErrInvalidLevel, level)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return r, rubricerrors.ErrEmptyCriterion
	}

	out := r
	out.Criteria = make(Criteria, len(r.Criteria)+1)
	for k, v := range r.Criteria {
		out.Criteria[k] = v
	}
	texts := out.Criteria[letter]
	texts[level-1] = text
	out.Criteria[letter] = texts
	return out, nil
}

// MissingCriterion names one (position, pillar, level) combination without text.
type MissingCriterion struct {
	Position PositionID `json:"position_id"`
	Pillar   string     `json:"pillar"`
	Level    int        `json:"level"`
}

func (m MissingCriterion) String() string {
	return fmt.Sprintf("%s/%s/%d", m.Position, m.Pillar, m.Level)
}

// ValidateCompleteness reports every (pillar, level) pair of the rubric's
// framework that has no text, in canonical pillar order then level order.
// An empty result means the rubric is usable. It never fails; a rubric whose
// framework is unknown reports nothing it can name and is rejected elsewhere.
func ValidateCompleteness(r PositionRubric) []MissingCriterion {
	fw, err := FrameworkByCode(r.Framework)
	if err != nil {
		return nil
	}

	var missing []MissingCriterion
	for _, p := range fw.pillars {
		texts := r.Criteria[p.Letter]
		for lvl := 1; lvl <= NumLevels; lvl++ {
			if strings.TrimSpace(texts[lvl-1]) == "" {
				missing = append(missing, MissingCriterion{Position: r.Position, Pillar: p.Letter, Level: lvl})
			}
		}
	}
	return missing
}

// Catalog is a read model over the rubrics of every position.
type Catalog struct {
	rubrics map[PositionID]PositionRubric
}

func NewCatalog(rubrics ...PositionRubric) *Catalog {
	c := &Catalog{rubrics: make(map[PositionID]PositionRubric, len(rubrics))}
	for _, r := range rubrics {
		c.rubrics[r.Position] = r
	}
	return c
}

// GetRubric returns the rubric of a known position. A known position whose
// rubric was never loaded yields an empty rubric so completeness can report it.
func (c *Catalog) GetRubric(id PositionID) (PositionRubric, error) {
	if _, err := PositionByID(id); err != nil {
		return PositionRubric{}, err
	}
	if r, ok := c.rubrics[id]; ok {
		return r, nil
	}
	return NewPositionRubric(id)
}

// Rubrics returns the loaded rubrics ordered by position id.
func (c *Catalog) Rubrics() []PositionRubric {
	out := make([]PositionRubric, 0, len(c.rubrics))
	for _, r := range c.rubrics {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Validate runs ValidateCompleteness over every known position in Positions order.
func (c *Catalog) Validate() []MissingCriterion {
	var missing []MissingCriterion
	for _, p := range positions {
		r, err := c.GetRubric(p.ID)
		if err != nil {
			continue
		}
		missing = append(missing, ValidateCompleteness(r)...)
	}
	return missing
}
