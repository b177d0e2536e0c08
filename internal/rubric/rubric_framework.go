package rubric

import (
	"fmt"

	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"
)

// FrameworkCode names a scoring framework. Stored data uses these exact values.
type FrameworkCode string

const (
	Ascend FrameworkCode = "ASCEND"
	North  FrameworkCode = "NORTH"
)

// Rating levels shared by every rubric, lowest first.
const (
	LevelNeedsImprovement = 1
	LevelDeveloping       = 2
	LevelProficient       = 3
	LevelOutstanding      = 4

	NumLevels = 4
)

var levelNames = [NumLevels]string{"Needs Improvement", "Developing", "Proficient", "Outstanding"}

// LevelName returns the display name of a rating level, or "" when out of range.
func LevelName(level int) string {
	if level < 1 || level > NumLevels {
		return ""
	}
	return levelNames[level-1]
}

type Pillar struct {
	Letter string `json:"letter"`
	Name   string `json:"name"`
	Focus  string `json:"focus"`
}

// Framework is one variant of the scoring model: its own ordered pillar set
// and its own score range. The zero value is not a valid framework.
type Framework struct {
	code     FrameworkCode
	pillars  []Pillar
	minScore int
	maxScore int
	// bands[i] is the highest score that still maps to level i+1.
	bands [NumLevels]int
}

var (
	ascend = Framework{
		code: Ascend,
		pillars: []Pillar{
			{Letter: "A", Name: "Accountability", Focus: "Owns commitments, follows through and reports honestly"},
			{Letter: "S", Name: "Service", Focus: "Responds to residents and colleagues promptly and with care"},
			{Letter: "C", Name: "Community", Focus: "Builds belonging and connection across the halls"},
			{Letter: "E", Name: "Excellence", Focus: "Delivers high quality work and improves how it is done"},
			{Letter: "N", Name: "Nurture", Focus: "Supports the growth and well-being of others"},
			{Letter: "D", Name: "Development", Focus: "Invests in their own learning and professional growth"},
		},
		minScore: 1,
		maxScore: 4,
		bands:    [NumLevels]int{1, 2, 3, 4},
	}

	north = Framework{
		code: North,
		pillars: []Pillar{
			{Letter: "N", Name: "Nurturing Student Success & Development", Focus: "Creates conditions for student learning, persistence and growth"},
			{Letter: "O", Name: "Operational Excellence & Efficiency", Focus: "Runs reliable, efficient and well documented operations"},
			{Letter: "R", Name: "Resource Stewardship & Sustainability", Focus: "Uses budget, facilities and staff time responsibly"},
			{Letter: "T", Name: "Transformative & Inclusive Environments", Focus: "Leads change and fosters inclusive communities"},
			{Letter: "H", Name: "Holistic Well-being & Safety", Focus: "Protects the safety and well-being of residents and staff"},
		},
		minScore: 1,
		maxScore: 10,
		bands:    [NumLevels]int{3, 6, 8, 10},
	}
)

func AscendFramework() Framework { return ascend }
func NorthFramework() Framework  { return north }

// FrameworkByCode resolves a framework variant. Unknown codes are an error,
// never a silent default.
func FrameworkByCode(code FrameworkCode) (Framework, error) {
	switch code {
	case Ascend:
		return ascend, nil
	case North:
		return north, nil
	default:
		return Framework{}, fmt.Errorf("%w: %q", rubricerrors.ErrUnknownFramework, code)
	}
}

// Frameworks lists every variant in a fixed order.
func Frameworks() []Framework { return []Framework{ascend, north} }

func (f Framework) Code() FrameworkCode { return f.code }
func (f Framework) IsZero() bool        { return f.code == "" }
func (f Framework) MinScore() int       { return f.minScore }
func (f Framework) MaxScore() int       { return f.maxScore }

// Pillars returns the pillars in canonical order. The slice is a copy.
func (f Framework) Pillars() []Pillar {
	out := make([]Pillar, len(f.pillars))
	copy(out, f.pillars)
	return out
}

// Letters returns the pillar letters in canonical order.
func (f Framework) Letters() []string {
	out := make([]string, len(f.pillars))
	for i, p := range f.pillars {
		out[i] = p.Letter
	}
	return out
}

func (f Framework) Pillar(letter string) (Pillar, bool) {
	for _, p := range f.pillars {
		if p.Letter == letter {
			return p, true
		}
	}
	return Pillar{}, false
}

// PillarIndex returns the canonical position of letter, or -1.
func (f Framework) PillarIndex(letter string) int {
	for i, p := range f.pillars {
		if p.Letter == letter {
			return i
		}
	}
	return -1
}

func (f Framework) InRange(score int) bool {
	return !f.IsZero() && score >= f.minScore && score <= f.maxScore
}

// Level maps a score onto the shared four rating levels.
// ASCEND maps 1:1, NORTH maps 1-3, 4-6, 7-8, 9-10.
func (f Framework) Level(score int) (int, error) {
	if !f.InRange(score) {
		return 0, fmt.Errorf("%w: %d not in %d-%d", rubricerrors.ErrScoreOutOfRange, score, f.minScore, f.maxScore)
	}
	for i, upper := range f.bands {
		if score <= upper {
			return i + 1, nil
		}
	}
	return NumLevels, nil
}
