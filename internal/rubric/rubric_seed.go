package rubric

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"

	"gopkg.in/yaml.v3"
)

//go:embed seed/rubrics.yaml
var defaultSeed []byte

type seedFile struct {
	Positions []seedPosition `yaml:"positions"`
}

type seedPosition struct {
	ID       PositionID                `yaml:"id"`
	Name     string                    `yaml:"name"`
	Criteria map[string]map[int]string `yaml:"criteria"`
}

// SeedResult is a parsed seed: the catalog plus the gaps it still has.
type SeedResult struct {
	Catalog *Catalog
	Missing []MissingCriterion
}

// ParseSeedYAML decodes a rubric seed. Unknown positions, pillars outside the
// position's framework and levels outside 1..4 are rejected; empty or absent
// texts are reported in Missing rather than failing, so callers decide whether
// an incomplete rubric is acceptable.
func ParseSeedYAML(data []byte) (SeedResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return SeedResult{}, fmt.Errorf("rubric: seed payload is empty: %w", rubricerrors.ErrInvalidSeed)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return SeedResult{}, fmt.Errorf("rubric: decode seed: %w", err)
	}

	seen := make(map[PositionID]bool, len(f.Positions))
	rubrics := make([]PositionRubric, 0, len(f.Positions))
	for _, sp := range f.Positions {
		id := PositionID(strings.TrimSpace(string(sp.ID)))
		if seen[id] {
			return SeedResult{}, fmt.Errorf("rubric: position %q listed twice: %w", id, rubricerrors.ErrInvalidSeed)
		}
		seen[id] = true

		r, err := sp.toRubric(id)
		if err != nil {
			return SeedResult{}, err
		}
		rubrics = append(rubrics, r)
	}

	catalog := NewCatalog(rubrics...)
	return SeedResult{Catalog: catalog, Missing: catalog.Validate()}, nil
}

func (sp seedPosition) toRubric(id PositionID) (PositionRubric, error) {
	r, err := NewPositionRubric(id)
	if err != nil {
		return PositionRubric{}, fmt.Errorf("rubric: seed: %w", err)
	}
	fw, _ := FrameworkByCode(r.Framework)

	letters := make([]string, 0, len(sp.Criteria))
	for letter := range sp.Criteria {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	keys := make(map[string]string, len(letters))
	for _, letter := range letters {
		key := strings.ToUpper(strings.TrimSpace(letter))
		if _, ok := fw.Pillar(key); !ok {
			return PositionRubric{}, fmt.Errorf("rubric: seed %s: pillar %q not in %s: %w", id, letter, fw.Code(), rubricerrors.ErrInvalidSeed)
		}
		if prev, dup := keys[key]; dup {
			return PositionRubric{}, fmt.Errorf("rubric: seed %s: pillar %q and %q both name %s: %w", id, prev, letter, key, rubricerrors.ErrInvalidSeed)
		}
		keys[key] = letter
		var texts [NumLevels]string
		for level, text := range sp.Criteria[letter] {
			if level < 1 || level > NumLevels {
				return PositionRubric{}, fmt.Errorf("rubric: seed %s/%s: level %d: %w", id, key, level, rubricerrors.ErrInvalidSeed)
			}
			texts[level-1] = strings.TrimSpace(text)
		}
		r.Criteria[key] = texts
	}
	return r, nil
}

// LoadSeedFile reads and parses a rubric seed from disk.
func LoadSeedFile(path string) (SeedResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("rubric: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return SeedResult{}, fmt.Errorf("rubric: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("rubric: read %s: %w", path, err)
	}
	res, err := ParseSeedYAML(data)
	if err != nil {
		return SeedResult{}, fmt.Errorf("rubric: %s: %w", path, err)
	}
	return res, nil
}

// DefaultSeed parses the embedded seed shipped with the binary.
func DefaultSeed() (SeedResult, error) {
	return ParseSeedYAML(defaultSeed)
}
