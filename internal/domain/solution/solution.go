package solution

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryTechnical   Category = "technical"
	CategoryCreative    Category = "creative"
	CategoryAnalytical  Category = "analytical"
	CategoryEducational Category = "educational"
	CategoryBusiness    Category = "business"
)

type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

var (
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidComplexity = errors.New("invalid complexity")
	ErrInvalidMode       = errors.New("invalid mode")
)

// Categories lists every accepted category in schema order.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryCreative, CategoryAnalytical, CategoryEducational, CategoryBusiness}
}

// Complexities lists every accepted complexity in schema order.
func Complexities() []Complexity {
	return []Complexity{ComplexityBeginner, ComplexityIntermediate, ComplexityAdvanced}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c Complexity) Valid() bool {
	for _, v := range Complexities() {
		if c == v {
			return true
		}
	}
	return false
}

// Solution is the structured answer for one problem. It is created per
// request and never stored beyond the session that displays it.
type Solution struct {
	Category      Category   `json:"category"`
	Complexity    Complexity `json:"complexity"`
	EstimatedTime string     `json:"estimatedTime"`
	KeySteps      []string   `json:"keySteps"`
	Resources     []string   `json:"resources"`
	Solution      string     `json:"solution"`
}

func (s *Solution) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, s.Category)
	}
	if !s.Complexity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidComplexity, s.Complexity)
	}
	return nil
}

// Clone returns a deep copy so shared templates are never mutated by callers.
func (s *Solution) Clone() *Solution {
	if s == nil {
		return nil
	}
	c := *s
	c.KeySteps = append([]string(nil), s.KeySteps...)
	c.Resources = append([]string(nil), s.Resources...)
	return &c
}

type Mode string

const (
	ModeSolver  Mode = "solver"
	ModeCode    Mode = "code"
	ModeExplain Mode = "explain"
)

func Modes() []Mode {
	return []Mode{ModeSolver, ModeCode, ModeExplain}
}

// ParseMode accepts the mode tag case-insensitively. An empty tag selects
// the structured solver.
func ParseMode(raw string) (Mode, error) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return ModeSolver, nil
	}
	for _, m := range Modes() {
		if Mode(tag) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
}

func (m Mode) String() string {
	return string(m)
}
