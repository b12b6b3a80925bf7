package llm

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

// SolutionSchema is the strict response schema for a structured answer.
func SolutionSchema() jsonschema.Definition {
	categories := make([]string, 0, len(solution.Categories()))
	for _, c := range solution.Categories() {
		categories = append(categories, string(c))
	}
	complexities := make([]string, 0, len(solution.Complexities()))
	for _, c := range solution.Complexities() {
		complexities = append(complexities, string(c))
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"category": {
				Type:        jsonschema.String,
				Description: "Problem domain",
				Enum:        categories,
			},
			"complexity": {
				Type:        jsonschema.String,
				Description: "Difficulty for the person asking",
				Enum:        complexities,
			},
			"estimatedTime": {
				Type:        jsonschema.String,
				Description: "Human readable time estimate, e.g. 45-60 minutes",
			},
			"keySteps": {
				Type:        jsonschema.Array,
				Description: "Ordered steps to reach the solution",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"resources": {
				Type:        jsonschema.Array,
				Description: "Helpful references",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"solution": {
				Type:        jsonschema.String,
				Description: "Full solution body in markdown",
			},
		},
		Required:             []string{"category", "complexity", "estimatedTime", "keySteps", "resources", "solution"},
		AdditionalProperties: false,
	}
}
