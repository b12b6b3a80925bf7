package solve

import (
	"fmt"

	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

func structuredPrompt(problem string) string {
	return fmt.Sprintf(`Analyze this problem and provide a structured solution: "%s".
Break it down into clear steps, categorize it appropriately, estimate complexity and time needed,
suggest helpful resources, and provide a comprehensive solution approach. Be specific and actionable.`, problem)
}

func codePrompt(problem string) string {
	return fmt.Sprintf(`Generate clean, well-commented, production-ready code to solve this problem: "%s".
Include explanations, best practices, error handling, and choose the most appropriate programming language.
Provide complete working examples with proper structure.`, problem)
}

func explainPrompt(problem string) string {
	return fmt.Sprintf(`Explain this concept in detail with clear examples: "%s".
Make it educational and easy to understand for learners. Include:
- Clear definition and core principles
- Step-by-step breakdown
- Real-world examples and analogies
- Common misconceptions
- Practical applications
- Next steps for deeper learning`, problem)
}

// textPrompt is the free-text prompt of the stateless solve endpoint.
func textPrompt(problem string) string {
	return fmt.Sprintf(`Solve this problem with detailed explanation: "%s". Provide actionable steps and clear guidance.`, problem)
}

// promptFor maps each mode to its instruction. Unknown modes use the
// structured prompt.
func promptFor(mode solution.Mode, problem string) string {
	switch mode {
	case solution.ModeCode:
		return codePrompt(problem)
	case solution.ModeExplain:
		return explainPrompt(problem)
	default:
		return structuredPrompt(problem)
	}
}

// Text answers are wrapped into a record with fixed metadata per mode.
var textResultTemplates = map[solution.Mode]solution.Solution{
	solution.ModeCode: {
		Category:      solution.CategoryTechnical,
		Complexity:    solution.ComplexityIntermediate,
		EstimatedTime: "30-60 minutes",
		KeySteps: []string{
			"Analyze requirements and constraints",
			"Choose appropriate technology stack",
			"Implement core functionality",
			"Add error handling and validation",
			"Test thoroughly",
			"Optimize for performance",
		},
		Resources: []string{
			"Official documentation",
			"GitHub repositories",
			"Stack Overflow",
			"Code review guidelines",
			"Testing frameworks",
		},
	},
	solution.ModeExplain: {
		Category:      solution.CategoryEducational,
		Complexity:    solution.ComplexityBeginner,
		EstimatedTime: "15-30 minutes to understand",
		KeySteps: []string{
			"Read the explanation carefully",
			"Review provided examples",
			"Practice with similar concepts",
			"Test your understanding",
			"Apply in real scenarios",
			"Explore advanced topics",
		},
		Resources: []string{
			"Educational websites",
			"Interactive tutorials",
			"Video courses",
			"Practice exercises",
			"Community forums",
			"Academic papers",
		},
	},
}

func wrapText(mode solution.Mode, text string) *solution.Solution {
	tmpl := textResultTemplates[mode]
	s := tmpl.Clone()
	s.Solution = text
	return s
}
