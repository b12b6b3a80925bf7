package solve

import "github.com/khoahotran/ai-problem-solver/internal/domain/solution"

// DemoExample is a sample problem shown to first-time users.
type DemoExample struct {
	Problem    string
	Category   solution.Category
	Complexity solution.Complexity
	Summary    string
}

func DemoExamples() []DemoExample {
	return []DemoExample{
		{
			Problem:    "How to implement user authentication in a React app?",
			Category:   solution.CategoryTechnical,
			Complexity: solution.ComplexityIntermediate,
			Summary:    "Comprehensive guide with JWT, OAuth, and best practices",
		},
		{
			Problem:    "Explain machine learning algorithms for beginners",
			Category:   solution.CategoryEducational,
			Complexity: solution.ComplexityBeginner,
			Summary:    "Step-by-step explanation with real-world examples",
		},
		{
			Problem:    "Create a marketing strategy for a startup",
			Category:   solution.CategoryBusiness,
			Complexity: solution.ComplexityAdvanced,
			Summary:    "Detailed strategy with market analysis and implementation plan",
		},
	}
}
