package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

const (
	crust    = "#11111b"
	overlay0 = "#6c7086"
	text     = "#cdd6f4"
	mauve    = "#cba6f7"
	red      = "#f38ba8"
	green    = "#a6e3a1"
	yellow   = "#f9e2af"
	blue     = "#89b4fa"
	lavender = "#b4befe"
	peach    = "#fab387"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(crust)).
			Background(lipgloss.Color(mauve)).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(lavender)).
			Padding(0, 1)

	demoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(peach)).
			Foreground(lipgloss.Color(peach)).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(lavender))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(overlay0))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(red))
)

func badge(label, color string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(crust)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(label)
}

// CategoryColor picks the badge color of a category. Unknown values are gray.
func CategoryColor(c solution.Category) string {
	switch c {
	case solution.CategoryTechnical:
		return blue
	case solution.CategoryCreative:
		return mauve
	case solution.CategoryAnalytical:
		return green
	case solution.CategoryEducational:
		return yellow
	case solution.CategoryBusiness:
		return red
	default:
		return overlay0
	}
}

func ComplexityColor(c solution.Complexity) string {
	switch c {
	case solution.ComplexityBeginner:
		return green
	case solution.ComplexityIntermediate:
		return yellow
	case solution.ComplexityAdvanced:
		return red
	default:
		return overlay0
	}
}

// LoadingMessage is the spinner text shown while a mode is dispatching.
func LoadingMessage(mode solution.Mode) string {
	switch mode {
	case solution.ModeCode:
		return "AI is generating code..."
	case solution.ModeExplain:
		return "AI is preparing explanation..."
	default:
		return "AI is analyzing your problem..."
	}
}

// DemoBanner is shown once the provider has reported exhausted credits.
func DemoBanner() string {
	return demoStyle.Render("Demo Mode: AI credits are exhausted, showing sample solutions.\nAdd credits to your account to enable live answers.")
}

func RenderSolution(s *solution.Solution) string {
	if s == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AI-Generated Solution"))
	b.WriteString("\n\n")
	b.WriteString(badge(string(s.Category), CategoryColor(s.Category)))
	b.WriteString(" ")
	b.WriteString(badge(string(s.Complexity), ComplexityColor(s.Complexity)))
	b.WriteString("\n")
	if s.EstimatedTime != "" {
		b.WriteString(dimStyle.Render("Estimated time: " + s.EstimatedTime))
		b.WriteString("\n")
	}

	if len(s.KeySteps) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Key Steps"))
		b.WriteString("\n")
		for i, step := range s.KeySteps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Solution"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Render(strings.TrimSpace(s.Solution)))
	b.WriteString("\n")

	if len(s.Resources) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Recommended Resources"))
		b.WriteString("\n")
		for _, r := range s.Resources {
			fmt.Fprintf(&b, "  • %s\n", r)
		}
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderSession renders the result panel of a session, preceded by the demo
// banner when credits ran out.
func RenderSession(s *session.Session) string {
	var parts []string
	if !s.HasCredits {
		parts = append(parts, DemoBanner())
	}
	if s.Error != "" {
		parts = append(parts, errorStyle.Render(s.Error))
	}
	if s.Result != nil {
		parts = append(parts, RenderSolution(s.Result))
		if s.Source == session.SourceFallback {
			parts = append(parts, dimStyle.Render("Source: sample solution (AI unavailable)"))
		}
	}
	return strings.Join(parts, "\n")
}

func RenderDemoExamples(examples []solve.DemoExample) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Try These Examples"))
	b.WriteString("\n\n")
	for i, ex := range examples {
		fmt.Fprintf(&b, "%d. %s\n", i+1, headerStyle.Render(ex.Problem))
		fmt.Fprintf(&b, "   %s %s\n", badge(string(ex.Category), CategoryColor(ex.Category)), badge(string(ex.Complexity), ComplexityColor(ex.Complexity)))
		fmt.Fprintf(&b, "   %s\n", dimStyle.Render(ex.Summary))
	}
	return strings.TrimRight(b.String(), "\n")
}
