package http

import (
	"time"

	"github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	statsUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/stats"
	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

// Solve DTOs

type SolveRequest struct {
	Problem string `json:"problem"`
	Type    string `json:"type"`
}

type SolveTextResponse struct {
	Solution string `json:"solution"`
}

// SolutionDTO keeps the camelCase field names of the generation schema.
type SolutionDTO struct {
	Category      string   `json:"category"`
	Complexity    string   `json:"complexity"`
	EstimatedTime string   `json:"estimatedTime"`
	KeySteps      []string `json:"keySteps"`
	Resources     []string `json:"resources"`
	Solution      string   `json:"solution"`
}

func ToSolutionDTO(s *solution.Solution) SolutionDTO {
	dto := SolutionDTO{
		Category:      string(s.Category),
		Complexity:    string(s.Complexity),
		EstimatedTime: s.EstimatedTime,
		KeySteps:      s.KeySteps,
		Resources:     s.Resources,
		Solution:      s.Solution,
	}
	if dto.KeySteps == nil {
		dto.KeySteps = []string{}
	}
	if dto.Resources == nil {
		dto.Resources = []string{}
	}
	return dto
}

// Session DTOs

type SubmitRequest struct {
	Problem string `json:"problem"`
	Mode    string `json:"mode"`
}

type SessionDTO struct {
	ID         string       `json:"id"`
	Problem    string       `json:"problem"`
	Mode       string       `json:"mode,omitempty"`
	Result     *SolutionDTO `json:"result"`
	Source     string       `json:"source,omitempty"`
	Loading    bool         `json:"loading"`
	HasCredits bool         `json:"has_credits"`
	Error      string       `json:"error,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type CreateSessionResponse struct {
	Token   string     `json:"token"`
	Session SessionDTO `json:"session"`
}

func ToSessionDTO(s *session.Session) SessionDTO {
	dto := SessionDTO{
		ID:         s.ID.String(),
		Problem:    s.Problem,
		Mode:       string(s.Mode),
		Source:     string(s.Source),
		Loading:    s.Loading,
		HasCredits: s.HasCredits,
		Error:      s.Error,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.Result != nil {
		r := ToSolutionDTO(s.Result)
		dto.Result = &r
	}
	return dto
}

// Demo DTOs

type DemoExampleDTO struct {
	Problem    string `json:"problem"`
	Category   string `json:"category"`
	Complexity string `json:"complexity"`
	Solution   string `json:"solution"`
}

func ToDemoExampleDTO(e solve.DemoExample) DemoExampleDTO {
	return DemoExampleDTO{
		Problem:    e.Problem,
		Category:   string(e.Category),
		Complexity: string(e.Complexity),
		Solution:   e.Summary,
	}
}

// Stats DTOs

type StatsDTO struct {
	Total  int64                       `json:"total"`
	ByMode map[string]map[string]int64 `json:"by_mode"`
}

func ToStatsDTO(o *statsUC.StatsOutput) StatsDTO {
	return StatsDTO{Total: o.Total, ByMode: o.ByMode}
}
