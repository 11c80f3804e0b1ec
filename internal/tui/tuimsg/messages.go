package tuimsg

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
)

// PlanLoadedMsg carries a parsed plan and the projection of every scenario
type PlanLoadedMsg struct {
	Config *domain.Configuration
	Report *domain.ProjectionReport
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
