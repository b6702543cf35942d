// Package ruleengine implements the per-kind rule evaluators and the engine
// that dispatches and aggregates them into a program's fit score.
package ruleengine

import (
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
)

// Context carries everything one rule evaluation needs. Evaluators are pure
// functions of Context — they must not perform I/O or read a global clock.
type Context struct {
	Application model.Application
	Business    model.Business
	Guarantor   model.Guarantor
	Equipment   model.Equipment
	Program     model.Program
	Rule        model.Rule
	Clock       port.Clock
}
