package ruleengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/model"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
)

// RuleResult pairs a Rule with the Result produced for it, preserving
// evaluation order for the audit trail.
type RuleResult struct {
	Rule   model.Rule
	Result Result
}

// ProgramEvaluationResult is C2's output: the aggregated outcome of
// evaluating every active rule of one program against one application.
type ProgramEvaluationResult struct {
	Program            model.Program
	Eligible           bool
	FitScore           decimal.Decimal
	TotalRules         int
	RulesPassed        int
	RulesFailed        int
	MandatoryAllPassed bool
	RuleResults        []RuleResult
}

// Engine is C2: given (application, program), dispatches each active rule
// to its evaluator and aggregates to a program result.
type Engine struct {
	registry *Registry
	clock    port.Clock
}

// NewEngine builds a rule engine over the given registry and clock.
func NewEngine(registry *Registry, clock port.Clock) *Engine {
	return &Engine{registry: registry, clock: clock}
}

// Evaluate runs every active rule of program against application/business/
// guarantor/equipment and aggregates the result into a fit score.
func (e *Engine) Evaluate(
	application model.Application,
	business model.Business,
	guarantor model.Guarantor,
	equipment model.Equipment,
	program model.Program,
) ProgramEvaluationResult {
	var (
		totalScore  = decimal.Zero
		totalWeight = decimal.Zero
		results     = make([]RuleResult, 0, len(program.Rules))
		mandatoryOK = true
	)

	for _, rule := range program.Rules {
		if !rule.Active {
			continue
		}
		evaluator, ok := e.registry.Resolve(rule.Kind)
		if !ok {
			// Unregistered rule kind: silently skipped, not counted.
			continue
		}

		result := e.runEvaluator(evaluator, application, business, guarantor, equipment, program, rule)
		results = append(results, RuleResult{Rule: rule, Result: result})

		totalScore = totalScore.Add(result.Score)
		totalWeight = totalWeight.Add(result.Weight)
		if result.Mandatory && !result.Passed {
			mandatoryOK = false
		}
	}

	fitScore := decimal.Zero
	if totalWeight.GreaterThan(decimal.Zero) {
		fitScore = totalScore.Div(totalWeight).Round(2)
	}
	if fitScore.LessThan(decimal.Zero) {
		fitScore = decimal.Zero
	}
	if fitScore.GreaterThan(decimal.NewFromInt(100)) {
		fitScore = decimal.NewFromInt(100)
	}

	passed, failed := 0, 0
	for _, rr := range results {
		if rr.Result.Passed {
			passed++
		} else {
			failed++
		}
	}

	eligible := mandatoryOK && fitScore.GreaterThanOrEqual(program.MinFitScore)

	return ProgramEvaluationResult{
		Program:            program,
		Eligible:           eligible,
		FitScore:           fitScore,
		TotalRules:         len(results),
		RulesPassed:        passed,
		RulesFailed:        failed,
		MandatoryAllPassed: mandatoryOK,
		RuleResults:        results,
	}
}

// runEvaluator invokes the evaluator and recovers a panic into a failed
// result carrying evidence.error — an evaluator must never abort the
// program's other rules.
func (e *Engine) runEvaluator(
	evaluator Evaluator,
	application model.Application,
	business model.Business,
	guarantor model.Guarantor,
	equipment model.Equipment,
	program model.Program,
	rule model.Rule,
) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				Passed:    false,
				Score:     decimal.Zero,
				Reason:    fmt.Sprintf("evaluator error for rule %q", rule.RuleName),
				Evidence:  map[string]any{"error": fmt.Sprintf("%v", r)},
				Weight:    rule.Weight,
				Mandatory: rule.Mandatory,
			}
		}
	}()
	ctx := Context{
		Application: application,
		Business:    business,
		Guarantor:   guarantor,
		Equipment:   equipment,
		Program:     program,
		Rule:        rule,
		Clock:       e.clock,
	}
	return evaluator.Evaluate(ctx)
}
