// Package rules evaluates fraud rules against a transaction amount.
//
// Rules run in priority order and the first rejection wins. Callers only see
// a Verdict, so new rules can be appended without touching them.
package rules

import (
	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/shopspring/decimal"
)

const RuleMaxAmountExceeded = "MAX_AMOUNT_EXCEEDED"

// Verdict is either Approved or Rejected with a rule code. The zero value is
// an approval; a rejection can only be built through Rejected.
type Verdict struct {
	rejected bool
	ruleCode string
}

func Approved() Verdict {
	return Verdict{}
}

func Rejected(ruleCode string) Verdict {
	return Verdict{rejected: true, ruleCode: ruleCode}
}

func (v Verdict) Valid() bool {
	return !v.rejected
}

// RuleCode returns the rejecting rule; ok is false for approvals.
func (v Verdict) RuleCode() (code string, ok bool) {
	return v.ruleCode, v.rejected
}

// Status maps the verdict onto the transaction status it leads to.
func (v Verdict) Status() string {
	if v.rejected {
		return models.StatusRejected
	}
	return models.StatusApproved
}

// Result is the wire form carried by status updated events.
func (v Verdict) Result() models.ValidationResult {
	if !v.rejected {
		return models.ValidationResult{IsValid: true}
	}
	code := v.ruleCode
	return models.ValidationResult{IsValid: false, RuleCode: &code}
}

type Rule interface {
	Evaluate(amount decimal.Decimal) Verdict
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(amount decimal.Decimal) Verdict

func (f RuleFunc) Evaluate(amount decimal.Decimal) Verdict {
	return f(amount)
}

// MaxAmount rejects amounts strictly greater than Limit.
type MaxAmount struct {
	Limit decimal.Decimal
}

func (r MaxAmount) Evaluate(amount decimal.Decimal) Verdict {
	if amount.GreaterThan(r.Limit) {
		return Rejected(RuleMaxAmountExceeded)
	}
	return Approved()
}

type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// NewDefaultEngine builds the engine with the rules currently in force.
func NewDefaultEngine(maxAmount decimal.Decimal) *Engine {
	return NewEngine(MaxAmount{Limit: maxAmount})
}

func (e *Engine) Validate(amount decimal.Decimal) Verdict {
	for _, rule := range e.rules {
		if verdict := rule.Evaluate(amount); !verdict.Valid() {
			return verdict
		}
	}
	return Approved()
}
