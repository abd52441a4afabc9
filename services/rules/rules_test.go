package rules

import (
	// Go Internal Packages
	"testing"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAmountBoundary(t *testing.T) {
	engine := NewDefaultEngine(decimal.RequireFromString("1000"))

	cases := []struct {
		amount string
		valid  bool
	}{
		{"0", true},
		{"0.01", true},
		{"500", true},
		{"999.99", true},
		{"1000", true},
		{"1000.00", true},
		{"1000.001", false},
		{"1000.01", false},
		{"1500.00", false},
		{"1234567.89", false},
	}

	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			verdict := engine.Validate(decimal.RequireFromString(tc.amount))
			code, rejected := verdict.RuleCode()

			assert.Equal(t, tc.valid, verdict.Valid())
			assert.Equal(t, !tc.valid, rejected)
			if tc.valid {
				assert.Empty(t, code)
				assert.Nil(t, verdict.Result().RuleCode)
				assert.Equal(t, models.StatusApproved, verdict.Status())
			} else {
				assert.Equal(t, RuleMaxAmountExceeded, code)
				require.NotNil(t, verdict.Result().RuleCode)
				assert.Equal(t, RuleMaxAmountExceeded, *verdict.Result().RuleCode)
				assert.Equal(t, models.StatusRejected, verdict.Status())
			}
		})
	}
}

func TestConfiguredLimit(t *testing.T) {
	engine := NewDefaultEngine(decimal.RequireFromString("50"))

	assert.True(t, engine.Validate(decimal.RequireFromString("50")).Valid())
	assert.False(t, engine.Validate(decimal.RequireFromString("50.5")).Valid())
}

func TestEngineShortCircuitsOnFirstRejection(t *testing.T) {
	var evaluated []string
	track := func(name string, v Verdict) Rule {
		return RuleFunc(func(decimal.Decimal) Verdict {
			evaluated = append(evaluated, name)
			return v
		})
	}

	engine := NewEngine(
		track("first", Approved()),
		track("second", Rejected("SECOND")),
		track("third", Rejected("THIRD")),
	)

	verdict := engine.Validate(decimal.NewFromInt(1))
	code, _ := verdict.RuleCode()

	assert.Equal(t, "SECOND", code)
	assert.Equal(t, []string{"first", "second"}, evaluated)
}

func TestEmptyEngineApproves(t *testing.T) {
	assert.True(t, NewEngine().Validate(decimal.NewFromInt(1_000_000)).Valid())
}

func TestZeroVerdictIsApproval(t *testing.T) {
	var v Verdict
	code, rejected := v.RuleCode()

	assert.True(t, v.Valid())
	assert.False(t, rejected)
	assert.Empty(t, code)
}
