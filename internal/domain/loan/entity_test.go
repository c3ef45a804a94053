package loan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoan_TotalRepayable(t *testing.T) {
	l := Loan{
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(0.06),
	}
	assert.True(t, l.TotalRepayable().Equal(decimal.NewFromInt(1060)))

	l.InterestRate = decimal.Zero
	assert.True(t, l.TotalRepayable().Equal(decimal.NewFromInt(1000)))
}

func TestLoan_PrincipalRatio(t *testing.T) {
	l := Loan{
		Principal:    decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(0.25),
	}
	assert.True(t, l.PrincipalRatio().Equal(decimal.NewFromFloat(0.8)))

	zero := Loan{}
	assert.True(t, zero.PrincipalRatio().IsZero())
}
