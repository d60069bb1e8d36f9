package services

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CostComparison is a pooled-variance two-sample t-test of mean(a) - mean(b).
type CostComparison struct {
	MeanA, MeanB float64
	Diff         float64
	T            float64
	PValue       float64
	DF           float64
	// 95% confidence interval of Diff.
	Low, High float64
}

// Significant reports whether the means differ at level alpha.
func (c CostComparison) Significant(alpha float64) bool { return c.PValue < alpha }

// CompareCosts tests whether two cost distributions have different means, assuming equal
// variances.
func CompareCosts(a, b []float64) (CostComparison, error) {
	if len(a) < 2 || len(b) < 2 {
		return CostComparison{}, fmt.Errorf("compare costs: need at least 2 samples each, got %d and %d", len(a), len(b))
	}

	na, nb := float64(len(a)), float64(len(b))
	ma, va := stat.MeanVariance(a, nil)
	mb, vb := stat.MeanVariance(b, nil)

	df := na + nb - 2
	pooled := ((na-1)*va + (nb-1)*vb) / df
	se := math.Sqrt(pooled * (1/na + 1/nb))
	if se == 0 {
		return CostComparison{}, errors.New("compare costs: both samples have zero variance")
	}

	diff := ma - mb
	t := diff / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	crit := dist.Quantile(0.975)

	return CostComparison{
		MeanA:  ma,
		MeanB:  mb,
		Diff:   diff,
		T:      t,
		PValue: 2 * dist.Survival(math.Abs(t)),
		DF:     df,
		Low:    diff - crit*se,
		High:   diff + crit*se,
	}, nil
}
