package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func lifecycleInput(inflation float64, tax bool) domain.ProjectionInput {
	return domain.ProjectionInput{
		InitialBalance: 25000,
		Regimes: []domain.Regime{
			{Name: "work", StartAge: 30, EndAge: 45, MonthlyContribution: 2500},
			{Name: "coast", StartAge: 45, EndAge: 55, MonthlyContribution: 500, AnnualReturn: floatPtr(5)},
			{Name: "retire", StartAge: 55, EndAge: 90, MonthlySpending: 3000},
		},
		AnnualReturn:  7,
		HorizonAge:    90,
		InflationRate: inflation,
		Tax:           domain.TaxPolicy{Enabled: tax, GovernmentBorrowingRate: 2.5},
	}
}

func TestProject_EmptyRegimes(t *testing.T) {
	projection, err := Project(domain.ProjectionInput{InitialBalance: 1000, HorizonAge: 90})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, projection)
}

func TestProject_SingleYearMonthlyCompounding(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 10000,
		Regimes:        []domain.Regime{{StartAge: 30, EndAge: 31}},
		AnnualReturn:   12,
		HorizonAge:     31,
	}

	projection, err := Project(in)
	require.NoError(t, err)
	require.Len(t, projection, 2)

	assert.Equal(t, 30, projection[0].Age)
	assert.Equal(t, 10000.0, projection[0].Balance)
	assert.Equal(t, 31, projection[1].Age)
	assert.InDelta(t, 11268.25, projection[1].Balance, 0.01)
	assert.InDelta(t, 10000*math.Pow(1.01, 12), projection[1].Balance, 1e-6)
	assert.Equal(t, 10000.0, projection[1].Contributions)
	assert.InDelta(t, 1268.25, projection[1].Growth, 0.01)
}

func TestProject_FirstSnapshot(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 100000,
		Regimes:        []domain.Regime{{StartAge: 40, EndAge: 50, MonthlySpending: 500}},
		AnnualReturn:   6,
		HorizonAge:     50,
		InflationRate:  3,
		Tax:            domain.TaxPolicy{Enabled: true, GovernmentBorrowingRate: 2.5},
	}

	projection, err := Project(in)
	require.NoError(t, err)

	first := projection[0]
	assert.Equal(t, 40, first.Age)
	assert.Equal(t, 100000.0, first.Balance)
	assert.Equal(t, 100000.0, first.RealBalance)
	assert.Equal(t, 100000.0, first.Contributions)
	assert.Equal(t, 0.0, first.Growth)
	assert.Equal(t, 0.0, first.TaxPaid)
	assert.InDelta(t, 6.0, first.WithdrawalRate, 1e-12, "500*12/100000 as a percentage")
}

func TestProject_ContributionsAfterGrowth(t *testing.T) {
	const (
		initial      = 5000.0
		contribution = 300.0
		rate         = 6.0
	)
	in := domain.ProjectionInput{
		InitialBalance: initial,
		Regimes:        []domain.Regime{{StartAge: 25, EndAge: 35, MonthlyContribution: contribution}},
		AnnualReturn:   rate,
		HorizonAge:     35,
	}

	projection, err := Project(in)
	require.NoError(t, err)
	require.Len(t, projection, 11)

	i := rate / 100 / 12
	for year := 1; year <= 10; year++ {
		n := float64(year * 12)
		growthFactor := math.Pow(1+i, n)
		expected := initial*growthFactor + contribution*(growthFactor-1)/i
		assert.InEpsilon(t, expected, projection[year].Balance, 1e-9, "year %d", year)
		assert.InDelta(t, initial+contribution*n, projection[year].Contributions, 1e-6)
	}
}

func TestProject_ZeroReturnIsExact(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 1000,
		Regimes:        []domain.Regime{{StartAge: 30, EndAge: 32, MonthlyContribution: 100}},
		AnnualReturn:   0,
		HorizonAge:     32,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, 2200.0, projection[1].Balance)
	assert.Equal(t, 3400.0, projection[2].Balance)
	assert.Equal(t, 0.0, projection[2].Growth)
}

func TestProject_PresumptiveTax(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 1000000,
		Regimes:        []domain.Regime{{StartAge: 30, EndAge: 32}},
		AnnualReturn:   0,
		HorizonAge:     32,
		Tax:            domain.TaxPolicy{Enabled: true, GovernmentBorrowingRate: 2.5},
	}

	projection, err := Project(in)
	require.NoError(t, err)
	require.Len(t, projection, 3)

	assert.InDelta(t, 7500, projection[1].TaxPaid, 1e-6)
	assert.InDelta(t, 992500, projection[1].Balance, 1e-6)
	assert.Greater(t, projection[2].TaxPaid, projection[1].TaxPaid)
	assert.InDelta(t, 7500+992500*0.025*0.30, projection[2].TaxPaid, 1e-6)
}

func TestProject_TaxAppliedBeforeSnapshotGrowth(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 100000,
		Regimes:        []domain.Regime{{StartAge: 30, EndAge: 31}},
		AnnualReturn:   12,
		HorizonAge:     31,
		Tax:            domain.TaxPolicy{Enabled: true, GovernmentBorrowingRate: 2},
	}

	projection, err := Project(in)
	require.NoError(t, err)

	grown := 100000 * math.Pow(1.01, 12)
	tax := grown * 0.02 * 0.30
	assert.InDelta(t, tax, projection[1].TaxPaid, 1e-6)
	assert.InDelta(t, grown-tax, projection[1].Balance, 1e-6)
	assert.InDelta(t, grown-tax-100000, projection[1].Growth, 1e-6)
}

func TestProject_TaxDisabled(t *testing.T) {
	projection, err := Project(lifecycleInput(2, false))
	require.NoError(t, err)

	for _, year := range projection {
		assert.Equal(t, 0.0, year.TaxPaid, "age %d", year.Age)
	}
}

func TestProject_TaxIsMonotone(t *testing.T) {
	in := lifecycleInput(2, true)
	in.Regimes[2].MonthlySpending = 9000 // deplete before the horizon

	projection, err := Project(in)
	require.NoError(t, err)

	depleted := false
	for i := 1; i < len(projection); i++ {
		assert.GreaterOrEqual(t, projection[i].TaxPaid, projection[i-1].TaxPaid, "age %d", projection[i].Age)
		if projection[i].Balance < 0 {
			depleted = true
		}
	}
	assert.True(t, depleted, "scenario should run out of money")
}

func TestProject_BalanceIsContributionsPlusGrowth(t *testing.T) {
	for _, tax := range []bool{false, true} {
		projection, err := Project(lifecycleInput(2.5, tax))
		require.NoError(t, err)

		for _, year := range projection {
			assert.InDelta(t, year.Balance, year.Contributions+year.Growth, 1e-6, "age %d", year.Age)
		}
	}
}

func TestProject_RealBalanceWithoutInflation(t *testing.T) {
	projection, err := Project(lifecycleInput(0, true))
	require.NoError(t, err)

	for _, year := range projection {
		assert.Equal(t, year.Balance, year.RealBalance, "age %d", year.Age)
	}
}

func TestProject_RealBalanceWithInflation(t *testing.T) {
	in := lifecycleInput(3, false)
	in.Regimes[2].MonthlySpending = 1000

	projection, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, projection[0].Balance, projection[0].RealBalance)
	for _, year := range projection[1:] {
		require.Positive(t, year.Balance)
		assert.Less(t, year.RealBalance, year.Balance, "age %d", year.Age)
		elapsed := float64(year.Age - 30)
		assert.InEpsilon(t, year.Balance/math.Pow(1.03, elapsed), year.RealBalance, 1e-12)
	}
}

func TestProject_WithdrawalRateFollowsInflation(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 50000,
		Regimes: []domain.Regime{
			{StartAge: 30, EndAge: 32, MonthlyContribution: 5000},
			{StartAge: 32, EndAge: 35, MonthlySpending: 2000},
		},
		AnnualReturn:  5,
		HorizonAge:    35,
		InflationRate: 5,
	}

	projection, err := Project(in)
	require.NoError(t, err)
	require.Len(t, projection, 6)

	assert.Equal(t, 0.0, projection[0].WithdrawalRate, "no spending in the first regime")
	assert.Equal(t, 0.0, projection[1].WithdrawalRate)

	for _, year := range projection[2:5] {
		elapsed := float64(year.Age - 30)
		expected := 2000 * 12 * math.Pow(1.05, elapsed) / year.Balance * 100
		assert.InEpsilon(t, expected, year.WithdrawalRate, 1e-9, "age %d", year.Age)
		assert.Greater(t, year.WithdrawalRate, 2000*12/year.Balance*100, "inflated spending exceeds nominal")
	}

	assert.Equal(t, 0.0, projection[5].WithdrawalRate, "no regime is active at the horizon")
}

func TestProject_SpendingGrowsWithInflation(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 100000,
		Regimes:        []domain.Regime{{StartAge: 60, EndAge: 61, MonthlySpending: 1000}},
		AnnualReturn:   0,
		HorizonAge:     61,
		InflationRate:  12,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	m := math.Pow(1.12, 1.0/12)
	spent := 0.0
	mult := 1.0
	for month := 0; month < 12; month++ {
		mult *= m
		spent += 1000 * mult
	}
	assert.InDelta(t, 100000-spent, projection[1].Balance, 1e-6)
	assert.Greater(t, spent, 12000.0)
}

func TestProject_ZeroOrNegativeSpan(t *testing.T) {
	for _, horizon := range []int{30, 25} {
		in := domain.ProjectionInput{
			InitialBalance: 5000,
			Regimes:        []domain.Regime{{StartAge: 30, EndAge: 40, MonthlySpending: 100}},
			AnnualReturn:   7,
			HorizonAge:     horizon,
		}

		projection, err := Project(in)
		require.NoError(t, err)
		require.Len(t, projection, 1, "horizon %d", horizon)

		assert.Equal(t, 30, projection[0].Age)
		assert.Equal(t, 5000.0, projection[0].Balance)
		assert.Equal(t, 5000.0, projection[0].Contributions)
		assert.Equal(t, 0.0, projection[0].Growth)
	}
}

func TestProject_ZeroLengthRegime(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 0,
		Regimes: []domain.Regime{
			{StartAge: 30, EndAge: 30, MonthlyContribution: 9999},
			{StartAge: 30, EndAge: 31, MonthlyContribution: 100},
		},
		AnnualReturn: 0,
		HorizonAge:   31,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, projection[1].Balance)
}

func TestProject_OverlapFirstMatchWins(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 0,
		Regimes: []domain.Regime{
			{StartAge: 35, EndAge: 45, MonthlyContribution: 1000},
			{StartAge: 30, EndAge: 40, MonthlyContribution: 100},
		},
		AnnualReturn: 0,
		HorizonAge:   45,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	// [30,40) starts first, so it owns 35..40; [35,45) only applies from 40.
	assert.Equal(t, 100.0*120+1000.0*60, projection[len(projection)-1].Balance)
}

func TestProject_EqualStartKeepsDeclarationOrder(t *testing.T) {
	in := domain.ProjectionInput{
		Regimes: []domain.Regime{
			{StartAge: 30, EndAge: 31, MonthlyContribution: 10},
			{StartAge: 30, EndAge: 31, MonthlyContribution: 20},
		},
		HorizonAge: 31,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, 120.0, projection[1].Balance)
}

func TestProject_GapUsesGlobalReturnWithoutCashFlow(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 1000,
		Regimes: []domain.Regime{
			{StartAge: 30, EndAge: 31, AnnualReturn: floatPtr(0)},
			{StartAge: 32, EndAge: 33, AnnualReturn: floatPtr(0)},
		},
		AnnualReturn: 12,
		HorizonAge:   33,
	}

	projection, err := Project(in)
	require.NoError(t, err)
	require.Len(t, projection, 4)

	assert.Equal(t, 1000.0, projection[1].Balance)
	assert.InDelta(t, 1000*math.Pow(1.01, 12), projection[2].Balance, 1e-9)
	assert.Equal(t, projection[2].Balance, projection[3].Balance)
}

func TestProject_RegimeReturnOverride(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 1000,
		Regimes:        []domain.Regime{{StartAge: 30, EndAge: 31, AnnualReturn: floatPtr(24)}},
		AnnualReturn:   0,
		HorizonAge:     31,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	assert.InDelta(t, 1000*math.Pow(1.02, 12), projection[1].Balance, 1e-9)
}

func TestProject_NegativeBalanceKeepsSimulating(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 1000,
		Regimes:        []domain.Regime{{StartAge: 70, EndAge: 73, MonthlySpending: 1000}},
		AnnualReturn:   0,
		HorizonAge:     73,
		Tax:            domain.TaxPolicy{Enabled: true, GovernmentBorrowingRate: 2.5},
	}

	projection, err := Project(in)
	require.NoError(t, err)
	require.Len(t, projection, 4)

	assert.Equal(t, -11000.0, projection[1].Balance)
	assert.Equal(t, -23000.0, projection[2].Balance)
	assert.Equal(t, -35000.0, projection[3].Balance)
	for _, year := range projection[1:] {
		assert.Equal(t, 0.0, year.WithdrawalRate, "rate is clamped on a depleted balance")
		assert.Equal(t, 0.0, year.TaxPaid, "no tax on a depleted balance")
	}
}

func TestProject_NegativeInitialBalance(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: -5000,
		Regimes:        []domain.Regime{{StartAge: 30, EndAge: 31, MonthlyContribution: 1000, MonthlySpending: 100}},
		AnnualReturn:   0,
		HorizonAge:     31,
	}

	projection, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, projection[0].WithdrawalRate)
	assert.Equal(t, -5000.0, projection[0].Contributions)
	assert.Equal(t, 5800.0, projection[1].Balance)
	assert.Equal(t, 7000.0, projection[1].Contributions)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 1000,
		Regimes: []domain.Regime{
			{StartAge: 40, EndAge: 50, MonthlySpending: 100},
			{StartAge: 30, EndAge: 40, MonthlyContribution: 100},
		},
		AnnualReturn: 5,
		HorizonAge:   50,
	}
	before := in.Clone()

	_, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, before, in)
}

func TestProject_Idempotent(t *testing.T) {
	in := lifecycleInput(2.5, true)

	first, err := Project(in)
	require.NoError(t, err)
	second, err := Project(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 61)
}

func TestActiveRegime(t *testing.T) {
	regimes := []domain.Regime{
		{Name: "late", StartAge: 40, EndAge: 50},
		{Name: "early", StartAge: 30, EndAge: 45},
	}

	r, ok := ActiveRegime(regimes, 42.5)
	assert.True(t, ok)
	assert.Equal(t, "early", r.Name)

	r, ok = ActiveRegime(regimes, 47)
	assert.True(t, ok)
	assert.Equal(t, "late", r.Name)

	_, ok = ActiveRegime(regimes, 50)
	assert.False(t, ok)
}

func TestTwoPhaseRegimes(t *testing.T) {
	regimes := TwoPhaseRegimes(30, 50, 90, 2000, 3000)

	require.Len(t, regimes, 2)
	assert.Equal(t, domain.Regime{Name: "accumulation", StartAge: 30, EndAge: 50, MonthlyContribution: 2000}, regimes[0])
	assert.Equal(t, domain.Regime{Name: "retirement", StartAge: 50, EndAge: 90, MonthlySpending: 3000}, regimes[1])

	// Already retired: the accumulation phase collapses to zero length.
	regimes = TwoPhaseRegimes(60, 55, 90, 2000, 3000)
	assert.Equal(t, 0, regimes[0].Months())
	assert.Equal(t, 60, regimes[1].StartAge)
}

func TestFindOverlaps(t *testing.T) {
	assert.Empty(t, findOverlaps(TwoPhaseRegimes(30, 50, 90, 1, 1)))

	overlaps := findOverlaps([]domain.Regime{
		{StartAge: 30, EndAge: 40},
		{StartAge: 35, EndAge: 45},
		{StartAge: 38, EndAge: 38},
	})
	assert.Len(t, overlaps, 1)
}
