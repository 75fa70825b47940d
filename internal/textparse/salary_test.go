package textparse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryRange(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantMin  float64
		wantMax  float64
		period   string
		currency string
	}{
		{
			name:     "dollar range with commas",
			text:     "$120,000 - $150,000 a year",
			wantMin:  120000,
			wantMax:  150000,
			period:   PeriodAnnual,
			currency: "USD",
		},
		{
			name:     "to separator",
			text:     "$90,000 to $110,000 per year",
			wantMin:  90000,
			wantMax:  110000,
			period:   PeriodAnnual,
			currency: "USD",
		},
		{
			name:     "k suffix range",
			text:     "120K - 150K",
			wantMin:  120000,
			wantMax:  150000,
			period:   PeriodAnnual,
			currency: "USD",
		},
		{
			name:     "reversed range is swapped",
			text:     "$150,000 - $120,000",
			wantMin:  120000,
			wantMax:  150000,
			period:   PeriodAnnual,
			currency: "USD",
		},
		{
			name:     "euro range",
			text:     "€50,000 - €70,000 annual",
			wantMin:  50000,
			wantMax:  70000,
			period:   PeriodAnnual,
			currency: "EUR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSalary(tt.text)
			require.NotNil(t, got.Min, "min should be parsed")
			require.NotNil(t, got.Max, "max should be parsed")
			assert.Equal(t, tt.wantMin, *got.Min)
			assert.Equal(t, tt.wantMax, *got.Max)
			assert.Equal(t, tt.period, got.Period)
			assert.Equal(t, tt.currency, got.Currency)
		})
	}
}

func TestParseSalaryRoundTrip(t *testing.T) {
	pairs := [][2]float64{
		{60000, 80000},
		{95000, 125000},
		{110000, 180000},
		{45000, 45000},
	}
	for _, p := range pairs {
		text := fmt.Sprintf("$%.0f - $%.0f", p[0], p[1])
		got := ParseSalary(text)
		require.NotNil(t, got.Min, text)
		require.NotNil(t, got.Max, text)
		assert.Equal(t, p[0], *got.Min, text)
		assert.Equal(t, p[1], *got.Max, text)
	}
}

func TestParseSalaryHourlyAnnualized(t *testing.T) {
	got := ParseSalary("$25/hour")
	require.NotNil(t, got.Min)
	assert.Equal(t, 25.0*2080, *got.Min)
	assert.Equal(t, PeriodAnnual, got.Period)
	assert.Nil(t, got.Max)
}

func TestParseSalarySingleNumbers(t *testing.T) {
	t.Run("up to sets only max", func(t *testing.T) {
		got := ParseSalary("Up to $150K")
		assert.Nil(t, got.Min)
		require.NotNil(t, got.Max)
		assert.Equal(t, 150000.0, *got.Max)
	})

	t.Run("from sets only min", func(t *testing.T) {
		got := ParseSalary("From $90,000 per year")
		require.NotNil(t, got.Min)
		assert.Equal(t, 90000.0, *got.Min)
		assert.Nil(t, got.Max)
	})

	t.Run("starting at sets only min", func(t *testing.T) {
		got := ParseSalary("Starting at $75,000")
		require.NotNil(t, got.Min)
		assert.Equal(t, 75000.0, *got.Min)
		assert.Nil(t, got.Max)
	})

	t.Run("bare number sets min", func(t *testing.T) {
		got := ParseSalary("$85,000 a year")
		require.NotNil(t, got.Min)
		assert.Equal(t, 85000.0, *got.Min)
		assert.Nil(t, got.Max)
	})
}

func TestParseSalaryPeriodInference(t *testing.T) {
	tests := []struct {
		text   string
		period string
	}{
		{"$45", PeriodAnnual}, // hourly magnitude, annualized on output
		{"$5,000", PeriodMonthly},
		{"$95,000", PeriodAnnual},
	}
	for _, tt := range tests {
		got := ParseSalary(tt.text)
		assert.Equal(t, tt.period, got.Period, tt.text)
	}

	// magnitude under 200 means the value is treated as hourly and scaled
	got := ParseSalary("$45")
	require.NotNil(t, got.Min)
	assert.Equal(t, 45.0*2080, *got.Min)
}

func TestParseSalaryEmpty(t *testing.T) {
	got := ParseSalary("")
	assert.Nil(t, got.Min)
	assert.Nil(t, got.Max)
	assert.Equal(t, "USD", got.Currency)
	assert.Empty(t, got.Period)

	got = ParseSalary("Competitive compensation")
	assert.Nil(t, got.Min)
	assert.Nil(t, got.Max)
}
