// Package textparse turns the messy free text found on job boards into
// structured values: salaries, posting dates, locations and skill lists.
// Every parser is a pure function; failures produce zero values, not errors.
package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Salary is the parsed form of a compensation string. Min/Max are nil when
// the text carried no usable number. Hourly figures are annualized.
type Salary struct {
	Min      *float64
	Max      *float64
	Currency string
	Period   string
}

const (
	PeriodHourly  = "hourly"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"

	// 40 hours/week * 52 weeks/year
	hoursPerYear = 2080
)

var currencySymbols = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY",
	"usd": "USD", "eur": "EUR", "gbp": "GBP", "jpy": "JPY",
}

// Ordered so that "hourly" wins over the "hour" in "hours", etc. Keys are
// checked with substring match against the lowercased text.
var periodIndicators = []struct {
	token  string
	period string
}{
	{"hour", PeriodHourly},
	{"hr", PeriodHourly},
	{"week", PeriodWeekly},
	{"month", PeriodMonthly},
	{"year", PeriodAnnual},
	{"annual", PeriodAnnual},
	{"yr", PeriodAnnual},
}

var (
	kSuffixRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)k\b`)
	numberRe  = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?)`)

	rangeRes = []*regexp.Regexp{
		regexp.MustCompile(`\$?(\d[\d,]*(?:\.\d+)?)\s*[-–—]\s*\$?(\d[\d,]*(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)\$?(\d[\d,]*(?:\.\d+)?)\s+to\s+\$?(\d[\d,]*(?:\.\d+)?)`),
	}
	upToRe     = regexp.MustCompile(`(?i)up\s+to\s+\$?(\d[\d,]*(?:\.\d+)?)`)
	startingRe = regexp.MustCompile(`(?i)(?:from|starting)\s+(?:at\s+)?\$?(\d[\d,]*(?:\.\d+)?)`)
)

// ParseSalary extracts salary bounds, currency and pay period from raw text.
// Range patterns ("$120,000 - $150,000", "90k to 110k") are tried before
// single-number patterns ("up to $150K" sets only max, "from $90,000" only
// min, a bare number only min). When the text names no period, one is
// inferred from the magnitude of the numbers; that inference is a heuristic,
// not a guarantee. Hourly values are converted to annual (x2080) so records
// from different boards stay comparable.
func ParseSalary(text string) Salary {
	result := Salary{Currency: "USD"}
	if strings.TrimSpace(text) == "" {
		return result
	}

	lower := strings.ToLower(text)

	for symbol, currency := range currencySymbols {
		if strings.Contains(lower, symbol) {
			result.Currency = currency
			break
		}
	}

	for _, pi := range periodIndicators {
		if strings.Contains(lower, pi.token) {
			result.Period = pi.period
			break
		}
	}

	// "120k" -> "120000" before any numeric extraction.
	normalized := kSuffixRe.ReplaceAllStringFunc(lower, func(m string) string {
		num := kSuffixRe.FindStringSubmatch(m)[1]
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return m
		}
		return strconv.FormatFloat(v*1000, 'f', -1, 64)
	})

	matched := false
	for _, re := range rangeRes {
		if m := re.FindStringSubmatch(normalized); m != nil {
			lo, hi := parseNumber(m[1]), parseNumber(m[2])
			if lo != nil && hi != nil {
				if *lo > *hi {
					lo, hi = hi, lo
				}
				result.Min, result.Max = lo, hi
				matched = true
			}
			break
		}
	}

	if !matched {
		switch {
		case upToRe.MatchString(normalized):
			result.Max = parseNumber(upToRe.FindStringSubmatch(normalized)[1])
		case startingRe.MatchString(normalized):
			result.Min = parseNumber(startingRe.FindStringSubmatch(normalized)[1])
		default:
			if m := numberRe.FindStringSubmatch(normalized); m != nil {
				result.Min = parseNumber(m[1])
			}
		}
	}

	if result.Period == "" && (result.Min != nil || result.Max != nil) {
		result.Period = inferPeriod(result.Min, result.Max)
	}

	if result.Period == PeriodHourly {
		if result.Min != nil {
			v := *result.Min * hoursPerYear
			result.Min = &v
		}
		if result.Max != nil {
			v := *result.Max * hoursPerYear
			result.Max = &v
		}
		result.Period = PeriodAnnual
	}

	if result.Min != nil && result.Max != nil && *result.Min > *result.Max {
		result.Min, result.Max = result.Max, result.Min
	}

	return result
}

// inferPeriod guesses the pay period from the average magnitude of the
// parsed numbers: <200 hourly, <10000 monthly, otherwise annual.
func inferPeriod(min, max *float64) string {
	var sum, n float64
	if min != nil {
		sum += *min
		n++
	}
	if max != nil {
		sum += *max
		n++
	}
	if n == 0 {
		return ""
	}
	avg := sum / n
	switch {
	case avg < 200:
		return PeriodHourly
	case avg < 10000:
		return PeriodMonthly
	default:
		return PeriodAnnual
	}
}

func parseNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
