package vision

import (
	"regexp"
	"strconv"
)

// labelMappings translates the classifier's label vocabulary into a
// percentage figure. The service has been observed to answer with either
// qualitative labels or percentage ranges.
var labelMappings = map[string]float64{
	"Very Low": 8, "Low": 15, "Moderate": 22, "High": 30, "Very High": 35,
	"Lean": 12, "Athletic": 10, "Average": 20, "Above Average": 28, "Overweight": 32,
	"5-10%": 7.5, "10-15%": 12.5, "15-20%": 17.5, "20-25%": 22.5,
	"25-30%": 27.5, "30-35%": 32.5, "35%+": 37,
}

var (
	percentageRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	labelRangeRe = regexp.MustCompile(`(\d+)-(\d+)`)
)

const (
	defaultBodyFat    = 18
	defaultConfidence = 0.75
)

// bodyFatFromLabel resolves a label to a percentage: exact table match,
// then range midpoint, then first embedded number, then the default.
func bodyFatFromLabel(label string) float64 {
	if label == "" {
		return 15
	}

	if v, ok := labelMappings[label]; ok {
		return v
	}

	if m := labelRangeRe.FindStringSubmatch(label); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		return (min + max) / 2
	}

	if m := percentageRe.FindStringSubmatch(label); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}

	return defaultBodyFat
}
