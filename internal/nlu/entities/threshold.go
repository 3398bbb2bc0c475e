// internal/nlu/entities/threshold.go
package entities

import "regexp"

// DefaultThreshold is the low-stock cut-off when the message names none.
const DefaultThreshold = 5

var thresholdPatterns = []*regexp.Regexp{
	mustCompile(`(?i)\b(?:below|under|less\s+than|lower\s+than|fewer\s+than|upto|up\s+to)\s+(\d+)`),
	mustCompile(`<\s*=?\s*(\d+)`),
	mustCompile(`(\d+)\s*(?:से\s+कम|से\s+नीचे|(?i:se\s+kam|se\s+neeche))`),
}

type ThresholdExtractor struct {
	fallback int
}

func NewThresholdExtractor(fallback int) *ThresholdExtractor {
	if fallback <= 0 {
		fallback = DefaultThreshold
	}
	return &ThresholdExtractor{fallback: fallback}
}

// Extract never returns nil.
func (x *ThresholdExtractor) Extract(in Input) *LowStockEntities {
	for _, text := range candidates(in) {
		for _, re := range thresholdPatterns {
			if m := re.FindStringSubmatch(text); m != nil {
				if n, ok := parseInt(m[1]); ok {
					return &LowStockEntities{Threshold: Threshold{Value: n}}
				}
			}
		}
	}
	return &LowStockEntities{Threshold: Threshold{Value: x.fallback}}
}
