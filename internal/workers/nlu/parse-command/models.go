// internal/workers/nlu/parse-command/models.go
package parsecommand

import "commerce-nlu/internal/nlu/pipeline"

type Input struct {
	Text          string `json:"text"`
	CorrelationID string `json:"correlationId,omitempty"`
	Locale        string `json:"locale,omitempty"`
}

type Output struct {
	ParsedCommand pipeline.ParsedCommand `json:"parsedCommand"`
	CorrelationID string                 `json:"correlationId"`
	Cached        bool                   `json:"cached"`
}
