// internal/workers/nlu/parse-command/config.go
package parsecommand

import "time"

type Config struct {
	Timeout time.Duration
	// InputSchema is the activity's inputSchema from the registry.
	InputSchema map[string]interface{}
	// FeedbackIntents lists the intents reported to the feedback topic.
	FeedbackIntents []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         5 * time.Second,
		InputSchema:     DefaultInputSchema(),
		FeedbackIntents: []string{"unknown"},
	}
}

// DefaultInputSchema mirrors the registry entry for parse-command.
func DefaultInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"text"},
		"properties": map[string]interface{}{
			"text":          map[string]interface{}{"type": "string", "maxLength": 2000},
			"correlationId": map[string]interface{}{"type": "string", "maxLength": 128},
			"locale":        map[string]interface{}{"type": "string"},
		},
	}
}
