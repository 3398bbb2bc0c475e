// pkg/registry/schema.go
package registry

import "time"

// ActivityRegistry is the on-disk catalogue of job types this service
// answers and the variable contracts that go with them.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Version     string `json:"version"`
	// TaskType is the Zeebe job type the worker subscribes to.
	TaskType             string `json:"taskType"`
	ImplementationStatus string `json:"implementationStatus"`
	// InputSchema and OutputSchema are JSON Schema documents for the job
	// variables.
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
	Workflows    []string               `json:"workflows"`
	Tags         []string               `json:"tags"`
}

// TimeoutDuration parses Timeout, returning fallback when it is empty or
// not a Go duration.
func (a Activity) TimeoutDuration(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (a Activity) Implemented() bool {
	return a.ImplementationStatus == "implemented" || a.ImplementationStatus == "verified"
}
