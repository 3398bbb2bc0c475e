// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry %s: %w", path, err)
	}
	return &reg, nil
}

// FindByTaskType returns the activity bound to a Zeebe job type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate reports duplicate task types and activities missing the fields
// a worker needs at startup.
func (r *ActivityRegistry) Validate() []error {
	var errs []error
	seen := map[string]string{}
	for _, a := range r.Activities {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("activity with taskType %q has no id", a.TaskType))
		}
		if a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activity %s has no taskType", a.ID))
			continue
		}
		if prev, ok := seen[a.TaskType]; ok {
			errs = append(errs, fmt.Errorf("taskType %s used by %s and %s", a.TaskType, prev, a.ID))
		}
		seen[a.TaskType] = a.ID
		if a.InputSchema != nil {
			if t, _ := a.InputSchema["type"].(string); t != "object" {
				errs = append(errs, fmt.Errorf("activity %s: inputSchema type must be object", a.ID))
			}
		}
	}
	return errs
}
