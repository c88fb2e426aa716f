// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/validation"
)

//go:embed activities.json
var embeddedRegistry []byte

var (
	embeddedOnce sync.Once
	embedded     *ActivityRegistry
	embeddedErr  error
)

// Embedded returns the registry compiled into the binary. It is parsed once.
func Embedded() (*ActivityRegistry, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = Parse(embeddedRegistry)
	})
	return embedded, embeddedErr
}

// MustEmbedded is Embedded for package initialisation.
func MustEmbedded() *ActivityRegistry {
	reg, err := Embedded()
	if err != nil {
		panic(fmt.Sprintf("embedded activity registry: %v", err))
	}
	return reg
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a registry document, compiles every input schema and
// checks the registry for consistency.
func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	for i := range reg.Activities {
		a := &reg.Activities[i]
		if len(a.InputSchema) == 0 {
			continue
		}
		raw, err := json.Marshal(a.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		if a.input, err = validation.Compile(raw); err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate reports duplicate ids or task types, unparsable timeouts,
// negative retries and error codes that have no BPMN mapping.
func (r *ActivityRegistry) Validate() error {
	var errs []error
	ids := make(map[string]bool, len(r.Activities))
	taskTypes := make(map[string]bool, len(r.Activities))

	for _, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activity %q: id and taskType are required", a.ID))
			continue
		}
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate activity id %q", a.ID))
		}
		ids[a.ID] = true
		if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("duplicate task type %q", a.TaskType))
		}
		taskTypes[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			errs = append(errs, fmt.Errorf("activity %s: %w", a.ID, err))
		}
		if a.Retries < 0 {
			errs = append(errs, fmt.Errorf("activity %s: retries must be non-negative", a.ID))
		}
		for _, code := range a.ErrorCodes {
			if _, ok := apperrors.BPMNErrorMapping[apperrors.ErrorCode(code)]; !ok {
				errs = append(errs, fmt.Errorf("activity %s: unknown error code %q", a.ID, code))
			}
		}
	}
	return errors.Join(errs...)
}

// Get finds an activity by task type.
func (r *ActivityRegistry) Get(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TaskTypes lists the registered task types in lexical order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	sort.Strings(out)
	return out
}

func (a *Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", a.Timeout, err)
	}
	return d, nil
}

func (a *Activity) HasErrorCode(code string) bool {
	for _, c := range a.ErrorCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ValidateInput checks decoded job variables against the input schema.
// Activities without a schema accept anything.
func (a *Activity) ValidateInput(vars map[string]interface{}) (*validation.ValidationResult, error) {
	if a.input == nil {
		return &validation.ValidationResult{Valid: true}, nil
	}
	return a.input.ValidateValue(vars)
}

// ValidateJSON is ValidateInput for raw job variables.
func (a *Activity) ValidateJSON(vars []byte) (*validation.ValidationResult, error) {
	if a.input == nil {
		return &validation.ValidationResult{Valid: true}, nil
	}
	return a.input.ValidateBytes(vars)
}

// DecodeVariables validates raw job variables against the input schema and
// decodes them into dst. Every failure is reported as INVALID_INPUT.
func (a *Activity) DecodeVariables(vars string, dst interface{}) error {
	if vars == "" {
		vars = "{}"
	}
	res, err := a.ValidateJSON([]byte(vars))
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if !res.Valid {
		return apperrors.NewInvalidInputError(res.Error()).WithMetadata("validationErrors", res.Errors)
	}
	if err := json.Unmarshal([]byte(vars), dst); err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	return nil
}
