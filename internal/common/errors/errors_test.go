package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"validation is terminal", NewInputValidationError("text is required"), "INPUT_VALIDATION_FAILED", 0},
		{"catalog load retries", NewCatalogLoadError("postgres", fmt.Errorf("dial tcp")), "CATALOG_LOAD_FAILED", 3},
		{"cache retries less", NewCacheUnavailableError(fmt.Errorf("conn refused")), "CACHE_UNAVAILABLE", 2},
		{"non-retryable overrides table", &StandardError{Code: ErrCodeCatalogLoadFailed, Retryable: false}, "CATALOG_LOAD_FAILED", 0},
		{"unmapped code passes through", &StandardError{Code: "SOMETHING_ELSE"}, "SOMETHING_ELSE", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantRetries, got.Retries)

			vars := got.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NewRegistryLoadError("configs/x.json", fmt.Errorf("no such file")))
	got := AsStandardError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeRegistryLoadFailed, got.Code)

	plain := AsStandardError(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.False(t, plain.Retryable)
	assert.Equal(t, "boom", plain.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseInputFailed))
	assert.Equal(t, "PARSER", GetErrorCategory(ErrCodeInternalParsingFault))
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeSearchQueryFailed))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "FEEDBACK", GetErrorCategory(ErrCodeFeedbackPublishFailed))
	assert.Equal(t, "CONFIG", GetErrorCategory(ErrCodeRegistryLoadFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestStandardError_WithMetadata(t *testing.T) {
	err := NewInputValidationError("bad").WithMetadata("field", "text")
	assert.Equal(t, "text", err.Metadata["field"])
	assert.Contains(t, err.Error(), "INPUT_VALIDATION_FAILED")
}

func TestRemainingRetries(t *testing.T) {
	tests := []struct {
		name       string
		policy     int
		jobRetries int32
		want       int
	}{
		{"non retryable code", 0, 3, 0},
		{"last attempt", 3, 1, 0},
		{"decrements job retries", 3, 3, 2},
		{"capped by policy", 2, 5, 2},
		{"exhausted job", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemainingRetries(tt.policy, tt.jobRetries))
		})
	}
}
