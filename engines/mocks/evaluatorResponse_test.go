package mocks

import (
	"testing"

	"github.com/robbyt/go-symeval/platform"
	"github.com/stretchr/testify/assert"
)

// TestEvaluatorResponseImplementsInterface verifies at compile time
// that our mock EvaluatorResponse implements the platform.EvaluatorResponse interface.
func TestEvaluatorResponseImplementsInterface(t *testing.T) {
	t.Parallel()
	var _ platform.EvaluatorResponse = (*EvaluatorResponse)(nil)
}

func TestEvaluatorResponseMethods(t *testing.T) {
	t.Parallel()

	mockResp := new(EvaluatorResponse)
	mockResp.On("Values").Return([]float64{5, 7, 13})
	mockResp.On("Rows").Return(nil)
	mockResp.On("Inspect").Return("[5 7 13]")
	mockResp.On("Interface").Return([]float64{5, 7, 13})
	mockResp.On("GetScriptExeID").Return("abc123")
	mockResp.On("GetExecTime").Return("10µs")

	assert.Equal(t, []float64{5, 7, 13}, mockResp.Values())
	assert.Nil(t, mockResp.Rows())
	assert.Equal(t, "[5 7 13]", mockResp.Inspect())
	assert.Equal(t, []float64{5, 7, 13}, mockResp.Interface())
	assert.Equal(t, "abc123", mockResp.GetScriptExeID())
	assert.Equal(t, "10µs", mockResp.GetExecTime())
	mockResp.AssertExpectations(t)
}
