package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestResultFor(t *testing.T) {
	assert.Equal(t, ResultSuccess, ResultFor(nil, false))
	assert.Equal(t, ResultCanceled, ResultFor(errors.New("x"), true))
	assert.Equal(t, ResultFailed, ResultFor(errors.New("x"), false))
}
