package log_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/internal/logtest"
)

type closer struct {
	err error
}

func (c closer) Close() error {
	return c.err
}

func TestCloseAndLogError(t *testing.T) {
	logs := logtest.Capture(t)

	log.CloseAndLogError(closer{}, "/fine")
	log.CloseAndLogError(closer{err: errors.New("disk gone")}, "/broken")
	log.CloseAndLogError(nil, "/nothing")

	assert.False(t, logs.Contains("warn", "/fine"))
	assert.True(t, logs.Contains("warn", "/broken", "disk gone"))
	assert.True(t, logs.Contains("debug", "/nothing"))
}
