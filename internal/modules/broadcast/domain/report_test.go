package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReport_Ratios(t *testing.T) {
	report := Report{Total: 4, Success: 3, Failed: 1, Duration: 2 * time.Second}
	assert.InDelta(t, 75.0, report.SuccessRate(), 0.01)
	assert.InDelta(t, 1.5, report.Throughput(), 0.01)
}

func TestReport_ZeroGuards(t *testing.T) {
	var report Report
	assert.Equal(t, 0.0, report.SuccessRate())
	assert.Equal(t, 0.0, report.Throughput())
	assert.Equal(t, 0.0, Progress{}.Percent())
}
