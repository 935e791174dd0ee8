package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaInfoEstimatedMinutes(t *testing.T) {
	assert.Equal(t, 0, (&MediaInfo{Duration: 0}).EstimatedMinutes())
	assert.Equal(t, 1, (&MediaInfo{Duration: 30}).EstimatedMinutes())
	assert.Equal(t, 2, (&MediaInfo{Duration: 61}).EstimatedMinutes())
}

func TestMediaInfoISODuration(t *testing.T) {
	assert.Equal(t, "", (&MediaInfo{Duration: 0}).ISODuration())
	assert.Equal(t, "PT45S", (&MediaInfo{Duration: 45}).ISODuration())
	assert.Equal(t, "PT2M", (&MediaInfo{Duration: 120}).ISODuration())
	assert.Equal(t, "PT1H30M15S", (&MediaInfo{Duration: 5415}).ISODuration())
}
