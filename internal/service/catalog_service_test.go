package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVideoFilename(t *testing.T) {
	assert.True(t, isVideoFilename("lecture.mp4"))
	assert.True(t, isVideoFilename("Lecture.MP4"))
	assert.True(t, isVideoFilename("intro.webm"))
	assert.False(t, isVideoFilename("slides.pdf"))
	assert.False(t, isVideoFilename("noext"))
}
