package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildInfo(t *testing.T) {
	s := buildInfo.String()

	assert.NotEmpty(t, buildInfo.version)
	assert.Contains(t, s, "commit: ")
	assert.Contains(t, s, "built: ")
}
