package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "dev", buildVersion())

	version = "2.1.0"
	t.Cleanup(func() { version = "" })
	assert.Equal(t, "2.1.0", buildVersion())
}
