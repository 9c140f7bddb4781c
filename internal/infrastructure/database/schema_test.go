package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldsNonASCII(t *testing.T) {
	for _, ctype := range []string{"C", "POSIX", "posix", ""} {
		assert.False(t, foldsNonASCII(ctype), ctype)
	}
	for _, ctype := range []string{"en_US.UTF-8", "ru_RU.utf8", "und-x-icu"} {
		assert.True(t, foldsNonASCII(ctype), ctype)
	}
}
