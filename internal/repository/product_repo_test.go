package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "shirt", escapeLike("shirt"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `\%`, escapeLike("%"), "bare wildcard must not match everything")
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
	assert.Equal(t, `\\\%`, escapeLike(`\%`))
}
