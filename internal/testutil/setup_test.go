package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipIfShort(t *testing.T) {
	ran := false
	t.Run("long", func(t *testing.T) {
		SkipIfShort(t, "needs a long run")
		ran = true
	})
	assert.Equal(t, !testing.Short(), ran)
}
