package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	assert.Equal(t, All, For("Superadmin"))
	assert.Equal(t, All, For(" superadmin "))

	assert.Equal(t, OwnOnly, For("Employee"))
	assert.Equal(t, OwnOnly, For("Lead"))
	assert.Equal(t, OwnOnly, For(""))
	assert.Equal(t, OwnOnly, For("admin"))
}
