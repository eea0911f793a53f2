package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tables := []struct {
		version int32
		name    string
	}{
		{2586, "1.16.5"},
		{2699, "21w10a"},
		{3465, "1.20.1"},
		{0, Unknown},
		{-1, Unknown},
		{999999, Unknown},
	}

	for _, table := range tables {
		assert.Equal(t, table.name, Describe(table.version))
	}
}

func TestLatest(t *testing.T) {
	latest := Latest()
	assert.NotEqual(t, Unknown, Describe(latest))
	for v := range names {
		assert.LessOrEqual(t, v, latest)
	}
}
