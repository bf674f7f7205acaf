package engineconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanbld/utf8proj/internal/domain"
)

func TestLevelingDefault(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.LevelingMode
	}{
		{"", domain.LevelingWarn},
		{"auto", domain.LevelingAuto},
		{"AUTO", domain.LevelingAuto},
		{"error", domain.LevelingError},
		{"nonsense", domain.LevelingWarn},
	}
	for _, c := range cases {
		t.Setenv(envLeveling, c.raw)
		assert.Equal(t, c.want, LevelingDefault(), "raw=%q", c.raw)
	}
}

func TestMaxDelayFactorDefault(t *testing.T) {
	t.Setenv(envMaxDelayFactor, "")
	_, ok := MaxDelayFactorDefault()
	assert.False(t, ok)

	t.Setenv(envMaxDelayFactor, "2.5")
	f, ok := MaxDelayFactorDefault()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	t.Setenv(envMaxDelayFactor, "-1")
	_, ok = MaxDelayFactorDefault()
	assert.False(t, ok)

	t.Setenv(envMaxDelayFactor, "not-a-number")
	_, ok = MaxDelayFactorDefault()
	assert.False(t, ok)
}
