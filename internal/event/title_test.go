package event

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTitle(t *testing.T) {
	got, err := SanitizeTitle("  Ramadan 2025  ")
	require.NoError(t, err)
	assert.Equal(t, "Ramadan 2025", got)

	got, err = SanitizeTitle(`<b>Eid</b> <script>alert(1)</script>mubarak`)
	require.NoError(t, err)
	assert.Equal(t, "Eid alert(1)mubarak", got)

	got, err = SanitizeTitle("عيد الفطر")
	require.NoError(t, err)
	assert.Equal(t, "عيد الفطر", got)
}

func TestSanitizeTitleRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "<br/>", "<p></p>"} {
		_, err := SanitizeTitle(raw)
		assert.ErrorIs(t, err, ErrTitleRequired, "raw=%q", raw)
	}
}

func TestSanitizeTitleLength(t *testing.T) {
	_, err := SanitizeTitle(strings.Repeat("a", 101))
	assert.ErrorIs(t, err, ErrTitleTooLong)

	got, err := SanitizeTitle(strings.Repeat("a", 100))
	require.NoError(t, err)
	assert.Len(t, got, 100)

	// 101 Arabic letters is over the limit too, independent of byte count.
	_, err = SanitizeTitle(strings.Repeat("ع", 101))
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = SanitizeTitle(strings.Repeat("ع", 100))
	assert.NoError(t, err)
}
