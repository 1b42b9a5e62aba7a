package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"a@b.co", "first.last+tag@mail.example.org"} {
		require.True(t, isEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "Name <a@b.co>", "a@@b.co", strings.Repeat("a", 250) + "@b.com"} {
		require.False(t, isEmail(bad), bad)
	}
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()
	l, c := strongPassword("Abcdefg1")
	require.True(t, l)
	require.True(t, c)

	l, c = strongPassword("Ab1")
	require.False(t, l)
	require.True(t, c)

	l, c = strongPassword(strings.Repeat("a", 129))
	require.False(t, l)
	require.False(t, c)
}

func TestDateAndClock(t *testing.T) {
	t.Parallel()
	require.True(t, isDate("2024-02-29"))
	require.False(t, isDate("2023-02-29"))
	require.False(t, isDate("2024-2-1"))
	require.True(t, isClock("23:59"))
	require.False(t, isClock("24:00"))
	require.False(t, isClock("7:00"))
}

func TestValidBarcode(t *testing.T) {
	t.Parallel()
	require.True(t, ValidBarcode("1234"))
	require.True(t, ValidBarcode(strings.Repeat("9", 20)))
	require.False(t, ValidBarcode("123"))
	require.False(t, ValidBarcode("12 34"))
}

func TestDaysParam(t *testing.T) {
	t.Parallel()
	d, err := daysParam(0, 7, 30)
	require.NoError(t, err)
	require.Equal(t, 7, d)
	_, err = daysParam(-1, 7, 30)
	require.Error(t, err)
	_, err = daysParam(31, 7, 30)
	require.Error(t, err)
}
