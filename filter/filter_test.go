package filter

import (
	"archivuelo/database/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileBornAt(t time.Time) model.MediaFile {
	return model.MediaFile{FilepathSrc: "/DCIM/IMG.JPG", Filename: "IMG.JPG", TimeBirthtime: t}
}

func TestParseTime(t *testing.T) {
	cases := map[string]time.Time{
		"2024-01-01":          time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		"2024-01-01 13:45":    time.Date(2024, 1, 1, 13, 45, 0, 0, time.Local),
		"2024-01-01 13:45:10": time.Date(2024, 1, 1, 13, 45, 10, 0, time.Local),
		" 2024-06-30 ":        time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local),
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	for _, bad := range []string{"", "yesterday", "2024/01/01", "2024-13-01"} {
		_, err := ParseTime(bad)
		assert.ErrorIs(t, err, ErrInvalidFilterValue, bad)
	}
}

func TestExcludeBeforeAndAfter(t *testing.T) {
	before, err := NewExcludeBeforeFromString("2024-01-01")
	require.NoError(t, err)
	after, err := NewExcludeAfterFromString("2024-06-30")
	require.NoError(t, err)

	boundary := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, before.Test(fileBornAt(boundary)).Passed)
	assert.False(t, before.Test(fileBornAt(boundary.Add(-time.Second))).Passed)

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local)
	assert.True(t, after.Test(fileBornAt(end)).Passed)
	assert.False(t, after.Test(fileBornAt(end.Add(time.Second))).Passed)

	t.Run("MissingBirthtime", func(t *testing.T) {
		o := before.Test(fileBornAt(time.Time{}))
		assert.False(t, o.Passed)
		assert.Equal(t, "no birthtime", o.Reason)
		assert.False(t, after.Test(fileBornAt(time.Time{})).Passed)
	})

	t.Run("InvalidValue", func(t *testing.T) {
		_, err := NewExcludeBeforeFromString("last week")
		assert.ErrorIs(t, err, ErrInvalidFilterValue)
		_, err = NewExcludeAfterFromString("31/12/2024")
		assert.ErrorIs(t, err, ErrInvalidFilterValue)
	})
}

func TestSetIsConjunction(t *testing.T) {
	set, err := FromStrings("2024-01-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, set, 2)

	admitted := set.Admit(fileBornAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, admitted.Admitted)
	assert.Equal(t, "admitted", admitted.String())

	early := set.Admit(fileBornAt(time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, early.Admitted)
	require.Len(t, early.Failed, 1)
	assert.Contains(t, early.Failed[0].Label, "exclude-before")
	assert.Contains(t, early.String(), "rejected by exclude-before")

	late := set.Admit(fileBornAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local)))
	assert.False(t, late.Admitted)
	assert.Contains(t, late.Failed[0].Label, "exclude-after")
}

func TestEmptySetAdmitsAll(t *testing.T) {
	set, err := FromStrings("", "")
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.True(t, set.Admit(fileBornAt(time.Time{})).Admitted)
	assert.Equal(t, "none", set.String())

	_, err = FromStrings("nope", "")
	assert.ErrorIs(t, err, ErrInvalidFilterValue)
}
