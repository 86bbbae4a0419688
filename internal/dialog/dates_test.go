package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestDateOptions_GridShape(t *testing.T) {
	options := dateOptions(fixedNow, 7)
	require.Len(t, options, 7)

	require.Equal(t, "2024-03-01", options[0].Gregorian)
	require.Equal(t, "2024-03-03", options[2].Gregorian)
	require.Equal(t, "2024-03-07", options[6].Gregorian)
}

func TestDateOptions_JalaliPairing(t *testing.T) {
	options := dateOptions(fixedNow, 3)

	// 2024-03-01 is 1402/12/11, a Friday
	require.Equal(t, "1402/12/11 - جمعه", options[0].Jalali)
	require.Equal(t, "1402/12/12 - شنبه", options[1].Jalali)
	require.Equal(t, "1402/12/13 - یکشنبه", options[2].Jalali)
}

func TestJalaliForGregorian(t *testing.T) {
	jalali, err := jalaliForGregorian("2024-03-01")
	require.NoError(t, err)
	require.Equal(t, "1402/12/11 - جمعه", jalali)

	_, err = jalaliForGregorian("not-a-date")
	require.Error(t, err)
}

func TestTimeSlots_InclusiveBounds(t *testing.T) {
	slots := timeSlots(9, 17)
	require.Len(t, slots, 9)
	require.Equal(t, "9:00", slots[0])
	require.Equal(t, "17:00", slots[8])
}

func TestValidSlot(t *testing.T) {
	require.True(t, validSlot("9:00", 9, 17))
	require.True(t, validSlot("17:00", 9, 17))
	require.False(t, validSlot("8:00", 9, 17))
	require.False(t, validSlot("18:00", 9, 17))
	require.False(t, validSlot("09:00", 9, 17))
	require.False(t, validSlot("10:30", 9, 17))
}
