package dialog

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DateOption is one bookable day: the canonical Gregorian key plus the
// Jalali rendering shown to the user. Both always describe the same day.
type DateOption struct {
	Gregorian string
	Jalali    string
}

// Jalali weekday names, Saturday-first to match the Jalali week start.
// Indexed by the Jalali day-of-week, never the Gregorian one, otherwise
// labels drift off by the offset between week starts.
var jalaliWeekdays = [7]string{
	"شنبه",
	"یکشنبه",
	"دوشنبه",
	"سه‌شنبه",
	"چهارشنبه",
	"پنجشنبه",
	"جمعه",
}

// formatJalali renders a day as "1402/12/11 - جمعه".
func formatJalali(t time.Time) string {
	pt := ptime.New(t)
	return fmt.Sprintf("%s - %s", pt.Format("yyyy/MM/dd"), jalaliWeekdays[int(pt.Weekday())])
}

// dateOptions builds the booking date grid: horizon consecutive days
// starting today, each carried in both calendar forms.
func dateOptions(now time.Time, horizon int) []DateOption {
	options := make([]DateOption, 0, horizon)
	for i := 0; i < horizon; i++ {
		day := now.AddDate(0, 0, i)
		options = append(options, DateOption{
			Gregorian: day.Format("2006-01-02"),
			Jalali:    formatJalali(day),
		})
	}
	return options
}

// jalaliForGregorian re-derives the Jalali rendering for a canonical date
// string, so a date picked from a stale menu still stores an agreeing pair.
func jalaliForGregorian(gregorian string) (string, error) {
	day, err := time.Parse("2006-01-02", gregorian)
	if err != nil {
		return "", err
	}
	return formatJalali(day), nil
}

// timeSlots is the fixed hourly grid between the configured opening and
// closing hours, both inclusive.
func timeSlots(openHour, closeHour int) []string {
	if closeHour < openHour {
		openHour, closeHour = closeHour, openHour
	}
	slots := make([]string, 0, closeHour-openHour+1)
	for h := openHour; h <= closeHour; h++ {
		slots = append(slots, fmt.Sprintf("%d:00", h))
	}
	return slots
}

// validSlot reports whether a submitted slot is on the configured grid.
func validSlot(slot string, openHour, closeHour int) bool {
	for _, s := range timeSlots(openHour, closeHour) {
		if s == slot {
			return true
		}
	}
	return false
}
