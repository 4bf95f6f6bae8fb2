package dashboard

import (
	"fmt"
	"strings"
	"time"
)

var weekdayLongNames = map[string][]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"ar": {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
}

var monthLongNames = map[string][]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"ar": {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
}

var meridiemNames = map[string][2]string{
	"en": {"AM", "PM"},
	"ar": {"ص", "م"},
}

// Clock is the date and time line shown in the dashboard header.
type Clock struct {
	Date string
	Time string
}

func (clock Clock) String() string {
	return clock.Date + " - " + clock.Time
}

// FormatClock renders value as a long Gregorian date and a 12-hour time.
// Unsupported languages fall back to Arabic.
func FormatClock(language string, value time.Time) Clock {
	lang := strings.ToLower(strings.TrimSpace(language))
	if _, ok := monthLongNames[lang]; !ok {
		lang = "ar"
	}
	weekday := weekdayLongNames[lang][int(value.Weekday())]
	month := monthLongNames[lang][int(value.Month())-1]

	hour := value.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := meridiemNames[lang][0]
	if value.Hour() >= 12 {
		meridiem = meridiemNames[lang][1]
	}
	clockTime := fmt.Sprintf("%02d:%02d %s", hour, value.Minute(), meridiem)

	if lang == "ar" {
		return Clock{
			Date: fmt.Sprintf("%s، %d %s %d", weekday, value.Day(), month, value.Year()),
			Time: clockTime,
		}
	}
	return Clock{
		Date: fmt.Sprintf("%s, %s %d, %d", weekday, month, value.Day(), value.Year()),
		Time: clockTime,
	}
}
