package unlock

import "time"

// DayState geri sayım hesabı için bir günün asgari görünümü.
type DayState struct {
	DayNumber int
	Unlocked  bool
}

// NextCountdownDay geri sayım gösterilecek günü seçer: gün numarasına göre
// sıralı ilk açılmamış gün. Tüm günler açıksa 0 döner.
func NextCountdownDay(days []DayState) int {
	next := 0
	for _, d := range days {
		if d.Unlocked {
			continue
		}
		if next == 0 || d.DayNumber < next {
			next = d.DayNumber
		}
	}
	return next
}

// NextUnlockAt verilen günün açılacağı anı döndürür. Gün şu an zaten
// açılabilir durumdaysa ikinci dönüş değeri false olur (geri sayım gerekmez).
// Aralık öncesinde hedef 1 Aralık 07:00'dir.
func NextUnlockAt(dayNumber, year int, now time.Time) (time.Time, bool) {
	loc := now.Location()

	if now.Month() != SeasonMonth {
		return time.Date(year, SeasonMonth, 1, OpenHour, 0, 0, 0, loc), true
	}

	currentDay := now.Day()
	switch {
	case dayNumber > currentDay:
		return time.Date(now.Year(), SeasonMonth, dayNumber, OpenHour, 0, 0, 0, loc), true
	case dayNumber == currentDay && now.Hour() < OpenHour:
		return time.Date(now.Year(), SeasonMonth, dayNumber, OpenHour, 0, 0, 0, loc), true
	default:
		// Geçmiş ya da saati gelmiş gün: şimdi açılabilir.
		return time.Time{}, false
	}
}
