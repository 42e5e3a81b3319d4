// Package unlock bir takvim gününün kilidinin açılıp açılamayacağına karar veren
// saf kural motorunu içerir. Motor yalnızca argümanlarının fonksiyonudur; zaman,
// rol ve konfigürasyon dışarıdan verilir.
package unlock

import "time"

// Kilidin açıldığı saat: eşleşen günde yerel saatle 07:00.
const OpenHour = 7

// Kilit açma sezonunun ayı (Aralık).
const SeasonMonth = time.December

// Reason kararın gerekçe kodu. Kullanıcıya gösterilecek mesajlar bu kodlardan türetilir.
type Reason string

const (
	ReasonAlreadyUnlocked Reason = "already_unlocked"
	ReasonAdminOverride   Reason = "admin_override"
	ReasonDebugOverride   Reason = "debug_override"
	ReasonEarlyUnlock     Reason = "early_unlock"
	ReasonOutsideSeason   Reason = "outside_season"
	ReasonFutureDay       Reason = "future_day"
	ReasonTooEarlyToday   Reason = "too_early_today"
	ReasonUnlockable      Reason = "unlockable"
)

// Decision kural motorunun sonucu.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Actor kilidi açmaya çalışan kullanıcı.
type Actor struct {
	IsAdmin bool
}

// DebugPolicy konfigürasyondan gelen debug modu ayarları. Allowed kapalıyken
// istekle gelen debug bayrağı asla dikkate alınmaz; Forced açıkken tüm tarih
// kontrolleri devre dışıdır. Her ikisi de sunucu tarafında ayarlanır, istemciden gelmez.
type DebugPolicy struct {
	Allowed bool
	Forced  bool
}

// Active istekle gelen debug bayrağıyla birlikte debug modunun etkin olup olmadığı.
func (p DebugPolicy) Active(requested bool) bool {
	return p.Allowed && (requested || p.Forced)
}

// Input tek bir karar için gereken tüm girdiler.
type Input struct {
	AlreadyUnlocked bool
	DayNumber       int
	AllowEarly      bool
	Actor           Actor
	Now             time.Time
	Debug           DebugPolicy
	DebugRequested  bool
}

// Evaluate kuralları sıkı sırayla uygular; ilk eşleşen kural kararı belirler:
//  1. Açılmış gün tekrar açılamaz (terminal durum).
//  2. Adminler tüm tarih/saat kontrollerini koşulsuz atlar.
//  3. Etkin debug modu tüm kontrolleri atlar.
//  4. Aralık dışı ay reddedilir; erken açma bayrağı açıksa ay fark etmez.
//  5. Erken açma bayrağı Aralık içinde de günü beklemeyi kaldırır.
//  6. Gelecek günler reddedilir.
//  7. Eşleşen günde 07:00'den önce reddedilir.
//  8. Aksi halde izin verilir.
//
// "Henüz değil" sonuçları beklenen, olağan sonuçlardır; hata değildir.
func Evaluate(in Input) Decision {
	if in.AlreadyUnlocked {
		return Decision{Allowed: false, Reason: ReasonAlreadyUnlocked}
	}
	if in.Actor.IsAdmin {
		return Decision{Allowed: true, Reason: ReasonAdminOverride}
	}
	if in.Debug.Active(in.DebugRequested) {
		return Decision{Allowed: true, Reason: ReasonDebugOverride}
	}

	if in.Now.Month() != SeasonMonth {
		if in.AllowEarly {
			return Decision{Allowed: true, Reason: ReasonEarlyUnlock}
		}
		return Decision{Allowed: false, Reason: ReasonOutsideSeason}
	}
	if in.AllowEarly {
		return Decision{Allowed: true, Reason: ReasonEarlyUnlock}
	}

	currentDay := in.Now.Day()
	if in.DayNumber > currentDay {
		return Decision{Allowed: false, Reason: ReasonFutureDay}
	}
	if in.DayNumber == currentDay && in.Now.Hour() < OpenHour {
		return Decision{Allowed: false, Reason: ReasonTooEarlyToday}
	}
	return Decision{Allowed: true, Reason: ReasonUnlockable}
}
