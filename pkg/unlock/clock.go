package unlock

import "time"

// Clock şimdiki zamanı sağlar. Testlerde sabit bir değerle değiştirilebilmesi
// için tüm zaman bağımlı bileşenlere enjekte edilir.
type Clock interface {
	Now() time.Time
}

// SystemClock gerçek sistem saatini kullanır.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock her zaman aynı anı döndürür.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }
