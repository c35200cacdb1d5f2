package quota

import "sync"

// Harmony Ref başına kilit. Kilitler hiç silinmez; personel sayısı sınırlı
// olduğu için map büyümesi sorun değil.
var refLocks sync.Map

func lockFor(harmonyRef string) *sync.Mutex {
	v, _ := refLocks.LoadOrStore(harmonyRef, &sync.Mutex{})
	return v.(*sync.Mutex)
}
