package common

import (
	"sync"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// KeyedLocker hands out one mutex per key. Mutations to one settlement (or
// continent) are serialized; different keys never contend.
type KeyedLocker struct {
	locks sync.Map // key -> *sync.Mutex
}

// NewKeyedLocker creates an empty locker
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{}
}

// Lock acquires the mutex for key and returns its unlock function
func (l *KeyedLocker) Lock(key string) func() {
	lockIface, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mu := lockIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// SettlementLockKey guards a settlement's construction queue and ledgers
func SettlementLockKey(id shared.SettlementID) string {
	return "settlement:" + id.String()
}

// ContinentLockKey guards settlement placement on a continent
func ContinentLockKey(id shared.ContinentID) string {
	return "continent:" + id.String()
}
