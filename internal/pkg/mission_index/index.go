package mission_index

import (
	"sync"

	"freight/internal/entities"
)

// Index кэш driver -> живая миссия. Источник истины - active_missions,
// индекс обновляется после коммита и целиком пересобирается при старте.
type Index struct {
	mu    sync.RWMutex
	byKey map[string]entities.MissionRef
}

func New() *Index {
	return &Index{
		byKey: make(map[string]entities.MissionRef),
	}
}

func (i *Index) Put(ref entities.MissionRef) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.byKey[ref.DriverID] = ref
}

func (i *Index) Get(driverID string) (entities.MissionRef, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	ref, ok := i.byKey[driverID]
	return ref, ok
}

// Delete удаляет запись только если она указывает на ту же накладную.
func (i *Index) Delete(driverID string, bolID int64) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if ref, ok := i.byKey[driverID]; ok && ref.BOLID == bolID {
		delete(i.byKey, driverID)
	}
}

func (i *Index) Replace(refs []entities.MissionRef) {
	next := make(map[string]entities.MissionRef, len(refs))
	for _, ref := range refs {
		next[ref.DriverID] = ref
	}

	i.mu.Lock()
	i.byKey = next
	i.mu.Unlock()
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.byKey)
}
