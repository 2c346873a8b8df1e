package chat

import "sync"

// Registry counts active relays per room in this process. It frames the
// welcome/goodbye lifecycle only; authoritative membership lives in the
// store. Counts from other instances are not visible here.
type Registry struct {
	mu        sync.Mutex
	occupancy map[int64]int
}

func NewRegistry() *Registry {
	return &Registry{occupancy: make(map[int64]int)}
}

// Enter records one more relay for the room and reports whether it is the
// first active one on this instance.
func (r *Registry) Enter(roomID int64) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.occupancy[roomID]++
	return r.occupancy[roomID] == 1
}

// Leave removes one relay and reports whether the room is now empty on
// this instance.
func (r *Registry) Leave(roomID int64) (last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.occupancy[roomID]; ok {
		if n <= 1 {
			delete(r.occupancy, roomID)
			return true
		}
		r.occupancy[roomID] = n - 1
	}
	return false
}

// Occupancy reports the number of active relays for the room.
func (r *Registry) Occupancy(roomID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupancy[roomID]
}
