package scheduler

// CapacityTracker counts the seats already filled per room and slot. It is
// scoped to a single run and never evicts entries.
type CapacityTracker struct {
	counts map[string]map[string]int
}

// NewCapacityTracker returns an empty tracker.
func NewCapacityTracker() *CapacityTracker {
	return &CapacityTracker{counts: make(map[string]map[string]int)}
}

// Count reports how many seats are filled in the given room and slot. Unseen
// combinations report zero.
func (t *CapacityTracker) Count(roomID string, slot SlotKey) int {
	if t == nil {
		return 0
	}
	return t.counts[roomID][slot.Key()]
}

// Increment records one more filled seat for the given room and slot.
func (t *CapacityTracker) Increment(roomID string, slot SlotKey) {
	if t == nil {
		return
	}
	perRoom, ok := t.counts[roomID]
	if !ok {
		perRoom = make(map[string]int)
		t.counts[roomID] = perRoom
	}
	perRoom[slot.Key()]++
}
