package scheduler

// Batch aggregates the assignments sharing one room and one slot.
type Batch struct {
	Name           string
	RoomID         string
	RoomName       string
	Campus         string
	Building       string
	Slot           SlotKey
	ParticipantIDs []string
	Count          int
	HasPriority    bool
}

// AggregateBatches groups assignments by room and slot. Batches appear in the
// order their first assignment was placed and member IDs stay in placement
// order, so the same assignment list always aggregates to the same batches.
func AggregateBatches(assignments []Assignment, rooms []Room, participants []Participant) []Batch {
	roomsByID := make(map[string]Room, len(rooms))
	for _, room := range rooms {
		roomsByID[room.ID] = room
	}
	priority := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.Priority {
			priority[p.ID] = true
		}
	}

	groups := make(map[string]*Batch)
	order := make([]string, 0)
	for _, assignment := range assignments {
		groupKey := assignment.RoomID + "|" + assignment.Slot.Key()
		batch, ok := groups[groupKey]
		if !ok {
			room := roomsByID[assignment.RoomID]
			batch = &Batch{
				Name:     room.Name + " - " + assignment.Slot.Label(),
				RoomID:   assignment.RoomID,
				RoomName: room.Name,
				Campus:   room.Campus,
				Building: room.Building,
				Slot:     assignment.Slot,
			}
			groups[groupKey] = batch
			order = append(order, groupKey)
		}
		batch.ParticipantIDs = append(batch.ParticipantIDs, assignment.ParticipantID)
		batch.Count++
		if priority[assignment.ParticipantID] {
			batch.HasPriority = true
		}
	}

	batches := make([]Batch, 0, len(order))
	for _, groupKey := range order {
		batches = append(batches, *groups[groupKey])
	}
	return batches
}
