package scheduler

// OrderParticipants returns the processing order for a roster. When
// prioritize is true, flagged participants are moved ahead of the rest while
// the relative order within each group is preserved, so identical input
// always produces an identical order. When prioritize is false the input
// order is returned unchanged.
func OrderParticipants(participants []Participant, prioritize bool) []Participant {
	ordered := make([]Participant, 0, len(participants))
	if !prioritize {
		return append(ordered, participants...)
	}
	for _, p := range participants {
		if p.Priority {
			ordered = append(ordered, p)
		}
	}
	for _, p := range participants {
		if !p.Priority {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
