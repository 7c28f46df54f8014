package tournament

// Pair splits standings into next-round pairings: rows (0,1), (2,3), and so on.
//
// With an odd number of players the bye goes to the lowest-ranked player not in
// hadBye (or the lowest-ranked player if everyone has had one). That player is
// taken out before pairing and returned as the final entry with Bye set.
// Previous opponents are not considered, so rematches are possible.
func Pair(standings []Standing, hadBye map[int64]bool) []Pairing {
	pairings := make([]Pairing, 0, (len(standings)+1)/2)
	if len(standings) == 0 {
		return pairings
	}

	order := standings
	var bye *Standing
	if len(standings)%2 == 1 {
		idx := byeIndex(standings, hadBye)
		bye = &standings[idx]
		order = make([]Standing, 0, len(standings)-1)
		order = append(order, standings[:idx]...)
		order = append(order, standings[idx+1:]...)
	}

	for i := 0; i+1 < len(order); i += 2 {
		pairings = append(pairings, Pairing{
			ID1:   order[i].ID,
			Name1: order[i].Name,
			ID2:   order[i+1].ID,
			Name2: order[i+1].Name,
		})
	}

	if bye != nil {
		pairings = append(pairings, Pairing{ID1: bye.ID, Name1: bye.Name, Bye: true})
	}
	return pairings
}

func byeIndex(standings []Standing, hadBye map[int64]bool) int {
	for i := len(standings) - 1; i >= 0; i-- {
		if !hadBye[standings[i].ID] {
			return i
		}
	}
	return len(standings) - 1
}
