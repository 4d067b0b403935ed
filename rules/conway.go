package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

The rules are checked in order and the first match wins:
  - alive with fewer than 2 neighbors dies (underpopulation)
  - alive with more than 3 neighbors dies (overpopulation)
  - dead with exactly 3 neighbors becomes alive (reproduction)
  - anything else keeps its current state
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}
