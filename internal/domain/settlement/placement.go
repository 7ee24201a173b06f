package settlement

import (
	"math/rand/v2"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Place picks a free coordinate on the continent.
//
// Every free cell is enumerated, the finite candidate list is shuffled with rng
// and the first candidate wins, so the search always terminates. A continent
// with no free cell yields ContinentFullError.
func Place(continent *Continent, occupied []shared.Coordinate, rng *rand.Rand) (shared.Coordinate, error) {
	taken := make(map[shared.Coordinate]bool, len(occupied))
	for _, c := range occupied {
		taken[c] = true
	}

	candidates := make([]shared.Coordinate, 0, continent.Capacity())
	for x := 1; x <= continent.Width(); x++ {
		for y := 1; y <= continent.Height(); y++ {
			c := shared.NewCoordinate(x, y)
			if !taken[c] {
				candidates = append(candidates, c)
			}
		}
	}

	if len(candidates) == 0 {
		return shared.Coordinate{}, &ContinentFullError{
			ContinentID: continent.ID(),
			Name:        continent.Name(),
			Capacity:    continent.Capacity(),
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[0], nil
}
