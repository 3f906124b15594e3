package bot

import (
	"fmt"
	"regexp"
	"strconv"
)

// NetherScale is the overworld distance covered by one nether block.
const NetherScale = 8

// RoadSpacing is the distance between numbered nether roads.
const RoadSpacing = 50

var coordinatePattern = regexp.MustCompile(`^-?\d+$`)

// Portal is where a nether portal should go for an overworld position.
type Portal struct {
	NetherX int
	NetherZ int
	Highway string
	Road    string
	Number  int
}

// PortalFor computes the nether position and nearest road for overworld x, z.
// The axis with the larger absolute nether coordinate picks the highway; on a
// tie the z axis wins.
func PortalFor(x, z int) Portal {
	p := Portal{
		NetherX: floorDiv(x, NetherScale),
		NetherZ: floorDiv(z, NetherScale),
	}

	if abs(p.NetherX) > abs(p.NetherZ) {
		p.Number = roundToSpacing(p.NetherX)
		p.Highway = pick(p.NetherX > 0, "East", "West")
		p.Road = pick(p.NetherZ > 0, "South", "North") + p.Highway
	} else {
		p.Number = roundToSpacing(p.NetherZ)
		p.Highway = pick(p.NetherZ > 0, "South", "North")
		p.Road = p.Highway + pick(p.NetherX > 0, "East", "West")
	}
	return p
}

func (p Portal) String() string {
	return fmt.Sprintf("Your portal in the nether should be placed at x%d y80 z%d off of %s %s %d Road",
		p.NetherX, p.NetherZ, p.Highway, p.Road, p.Number)
}

// parseCoordinates validates the two portalhelp arguments.
func parseCoordinates(args []string) (x, z int, ok bool) {
	if len(args) != 2 || !coordinatePattern.MatchString(args[0]) || !coordinatePattern.MatchString(args[1]) {
		return 0, 0, false
	}
	x, errX := strconv.Atoi(args[0])
	z, errZ := strconv.Atoi(args[1])
	if errX != nil || errZ != nil {
		return 0, 0, false
	}
	return x, z, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// roundToSpacing rounds n to the nearest multiple of RoadSpacing, halves up.
func roundToSpacing(n int) int {
	return floorDiv(2*n+RoadSpacing, 2*RoadSpacing) * RoadSpacing
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
