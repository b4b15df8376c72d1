package gridnav

// noParent is the parent index of the start node.
const noParent int32 = -1

// searchNode is one arena entry of a search run. Parent indexes the node that
// generated it, so the chain back to the start is always acyclic.
type searchNode struct {
	Cell      Cell
	Cost      int
	Heuristic int
	Parent    int32
}

func (node searchNode) priority() int { return node.Cost + node.Heuristic }

// manhattan is admissible and consistent for 4-directional unit moves.
func manhattan(from, to Cell) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
