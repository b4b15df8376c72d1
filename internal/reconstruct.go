package internal

// ReconstructPath follows parent indices from goal through arena until a
// negative index and returns the visited values in start-to-goal order.
func ReconstructPath[Node any, Value any](
	arena []Node,
	goal int32,
	link func(Node) (Value, int32),
) []Value {
	var path []Value
	for current := goal; current >= 0; {
		value, parent := link(arena[current])
		path = append(path, value)
		current = parent
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
