package gridnav

// frontierItem is a heap entry referring to a node in the search arena.
// Seq records insertion order and breaks priority ties first-in first-out.
type frontierItem struct {
	Node     int32
	Priority int
	Seq      uint64
}

type frontier []frontierItem

func (queue frontier) Len() int { return len(queue) }
func (queue frontier) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].Seq < queue[j].Seq
}
func (queue frontier) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *frontier) Push(x any) {
	*queue = append(*queue, x.(frontierItem))
}

func (queue *frontier) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}
