// Package gridnav finds shortest paths on 2-D occupancy grids.
//
// It exposes two main entry points:
//
//   - Search / FindPath: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Movement is 4-directional with unit cost. The frontier is ordered either by
// cost plus Manhattan distance (Heuristic, A*) or by cost alone (Uniform,
// Dijkstra). Grids are produced by Generate, which blocks each cell
// independently with a given probability from a caller-supplied random source.
package gridnav
