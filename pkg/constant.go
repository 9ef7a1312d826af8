package pkg

const (
	// INF_DISTANCE is far above any reachable path cost (|cost| * m stays well below it).
	INF_DISTANCE int64 = 1e17

	UNIT_CAPACITY int64 = 1

	DEFAULT_LOG_EVERY = 1000
)

const (
	// INFEASIBLE_OUTPUT is printed when fewer than k disjoint paths exist.
	INFEASIBLE_OUTPUT = "-1"
	AVERAGE_PRECISION = 6
)
