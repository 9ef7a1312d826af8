package osmparser

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

// Metric decides what an edge cost measures.
type Metric int

const (
	METRIC_DISTANCE Metric = iota // meters
	METRIC_DURATION               // seconds at the way's speed
)

func ParseMetric(s string) (Metric, bool) {
	switch s {
	case "distance":
		return METRIC_DISTANCE, true
	case "duration":
		return METRIC_DURATION, true
	default:
		return METRIC_DISTANCE, false
	}
}

const (
	DEFAULT_SPEED_KMH = 30.0
	LOG_EVERY_WAYS    = 50000
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":         struct{}{},
		"motorway_link":    struct{}{},
		"trunk":            struct{}{},
		"trunk_link":       struct{}{},
		"primary":          struct{}{},
		"primary_link":     struct{}{},
		"secondary":        struct{}{},
		"secondary_link":   struct{}{},
		"residential":      struct{}{},
		"residential_link": struct{}{},
		"service":          struct{}{},
		"tertiary":         struct{}{},
		"tertiary_link":    struct{}{},
		"road":             struct{}{},
		"track":            struct{}{},
		"unclassified":     struct{}{},
		"undefined":        struct{}{},
		"unknown":          struct{}{},
		"living_street":    struct{}{},
		"private":          struct{}{},
		"motorroad":        struct{}{},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier node with access=no cuts the road in two disconnected edges
	acceptedBarrierType = map[string]struct{}{
		"bollard":        struct{}{},
		"swing_gate":     struct{}{},
		"jersey_barrier": struct{}{},
		"lift_gate":      struct{}{},
		"block":          struct{}{},
		"gate":           struct{}{},
	}
)

func roadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 40
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 5
	case "road":
		return 20
	case "track":
		return 15
	case "motorroad":
		return 90
	default:
		return DEFAULT_SPEED_KMH
	}
}
