package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"

	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

var ErrNodeNotOnRoad = errors.New("node is not part of an accepted road")

type OsmParser struct {
	wayNodeMap      map[osm.NodeID]NodeType
	acceptedNodeMap map[osm.NodeID]da.Coordinate
	barrierNodes    map[osm.NodeID]bool
	ways            []osmWay
	metric          Metric
	logger          *zap.Logger
}

func NewOSMParser(metric Metric, logger *zap.Logger) *OsmParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OsmParser{
		wayNodeMap:      make(map[osm.NodeID]NodeType),
		acceptedNodeMap: make(map[osm.NodeID]da.Coordinate),
		barrierNodes:    make(map[osm.NodeID]bool),
		metric:          metric,
		logger:          logger,
	}
}

// Parse reads an OSM PBF extract in two passes: ways first to learn which nodes are road
// nodes, then nodes to keep only their coordinates.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) error {
	f, err := os.Open(mapFile)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	err = p.ScanWays(scanner)
	scanner.Close()
	if err != nil {
		return fmt.Errorf("scanning ways of %s: %w", mapFile, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	scanner = osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	defer scanner.Close()
	if err := p.ScanNodes(scanner); err != nil {
		return fmt.Errorf("scanning nodes of %s: %w", mapFile, err)
	}
	return nil
}

// ScanWays keeps accepted highway ways and classifies their nodes. A node seen on more than
// one way, or twice on the same way, is a junction.
func (p *OsmParser) ScanWays(scanner osm.Scanner) error {
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%LOG_EVERY_WAYS == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, node := range way.Nodes {
			if _, ok := p.wayNodeMap[node.ID]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[node.ID] = END_NODE
				} else {
					p.wayNodeMap[node.ID] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[node.ID] = JUNCTION_NODE
			}
		}
		p.ways = append(p.ways, newOsmWay(way))
	}
	return scanner.Err()
}

// ScanNodes stores coordinates of the nodes referenced by accepted ways and the blocking barriers.
func (p *OsmParser) ScanNodes(scanner osm.Scanner) error {
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := p.wayNodeMap[node.ID]; !ok {
			continue
		}
		p.acceptedNodeMap[node.ID] = da.NewCoordinate(node.Lat, node.Lon)

		barrierType := node.Tags.Find("barrier")
		if _, ok := acceptedBarrierType[barrierType]; ok && node.Tags.Find("access") == "no" {
			p.barrierNodes[node.ID] = true
		}
	}
	return scanner.Err()
}

func (p *OsmParser) NumberOfWays() int {
	return len(p.ways)
}

// BuildRoadNetwork turns the scanned ways into an instance asking for k disjoint routes from
// source to sink. Ways are cut into edges at junctions; with respectOneWay the instance is
// directed and one way roads only get the arc in their travel direction.
func (p *OsmParser) BuildRoadNetwork(source, sink osm.NodeID, k int, respectOneWay bool) (*RoadNetwork, error) {
	b := newNetworkBuilder(p, respectOneWay)
	for _, id := range []osm.NodeID{source, sink} {
		if _, ok := p.acceptedNodeMap[id]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrNodeNotOnRoad, id)
		}
		// the endpoints must be graph vertices even when they sit in the middle of a way
		b.endpoints[id] = true
	}

	for i := range p.ways {
		b.addWay(&p.ways[i])
	}
	if b.skippedSegments > 0 {
		p.logger.Sugar().Infof("skipped %d road segments with nodes outside the extract", b.skippedSegments)
	}

	sourceVertex, sinkVertex := b.vertex(source), b.vertex(sink)
	instance := da.NewInstance(len(b.osmNodeIDs), k, b.edges)
	instance.Source = sourceVertex
	instance.Sink = sinkVertex
	instance.Directed = respectOneWay

	p.logger.Info("road network built",
		zap.Int("ways", len(p.ways)),
		zap.Int("vertices", instance.NumVertices),
		zap.Int("edges", instance.NumEdges()))

	return &RoadNetwork{
		instance:   instance,
		osmNodeIDs: b.osmNodeIDs,
		geometries: b.geometries,
		wayIDs:     b.wayIDs,
	}, nil
}

func (p *OsmParser) edgeCost(lengthMeters, speedKmh float64) int64 {
	if p.metric == METRIC_DURATION {
		return int64(math.Round(lengthMeters / (speedKmh / 3.6)))
	}
	return int64(math.Round(lengthMeters))
}

type networkBuilder struct {
	parser          *OsmParser
	respectOneWay   bool
	endpoints       map[osm.NodeID]bool
	nodeIDMap       map[osm.NodeID]da.Index
	osmNodeIDs      []osm.NodeID
	edges           []da.InputEdge
	geometries      [][]da.Coordinate
	wayIDs          []osm.WayID
	skippedSegments int
}

func newNetworkBuilder(p *OsmParser, respectOneWay bool) *networkBuilder {
	return &networkBuilder{
		parser:        p,
		respectOneWay: respectOneWay,
		endpoints:     make(map[osm.NodeID]bool),
		nodeIDMap:     make(map[osm.NodeID]da.Index),
	}
}

func (b *networkBuilder) vertex(id osm.NodeID) da.Index {
	if v, ok := b.nodeIDMap[id]; ok {
		return v
	}
	v := da.Index(len(b.osmNodeIDs))
	b.nodeIDMap[id] = v
	b.osmNodeIDs = append(b.osmNodeIDs, id)
	return v
}

// copyVertex new vertex for an osm node that is already a vertex, not reachable through the original.
func (b *networkBuilder) copyVertex(id osm.NodeID) da.Index {
	v := da.Index(len(b.osmNodeIDs))
	b.osmNodeIDs = append(b.osmNodeIDs, id)
	return v
}

func (b *networkBuilder) isJunctionNode(id osm.NodeID) bool {
	return b.parser.wayNodeMap[id] == JUNCTION_NODE || b.endpoints[id]
}

func (b *networkBuilder) addWay(way *osmWay) {
	waySegment := []osm.NodeID{}
	for _, id := range way.nodes {
		waySegment = append(waySegment, id)
		if b.isJunctionNode(id) && len(waySegment) > 1 {
			b.processSegment(way, waySegment)
			waySegment = []osm.NodeID{id}
		}
	}
	if len(waySegment) > 1 {
		b.processSegment(way, waySegment)
	}
}

func (b *networkBuilder) processSegment(way *osmWay, segment []osm.NodeID) {
	switch {
	case len(segment) == 2 && segment[0] == segment[1]:
		return
	case len(segment) > 2 && segment[0] == segment[len(segment)-1]:
		// closed loop, split so both halves have distinct endpoints
		b.splitAtBarriers(way, segment[:len(segment)-1])
		b.splitAtBarriers(way, segment[len(segment)-2:])
	default:
		b.splitAtBarriers(way, segment)
	}
}

func (b *networkBuilder) splitAtBarriers(way *osmWay, segment []osm.NodeID) {
	for _, id := range segment {
		if _, ok := b.parser.acceptedNodeMap[id]; !ok {
			b.skippedSegments++
			return
		}
	}

	from := b.vertex(segment[0])
	start := 0
	for i := 1; i < len(segment)-1; i++ {
		if !b.parser.barrierNodes[segment[i]] {
			continue
		}
		b.addEdge(way, segment[start:i+1], from, b.vertex(segment[i]))
		from = b.copyVertex(segment[i])
		start = i
	}
	b.addEdge(way, segment[start:], from, b.vertex(segment[len(segment)-1]))
}

func (b *networkBuilder) addEdge(way *osmWay, segment []osm.NodeID, from, to da.Index) {
	if from == to {
		return
	}

	edgePoints := make([]da.Coordinate, 0, len(segment))
	for _, id := range segment {
		edgePoints = append(edgePoints, b.parser.acceptedNodeMap[id])
	}

	cost := b.parser.edgeCost(geo.PolylineLengthMeters(edgePoints), way.speed)
	edgePoints = geo.RamerDouglasPeucker(edgePoints) // simplify edge geometry

	switch {
	case !b.respectOneWay:
		b.push(from, to, cost, edgePoints, way.id)
	case !way.oneWay:
		b.push(from, to, cost, edgePoints, way.id)
		b.push(to, from, cost, da.ReverseCoordinates(edgePoints), way.id)
	case way.forward:
		b.push(from, to, cost, edgePoints, way.id)
	default:
		b.push(to, from, cost, da.ReverseCoordinates(edgePoints), way.id)
	}
}

func (b *networkBuilder) push(from, to da.Index, cost int64, geometry []da.Coordinate, wayID osm.WayID) {
	b.edges = append(b.edges, da.NewInputEdge(from, to, cost))
	b.geometries = append(b.geometries, geometry)
	b.wayIDs = append(b.wayIDs, wayID)
}
