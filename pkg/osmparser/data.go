package osmparser

import (
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

type osmWay struct {
	id      osm.WayID
	nodes   []osm.NodeID
	oneWay  bool
	forward bool
	speed   float64 // km/h
}

func newOsmWay(way *osm.Way) osmWay {
	w := osmWay{
		id:      way.ID,
		nodes:   make([]osm.NodeID, 0, len(way.Nodes)),
		forward: true,
		speed:   waySpeed(way),
	}
	for _, node := range way.Nodes {
		w.nodes = append(w.nodes, node.ID)
	}

	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	if val := way.Tags.Find("oneway"); val == "yes" || val == "-1" || okvf || okmvf || okvb || okmvb {
		w.oneWay = true
	}
	if way.Tags.Find("oneway") == "-1" || okvf || okmvf {
		// okvf / omvf = restricted/not allowed forward.
		w.forward = false
	}
	return w
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

// waySpeed maxspeed tag in km/h, falling back to the road class speed. Unparsable tags fall back too.
func waySpeed(way *osm.Way) float64 {
	maxSpeed := 0.0
	tag := way.Tags.Find("maxspeed")
	switch {
	case strings.Contains(tag, "mph"):
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(tag, "mph", "", -1)), 64); err == nil {
			maxSpeed = v * 1.60934
		}
	case strings.Contains(tag, "knots"):
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(tag, "knots", "", -1)), 64); err == nil {
			maxSpeed = v * 1.852
		}
	case tag != "":
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(tag, "km/h", "", -1)), 64); err == nil {
			maxSpeed = v
		}
	}

	if maxSpeed <= 0 {
		maxSpeed = roadTypeMaxSpeed(way.Tags.Find("highway"))
	}
	return maxSpeed
}
