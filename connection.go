package shp2xodr

import (
	"math"

	"github.com/paulmach/orb"
)

// contactEnd is pose and width of a lane surface center line at one of its ends
type contactEnd struct {
	point   orb.Point
	heading float64
	width   float64
}

func surfaceStartContact(surface *LaneSurface) contactEnd {
	return contactEnd{
		point:   surface.CenterLine[0],
		heading: surface.StartHeading(),
		width:   surface.WidthProfile[0].Width,
	}
}

func surfaceEndContact(surface *LaneSurface) contactEnd {
	return contactEnd{
		point:   surface.CenterLine[len(surface.CenterLine)-1],
		heading: surface.EndHeading(),
		width:   surface.WidthProfile[len(surface.WidthProfile)-1].Width,
	}
}

// RoadConnections is the read-only connection index of one conversion run. It is built
// once, before any adjustment starts, and captures the unadjusted contact ends of every
// neighbor surface; groups only read it afterwards
type RoadConnections struct {
	// incoming[roadID] are contact ends of predecessor surfaces at the road start
	incoming map[string][]contactEnd
	// outgoing[roadID] are contact ends of successor surfaces at the road end
	outgoing map[string][]contactEnd
}

// buildRoadConnections scans declared predecessor/successor relationships of all groups.
// Neighbors missing from the batch are ignored
func buildRoadConnections(groups map[string]*RoadSurfaceGroup) *RoadConnections {
	connections := &RoadConnections{
		incoming: make(map[string][]contactEnd),
		outgoing: make(map[string][]contactEnd),
	}
	for _, group := range groups {
		for _, predecessorID := range group.Predecessors {
			predecessor, ok := groups[predecessorID]
			if !ok {
				continue
			}
			for _, surface := range predecessor.Surfaces {
				connections.incoming[group.RoadID] = append(connections.incoming[group.RoadID], surfaceEndContact(surface))
			}
		}
		for _, successorID := range group.Successors {
			successor, ok := groups[successorID]
			if !ok {
				continue
			}
			for _, surface := range successor.Surfaces {
				connections.outgoing[group.RoadID] = append(connections.outgoing[group.RoadID], surfaceStartContact(surface))
			}
		}
	}
	return connections
}

// Incoming returns predecessor contact ends for given road
func (connections *RoadConnections) Incoming(roadID string) []contactEnd {
	return connections.incoming[roadID]
}

// Outgoing returns successor contact ends for given road
func (connections *RoadConnections) Outgoing(roadID string) []contactEnd {
	return connections.outgoing[roadID]
}

func meanContactPoint(contacts []contactEnd) orb.Point {
	sumX, sumY := 0.0, 0.0
	for _, contact := range contacts {
		sumX += contact.point.X()
		sumY += contact.point.Y()
	}
	return orb.Point{sumX / float64(len(contacts)), sumY / float64(len(contacts))}
}

func meanContactWidth(contacts []contactEnd) float64 {
	sum := 0.0
	for _, contact := range contacts {
		sum += contact.width
	}
	return sum / float64(len(contacts))
}

// adjustSurface reshapes the surface ends to stay consistent with neighboring roads:
// the contact point and width snap to the neighbor values and the local tangent is turned
// to the average of the own heading and all connecting neighbor headings. Only the contact
// endpoint and the point next to it move, interior points stay untouched. Missing
// predecessor or successor data skips that end without error.
//
// The original surface is never mutated: the adjusted copy is returned so that re-running
// the adjustment stays deterministic and side-effect free
func adjustSurface(surface *LaneSurface, predecessors, successors []contactEnd) *LaneSurface {
	adjusted := *surface
	adjusted.CenterLine = surface.CenterLine.Clone()
	adjusted.WidthProfile = make([]WidthSample, len(surface.WidthProfile))
	copy(adjusted.WidthProfile, surface.WidthProfile)

	if len(predecessors) > 0 && len(adjusted.CenterLine) >= 2 {
		headings := make([]float64, 0, len(predecessors)+1)
		headings = append(headings, surface.StartHeading())
		for _, contact := range predecessors {
			headings = append(headings, contact.heading)
		}
		heading := averageHeading(headings)

		tangentLength := findDistance(adjusted.CenterLine[0], adjusted.CenterLine[1])
		contactPoint := meanContactPoint(predecessors)
		adjusted.CenterLine[0] = contactPoint
		adjusted.CenterLine[1] = orb.Point{
			contactPoint.X() + tangentLength*math.Cos(heading),
			contactPoint.Y() + tangentLength*math.Sin(heading),
		}
		adjusted.WidthProfile[0].Width = meanContactWidth(predecessors)
	}

	if len(successors) > 0 && len(adjusted.CenterLine) >= 2 {
		last := len(adjusted.CenterLine) - 1
		headings := make([]float64, 0, len(successors)+1)
		headings = append(headings, surface.EndHeading())
		for _, contact := range successors {
			headings = append(headings, contact.heading)
		}
		heading := averageHeading(headings)

		tangentLength := findDistance(adjusted.CenterLine[last-1], adjusted.CenterLine[last])
		contactPoint := meanContactPoint(successors)
		adjusted.CenterLine[last] = contactPoint
		adjusted.CenterLine[last-1] = orb.Point{
			contactPoint.X() - tangentLength*math.Cos(heading),
			contactPoint.Y() - tangentLength*math.Sin(heading),
		}
		adjusted.WidthProfile[len(adjusted.WidthProfile)-1].Width = meanContactWidth(successors)
	}

	return &adjusted
}
