package shp2xodr

import (
	"encoding/xml"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// OpenDRIVE 1.7 XML document layout. Only the subset produced by this converter
// is modeled: plan-view line/arc geometry and per-lane width polynomials

type xodrDocument struct {
	XMLName xml.Name   `xml:"OpenDRIVE"`
	Header  xodrHeader `xml:"header"`
	Roads   []xodrRoad `xml:"road"`
}

type xodrHeader struct {
	RevMajor int    `xml:"revMajor,attr"`
	RevMinor int    `xml:"revMinor,attr"`
	Name     string `xml:"name,attr"`
	Date     string `xml:"date,attr"`
}

type xodrRoad struct {
	Name     string       `xml:"name,attr"`
	Length   float64      `xml:"length,attr"`
	ID       string       `xml:"id,attr"`
	Junction string       `xml:"junction,attr"`
	PlanView xodrPlanView `xml:"planView"`
	Lanes    xodrLanes    `xml:"lanes"`
}

type xodrPlanView struct {
	Geometries []xodrGeometry `xml:"geometry"`
}

type xodrGeometry struct {
	S      float64   `xml:"s,attr"`
	X      float64   `xml:"x,attr"`
	Y      float64   `xml:"y,attr"`
	Hdg    float64   `xml:"hdg,attr"`
	Length float64   `xml:"length,attr"`
	Line   *struct{} `xml:"line,omitempty"`
	Arc    *xodrArc  `xml:"arc,omitempty"`
}

type xodrArc struct {
	Curvature float64 `xml:"curvature,attr"`
}

type xodrLanes struct {
	LaneSection xodrLaneSection `xml:"laneSection"`
}

type xodrLaneSection struct {
	S      float64    `xml:"s,attr"`
	Center xodrCenter `xml:"center"`
	Right  *xodrSide  `xml:"right,omitempty"`
}

type xodrCenter struct {
	Lane xodrCenterLane `xml:"lane"`
}

type xodrCenterLane struct {
	ID    int    `xml:"id,attr"`
	Type  string `xml:"type,attr"`
	Level string `xml:"level,attr"`
}

type xodrSide struct {
	Lanes []xodrLane `xml:"lane"`
}

type xodrLane struct {
	ID     int         `xml:"id,attr"`
	Type   string      `xml:"type,attr"`
	Level  string      `xml:"level,attr"`
	Widths []xodrWidth `xml:"width"`
}

type xodrWidth struct {
	SOffset float64 `xml:"sOffset,attr"`
	A       float64 `xml:"a,attr"`
	B       float64 `xml:"b,attr"`
	C       float64 `xml:"c,attr"`
	D       float64 `xml:"d,attr"`
}

func segmentToXODR(segment GeometrySegment) xodrGeometry {
	start := segment.Start()
	geometry := xodrGeometry{
		S:      segment.S(),
		X:      start.X,
		Y:      start.Y,
		Hdg:    start.Hdg,
		Length: segment.Length(),
	}
	switch seg := segment.(type) {
	case ArcSegment:
		geometry.Arc = &xodrArc{Curvature: seg.Curvature}
	default:
		geometry.Line = &struct{}{}
	}
	return geometry
}

func roadToXODR(road *RoadGeometry) xodrRoad {
	out := xodrRoad{
		Name:     road.RoadID,
		Length:   road.Length,
		ID:       road.RoadID,
		Junction: "-1",
		Lanes: xodrLanes{
			LaneSection: xodrLaneSection{
				Center: xodrCenter{
					Lane: xodrCenterLane{ID: 0, Type: "driving", Level: "false"},
				},
			},
		},
	}
	for _, segment := range road.PlanView {
		out.PlanView.Geometries = append(out.PlanView.Geometries, segmentToXODR(segment))
	}
	if len(road.Lanes) == 0 {
		return out
	}
	// All lane surfaces sit to the right of the reference line, IDs descend from -1
	side := &xodrSide{}
	for i, table := range road.Lanes {
		lane := xodrLane{ID: -(i + 1), Type: "driving", Level: "false"}
		for _, entry := range table.Entries {
			lane.Widths = append(lane.Widths, xodrWidth{
				SOffset: entry.S,
				A:       entry.A,
				B:       entry.B,
				C:       entry.C,
				D:       entry.D,
			})
		}
		side.Lanes = append(side.Lanes, lane)
	}
	out.Lanes.LaneSection.Right = side
	return out
}

// WriteXODR serializes the converted network as an OpenDRIVE 1.7 document
func WriteXODR(network *RoadNetwork, name string, w io.Writer) error {
	document := xodrDocument{
		Header: xodrHeader{
			RevMajor: 1,
			RevMinor: 7,
			Name:     name,
			Date:     time.Now().Format("2006-01-02T15:04:05"),
		},
	}
	for _, road := range network.Roads {
		document.Roads = append(document.Roads, roadToXODR(road))
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "Can't write XML header")
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "    ")
	if err := encoder.Encode(document); err != nil {
		return errors.Wrap(err, "Can't encode document")
	}
	return nil
}

// ExportToXODR writes the converted network into given file
func ExportToXODR(network *RoadNetwork, name, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return WriteXODR(network, name, file)
}
