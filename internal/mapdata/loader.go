// Package mapdata loads the startup reference data: beacon coordinates and
// room mappings for MapRegistry, and destination aliases for the route
// graph. The XML is
// scanned token-by-token with an xml.Decoder, pulling attributes off
// each StartElement rather than unmarshalling a full document tree.
package mapdata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"wayfinder-engine/internal/positioning"
)

// XMLLoader reads a <beacons>/<destinations> reference file of the shape:
//
//	<beacons>
//	  <beacon mac="08:92:72:87:8D:D6" x="789" y="184" room="157"/>
//	  ...
//	</beacons>
//	<destinations>
//	  <alias name="147" node="room-147"/>
//	  <alias name="yemekhane" node="yemekhane"/>
//	  ...
//	</destinations>
//
// It implements positioning.ReferenceLoader.
type XMLLoader struct {
	path string
}

// NewXMLLoader builds a loader reading from path. The file is not opened
// until LoadBeacons/LoadDestinationAliases is called.
func NewXMLLoader(path string) *XMLLoader {
	return &XMLLoader{path: path}
}

func readXML(path string) (*xml.Decoder, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return xml.NewDecoder(f), f, nil
}

func attrValue(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseFloatAttr(start xml.StartElement, name string) (float64, bool) {
	v, ok := attrValue(start, name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// LoadBeacons scans the <beacons> element for <beacon> rows. A beacon
// missing mac, x, or y is skipped rather than failing the whole load —
// malformed rows are a reference-data quality issue, not a reason to
// refuse every other row in the file.
func (l *XMLLoader) LoadBeacons() ([]positioning.BeaconRecord, error) {
	dec, f, err := readXML(l.path)
	if err != nil {
		return nil, fmt.Errorf("mapdata: open %s: %w", l.path, err)
	}
	defer f.Close()

	var records []positioning.BeaconRecord
	inBeacons := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mapdata: parse %s: %w", l.path, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "beacons":
				inBeacons = true
			case "beacon":
				if !inBeacons {
					continue
				}
				mac, ok := attrValue(t, "mac")
				if !ok {
					continue
				}
				x, okx := parseFloatAttr(t, "x")
				y, oky := parseFloatAttr(t, "y")
				if !okx || !oky {
					continue
				}
				room, _ := attrValue(t, "room")
				records = append(records, positioning.BeaconRecord{MAC: mac, X: x, Y: y, Room: room})
			}
		case xml.EndElement:
			if t.Name.Local == "beacons" {
				inBeacons = false
			}
		}
	}
	return records, nil
}

// LoadDestinationAliases scans the <destinations> element for <alias>
// rows, mapping a lowercased/trimmed alias name to a route node id. The
// result is merged into the route graph's alias table at startup, so the
// reference file overrides the built-in alias names.
func (l *XMLLoader) LoadDestinationAliases() (map[string]string, error) {
	dec, f, err := readXML(l.path)
	if err != nil {
		return nil, fmt.Errorf("mapdata: open %s: %w", l.path, err)
	}
	defer f.Close()

	aliases := make(map[string]string)
	inDestinations := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mapdata: parse %s: %w", l.path, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "destinations":
				inDestinations = true
			case "alias":
				if !inDestinations {
					continue
				}
				name, okn := attrValue(t, "name")
				node, okd := attrValue(t, "node")
				if !okn || !okd {
					continue
				}
				aliases[strings.ToLower(strings.TrimSpace(name))] = node
			}
		case xml.EndElement:
			if t.Name.Local == "destinations" {
				inDestinations = false
			}
		}
	}
	return aliases, nil
}
