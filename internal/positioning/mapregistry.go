package positioning

import (
	"fmt"
	"strings"
)

// ReferenceLoader supplies the static beacon/room table the registry is
// built from. Reference-data loading itself is out of scope for this
// package; a concrete loader lives in internal/mapdata.
type ReferenceLoader interface {
	LoadBeacons() ([]BeaconRecord, error)
}

// BeaconRecord is a raw reference-data row before normalization.
type BeaconRecord struct {
	MAC  string
	X    float64
	Y    float64
	Room string
}

// MapRegistry is the static beacon/room lookup. Built once at init
// and read-only thereafter; shared freely across sessions.
type MapRegistry struct {
	beacons      map[string]Beacon // keyed by normalized MAC
	beaconToRoom map[string]string // keyed by normalized MAC
}

// NewMapRegistry builds a registry from a loader, failing fast on any
// duplicate MAC (post-normalization): divergent snapshots of the beacon
// table must not be silently merged.
func NewMapRegistry(loader ReferenceLoader) (*MapRegistry, error) {
	records, err := loader.LoadBeacons()
	if err != nil {
		return nil, fmt.Errorf("mapregistry: load beacons: %w", err)
	}

	reg := &MapRegistry{
		beacons:      make(map[string]Beacon, len(records)),
		beaconToRoom: make(map[string]string, len(records)),
	}
	for _, rec := range records {
		mac := NormalizeMAC(rec.MAC)
		if _, exists := reg.beacons[mac]; exists {
			return nil, fmt.Errorf("mapregistry: duplicate beacon %q after normalization", mac)
		}
		reg.beacons[mac] = Beacon{ID: mac, X: rec.X, Y: rec.Y}
		if rec.Room != "" {
			reg.beaconToRoom[mac] = rec.Room
		}
	}
	return reg, nil
}

// NormalizeMAC upper-cases a MAC address. It does not perform the reversal
// fallback; that is attempted separately by Lookup because reversal is only
// valid as a second attempt, never as the canonical form.
func NormalizeMAC(mac string) string {
	return strings.ToUpper(strings.TrimSpace(mac))
}

// reverseMAC reverses the byte order of a colon-separated MAC, e.g.
// "08:92:72:87:8D:D6" -> "D6:8D:87:72:92:08". Malformed input (not exactly
// six colon-separated groups) is returned unchanged.
func reverseMAC(mac string) string {
	groups := strings.Split(mac, ":")
	if len(groups) != 6 {
		return mac
	}
	rev := make([]string, 6)
	for i, g := range groups {
		rev[5-i] = g
	}
	return strings.Join(rev, ":")
}

// Lookup resolves a client-supplied MAC to a Beacon, trying the normalized
// form first and the byte-reversed form second; mobile SDKs emit MACs in
// either order.
func (r *MapRegistry) Lookup(mac string) (Beacon, bool) {
	norm := NormalizeMAC(mac)
	if b, ok := r.beacons[norm]; ok {
		return b, true
	}
	if b, ok := r.beacons[reverseMAC(norm)]; ok {
		return b, true
	}
	return Beacon{}, false
}

// NearestRoom returns the room label mapped to mac, or "unknown" if the
// beacon resolves but has no room mapping, or resolution fails outright.
func (r *MapRegistry) NearestRoom(mac string) string {
	norm := NormalizeMAC(mac)
	if room, ok := r.beaconToRoom[norm]; ok {
		return room
	}
	if room, ok := r.beaconToRoom[reverseMAC(norm)]; ok {
		return room
	}
	return "unknown"
}
