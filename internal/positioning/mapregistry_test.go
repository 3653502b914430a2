package positioning

import "testing"

func TestMapRegistryLookupNormalizesCase(t *testing.T) {
	reg, err := NewMapRegistry(stubLoader{beacons: []BeaconRecord{
		{MAC: "08:92:72:87:8D:D6", X: 1, Y: 2, Room: "room-a"},
	}})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	if _, ok := reg.Lookup("08:92:72:87:8d:d6"); !ok {
		t.Fatal("lowercased MAC should resolve")
	}
}

func TestMapRegistryLookupByteReversalFallback(t *testing.T) {
	reg, err := NewMapRegistry(stubLoader{beacons: []BeaconRecord{
		{MAC: "08:92:72:87:8D:D6", X: 1, Y: 2, Room: "room-a"},
	}})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	b, ok := reg.Lookup("D6:8D:87:72:92:08")
	if !ok {
		t.Fatal("byte-reversed MAC should resolve via fallback")
	}
	if b.X != 1 || b.Y != 2 {
		t.Fatalf("resolved beacon = %+v, want (1,2)", b)
	}
}

func TestMapRegistryReversalIsInvolutive(t *testing.T) {
	mac := "08:92:72:87:8D:D6"
	if got := reverseMAC(reverseMAC(mac)); got != mac {
		t.Fatalf("reverse(reverse(%q)) = %q, want %q", mac, got, mac)
	}
}

func TestMapRegistryUnknownMacNotFound(t *testing.T) {
	reg, err := NewMapRegistry(stubLoader{beacons: []BeaconRecord{
		{MAC: "08:92:72:87:8D:D6", X: 1, Y: 2},
	}})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	if _, ok := reg.Lookup("FF:FF:FF:FF:FF:FF"); ok {
		t.Fatal("unknown MAC should not resolve")
	}
}

func TestMapRegistryNearestRoomUnknown(t *testing.T) {
	reg, err := NewMapRegistry(stubLoader{beacons: []BeaconRecord{
		{MAC: "08:92:72:87:8D:D6", X: 1, Y: 2},
	}})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	if room := reg.NearestRoom("08:92:72:87:8D:D6"); room != "unknown" {
		t.Fatalf("room for beacon with no mapping = %q, want unknown", room)
	}
	if room := reg.NearestRoom("FF:FF:FF:FF:FF:FF"); room != "unknown" {
		t.Fatalf("room for unresolved beacon = %q, want unknown", room)
	}
}

func TestMapRegistryDuplicateMacFailsFast(t *testing.T) {
	_, err := NewMapRegistry(stubLoader{beacons: []BeaconRecord{
		{MAC: "08:92:72:87:8D:D6", X: 1, Y: 2},
		{MAC: "08:92:72:87:8d:d6", X: 3, Y: 4},
	}})
	if err == nil {
		t.Fatal("expected duplicate-MAC load to fail")
	}
}
