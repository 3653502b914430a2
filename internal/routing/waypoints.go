package routing

// The floor layout below is hardcoded reference data for this building:
// one main corridor running along y=225 from the entrance to the east
// wing, a left corridor branching south along x=245, rooms hanging off
// each corridor waypoint, and a handful of named amenities. It mirrors
// the corridor rectangles in the positioning package's soft-constraint
// geometry (main corridor y in [180,270], left corridor x in [200,290])
// without importing that package — the two are tuned against the same
// floor plan independently.

type layoutNode struct {
	id          string
	x, y        float64
	displayName string
}

type layoutEdge struct {
	a, b string
}

var floorWaypoints = []layoutNode{
	// Main corridor, entrance to east wing.
	{"corridor-w1", 245, 225, "Main Corridor 1"},
	{"corridor-w2", 445, 225, "Main Corridor 2"},
	{"corridor-w3", 645, 225, "Main Corridor 3"},
	{"corridor-w4", 845, 225, "Main Corridor 4"},
	{"corridor-w5", 1045, 225, "Main Corridor 5"},
	{"corridor-w6", 1245, 225, "Main Corridor 6"},
	{"corridor-w7", 1445, 225, "Main Corridor 7"},
	{"corridor-w8", 1645, 225, "Main Corridor 8"},

	{"entrance", 245, 100, "Entrance"},

	// Left corridor, branching south from the entrance junction.
	{"corridor-l1", 245, 270, "Left Corridor 1"},
	{"corridor-l2", 245, 400, "Left Corridor 2"},
	{"corridor-l3", 245, 530, "Left Corridor 3"},
	{"corridor-l4", 245, 650, "Left Corridor 4"},

	// Rooms off the main corridor, two per waypoint w1-w7.
	{"room-101", 245, 145, "Room 101"},
	{"room-102", 245, 305, "Room 102"},
	{"room-103", 445, 145, "Room 103"},
	{"room-104", 445, 305, "Room 104"},
	{"room-105", 645, 145, "Room 105"},
	{"room-106", 645, 305, "Room 106"},
	{"room-107", 845, 145, "Room 107"},
	{"room-108", 845, 305, "Room 108"},
	{"room-109", 1045, 145, "Room 109"},
	{"room-110", 1045, 305, "Room 110"},
	{"room-111", 1245, 145, "Room 111"},
	{"room-112", 1245, 305, "Room 112"},
	{"room-113", 1445, 145, "Room 113"},
	{"room-114", 1445, 305, "Room 114"},

	// Rooms off the far end of the main corridor, w8.
	{"room-147", 1745, 145, "Room 147"},
	{"room-148", 1745, 305, "Room 148"},

	// Extra depth off w4 and w6.
	{"room-201", 845, 60, "Room 201"},
	{"room-202", 845, 390, "Room 202"},
	{"office-1", 1245, 60, "Office 1"},
	{"office-2", 1245, 390, "Office 2"},

	// Amenities off the left corridor.
	{"wc-erkek", 150, 400, "WC Erkek"},
	{"wc-kadin", 150, 460, "WC Kadin"},
	{"merdiven-1", 150, 530, "Merdiven 1"},
	{"yemekhane", 150, 650, "Yemekhane"},

	// A second stairwell off the main corridor.
	{"merdiven-2", 1245, 305, "Merdiven 2"},

	// Remaining rooms to round out the floor.
	{"room-115", 245, 60, "Room 115"},
	{"room-116", 245, 700, "Room 116"},
}

var floorEdges = []layoutEdge{
	// Main corridor spine.
	{"entrance", "corridor-w1"},
	{"corridor-w1", "corridor-w2"},
	{"corridor-w2", "corridor-w3"},
	{"corridor-w3", "corridor-w4"},
	{"corridor-w4", "corridor-w5"},
	{"corridor-w5", "corridor-w6"},
	{"corridor-w6", "corridor-w7"},
	{"corridor-w7", "corridor-w8"},

	// Left corridor spine, branching from the entrance junction.
	{"corridor-w1", "corridor-l1"},
	{"corridor-l1", "corridor-l2"},
	{"corridor-l2", "corridor-l3"},
	{"corridor-l3", "corridor-l4"},

	// Rooms off the main corridor.
	{"corridor-w1", "room-101"},
	{"corridor-w1", "room-102"},
	{"corridor-w2", "room-103"},
	{"corridor-w2", "room-104"},
	{"corridor-w3", "room-105"},
	{"corridor-w3", "room-106"},
	{"corridor-w4", "room-107"},
	{"corridor-w4", "room-108"},
	{"corridor-w5", "room-109"},
	{"corridor-w5", "room-110"},
	{"corridor-w6", "room-111"},
	{"corridor-w6", "room-112"},
	{"corridor-w7", "room-113"},
	{"corridor-w7", "room-114"},
	{"corridor-w8", "room-147"},
	{"corridor-w8", "room-148"},

	// Extra depth rooms.
	{"corridor-w4", "room-201"},
	{"corridor-w4", "room-202"},
	{"corridor-w6", "office-1"},
	{"corridor-w6", "office-2"},
	{"corridor-w6", "merdiven-2"},

	// Left corridor amenities.
	{"corridor-l2", "wc-erkek"},
	{"corridor-l2", "wc-kadin"},
	{"corridor-l3", "merdiven-1"},
	{"corridor-l4", "yemekhane"},

	// Remaining rooms.
	{"entrance", "room-115"},
	{"corridor-l4", "room-116"},
}

// floorAliases maps destination aliases (numeric room codes, Turkish/
// English labels for amenities) onto the node id they resolve to.
var floorAliases = map[string]string{
	"101": "room-101", "102": "room-102", "103": "room-103", "104": "room-104",
	"105": "room-105", "106": "room-106", "107": "room-107", "108": "room-108",
	"109": "room-109", "110": "room-110", "111": "room-111", "112": "room-112",
	"113": "room-113", "114": "room-114", "115": "room-115", "116": "room-116",
	"147": "room-147", "148": "room-148",
	"201": "room-201", "202": "room-202",

	"entrance": "entrance", "giris": "entrance",

	"yemekhane": "yemekhane", "cafeteria": "yemekhane", "canteen": "yemekhane",

	"wc":       "wc-erkek",
	"tuvalet":  "wc-erkek",
	"wc-erkek": "wc-erkek", "wc-kadin": "wc-kadin",

	"merdiven": "merdiven-1", "stairs": "merdiven-1", "stairwell": "merdiven-1",

	"office-1": "office-1", "office-2": "office-2",
}
