package facility

import "github.com/flightsim-go/simconnect/internal/wire"

// Generation selects which facility-data token set is in play: legacy
// covers every simulator version this module targets; current adds the
// 2024-era scopes (closed/country/city-state, transition altitude and
// level, VDGS, holding patterns).
type Generation int

const (
	GenerationLegacy Generation = iota
	GenerationCurrent
)

// LatLonAltMagVar is a position plus magnetic variation, the shape every
// facility-list entry type below embeds.
type LatLonAltMagVar struct {
	Position wire.LatLonAlt
	MagVar   float32
}

// AirportDetails is the per-entry payload of a list-airports response:
// just the position, per the host's facility-list (as opposed to
// structured facility-data) shape.
type AirportDetails struct {
	Position wire.LatLonAlt
}

// WaypointDetails is the per-entry payload of a list-waypoints response.
type WaypointDetails = LatLonAltMagVar

// NDBDetails is the per-entry payload of a list-NDBs response.
type NDBDetails struct {
	LatLonAltMagVar
	Frequency float32 // Hz
}

// FrequencyKHz converts Frequency to kilohertz.
func (d NDBDetails) FrequencyKHz() float32 { return d.Frequency / 1000.0 }

// VOR flag bits, carried in VORDetails.Flags.
const (
	VORHasNavSignal uint32 = 1 << iota
	VORHasLocalizer
	VORHasGlideSlope
	VORHasDME
)

// VORDetails is the per-entry payload of a list-VORs response.
type VORDetails struct {
	LatLonAltMagVar
	Frequency        float32 // Hz
	Flags            uint32
	LocalizerCourse  float32
	GlideslopePos    wire.LatLonAlt
	GlideSlopeAngle  float32
}

// FrequencyMHz converts Frequency to megahertz.
func (d VORDetails) FrequencyMHz() float32 { return d.Frequency / 1000000.0 }

func (d VORDetails) HasNavSignal() bool { return d.Flags&VORHasNavSignal != 0 }
func (d VORDetails) HasLocalizer() bool { return d.Flags&VORHasLocalizer != 0 }
func (d VORDetails) HasGlideSlope() bool {
	return d.Flags&VORHasGlideSlope != 0 && d.GlideSlopeAngle > 0
}
func (d VORDetails) HasDME() bool { return d.Flags&VORHasDME != 0 }

// AirportData is the structured facility-data record for an airport
// scope (the "airport" C-layout struct selected by a data frame's type
// discriminator), including the fields only the current generation
// carries (grouped at the end of the struct).
type AirportData struct {
	ICAO           string
	Region         string
	Name           string
	Name64         string
	Position       LatLonAltMagVar
	TowerPosition  wire.LatLonAlt
	NumRunways     int32
	NumStarts      int32
	NumFrequencies int32
	NumHelipads    int32
	NumApproaches  int32
	NumDepartures  int32
	NumArrivals    int32
	NumTaxiPoints  int32
	NumTaxiParkings int32
	NumTaxiPaths   int32
	NumTaxiNames   int32
	NumJetways     int32

	// Current-generation-only fields; zero value when Generation is
	// GenerationLegacy.
	IsClosed           bool
	Country            string
	CityState          string
	TransitionAltitude float32
	TransitionLevel    float32
	NumVDGS            int32
	NumHoldingPatterns int32
}

// RunwayData is the structured facility-data record for a runway scope,
// nested under an airport.
type RunwayData struct {
	Ident         string
	Position      LatLonAltMagVar
	Heading       float32
	Length        float32
	Width         float32
	PrimaryILS    string
	SecondaryILS  string
}

// FrequencyData is the structured facility-data record for a frequency
// scope, nested under an airport.
type FrequencyData struct {
	Type      int32
	Frequency float32
	Name      string
}

// ParkingName enumerates the host's fixed parking-name vocabulary
// (none/generic-direction/gate letter). A small, closed set, so an int32
// discriminator round-trips cleanly instead of a free-form string.
type ParkingName int32

// ParkingKey uniquely identifies one taxi-parking spot within an
// airport: name, number, and suffix together, per spec §4.10's
// deduplication requirement. Comparable, so it is valid as a map key.
type ParkingKey struct {
	Name   ParkingName
	Number int32
	Suffix ParkingName
}

// TaxiParkingData is the structured facility-data record for a
// taxi-parking scope, nested under an airport and keyed by ParkingKey.
type TaxiParkingData struct {
	Type          int32
	TaxiPointType int32
	Key           ParkingKey
	Orientation   int32
	Heading       float32
	Radius        float32
	BiasX         float32
	BiasZ         float32

	// Current-generation-only field.
	NumAirlines int32
}

// AirportFacility is the fully assembled structured facility-data
// response for one ICAO code: the airport skeleton plus its active
// child collections. Starts/helipads/approaches/departures/arrivals/
// taxi-paths/points/names/jetways/VDGS/holding-patterns are not yet
// modeled as structured children, matching scope the reference
// implementation itself leaves for later.
type AirportFacility struct {
	Data          AirportData
	Runways       []RunwayData
	Frequencies   []FrequencyData
	TaxiParkings  map[ParkingKey]TaxiParkingData
}
