package facility

import (
	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/dispatch"
	"github.com/flightsim-go/simconnect/pkg/ids"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// Fixed string capacities used by the structured facility-data records,
// mirroring the host's ICAO/region/name field widths.
const (
	icaoLen      = 8
	regionLen    = 8
	nameLen      = 32
	name64Len    = 64
	countryLen   = 32
	cityStateLen = 32
)

// Token is one element of a facility-data definition: either a scope
// open/close marker or a leaf field selection. A DefinitionBuilder
// assembles a sequence of these, describing which fields and child
// scopes the host includes in its response stream. RequestFacilityData
// does not send the sequence: it takes only the id of a definition the
// host already holds.
type Token int

const (
	TokenAirportOpen Token = iota
	TokenAirportClose

	TokenAirportICAO
	TokenAirportRegion
	TokenAirportName
	TokenAirportName64
	TokenAirportLatitude
	TokenAirportLongitude
	TokenAirportAltitude
	TokenAirportMagvar
	TokenAirportTowerLatitude
	TokenAirportTowerLongitude
	TokenAirportTowerAltitude

	// Current-generation-only tokens.
	TokenAirportIsClosed
	TokenAirportCountry
	TokenAirportCityState
	TokenAirportTransitionAltitude
	TokenAirportTransitionLevel

	TokenAirportRunways
	TokenAirportStarts
	TokenAirportFrequencies
	TokenAirportHelipads
	TokenAirportApproaches
	TokenAirportDepartures
	TokenAirportArrivals
	TokenAirportTaxiPoints
	TokenAirportTaxiParkings
	TokenAirportTaxiPaths
	TokenAirportTaxiNames
	TokenAirportJetways
	TokenAirportVDGS
	TokenAirportHoldingPatterns

	TokenRunwayOpen
	TokenRunwayClose
	TokenRunwayIdent
	TokenRunwayLatitude
	TokenRunwayLongitude
	TokenRunwayAltitude
	TokenRunwayHeading
	TokenRunwayLength
	TokenRunwayWidth
	TokenRunwayPrimaryILS
	TokenRunwaySecondaryILS

	TokenFrequencyOpen
	TokenFrequencyClose
	TokenFrequencyType
	TokenFrequencyFrequency
	TokenFrequencyName

	TokenTaxiParkingOpen
	TokenTaxiParkingClose
	TokenTaxiParkingType
	TokenTaxiParkingTaxiPointType
	TokenTaxiParkingName
	TokenTaxiParkingNumber
	TokenTaxiParkingSuffix
	TokenTaxiParkingOrientation
	TokenTaxiParkingHeading
	TokenTaxiParkingRadius
	TokenTaxiParkingBiasX
	TokenTaxiParkingBiasZ
	TokenTaxiParkingNumAirlines // current-generation-only
)

// DefinitionBuilder assembles a facility-data token sequence. Unlike the
// nested C++ builder this is grounded on, it does not statically enforce
// which fields are valid inside which scope (Go has no CRTP-style
// per-scope return type); callers are expected to push child-scope
// fields only between that scope's Open/Close pair, same as the runtime
// contract the host itself enforces.
type DefinitionBuilder struct {
	generation Generation
	tokens     []Token
}

// NewAirportDefinition starts a builder for gen's token set, opening the
// airport scope.
func NewAirportDefinition(gen Generation) *DefinitionBuilder {
	return &DefinitionBuilder{generation: gen, tokens: []Token{TokenAirportOpen}}
}

// push appends t unconditionally.
func (b *DefinitionBuilder) push(t Token) *DefinitionBuilder {
	b.tokens = append(b.tokens, t)
	return b
}

// pushCurrent appends t only when the builder's generation is
// GenerationCurrent, silently dropping 2024-only tokens otherwise.
func (b *DefinitionBuilder) pushCurrent(t Token) *DefinitionBuilder {
	if b.generation == GenerationCurrent {
		b.tokens = append(b.tokens, t)
	}
	return b
}

func (b *DefinitionBuilder) ICAO() *DefinitionBuilder     { return b.push(TokenAirportICAO) }
func (b *DefinitionBuilder) Region() *DefinitionBuilder    { return b.push(TokenAirportRegion) }
func (b *DefinitionBuilder) Name() *DefinitionBuilder      { return b.push(TokenAirportName) }
func (b *DefinitionBuilder) Name64() *DefinitionBuilder    { return b.push(TokenAirportName64) }
func (b *DefinitionBuilder) Latitude() *DefinitionBuilder  { return b.push(TokenAirportLatitude) }
func (b *DefinitionBuilder) Longitude() *DefinitionBuilder { return b.push(TokenAirportLongitude) }
func (b *DefinitionBuilder) Altitude() *DefinitionBuilder  { return b.push(TokenAirportAltitude) }
func (b *DefinitionBuilder) MagVar() *DefinitionBuilder    { return b.push(TokenAirportMagvar) }
func (b *DefinitionBuilder) TowerPosition() *DefinitionBuilder {
	return b.push(TokenAirportTowerLatitude).push(TokenAirportTowerLongitude).push(TokenAirportTowerAltitude)
}
func (b *DefinitionBuilder) IsClosed() *DefinitionBuilder { return b.pushCurrent(TokenAirportIsClosed) }
func (b *DefinitionBuilder) Country() *DefinitionBuilder  { return b.pushCurrent(TokenAirportCountry) }
func (b *DefinitionBuilder) CityState() *DefinitionBuilder {
	return b.pushCurrent(TokenAirportCityState)
}
func (b *DefinitionBuilder) TransitionAltitude() *DefinitionBuilder {
	return b.pushCurrent(TokenAirportTransitionAltitude)
}
func (b *DefinitionBuilder) TransitionLevel() *DefinitionBuilder {
	return b.pushCurrent(TokenAirportTransitionLevel)
}

// Runway opens the runway child scope.
func (b *DefinitionBuilder) Runway() *DefinitionBuilder { return b.push(TokenRunwayOpen) }
func (b *DefinitionBuilder) RunwayIdent() *DefinitionBuilder  { return b.push(TokenRunwayIdent) }
func (b *DefinitionBuilder) RunwayPosition() *DefinitionBuilder {
	return b.push(TokenRunwayLatitude).push(TokenRunwayLongitude).push(TokenRunwayAltitude)
}
func (b *DefinitionBuilder) RunwayHeading() *DefinitionBuilder { return b.push(TokenRunwayHeading) }
func (b *DefinitionBuilder) RunwayLength() *DefinitionBuilder  { return b.push(TokenRunwayLength) }
func (b *DefinitionBuilder) RunwayWidth() *DefinitionBuilder   { return b.push(TokenRunwayWidth) }
func (b *DefinitionBuilder) EndRunway() *DefinitionBuilder     { return b.push(TokenRunwayClose) }

// Frequency opens the frequency child scope.
func (b *DefinitionBuilder) Frequency() *DefinitionBuilder { return b.push(TokenFrequencyOpen) }
func (b *DefinitionBuilder) FrequencyType() *DefinitionBuilder {
	return b.push(TokenFrequencyType)
}
func (b *DefinitionBuilder) FrequencyValue() *DefinitionBuilder {
	return b.push(TokenFrequencyFrequency)
}
func (b *DefinitionBuilder) FrequencyName() *DefinitionBuilder { return b.push(TokenFrequencyName) }
func (b *DefinitionBuilder) EndFrequency() *DefinitionBuilder  { return b.push(TokenFrequencyClose) }

// TaxiParking opens the taxi-parking child scope.
func (b *DefinitionBuilder) TaxiParking() *DefinitionBuilder {
	return b.push(TokenTaxiParkingOpen)
}
func (b *DefinitionBuilder) TaxiParkingKey() *DefinitionBuilder {
	return b.push(TokenTaxiParkingName).push(TokenTaxiParkingNumber).push(TokenTaxiParkingSuffix)
}
func (b *DefinitionBuilder) TaxiParkingOrientation() *DefinitionBuilder {
	return b.push(TokenTaxiParkingOrientation)
}
func (b *DefinitionBuilder) TaxiParkingGeometry() *DefinitionBuilder {
	return b.push(TokenTaxiParkingHeading).push(TokenTaxiParkingRadius).push(TokenTaxiParkingBiasX).push(TokenTaxiParkingBiasZ)
}
func (b *DefinitionBuilder) TaxiParkingAirlines() *DefinitionBuilder {
	return b.pushCurrent(TokenTaxiParkingNumAirlines)
}
func (b *DefinitionBuilder) EndTaxiParking() *DefinitionBuilder {
	return b.push(TokenTaxiParkingClose)
}

// Runways/Frequencies/TaxiParkings/... request the airport's child
// counts without descending into per-entry structured scopes, matching
// the count-only fields AirportData itself carries.
func (b *DefinitionBuilder) Runways() *DefinitionBuilder      { return b.push(TokenAirportRunways) }
func (b *DefinitionBuilder) Starts() *DefinitionBuilder       { return b.push(TokenAirportStarts) }
func (b *DefinitionBuilder) Frequencies() *DefinitionBuilder  { return b.push(TokenAirportFrequencies) }
func (b *DefinitionBuilder) Helipads() *DefinitionBuilder     { return b.push(TokenAirportHelipads) }
func (b *DefinitionBuilder) Approaches() *DefinitionBuilder   { return b.push(TokenAirportApproaches) }
func (b *DefinitionBuilder) Departures() *DefinitionBuilder   { return b.push(TokenAirportDepartures) }
func (b *DefinitionBuilder) Arrivals() *DefinitionBuilder     { return b.push(TokenAirportArrivals) }
func (b *DefinitionBuilder) TaxiPoints() *DefinitionBuilder   { return b.push(TokenAirportTaxiPoints) }
func (b *DefinitionBuilder) TaxiParkings() *DefinitionBuilder { return b.push(TokenAirportTaxiParkings) }
func (b *DefinitionBuilder) TaxiPaths() *DefinitionBuilder    { return b.push(TokenAirportTaxiPaths) }
func (b *DefinitionBuilder) TaxiNames() *DefinitionBuilder    { return b.push(TokenAirportTaxiNames) }
func (b *DefinitionBuilder) Jetways() *DefinitionBuilder      { return b.push(TokenAirportJetways) }
func (b *DefinitionBuilder) VDGS() *DefinitionBuilder         { return b.pushCurrent(TokenAirportVDGS) }
func (b *DefinitionBuilder) HoldingPatterns() *DefinitionBuilder {
	return b.pushCurrent(TokenAirportHoldingPatterns)
}

// AllFields pushes every top-level airport field and every child-count
// marker, generation-gating the 2024-only ones, mirroring the reference
// builder's allFields() convenience method.
func (b *DefinitionBuilder) AllFields() *DefinitionBuilder {
	return b.IsClosed().ICAO().Region().Country().CityState().Name().Name64().
		Latitude().Longitude().Altitude().MagVar().TowerPosition().
		TransitionAltitude().TransitionLevel().
		Runways().Starts().Frequencies().Helipads().Approaches().Departures().Arrivals().
		TaxiPoints().TaxiParkings().TaxiPaths().TaxiNames().Jetways().VDGS().HoldingPatterns()
}

// End closes the airport scope and returns the finished token sequence.
func (b *DefinitionBuilder) End() []Token {
	b.tokens = append(b.tokens, TokenAirportClose)
	return b.tokens
}

// DataType discriminates a structured facility-data frame's payload, the
// tag a "data" frame's type field selects one of the §3 C-layout structs
// with.
type DataType int

const (
	DataTypeAirport DataType = iota
	DataTypeRunway
	DataTypeFrequency
	DataTypeTaxiParking
	DataTypeDataEnd
)

// DataFrame is the decoded shape of one structured facility-data
// response frame: a type discriminator and the raw payload bytes for
// that type (empty for DataTypeDataEnd).
type DataFrame struct {
	Type DataType
	Data []byte
}

// StructuredDecoder turns a raw transport.Frame carrying one
// facility-data response part into a DataFrame. Supplied by the caller
// wiring this service to a connection.
type StructuredDecoder func(transport.Frame) (DataFrame, error)

func decodeAirportData(rd *wire.Reader, gen Generation) (AirportData, error) {
	var a AirportData
	var err error
	if gen == GenerationCurrent {
		isClosed, e := rd.ReadBool32()
		if e != nil {
			return a, e
		}
		a.IsClosed = isClosed
	}
	if a.ICAO, err = rd.ReadStringN(icaoLen); err != nil {
		return a, err
	}
	if a.Region, err = rd.ReadStringN(regionLen); err != nil {
		return a, err
	}
	if gen == GenerationCurrent {
		if a.Country, err = rd.ReadStringN(countryLen); err != nil {
			return a, err
		}
		if a.CityState, err = rd.ReadStringN(cityStateLen); err != nil {
			return a, err
		}
	}
	if a.Name, err = rd.ReadStringN(nameLen); err != nil {
		return a, err
	}
	if a.Name64, err = rd.ReadStringN(name64Len); err != nil {
		return a, err
	}
	if a.Position.Position, err = rd.ReadLatLonAlt(); err != nil {
		return a, err
	}
	if a.Position.MagVar, err = rd.ReadFloat32(); err != nil {
		return a, err
	}
	if a.TowerPosition, err = rd.ReadLatLonAlt(); err != nil {
		return a, err
	}
	if gen == GenerationCurrent {
		if a.TransitionAltitude, err = rd.ReadFloat32(); err != nil {
			return a, err
		}
		if a.TransitionLevel, err = rd.ReadFloat32(); err != nil {
			return a, err
		}
	}
	counts := []*int32{
		&a.NumRunways, &a.NumStarts, &a.NumFrequencies, &a.NumHelipads,
		&a.NumApproaches, &a.NumDepartures, &a.NumArrivals,
		&a.NumTaxiPoints, &a.NumTaxiParkings, &a.NumTaxiPaths, &a.NumTaxiNames, &a.NumJetways,
	}
	for _, c := range counts {
		v, e := rd.ReadInt32()
		if e != nil {
			return a, e
		}
		*c = v
	}
	if gen == GenerationCurrent {
		if a.NumVDGS, err = rd.ReadInt32(); err != nil {
			return a, err
		}
		if a.NumHoldingPatterns, err = rd.ReadInt32(); err != nil {
			return a, err
		}
	}
	return a, nil
}

func decodeRunwayData(rd *wire.Reader) (RunwayData, error) {
	var r RunwayData
	var err error
	if r.Ident, err = rd.ReadStringN(icaoLen); err != nil {
		return r, err
	}
	if r.Position.Position, err = rd.ReadLatLonAlt(); err != nil {
		return r, err
	}
	if r.Position.MagVar, err = rd.ReadFloat32(); err != nil {
		return r, err
	}
	if r.Heading, err = rd.ReadFloat32(); err != nil {
		return r, err
	}
	if r.Length, err = rd.ReadFloat32(); err != nil {
		return r, err
	}
	if r.Width, err = rd.ReadFloat32(); err != nil {
		return r, err
	}
	if r.PrimaryILS, err = rd.ReadStringN(icaoLen); err != nil {
		return r, err
	}
	if r.SecondaryILS, err = rd.ReadStringN(icaoLen); err != nil {
		return r, err
	}
	return r, nil
}

func decodeFrequencyData(rd *wire.Reader) (FrequencyData, error) {
	var f FrequencyData
	var err error
	if f.Type, err = rd.ReadInt32(); err != nil {
		return f, err
	}
	if f.Frequency, err = rd.ReadFloat32(); err != nil {
		return f, err
	}
	if f.Name, err = rd.ReadStringN(nameLen); err != nil {
		return f, err
	}
	return f, nil
}

func decodeTaxiParkingData(rd *wire.Reader, gen Generation) (TaxiParkingData, error) {
	var t TaxiParkingData
	var err error
	if t.Type, err = rd.ReadInt32(); err != nil {
		return t, err
	}
	if t.TaxiPointType, err = rd.ReadInt32(); err != nil {
		return t, err
	}
	var name, suffix int32
	if name, err = rd.ReadInt32(); err != nil {
		return t, err
	}
	t.Key.Name = ParkingName(name)
	if t.Key.Number, err = rd.ReadInt32(); err != nil {
		return t, err
	}
	if suffix, err = rd.ReadInt32(); err != nil {
		return t, err
	}
	t.Key.Suffix = ParkingName(suffix)
	if t.Orientation, err = rd.ReadInt32(); err != nil {
		return t, err
	}
	if t.Heading, err = rd.ReadFloat32(); err != nil {
		return t, err
	}
	if t.Radius, err = rd.ReadFloat32(); err != nil {
		return t, err
	}
	if t.BiasX, err = rd.ReadFloat32(); err != nil {
		return t, err
	}
	if t.BiasZ, err = rd.ReadFloat32(); err != nil {
		return t, err
	}
	if gen == GenerationCurrent {
		if t.NumAirlines, err = rd.ReadInt32(); err != nil {
			return t, err
		}
	}
	return t, nil
}

// RequestFacilityData requests the structured, nested facility record
// for icao/region, assembling an AirportFacility from the stream of
// tagged data frames and invoking onComplete once the data-end frame
// arrives.
func RequestFacilityData(s *Service, defID uint32, icao, region string, decode StructuredDecoder, onComplete func(AirportFacility)) (*dispatch.Request, error) {
	reqID := ids.NextRequestID()
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestFacility, requestKind, reqID,
		telemetry.DefinitionID(defID), telemetry.ICAO(icao))
	result := AirportFacility{TaxiParkings: make(map[ParkingKey]TaxiParkingData)}

	slot := s.dispatcher.Slot(reqID)
	var handlerID uint64
	handlerID = slot.Add(func(raw transport.Frame) {
		df, err := decode(raw)
		if err != nil {
			return
		}
		rd := wire.NewReader(df.Data)
		switch df.Type {
		case DataTypeAirport:
			if a, err := decodeAirportData(rd, s.generation); err == nil {
				result.Data = a
			}
		case DataTypeRunway:
			if r, err := decodeRunwayData(rd); err == nil {
				result.Runways = append(result.Runways, r)
			}
		case DataTypeFrequency:
			if f, err := decodeFrequencyData(rd); err == nil {
				result.Frequencies = append(result.Frequencies, f)
			}
		case DataTypeTaxiParking:
			if t, err := decodeTaxiParkingData(rd, s.generation); err == nil {
				result.TaxiParkings[t.Key] = t
			}
		case DataTypeDataEnd:
			if onComplete != nil {
				onComplete(result)
			}
			active.Finish("ok")
			slot.Remove(handlerID)
		}
	}, false)

	req := dispatch.NewRequest(reqID, func() {
		slot.Remove(handlerID)
		s.dispatcher.Cancel(reqID)
		active.Finish("cancelled")
	})

	err := s.conn.Do(reqID, func(host transport.RawHost, handle transport.Handle) error {
		return host.RequestFacilityData(handle, defID, reqID, icao, region)
	})
	if err != nil {
		active.Finish("error")
		req.Cancel()
		return nil, err
	}
	return req, nil
}
