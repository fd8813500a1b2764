package model

// Airport represents a row in the `airports` table.  Airports are
// identified by their IATA-style code, which is the natural primary
// key used throughout the schema.
//
// Fields:
//  Code    – unique airport code (e.g. JFK, LAX).
//  City    – city the airport serves.
//  Country – country of the airport.
type Airport struct {
	Code    string // airports.code
	City    string // airports.city
	Country string // airports.country
}
