package models

// Default coordinates for accounts that have not reported a location yet.
var DefaultCoordinates = []float64{112.056367, -8.128597}

// GeoPoint is a GeoJSON point as stored in the `loc` field of users and
// posts. Coordinates are [longitude, latitude], matching the 2dsphere index.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(longitude, latitude float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func DefaultGeoPoint() GeoPoint {
	coords := make([]float64, len(DefaultCoordinates))
	copy(coords, DefaultCoordinates)
	return GeoPoint{Type: "Point", Coordinates: coords}
}
