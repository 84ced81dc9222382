package entity

import "go.mongodb.org/mongo-driver/bson"

// GeoJSON geometry types used by cinema queries.
const (
	GeoPoint      = "Point"
	GeoLineString = "LineString"
)

// Coordinates is a [longitude, latitude] pair.
type Coordinates struct {
	Lng float64
	Lat float64
}

// Point is a GeoJSON Point.
type Point struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewPoint builds a GeoJSON Point at c.
func NewPoint(c Coordinates) Point {
	return Point{Type: GeoPoint, Coordinates: []float64{c.Lng, c.Lat}}
}

// LineString is a GeoJSON LineString.
type LineString struct {
	Type        string      `bson:"type" json:"type"`
	Coordinates [][]float64 `bson:"coordinates" json:"coordinates"`
}

// NewLineString builds a GeoJSON LineString through the given points.
func NewLineString(points ...Coordinates) LineString {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lng, p.Lat})
	}
	return LineString{Type: GeoLineString, Coordinates: coords}
}

// Cinema is a GeoJSON Feature describing a cinema and the movies it shows.
type Cinema struct {
	ID         ID     `bson:"_id,omitempty" json:"_id"`
	Type       string `bson:"type,omitempty" json:"type,omitempty"`
	Properties bson.M `bson:"properties,omitempty" json:"properties,omitempty"`
	Geometry   Point  `bson:"geometry" json:"geometry"`
	Movies     []ID   `bson:"movies,omitempty" json:"movies,omitempty"`
}

// HasMovie reports whether id is already in the cinema's showing list.
func (c *Cinema) HasMovie(id ID) bool {
	for _, m := range c.Movies {
		if m.Equal(id) {
			return true
		}
	}
	return false
}
