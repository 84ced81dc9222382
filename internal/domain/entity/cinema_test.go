package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPoint(t *testing.T) {
	p := NewPoint(Coordinates{Lng: -73.98, Lat: 40.75})
	assert.Equal(t, GeoPoint, p.Type)
	assert.Equal(t, []float64{-73.98, 40.75}, p.Coordinates)
}

func TestNewLineString(t *testing.T) {
	l := NewLineString(Coordinates{Lng: 1, Lat: 2}, Coordinates{Lng: 3, Lat: 4})
	assert.Equal(t, GeoLineString, l.Type)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, l.Coordinates)
}

func TestCinema_HasMovie(t *testing.T) {
	c := &Cinema{Movies: []ID{NumericID(1), NumericID(2)}}

	assert.True(t, c.HasMovie(NumericID(2)))
	assert.False(t, c.HasMovie(NumericID(3)))
	assert.False(t, c.HasMovie(NewObjectID()))
}
