package geometry

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
)

// HittableList is an ordered collection of shapes hit with nearest-hit
// semantics. It performs a linear scan; there is no acceleration structure.
type HittableList struct {
	shapes []Shape
}

// NewHittableList creates a list holding its own copy of shapes
func NewHittableList(shapes ...Shape) *HittableList {
	list := &HittableList{shapes: make([]Shape, 0, len(shapes))}
	list.shapes = append(list.shapes, shapes...)
	return list
}

// Add appends shapes to the list
func (l *HittableList) Add(shapes ...Shape) {
	l.shapes = append(l.shapes, shapes...)
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *HittableList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest intersection among all shapes. Each accepted hit
// shrinks tMax so later shapes only need to beat it.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
