// Package profile defines the two fixed dataset shapes produced by the
// behavioural questionnaire (animal archetypes and brain quadrants) and the
// selection of the dominant entry within a dataset.
package profile

import "fmt"

// Shape identifies one of the two fixed dataset structures. Each shape has a
// closed name set whose declaration order is the iteration order everywhere
// in the system.
type Shape int

const (
	ShapeAnimal Shape = iota
	ShapeBrain
)

// String returns the shape name used in logs and error messages.
func (s Shape) String() string {
	switch s {
	case ShapeAnimal:
		return "animal"
	case ShapeBrain:
		return "brain"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// AnimalNames is the closed name set of the animal archetype shape, in
// declaration order.
var AnimalNames = []string{"lobo", "aguia", "tubarao", "gato"}

// BrainNames is the closed name set of the brain quadrant shape, in
// declaration order.
var BrainNames = []string{"pensante", "atuante", "razao", "emocao"}

// Names returns the required name set for a shape, in declaration order.
// The returned slice must not be modified.
func (s Shape) Names() []string {
	if s == ShapeBrain {
		return BrainNames
	}
	return AnimalNames
}

// Entry is one named percentage value within a dataset.
type Entry struct {
	Name  string
	Value int
}

// Dataset is an ordered set of named percentage values matching one shape.
// Construct via NewDataset; a zero Dataset is invalid.
type Dataset struct {
	Shape   Shape
	Entries []Entry
}

// ShapeError reports a dataset that does not match its shape's closed name
// set, or a position table missing an entry for a present name.
type ShapeError struct {
	Shape Shape
	Name  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s dataset: missing required entry %q", e.Shape, e.Name)
}

// NewDataset builds a Dataset for the given shape from raw name/value pairs.
// Every name in the shape's closed set must be present; extra keys are
// ignored. Entries come out in the shape's declaration order regardless of
// map iteration order, which keeps rendering and dominant selection
// deterministic.
//
// Values are taken as-is: the questionnaire emits 0-100 percentages but the
// range is deliberately not enforced here.
func NewDataset(shape Shape, values map[string]int) (Dataset, error) {
	names := shape.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		v, ok := values[name]
		if !ok {
			return Dataset{}, &ShapeError{Shape: shape, Name: name}
		}
		entries = append(entries, Entry{Name: name, Value: v})
	}
	return Dataset{Shape: shape, Entries: entries}, nil
}

// Dominant returns the name with the highest value. Ties keep the entry seen
// first in declaration order: only a strictly greater value replaces the
// current maximum. The running maximum starts below any valid percentage, so
// a non-empty dataset always yields exactly one name.
func (d Dataset) Dominant() string {
	max := -1
	dominant := ""
	for _, e := range d.Entries {
		if e.Value > max {
			max = e.Value
			dominant = e.Name
		}
	}
	return dominant
}
