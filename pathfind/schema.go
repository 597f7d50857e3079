package pathfind

import "github.com/viant/scanexr/step"

// Document is the exact shape of the engine's output JSON schema.
type Document struct {
	Stacktraces []Trace `json:"stacktraces"`
}

// Trace is one emitted stacktrace, sink-first and source-last.
type Trace struct {
	Steps []Position `json:"steps"`
}

// Position is one step's wire representation.
type Position struct {
	Path  string `json:"path"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// Point is a zero-based (line, character) location.
type Point struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// ToDocument converts engine-internal stacktraces to the wire schema.
func ToDocument(traces []step.Stacktrace) Document {
	doc := Document{Stacktraces: make([]Trace, len(traces))}
	for i, t := range traces {
		steps := make([]Position, len(t.Steps))
		for j, s := range t.Steps {
			steps[j] = Position{
				Path:  s.Path,
				Start: Point{Line: s.Start.Line, Character: s.Start.Character},
				End:   Point{Line: s.End.Line, Character: s.End.Character},
			}
		}
		doc.Stacktraces[i] = Trace{Steps: steps}
	}
	return doc
}
