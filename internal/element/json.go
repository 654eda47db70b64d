package element

import "encoding/json"

// wireElement mirrors Element for the persisted form: a plain nested
// record with no constraints beyond Element's own fields. Empty name,
// attrs, children, and span are omitted rather than serialized as zero
// values.
type wireElement struct {
	Kind     Kind           `json:"kind"`
	Name     string         `json:"name,omitempty"`
	Attrs    []Attr         `json:"attrs,omitempty"`
	Children []*wireElement `json:"children,omitempty"`
	Span     *Span          `json:"span,omitempty"`
}

func toWire(e *Element) *wireElement {
	if e == nil {
		return nil
	}
	w := &wireElement{Kind: e.Kind, Name: e.Name, Attrs: e.Attrs}
	if !e.Span.IsZero() {
		s := e.Span
		w.Span = &s
	}
	if e.Children != nil {
		w.Children = make([]*wireElement, len(e.Children))
		for i, c := range e.Children {
			w.Children[i] = toWire(c)
		}
	}
	return w
}

func fromWire(w *wireElement) *Element {
	if w == nil {
		return nil
	}
	e := &Element{Kind: w.Kind, Name: w.Name, Attrs: w.Attrs}
	if w.Span != nil {
		e.Span = *w.Span
	}
	if w.Children != nil {
		e.Children = make([]*Element, len(w.Children))
		for i, c := range w.Children {
			e.Children[i] = fromWire(c)
		}
	}
	return e
}

// MarshalJSON implements json.Marshaler.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(e))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Element) UnmarshalJSON(data []byte) error {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded := fromWire(&w)
	*e = *decoded
	return nil
}
