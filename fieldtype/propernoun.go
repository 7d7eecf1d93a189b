package fieldtype

const properNounPattern = `[A-Za-z0-9][A-Za-z0-9&'.\-\s]*`

// ProperNoun recognizes names of places and organizations
type ProperNoun struct {
	valueFinder
}

// Type implements Handler
func (p *ProperNoun) Type() Type {
	return TypeProperNoun
}

// Preprocess implements Handler
func (p *ProperNoun) Preprocess(text string) string {
	return collapseSpaces(normalize(text))
}

// Extract title-cases the text
func (p *ProperNoun) Extract(text string) (Value, bool) {
	text = collapseSpaces(text)
	if text == "" {
		return Value{}, false
	}
	return TextValue(TypeProperNoun, titleCase(text)), true
}

// Format implements Handler
func (p *ProperNoun) Format(v Value) string {
	return v.String()
}

// Compare returns 1 for identical values and 0 otherwise
func (p *ProperNoun) Compare(a, b Value) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	if a.Text() == b.Text() {
		return 1
	}
	return 0
}
