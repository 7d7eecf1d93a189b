package fieldtype

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 15, 30, 0, 0, time.UTC)
}

func newHandler(t *testing.T, typ Type, opts Options) Handler {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	h, err := New(typ, opts)
	require.NoError(t, err)
	require.Equal(t, typ, h.Type())
	return h
}

// run applies the full handler pipeline to raw line text
func run(h Handler, raw string) (Value, bool) {
	found, ok := h.FindValue(h.Preprocess(raw))
	if !ok {
		return Value{}, false
	}
	return h.Extract(found)
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New("currency", Options{})
	require.ErrorIs(t, err, ErrUnknownType)
	assert.False(t, Type("currency").Valid())
	assert.True(t, TypeDate.Valid())
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(TypeProperNoun, Options{Patterns: []string{"("}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value pattern")
}

func TestNew_PatternOverride(t *testing.T) {
	h := newHandler(t, TypeProperNoun, Options{Patterns: []string{`[A-Z]{3}\d{3}`}})

	got, ok := h.FindValue("code: ABC123 and more")
	require.True(t, ok)
	assert.Equal(t, "ABC123", got)
}

func TestValue_Zero(t *testing.T) {
	var v Value
	assert.True(t, v.IsZero())
	assert.Equal(t, "", v.String())

	_, ok := v.Date()
	assert.False(t, ok)
}

func TestDate_Extract(t *testing.T) {
	h := newHandler(t, TypeDate, Options{})

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "DOB: 01/15/1980", "1980-01-15"},
		{"ocr confusions", "DOB: O1/I5/2O2O", "2020-01-15"},
		{"single digit parts", "1/5/1999", "1999-01-05"},
		{"dashes", "01-15-1980", "1980-01-15"},
		{"iso", "2020-01-15", "2020-01-15"},
		{"spaced digits", "0 1 / 1 5 / 1 9 8 0", "1980-01-15"},
		{"separator read as 1", "0111511980", "1980-01-15"},
		{"short year in past", "01/15/20", "2020-01-15"},
		{"short year in future", "01/15/50", "1950-01-15"},
		{"month name", "Date of Birth: Jan 15, 1980", "1980-01-15"},
		{"long month name", "March 3 2001", "2001-03-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := run(h, tt.raw)
			require.True(t, ok, "no date in %q", tt.raw)
			assert.Equal(t, tt.want, h.Format(v))
		})
	}
}

func TestDate_Absent(t *testing.T) {
	h := newHandler(t, TypeDate, Options{})

	for _, raw := range []string{"", "Name: SMITH, JOHN", "02/30/2020"} {
		_, ok := run(h, raw)
		assert.False(t, ok, "expected no date in %q", raw)
	}
}

func TestDate_MaxDate(t *testing.T) {
	h := newHandler(t, TypeDate, Options{
		MaxDate: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	v, ok := run(h, "06/01/2010")
	require.True(t, ok)
	assert.Equal(t, "1910-06-01", v.String())

	v, ok = run(h, "06/01/1990")
	require.True(t, ok)
	assert.Equal(t, "1990-06-01", v.String())
}

func TestDate_Compare(t *testing.T) {
	h := newHandler(t, TypeDate, Options{})

	a := DateValue(time.Date(1980, time.January, 15, 10, 0, 0, 0, time.Local))
	b := DateValue(time.Date(1980, time.January, 15, 0, 0, 0, 0, time.UTC))
	c := DateValue(time.Date(1980, time.January, 16, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 1.0, h.Compare(a, b))
	assert.Equal(t, 0.0, h.Compare(a, c))
	assert.Equal(t, 0.0, h.Compare(a, Value{}))
}

func TestDate_Preprocess(t *testing.T) {
	h := newHandler(t, TypeDate, Options{})

	assert.Equal(t, "01/15/1980", h.Preprocess(" 01 / 15 / 1980. "))
	assert.Equal(t, "Jan 15 1980", h.Preprocess("Jan 15, 1980"))
	// full-width digits
	assert.Equal(t, "01/15/1980", h.Preprocess("０１/１５/１９８０"))
}

func TestHumanName_Extract(t *testing.T) {
	names := NewFirstNames([]string{"John", "Mary", "Anne"})
	h := newHandler(t, TypeHumanName, Options{FirstNames: names})

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"last comma first", ": SMITH, JOHN", "John Smith"},
		{"last comma first with initial", "SMITH, JOHN Q.", "John Q. Smith"},
		{"last first initial", "SMITH JOHN Q", "John Q. Smith"},
		{"last first by dictionary", "SMITH JOHN", "John Smith"},
		{"first last kept", "JOHN SMITH", "John Smith"},
		{"run together prefix", "JOHNSMITH", "John Smith"},
		{"run together suffix", "SMITHMARY", "Mary Smith"},
		{"spaced letters", "J O H N S M I T H", "John Smith"},
		{"mixed case kept", "Mary deWitt", "Mary deWitt"},
		{"unknown single word", "XYZZY", "Xyzzy"},
		{"last period first", "SMITH. JOHN", "John Smith"},
		{"last period first unspaced", "SMITH.JOHN", "John Smith"},
		{"last period first not in dictionary", "SMITH. PAT", "Pat Smith"},
		{"first initial last kept", "JOHN Q. SMITH", "John Q. Smith"},
		{"apostrophe prefix", "O'BRIEN, PAT", "Pat O'Brien"},
		{"hyphenated", "SMITH-JONES, MARY", "Mary Smith-Jones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := run(h, tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, h.Format(v))
		})
	}
}

func TestHumanName_Absent(t *testing.T) {
	h := newHandler(t, TypeHumanName, Options{})

	_, ok := run(h, "  23/45  ")
	assert.False(t, ok)

	_, ok = h.Extract("   ")
	assert.False(t, ok)
}

func TestHumanName_Compare(t *testing.T) {
	h := newHandler(t, TypeHumanName, Options{})

	john := TextValue(TypeHumanName, "John Smith")
	jon := TextValue(TypeHumanName, "Jon Smith")

	assert.Equal(t, 1.0, h.Compare(john, john))
	assert.InDelta(t, 18.0/19.0, h.Compare(john, jon), 1e-9)
	assert.Equal(t, 0.0, h.Compare(john, Value{}))
	assert.Equal(t, 0.0, h.Compare(Value{}, Value{}))
}

func TestProperNoun(t *testing.T) {
	h := newHandler(t, TypeProperNoun, Options{})

	v, ok := run(h, ":  ACME   MEDICAL GROUP ")
	require.True(t, ok)
	assert.Equal(t, "Acme Medical Group", v.String())

	other := TextValue(TypeProperNoun, "Acme Medical")
	assert.Equal(t, 1.0, h.Compare(v, TextValue(TypeProperNoun, "Acme Medical Group")))
	assert.Equal(t, 0.0, h.Compare(v, other))

	_, ok = run(h, " :: ")
	assert.False(t, ok)
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SMITH", "Smith"},
		{"O'BRIEN", "O'Brien"},
		{"d'angelo", "D'Angelo"},
		{"SMITH-JONES", "Smith-Jones"},
		{"ANN'S CLINIC", "Ann's Clinic"},
		{"ROCK-", "Rock-"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, titleCase(tt.in), tt.in)
	}
}

func TestFirstNames(t *testing.T) {
	names := NewFirstNames([]string{" John", "mary", "JOHN", "", "al"})

	assert.Equal(t, 3, names.Len())
	assert.True(t, names.Contains("john"))
	assert.True(t, names.Contains("MARY"))
	assert.False(t, names.Contains("smith"))

	assert.Equal(t, 4, names.LongestPrefix("johnsmith"))
	assert.Equal(t, 0, names.LongestPrefix("john"), "prefix must leave a remainder")
	assert.Equal(t, 4, names.LongestSuffix("smithmary"))
	assert.Equal(t, 2, names.LongestPrefix("alfred"))

	var empty *FirstNames
	assert.False(t, empty.Contains("john"))
	assert.Equal(t, 0, empty.Len())
}

func TestReadFirstNames(t *testing.T) {
	names, err := ReadFirstNames(strings.NewReader("john\nmary\n\nanne\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, names.Len())
	assert.True(t, names.Contains("Anne"))

	_, err = LoadFirstNames(t.TempDir() + "/missing.txt")
	assert.Error(t, err)
}
