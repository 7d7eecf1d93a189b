package fieldtype

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical text form of a date value
const DateLayout = "2006-01-02"

// OCR frequently reads 1 as I or l and 0 as o or O, and the slash between
// date parts as 1, I or l. The numeric forms accept those confusions and
// repair them group by group before parsing.
const ocrDigit = `[\dIloO]`

type dateForm int

const (
	formMonthDayYear dateForm = iota
	formISO
	formMonthDayShortYear
	formMonthName
)

type datePattern struct {
	form dateForm
	re   *regexp.Regexp
}

// datePatterns are tried in order; the first that matches decides the value
var datePatterns = []datePattern{
	{formMonthDayYear, regexp.MustCompile(`(` + ocrDigit + `{1,2})[/1Il-](` + ocrDigit + `{1,2})[/1Il-](` + ocrDigit + `{4})`)},
	{formISO, regexp.MustCompile(`(` + ocrDigit + `{4})-(` + ocrDigit + `{2})-(` + ocrDigit + `{2})`)},
	{formMonthDayShortYear, regexp.MustCompile(`(` + ocrDigit + `{1,2})[/1Il-](` + ocrDigit + `{1,2})[/1Il-](` + ocrDigit + `{2})\b`)},
	{formMonthName, regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*(\d{1,2})\s*(\d{4})`)},
}

func datePatternSources() []string {
	sources := make([]string, len(datePatterns))
	for i, p := range datePatterns {
		sources[i] = p.re.String()
	}
	return sources
}

var (
	reMonthWord     = regexp.MustCompile(`[A-Z][a-z]{2}`)
	datePunctuation = strings.NewReplacer(",", "", ".", "", "'", "", "`", "")
	ocrDigits       = strings.NewReplacer("I", "1", "l", "1", "o", "0", "O", "0")
)

// Date recognizes calendar dates in numeric and month-name forms
type Date struct {
	valueFinder
	maxDate time.Time
	now     func() time.Time
}

// Type implements Handler
func (d *Date) Type() Type {
	return TypeDate
}

// Preprocess removes spacing and punctuation that OCR scatters through
// numeric dates. Spacing is kept when the text contains a month name.
func (d *Date) Preprocess(text string) string {
	text = normalize(text)
	if !reMonthWord.MatchString(text) {
		text = reSpaces.ReplaceAllString(text, "")
	}
	return datePunctuation.Replace(text)
}

// Extract parses the first date form found in text. A date later than the
// maximum plausible date is moved back one hundred years, which repairs
// two-digit birth years read into the wrong century.
func (d *Date) Extract(text string) (Value, bool) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		t, err := d.parse(p.form, m[1], m[2], m[3])
		if err != nil {
			return Value{}, false
		}
		if limit := d.limit(); t.After(limit) {
			t = time.Date(t.Year()-100, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return DateValue(t), true
	}
	return Value{}, false
}

func (d *Date) parse(form dateForm, a, b, c string) (time.Time, error) {
	var s string
	switch form {
	case formMonthDayYear:
		s = fmt.Sprintf("%s/%s/%s", repairMonth(ocrDigits.Replace(a)), ocrDigits.Replace(b), ocrDigits.Replace(c))
	case formMonthDayShortYear:
		year, err := strconv.Atoi(ocrDigits.Replace(c))
		if err != nil {
			return time.Time{}, err
		}
		s = fmt.Sprintf("%s/%s/%d", repairMonth(ocrDigits.Replace(a)), ocrDigits.Replace(b), 2000+year)
	case formISO:
		s = fmt.Sprintf("%s-%s-%s", ocrDigits.Replace(a), ocrDigits.Replace(b), ocrDigits.Replace(c))
	case formMonthName:
		s = fmt.Sprintf("%s %s, %s", a, b, c)
	}

	t, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(true),
		dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// repairMonth drops a separator 1 that OCR glued onto a single-digit month,
// so "13" becomes "3". Real months never exceed 12.
func repairMonth(month string) string {
	if len(month) == 2 && month[0] == '1' && month[1] >= '3' && month[1] <= '9' {
		return month[1:]
	}
	return month
}

func (d *Date) limit() time.Time {
	if !d.maxDate.IsZero() {
		return d.maxDate
	}
	now := d.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Format implements Handler
func (d *Date) Format(v Value) string {
	return v.String()
}

// Compare returns 1 when both values are the same date and 0 otherwise
func (d *Date) Compare(a, b Value) float64 {
	da, ok := a.Date()
	if !ok {
		return 0
	}
	db, ok := b.Date()
	if !ok {
		return 0
	}
	if da.Equal(db) {
		return 1
	}
	return 0
}
