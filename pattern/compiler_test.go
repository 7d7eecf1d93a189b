package pattern

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterPattern(t *testing.T) {
	c := New(Substitutions{'0': {"o", "O"}, 'm': {"rn"}})

	tests := []struct {
		name    string
		char    rune
		matches []string
		rejects []string
	}{
		{"digit zero", '0', []string{"0", "o", "O"}, []string{"Q", "1"}},
		{"multi-char substitute", 'm', []string{"m", "rn"}, []string{"r", "n"}},
		{"no substitutes", 'x', []string{"x"}, []string{"X", "y"}},
		{"regex metacharacter", '.', []string{"."}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile("^" + c.CharacterPattern(tt.char) + "$")
			for _, s := range tt.matches {
				assert.True(t, re.MatchString(s), "expected %q to match", s)
			}
			for _, s := range tt.rejects {
				assert.False(t, re.MatchString(s), "expected %q not to match", s)
			}
		})
	}
}

func TestCharacterPatternMemoized(t *testing.T) {
	c := New(Substitutions{'0': {"o"}})
	first := c.CharacterPattern('0')
	assert.Equal(t, first, c.CharacterPattern('0'))
	assert.Len(t, c.chars, 1)
}

func TestStringPatternAbsorbsSpacing(t *testing.T) {
	c := New(Substitutions{'l': {"1", "I"}})
	re := regexp.MustCompile("^" + c.StringPattern("label") + "$")

	for _, s := range []string{"label", "1abe1", "l a b e l", "IabeI"} {
		assert.True(t, re.MatchString(s), "expected %q to match", s)
	}
	assert.False(t, re.MatchString("labe"))
}

func TestStringPatternLabelWhitespace(t *testing.T) {
	c := New(nil)
	re := regexp.MustCompile("^" + c.StringPattern("Date of Birth:") + "$")

	assert.True(t, re.MatchString("Date of Birth:"))
	assert.True(t, re.MatchString("Dateof  Birth:"))
	assert.False(t, re.MatchString("Date of Birth"))
}

func TestListPatternOCRTolerance(t *testing.T) {
	c := New(Substitutions{'N': {"M"}})
	re := c.ListPattern([]string{"Name"})
	full := regexp.MustCompile("^(?:" + re.String() + ")$")

	assert.True(t, full.MatchString("Name"))
	assert.True(t, full.MatchString("Mame"))
	assert.True(t, full.MatchString("NAME"))
	assert.True(t, full.MatchString("MAME"))
	assert.False(t, full.MatchString("Nam"))
	assert.False(t, re.MatchString("Nam"))
}

func TestListPatternOrderIndependent(t *testing.T) {
	c := New(Substitutions{'0': {"o", "O"}})

	a := c.ListPattern([]string{"DOB", "Date of Birth", "Born"})
	b := c.ListPattern([]string{"Born", "DOB", "Date of Birth"})
	dup := c.ListPattern([]string{"Born", "DOB", "Date of Birth", "DOB"})

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Same(t, a, dup)
	assert.Equal(t, a.String(), c.ListPatternString([]string{"Date of Birth", "Born", "DOB"}))
}

func TestListPatternPrefersLongerLabel(t *testing.T) {
	c := New(nil)
	re := c.ListPattern([]string{"Date", "Date of Birth"})

	assert.Equal(t, "Date of Birth", re.FindString("Date of Birth: 01/02/1990"))
}

func TestListPatternEmpty(t *testing.T) {
	c := New(nil)

	for _, labels := range [][]string{nil, {}, {"", "   "}} {
		re := c.ListPattern(labels)
		require.NotNil(t, re)
		assert.False(t, re.MatchString(""))
		assert.False(t, re.MatchString("anything"))
	}
}

func TestListPatternUnicode(t *testing.T) {
	c := New(Substitutions{'é': {"e"}})
	re := c.ListPattern([]string{"Né(e)"})

	assert.True(t, re.MatchString("Ne(e)"))
	assert.True(t, re.MatchString("NÉ(E)"))
}

func TestNewCopiesTable(t *testing.T) {
	subs := Substitutions{'0': {"o"}}
	c := New(subs)
	subs['0'] = append(subs['0'], "Q")
	subs['1'] = []string{"l"}

	assert.False(t, c.HasSubstitutions('1'))
	re := regexp.MustCompile("^" + c.CharacterPattern('0') + "$")
	assert.False(t, re.MatchString("Q"))
}

func TestCompilerConcurrentUse(t *testing.T) {
	c := New(Substitutions{'0': {"o", "O"}, '1': {"l", "I"}})
	labels := []string{"Policy N0", "Claim 1D"}

	var wg sync.WaitGroup
	results := make([]*regexp.Regexp, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.ListPattern(labels)
		}(i)
	}
	wg.Wait()

	for _, re := range results[1:] {
		assert.Same(t, results[0], re)
	}
}
