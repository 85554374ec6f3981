package rules

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	rs, err := Parse(strings.NewReader(
		"Expenses:Dining ^PIZZA\n" +
			"Expenses:Groceries ^PIZZA.*MART\n"))
	require.NoError(t, err)
	require.Equal(t, 2, rs.Len())

	assert.Equal(t, "Expenses:Dining", rs.Rules()[0].Account)
	assert.Equal(t, "Expenses:Groceries", rs.Rules()[1].Account)

	// "PIZZA MART #4" matches both patterns; the earlier rule wins.
	r, ok := rs.Match("PIZZA MART #4")
	require.True(t, ok)
	assert.Equal(t, "Expenses:Dining", r.Account)
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	rs, err := Parse(strings.NewReader(
		"# dining out\n" +
			"\n" +
			"   \t\n" +
			"  # indented comment\n" +
			"Expenses:Dining PIZZA\n"))
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "Expenses:Dining", rs.Rules()[0].Account)
	assert.Equal(t, 5, rs.Rules()[0].Line)
}

func TestParseQuotedAccount(t *testing.T) {
	rs, err := Parse(strings.NewReader(
		`"Expenses:Eating Out"  ^BURGER` + "\n"))
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "Expenses:Eating Out", rs.Rules()[0].Account)
	assert.Equal(t, "^BURGER", rs.Rules()[0].Pattern.String())
}

func TestParsePatternVerbatim(t *testing.T) {
	// Everything after the account token belongs to the pattern, spaces
	// included.
	rs, err := Parse(strings.NewReader("Expenses:Dining PIZZA HUT #[0-9]+\n"))
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "PIZZA HUT #[0-9]+", rs.Rules()[0].Pattern.String())

	_, ok := rs.Match("POS PIZZA HUT #42")
	assert.True(t, ok)
}

func TestParseDropsMalformedLines(t *testing.T) {
	rs, err := Parse(strings.NewReader(
		"JustOneToken\n" + // no pattern
			`"unterminated quote PIZZA` + "\n" +
			"Expenses:Dining PIZZA\n"))
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len(), "malformed lines are skipped, not fatal")
	assert.Equal(t, "Expenses:Dining", rs.Rules()[0].Account)
}

func TestParseBadRegexIsFatal(t *testing.T) {
	_, err := Parse(strings.NewReader(
		"Expenses:Dining PIZZA\n" +
			"Expenses:Groceries [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "[unclosed")
}

func TestMatchIsCaseSensitiveSearch(t *testing.T) {
	rs, err := Parse(strings.NewReader("Expenses:Dining PIZZA\n"))
	require.NoError(t, err)

	_, ok := rs.Match("WEEKLY PIZZA RUN")
	assert.True(t, ok, "substring-anywhere search")
	_, ok = rs.Match("weekly pizza run")
	assert.False(t, ok, "matching is case-sensitive")
}

func TestMatchDuplicatesInertAfterFirst(t *testing.T) {
	rs, err := Parse(strings.NewReader(
		"Expenses:Dining PIZZA\n" +
			"Expenses:Groceries PIZZA\n"))
	require.NoError(t, err)

	r, ok := rs.Match("PIZZA")
	require.True(t, ok)
	assert.Equal(t, "Expenses:Dining", r.Account)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.rules"))
	require.Error(t, err)
}
