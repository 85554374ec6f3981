// Package rules parses the plain-text rules file that maps transaction text
// to target accounts. One rule per line:
//
//	<account-path> <whitespace> <regex>
//	"<account path with spaces>" <whitespace> <regex>
//
// Lines starting with '#' are comments; blank lines are ignored. Earlier
// rules take precedence over later ones.
package rules

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Rule pairs a compiled pattern with the colon-delimited path of the account
// a matching transaction should be reassigned to.
type Rule struct {
	Pattern *regexp.Regexp
	Account string
	Line    int // line number in the rules file, for reporting
}

// RuleSet is an ordered sequence of rules. Order is significant: Match scans
// in file order and the first hit wins. Immutable once parsed.
type RuleSet struct {
	rules []Rule
}

// Rules returns the rules in file order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Match scans the rules in order and returns the first whose pattern matches
// anywhere in text (unanchored search). ok is false when no rule applies.
func (rs *RuleSet) Match(text string) (Rule, bool) {
	for _, r := range rs.rules {
		if r.Pattern.MatchString(text) {
			return r, true
		}
	}
	return Rule{}, false
}

// Load reads and parses a rules file.
func Load(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()

	rs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return rs, nil
}

// Parse reads rule lines from r. Malformed lines (no pattern after the
// account token, or an unterminated quote) are logged and skipped; a pattern
// that does not compile is fatal, since a bad rule invalidates the whole run.
func Parse(r io.Reader) (*RuleSet, error) {
	rs := &RuleSet{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		account, pattern, ok := splitRuleLine(line)
		if !ok {
			slog.Warn("ignoring rule line with incorrect format", "line", lineno, "text", line)
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("rule line %d: compiling pattern %q: %w", lineno, pattern, err)
		}
		rs.rules = append(rs.rules, Rule{Pattern: re, Account: account, Line: lineno})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return rs, nil
}

// splitRuleLine splits a trimmed non-comment line into its account token and
// pattern. A leading double-quote starts a quoted account name that may
// contain whitespace; otherwise the account token ends at the first
// whitespace run. The pattern is the remainder of the line, verbatim.
func splitRuleLine(line string) (account, pattern string, ok bool) {
	if line[0] == '"' {
		end := strings.IndexByte(line[1:], '"')
		if end < 0 {
			return "", "", false
		}
		account = line[1 : 1+end]
		pattern = strings.TrimLeft(line[2+end:], " \t")
	} else {
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			return "", "", false
		}
		account = line[:i]
		pattern = strings.TrimLeft(line[i:], " \t")
	}
	if account == "" || pattern == "" {
		return "", "", false
	}
	return account, pattern, true
}
