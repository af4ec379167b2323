package framework

import (
	"fmt"
	"io"
	"regexp"
	"regexp/syntax"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by their full slash-separated ID, for instance "login" or
// "posts/update". A group that is filtered out is skipped together with everything in it.
//
// A MustMatch pattern that spells out the path to a nested test, such as "^posts/update$",
// also lets the groups above that test run, so that the test can be reached. A pattern
// that does not start with the group name, such as "update", only matches whole groups.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name) || r.MustMatch.AnyBelow(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

// IsDefined returns true if either list has any patterns.
func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
	prefixes []string
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	r.prefixes = append(r.prefixes, literalPrefix(value))
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyBelow returns true if some pattern can only match names inside the group s, judging by
// the literal text the pattern starts with.
func (r RegexList) AnyBelow(s string) bool {
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(prefix, s+"/") {
			return true
		}
	}
	return false
}

// literalPrefix returns the literal text at the start of a pattern, after an optional "^".
func literalPrefix(expr string) string {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return ""
	}
	subs := []*syntax.Regexp{re}
	if re.Op == syntax.OpConcat {
		subs = re.Sub
	}
	var prefix strings.Builder
	for i, sub := range subs {
		switch {
		case i == 0 && sub.Op == syntax.OpBeginText:
		case sub.Op == syntax.OpLiteral && sub.Flags&syntax.FoldCase == 0:
			prefix.WriteString(string(sub.Rune))
		default:
			return prefix.String()
		}
	}
	return prefix.String()
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out, "Groups that depend on a skipped group may be skipped as well.")
	fmt.Fprintln(out)
}
