package reconcile

import "strings"

// RuleSeparator separates clauses in an automatic import rule string.
const RuleSeparator = "|"

// Rules is a parsed automatic import rule string such as "TagB* | *C* | *4".
// The zero value matches nothing.
type Rules struct {
	clauses []string
}

// ParseRules splits a rule string into trimmed clauses.
// Empty clauses are dropped; parsing never fails.
func ParseRules(rules string) Rules {
	var clauses []string
	for _, clause := range strings.Split(rules, RuleSeparator) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		clauses = append(clauses, clause)
	}
	return Rules{clauses: clauses}
}

// Empty reports whether no clause is configured (automatic import disabled).
func (r Rules) Empty() bool {
	return len(r.clauses) == 0
}

// Clauses returns the trimmed clauses.
func (r Rules) Clauses() []string {
	return append([]string(nil), r.clauses...)
}

// Match reports whether any clause matches any non-empty address.
func (r Rules) Match(addresses []string) bool {
	for _, address := range addresses {
		if address == "" {
			continue
		}
		for _, clause := range r.clauses {
			if matchWildcard(clause, address) {
				return true
			}
		}
	}
	return false
}

// MatchRules is the one-shot form of ParseRules(rules).Match(addresses).
func MatchRules(rules string, addresses []string) bool {
	return ParseRules(rules).Match(addresses)
}

// ValidateRules returns the positions (0-based) of clauses that are blank,
// e.g. the middle of "A* || B*". Such clauses are ignored by ParseRules.
func ValidateRules(rules string) []int {
	if strings.TrimSpace(rules) == "" {
		return nil
	}
	var blank []int
	for i, clause := range strings.Split(rules, RuleSeparator) {
		if strings.TrimSpace(clause) == "" {
			blank = append(blank, i)
		}
	}
	return blank
}

// matchWildcard matches s against a pattern where '*' matches any run of
// characters (including none). Every other character is literal and
// comparison is case-sensitive.
func matchWildcard(pattern, s string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == s
	}

	// Anchored prefix and suffix.
	first, last := parts[0], parts[len(parts)-1]
	if !strings.HasPrefix(s, first) {
		return false
	}
	s = s[len(first):]
	if len(s) < len(last) || !strings.HasSuffix(s, last) {
		return false
	}
	s = s[:len(s)-len(last)]

	// Middle segments in order, leftmost match.
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		i := strings.Index(s, part)
		if i < 0 {
			return false
		}
		s = s[i+len(part):]
	}
	return true
}
