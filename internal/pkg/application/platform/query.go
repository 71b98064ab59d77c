package platform

import (
	"regexp"
	"sort"
	"strings"

	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/diwise/veda-client/pkg/veda/types/values"
)

var clauseRegexp = regexp.MustCompile(`'([^']+)'\s*==\s*(?:'([^']*)'|([^\s()&|]+))`)
var sortRegexp = regexp.MustCompile(`^\s*'([^']+)'\s*(asc|desc)?\s*$`)

type clause struct {
	field string
	value string
}

// newMatcher understands conjunctions of 'field'=='value' clauses, with an optional
// trailing * in the value for prefix matching. Anything else is treated as free text
// that must be contained in the uri or in the data of any value.
func newMatcher(query string) func(*individuals.Individual) bool {
	matches := clauseRegexp.FindAllStringSubmatch(query, -1)

	rest := strings.Map(func(r rune) rune {
		if strings.ContainsRune("()&| \t\r\n", r) {
			return -1
		}
		return r
	}, clauseRegexp.ReplaceAllString(query, ""))

	if len(matches) == 0 || rest != "" {
		return textMatcher(strings.TrimSpace(query))
	}

	clauses := make([]clause, 0, len(matches))
	for _, m := range matches {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		clauses = append(clauses, clause{field: m[1], value: value})
	}

	return func(i *individuals.Individual) bool {
		for _, c := range clauses {
			if !c.matches(i) {
				return false
			}
		}
		return true
	}
}

func (c clause) matches(i *individuals.Individual) bool {
	if c.field == individuals.URIKey {
		return matchData(i.URI(), c.value)
	}

	for _, data := range i.Values(c.field) {
		if matchData(data, c.value) {
			return true
		}
	}

	return false
}

func matchData(data, pattern string) bool {
	if prefix, found := strings.CutSuffix(pattern, "*"); found {
		return strings.HasPrefix(data, prefix)
	}
	return data == pattern
}

func textMatcher(text string) func(*individuals.Individual) bool {
	text = strings.ToLower(text)

	return func(i *individuals.Individual) bool {
		if text == "" || strings.Contains(strings.ToLower(i.URI()), text) {
			return true
		}

		found := false
		i.ForEachProperty(func(property string, vals []values.Value) {
			if found {
				return
			}
			for _, v := range vals {
				if strings.Contains(strings.ToLower(v.Data()), text) {
					found = true
					return
				}
			}
		})

		return found
	}
}

// sortIndividuals orders by the first value of a property when sort is given as
// 'property' asc|desc. The order is by uri otherwise.
func sortIndividuals(list []*individuals.Individual, sortBy string) {
	m := sortRegexp.FindStringSubmatch(sortBy)
	if m == nil {
		return
	}

	property, descending := m[1], m[2] == "desc"

	sort.SliceStable(list, func(a, b int) bool {
		va := list[a].GetFirstValue(property, "")
		vb := list[b].GetFirstValue(property, "")
		if descending {
			return va > vb
		}
		return va < vb
	})
}
