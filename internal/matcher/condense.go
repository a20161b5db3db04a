package matcher

import "strings"

// DefaultCondenseTopN bounds how many sentences survive condensing.
const DefaultCondenseTopN = 20

// Sentences mentioning any of these terms are kept ahead of the rest when
// condensing job postings.
var priorityTerms = []string{
	"skills",
	"experience",
	"qualification",
	"requirement",
	"responsibility",
	"job",
}

// CondenseText reduces a long job posting to its most informative sentences.
// Text is split on periods and newlines, fragments of five characters or
// fewer are dropped, sentences containing a priority term are ranked first,
// and at most topN sentences are kept in their original relative order.
func CondenseText(text string, topN int) string {
	if topN <= 0 {
		topN = DefaultCondenseTopN
	}

	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n'
	})

	var prioritized, rest []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) <= 5 {
			continue
		}
		if containsPriorityTerm(s) {
			prioritized = append(prioritized, s)
		} else {
			rest = append(rest, s)
		}
	}

	kept := prioritized
	if len(kept) < topN {
		kept = append(kept, rest[:min(topN-len(kept), len(rest))]...)
	} else {
		kept = kept[:topN]
	}

	return strings.Join(kept, ". ")
}

func containsPriorityTerm(sentence string) bool {
	lowered := strings.ToLower(sentence)
	for _, term := range priorityTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
