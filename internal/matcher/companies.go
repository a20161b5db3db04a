package matcher

// companyRule suggests companies when a skill set satisfies its conditions:
// every skill in requireAll must be present, and at least one of requireAny
// when the list is non-empty.
type companyRule struct {
	requireAll []string
	requireAny []string
	companies  []string
}

var defaultCompanyRules = []companyRule{
	{requireAll: []string{"python", "ml"}, companies: []string{"Google", "Microsoft", "Amazon"}},
	{requireAll: []string{"react", "node"}, companies: []string{"Facebook", "Shopify", "Tesla"}},
	{requireAny: []string{"aws", "cloud"}, companies: []string{"IBM", "Oracle", "Accenture"}},
}

// SuggestCompanies returns companies whose typical stacks overlap the given
// skills, deduplicated, in rule order.
func SuggestCompanies(skills []string) []string {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, rule := range defaultCompanyRules {
		if !rule.matches(have) {
			continue
		}
		for _, c := range rule.companies {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func (r companyRule) matches(have map[string]struct{}) bool {
	for _, s := range r.requireAll {
		if _, ok := have[s]; !ok {
			return false
		}
	}
	if len(r.requireAny) == 0 {
		return true
	}
	for _, s := range r.requireAny {
		if _, ok := have[s]; ok {
			return true
		}
	}
	return false
}
