package taxonomy

// Canonical disclosure topics for credit card documents, in backfill order.
var creditCardTopics = []string{
	"features",
	"rewards",
	"billing",
	"fees",
	"emi_flexipay",
	"balance_transfer",
	"insurance",
	"terms_and_conditions",
	"disputes",
}

var creditCardRules = []Rule{
	{Keywords: []string{"exclusive features", "key features", "features", "benefits"}, Topic: "features"},
	{Keywords: []string{"rewards", "cashback", "reward points", "rewards structure"}, Topic: "rewards"},
	{Keywords: []string{"billing", "payment", "minimum amount due", "statement"}, Topic: "billing"},
	{Keywords: []string{"fees", "charges", "mitc"}, Topic: "fees"},
	{Keywords: []string{"flexipay", "emi"}, Topic: "emi_flexipay"},
	{Keywords: []string{"balance transfer"}, Topic: "balance_transfer"},
	{Keywords: []string{"insurance", "coverage"}, Topic: "insurance"},
	{Keywords: []string{"terms", "conditions", "agreement"}, Topic: "terms_and_conditions"},
	{Keywords: []string{"dispute", "grievance", "chargeback"}, Topic: "disputes"},
}

var creditCardConfig = Config{
	Line:   LineCreditCard,
	Topics: creditCardTopics,
	Rules:  creditCardRules,

	Fallback:     FallbackUnknown,
	UnknownLabel: "unknown",

	// Card statements run keywords as prefixes: mid-line mentions of
	// "cashback" or "payment" are body text, not headings.
	HeadingKeywords:     flattenKeywords(creditCardRules),
	HeadingKeywordMatch: MatchPrefix,
	MaxAllCapsWords:     8,

	TablePreferred: []string{"fees"},
}

func flattenKeywords(rules []Rule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Keywords...)
	}
	return out
}
