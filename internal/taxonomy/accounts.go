package taxonomy

// Canonical disclosure topics for deposit account documents. The order is
// fixed: backfilled sections are appended in this order.
var accountTopics = []string{
	"Product Overview",
	"Features & Benefits",
	"Eligibility",
	"KYC / Documentation",
	"Fees & Charges",
	"Interest / Pricing",
	"Eligibility Addendum",
	"MITC",
	"Transaction & Usage Rules",
	"Limits",
	"Instruments & Tools",
	"Statements & Communication",
	"Dormancy / Inoperative / Surrender",
	"Closure",
	"Complaints & Grievances",
	"Legal T&C",
}

var accountConfig = Config{
	Line:   LineAccount,
	Topics: accountTopics,

	// Ordered, first match wins. "eligibility addendum" must precede
	// "eligibility", and the specific fee/interest keywords precede the
	// catch-all legal terms.
	Rules: []Rule{
		{Keywords: []string{"feature"}, Topic: "Features & Benefits"},
		{Keywords: []string{"eligibility addendum"}, Topic: "Eligibility Addendum"},
		{Keywords: []string{"eligibility"}, Topic: "Eligibility"},
		{Keywords: []string{"kyc", "documentation"}, Topic: "KYC / Documentation"},
		{Keywords: []string{"interest", "pricing", "rate"}, Topic: "Interest / Pricing"},
		{Keywords: []string{"service charge", "fee", "charges"}, Topic: "Fees & Charges"},
		{Keywords: []string{"important terms", "mitc"}, Topic: "MITC"},
		{Keywords: []string{"withdraw", "transaction", "usage"}, Topic: "Transaction & Usage Rules"},
		{Keywords: []string{"limit"}, Topic: "Limits"},
		{Keywords: []string{"cheque", "debit card", "instruments"}, Topic: "Instruments & Tools"},
		{Keywords: []string{"statement", "communication", "sms"}, Topic: "Statements & Communication"},
		{Keywords: []string{"dormant", "inoperative", "surrender"}, Topic: "Dormancy / Inoperative / Surrender"},
		{Keywords: []string{"closure", "close account"}, Topic: "Closure"},
		{Keywords: []string{"complaint", "griev", "feedback"}, Topic: "Complaints & Grievances"},
		{Keywords: []string{"legal", "term", "condition"}, Topic: "Legal T&C"},
		{Keywords: []string{"overview", "about"}, Topic: "Product Overview"},
	},

	Fallback: FallbackTitleCase,

	HeadingKeywords: []string{
		"features", "eligibility", "interest", "service", "charges",
		"dormant", "statement", "kyc", "mitc",
	},
	HeadingKeywordMatch: MatchContains,
	ShortHeadingWords:   7,
	TopicFirstWord:      true,

	TablePreferred: []string{"Fees & Charges", "MITC"},
}
