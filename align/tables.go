package align

// summaryStitches maps words accidentally run together in summary fields to
// their separated forms. A rewrite only happens when the separated form is
// attested in the document text.
var summaryStitches = map[string]string{
	"andthe":   "and the",
	"atthe":    "at the",
	"bythe":    "by the",
	"forthe":   "for the",
	"fromthe":  "from the",
	"inthe":    "in the",
	"ofthe":    "of the",
	"onthe":    "on the",
	"overthe":  "over the",
	"saidthe":  "said the",
	"thatthe":  "that the",
	"tothe":    "to the",
	"withthe":  "with the",
	"ofa":      "of a",
	"ina":      "in a",
	"isa":      "is a",
	"tobe":     "to be",
	"willbe":   "will be",
	"hasbeen":  "has been",
	"havebeen": "have been",
	"morethan": "more than",
	"aswell":   "as well",
}

// docSplits maps words accidentally written apart in document text to their
// joined forms. A rewrite only happens when the joined form is attested in
// the summary.
var docSplits = map[string]string{
	"can not":      "cannot",
	"any one":      "anyone",
	"any thing":    "anything",
	"every one":    "everyone",
	"every thing":  "everything",
	"some one":     "someone",
	"some thing":   "something",
	"them selves":  "themselves",
	"him self":     "himself",
	"her self":     "herself",
	"it self":      "itself",
	"week end":     "weekend",
	"life time":    "lifetime",
	"health care":  "healthcare",
	"on line":      "online",
	"web site":     "website",
	"data base":    "database",
	"front runner": "frontrunner",
}
