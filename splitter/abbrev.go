package splitter

import "strings"

// Single-period abbreviations that commonly precede a capitalized word and
// therefore fool statistical boundary detection in news text. Titles,
// months, street suffixes and corporate designators dominate; multi-period
// abbreviations like U.S. are caught structurally and need no listing.
var baseAbbreviations = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Rev.", "Hon.",
	"Gov.", "Sen.", "Rep.", "Pres.", "Sec.", "Amb.",
	"Gen.", "Col.", "Maj.", "Capt.", "Lt.", "Sgt.", "Cpl.", "Adm.", "Cmdr.",
	"Jr.", "Sr.", "St.", "Mt.", "Ft.",
	"Jan.", "Feb.", "Mar.", "Apr.", "Jun.", "Jul.", "Aug.",
	"Sept.", "Oct.", "Nov.", "Dec.",
	"Mon.", "Tue.", "Tues.", "Wed.", "Thu.", "Thurs.", "Fri.", "Sat.", "Sun.",
	"Ave.", "Blvd.", "Rd.", "Hwy.", "Sq.",
	"Co.", "Corp.", "Inc.", "Ltd.", "Bros.", "Assn.", "Dept.", "Univ.",
	"No.", "Nos.", "vs.", "etc.", "est.", "approx.", "misc.",
}

// abbreviations includes the base list plus fully uppercased variants, so
// headline-cased text ("MR. SMITH") is handled too.
var abbreviations = buildAbbreviations()

func buildAbbreviations() []string {
	seen := make(map[string]bool, 2*len(baseAbbreviations))
	out := make([]string, 0, 2*len(baseAbbreviations))
	for _, a := range baseAbbreviations {
		for _, v := range []string{a, strings.ToUpper(a)} {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}
