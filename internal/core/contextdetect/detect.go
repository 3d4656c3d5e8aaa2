package contextdetect

import "strings"

// scoring weights and the ambiguity thresholds
const (
	idWeight      = 15
	phraseWeight  = 5
	keywordWeight = 1

	// a best score below strongScore whose lead over the runner up is under
	// minLead, and that is above weakCeiling, is treated as no match
	strongScore = 15
	minLead     = 2
	weakCeiling = 2
)

// Score is the per domain tally for one detection call
type Score struct {
	Tag   string `json:"tag"   example:"payouts"`
	Score int    `json:"score" example:"17"`
}

// Result explains a detection decision
type Result struct {
	Tag      string  `json:"tag,omitempty" example:"payouts"`
	OK       bool    `json:"matched"       example:"true"`
	Best     int     `json:"best"          example:"17"`
	RunnerUp int     `json:"runner_up"     example:"1"`
	Reason   string  `json:"reason"        example:"match"`
	Scores   []Score `json:"scores"`
}

// decision reasons
const (
	ReasonEmpty     = "empty"
	ReasonAmbiguous = "ambiguous"
	ReasonWeak      = "weak"
	ReasonMatch     = "match"
)

// Detect returns the domain tag for text, ok is false when nothing qualifies
func (t *Table) Detect(text string) (string, bool) {
	r := t.Explain(text)
	return r.Tag, r.OK
}

// Explain runs detection and returns every domain score with the decision
func (t *Table) Explain(text string) Result {
	if t == nil || text == "" {
		return Result{Reason: ReasonEmpty}
	}

	lower := strings.ToLower(text)
	scores := make([]Score, 0, len(t.domains))

	bestTag := ""
	best, runnerUp := 0, 0
	for i := range t.domains {
		d := &t.domains[i]
		s := d.score(text, lower)
		scores = append(scores, Score{Tag: d.Tag, Score: s})

		// a demoted best becomes the runner up, ties keep the earlier domain
		if s > best {
			runnerUp = best
			best = s
			bestTag = d.Tag
		} else if s > runnerUp {
			runnerUp = s
		}
	}

	res := Result{Best: best, RunnerUp: runnerUp, Scores: scores}
	switch {
	case best < strongScore && best-runnerUp < minLead && best > weakCeiling:
		res.Reason = ReasonAmbiguous
	case best <= weakCeiling:
		res.Reason = ReasonWeak
	default:
		res.Tag, res.OK, res.Reason = bestTag, true, ReasonMatch
	}
	return res
}

// score tallies one domain, raw is the untouched text and lower its lowercase form
func (d *Domain) score(raw, lower string) int {
	s := 0
	if d.IDPattern != nil && d.IDPattern.MatchString(raw) {
		s += idWeight
	}
	for _, p := range d.StrongPhrases {
		if strings.Contains(lower, p) {
			s += phraseWeight
		}
	}
	for _, re := range d.keywordRes {
		if re.MatchString(raw) {
			s += keywordWeight
		}
	}
	return s
}
