// Package domain holds DTOs for detect http and service contracts
package domain

// DetectInput is the text to classify
type DetectInput struct {
	Text string `json:"text" validate:"max=20000" example:"my po_123 payout never arrived"`
}

// Link is a quick reference link for a domain
type Link struct {
	Title string `json:"title" example:"Payout timing"`
	URL   string `json:"url"   example:"https://docs.example.com/payouts"`
}

// Score is the score one domain reached
type Score struct {
	Tag   string `json:"tag"   example:"payouts"`
	Score int    `json:"score" example:"16"`
}

// DetectResult is the detection decision with the scores behind it
type DetectResult struct {
	Tag          string  `json:"tag"           example:"payouts"`
	Matched      bool    `json:"matched"       example:"true"`
	Reason       string  `json:"reason"        example:"match"` // empty ambiguous weak match
	Links        []Link  `json:"links"`
	Scores       []Score `json:"scores"`
	TableVersion int     `json:"table_version" example:"1"`
}

// DomainInfo describes one domain of the pattern table
type DomainInfo struct {
	Tag           string `json:"tag"            example:"disputes"`
	IDPattern     string `json:"id_pattern"     example:"\\bdp_[A-Za-z0-9]+"`
	Keywords      int    `json:"keywords"       example:"8"`
	StrongPhrases int    `json:"strong_phrases" example:"4"`
	Links         []Link `json:"links"`
}

// DomainsResult lists the loaded pattern table
type DomainsResult struct {
	Version int          `json:"version" example:"1"`
	Source  string       `json:"source"  example:"embedded"`
	Domains []DomainInfo `json:"domains"`
}
