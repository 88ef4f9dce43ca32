package models

// IPRangeItem is a single entry from the upstream IP range feed. Entries
// only live for the duration of an extraction pass.
type IPRangeItem struct {
	CIDR      string   `json:"cidr"`
	Product   []string `json:"product"`
	Direction []string `json:"direction"`
}

// FeedDocument is the parsed upstream feed, tagged with the MD5 of the raw
// response body it was parsed from.
type FeedDocument struct {
	Items       []IPRangeItem `json:"items"`
	ContentHash string        `json:"-"`
}
