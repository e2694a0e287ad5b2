// Package selection holds the per-request user choices submitted through the form.
package selection

// Label values with a fixed ordinal encoding.
const (
	LabelGold     = "GOLD"
	LabelPlatinum = "PLATINUM"
)

var labelOrdinals = map[string]int{
	LabelGold:     0,
	LabelPlatinum: 1,
}

// Selection is one submitted set of car attributes. It is never persisted.
type Selection struct {
	Company   string
	Name      string
	Year      int
	KmsDriven int
	FuelType  string
	Location  string
	Label     string
}

// LabelOrdinal returns the ordinal encoding of the label: GOLD=0, PLATINUM=1.
// Any other value, including the empty string, encodes as 0.
func (s Selection) LabelOrdinal() int {
	return labelOrdinals[s.Label]
}
