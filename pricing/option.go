package pricing

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// optionPattern matches "Label(2.99)". Only well-formed decimals count as a
// price; anything else inside the parens leaves the whole string as the label.
var optionPattern = regexp.MustCompile(`^(.+?)\((\d+(?:\.\d+)?|\.\d+)\)$`)

// Option is a selectable customization with an optional surcharge
type Option struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// ParseOption decodes the catalog string form "Label(price)".
// It never fails: unparsable input becomes a zero-priced label.
func ParseOption(raw string) Option {
	m := optionPattern.FindStringSubmatch(raw)
	if m == nil {
		return Option{Label: strings.TrimSpace(raw)}
	}
	price, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Option{Label: strings.TrimSpace(raw)}
	}
	return Option{Label: strings.TrimSpace(m[1]), Price: price}
}

// ParseOptions decodes a list of catalog strings
func ParseOptions(raw []string) []Option {
	if len(raw) == 0 {
		return nil
	}
	opts := make([]Option, 0, len(raw))
	for _, r := range raw {
		opts = append(opts, ParseOption(r))
	}
	return opts
}

// UnmarshalJSON accepts both the structured form {"label","price"} and the
// legacy "Label(price)" string, so imported menus are decoded once at the edge.
func (o *Option) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*o = ParseOption(raw)
		return nil
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	p.Label = strings.TrimSpace(p.Label)
	*o = Option(p)
	return nil
}

// PriceIndex maps option labels to prices. A repeated label keeps the last price.
func PriceIndex(opts []Option) map[string]float64 {
	idx := make(map[string]float64, len(opts))
	for _, o := range opts {
		idx[o.Label] = o.Price
	}
	return idx
}
