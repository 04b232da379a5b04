package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// FlexInt is an integer that also decodes from a JSON string holding a
// base-10 integer, as browser form clients send it. It always encodes as a
// JSON number.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not an integer", s)
		}
		*n = FlexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

// Schema accepts an integer or a string of digits.
func (FlexInt) Schema(r huma.Registry) *huma.Schema {
	asInt := &huma.Schema{Type: huma.TypeInteger, Format: "int64"}
	asString := &huma.Schema{Type: huma.TypeString, Pattern: `^\s*-?[0-9]+\s*$`}
	s := &huma.Schema{OneOf: []*huma.Schema{asInt, asString}}
	asInt.PrecomputeMessages()
	asString.PrecomputeMessages()
	s.PrecomputeMessages()
	return s
}
