package domstate

import "strings"

// Config selects which element fields are captured and restored.
type Config struct {
	Value       bool
	Checked     bool
	InnerMarkup bool
	Visible     bool
}

// All includes every field.
var All = Config{Value: true, Checked: true, InnerMarkup: true, Visible: true}

// ParseConfig parses a whitespace-separated directive.
//
// A bare field name (value, checked, innerMarkup, visible; case-insensitive)
// includes that field and the same name prefixed with "!" excludes it.
// "!*" excludes every field not named bare. Without "!*" every field not
// negated is included, so the empty string includes everything.
// innerHTML is accepted as a synonym of innerMarkup.
func ParseConfig(s string) Config {
	var (
		excludeAll bool
		include    = map[string]bool{}
		exclude    = map[string]bool{}
	)
	for _, tok := range strings.Fields(s) {
		if tok == "!*" {
			excludeAll = true
			continue
		}
		neg := strings.HasPrefix(tok, "!")
		field := canonical(strings.TrimPrefix(tok, "!"))
		if field == "" {
			continue
		}
		if neg {
			exclude[field] = true
		} else {
			include[field] = true
		}
	}

	has := func(field string) bool {
		if excludeAll {
			return include[field]
		}
		return !exclude[field]
	}
	return Config{
		Value:       has("value"),
		Checked:     has("checked"),
		InnerMarkup: has("innermarkup"),
		Visible:     has("visible"),
	}
}

func canonical(name string) string {
	switch strings.ToLower(name) {
	case "value":
		return "value"
	case "checked":
		return "checked"
	case "innermarkup", "innerhtml":
		return "innermarkup"
	case "visible":
		return "visible"
	}
	return ""
}

// String renders c as the shortest directive ParseConfig maps back to c.
func (c Config) String() string {
	fields := []struct {
		name string
		on   bool
	}{
		{"value", c.Value},
		{"checked", c.Checked},
		{"innerMarkup", c.InnerMarkup},
		{"visible", c.Visible},
	}
	var on, off []string
	for _, f := range fields {
		if f.on {
			on = append(on, f.name)
		} else {
			off = append(off, "!"+f.name)
		}
	}
	if len(on) < len(off) {
		return strings.Join(append(on, "!*"), " ")
	}
	return strings.Join(off, " ")
}
