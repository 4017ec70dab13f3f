package domstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Config
	}{
		{"empty includes everything", "", All},
		{"whitespace only", "  \t\n ", All},
		{"exclude all", "!*", Config{}},
		{"negate value", "!value", Config{Checked: true, InnerMarkup: true, Visible: true}},
		{"only visible", "visible !*", Config{Visible: true}},
		{"exclude all first", "!* visible", Config{Visible: true}},
		{"bare tokens without exclude all are no-ops", "value checked", All},
		{"negations ignored under exclude all", "!* !value value checked", Config{Value: true, Checked: true}},
		{"case insensitive", "!VALUE !Checked", Config{InnerMarkup: true, Visible: true}},
		{"innerMarkup", "!innerMarkup", Config{Value: true, Checked: true, Visible: true}},
		{"innerHTML alias", "!* innerHTML", Config{InnerMarkup: true}},
		{"unknown tokens ignored", "foo !bar", All},
		{"star must be a whole token", "!** x!*", All},
		{"prefix is not a match", "!values", All},
		{"mixed separators", "value\t!*\nchecked", Config{Value: true, Checked: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseConfig(tt.in))
		})
	}
}

func TestParseConfig_OrderIndependent(t *testing.T) {
	a := ParseConfig("checked !* value")
	b := ParseConfig("value checked !*")
	c := ParseConfig("!* checked value")
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
}

func TestConfig_String(t *testing.T) {
	tests := []struct {
		in   Config
		want string
	}{
		{All, ""},
		{Config{}, "!*"},
		{Config{Visible: true}, "visible !*"},
		{Config{Value: true, Checked: true, InnerMarkup: true}, "!visible"},
		{Config{Value: true, Visible: true}, "!checked !innerMarkup"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
			assert.Equal(t, tt.in, ParseConfig(tt.in.String()))
		})
	}
}

func BenchmarkParseConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ParseConfig("value checked !innerMarkup visible !*")
	}
}
