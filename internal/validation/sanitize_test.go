package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Maya loves soccer camp", "Maya loves soccer camp"},
		{"tags stripped", "<b>week 3</b> is <i>booked</i>", "week 3 is booked"},
		{"script body dropped", `before<script>alert("x")</script>after`, "beforeafter"},
		{"style body dropped", "a<style>body{}</style>b", "ab"},
		{"javascript url removed", "click javascript:alert(1) here", "click here"},
		{"data url removed", "see data:text/html;base64,xyz now", "see now"},
		{"http url kept", "site: https://camps.example.com/info", "site: https://camps.example.com/info"},
		{"mailto kept", "write mailto:office@camp.org soon", "write mailto:office@camp.org soon"},
		{"time-of-day is not a url", "drop-off: 9:30am, pick-up 3pm", "drop-off: 9:30am, pick-up 3pm"},
		{"prose colon kept", "Note: bring lunch", "Note: bring lunch"},
		{"control characters collapse", "a\x00b\tc\nd", "ab c d"},
		{"surrounding space trimmed", "  hi  ", "hi"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"Maya loves <b>soccer</b>",
		"click javascript:alert(1) here",
		"plain text",
		"site https://example.com ok",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}
