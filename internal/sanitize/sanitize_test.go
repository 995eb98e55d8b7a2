package sanitize

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "Just a normal message",
			want:  "Just a normal message",
		},
		{
			name:  "script tag stripped",
			input: `Hello <script>alert("xss")</script> world`,
			want:  "Hello  world",
		},
		{
			name:  "event handler stripped",
			input: `<img src="x" onerror="alert(1)">note`,
			want:  "note",
		},
		{
			name:  "formatting tags stripped",
			input: "<b>bold</b> and <i>italic</i>",
			want:  "bold and italic",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  padded  ",
			want:  "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		`<script>alert("xss")</script>`,
		`<a href="javascript:alert(1)">click</a>`,
		`<img src=x onerror=alert(1)>`,
		"O'Brien & Sons <mixed> content",
	}

	for _, input := range inputs {
		once := Text(input)
		twice := Text(once)
		if once != twice {
			t.Errorf("Text() not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestHTML(t *testing.T) {
	out := HTML(`<p>hello</p><script>alert(1)</script>`)
	if strings.Contains(out, "<script") {
		t.Errorf("HTML() kept a script tag: %q", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("HTML() dropped benign markup: %q", out)
	}

	out = HTML(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(out, "javascript:") {
		t.Errorf("HTML() kept a javascript: URI: %q", out)
	}

	out = HTML(`<img src="x" onerror="alert(1)">`)
	if strings.Contains(out, "onerror") {
		t.Errorf("HTML() kept an event handler: %q", out)
	}
}
