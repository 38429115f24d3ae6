package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{name: "empty", in: ""},
		{name: "plain text", in: "Weekly support hours", want: []string{"Weekly support hours"}},
		{name: "script", in: `<p>Hi</p><script>alert(1)</script>`, want: []string{"<p>Hi</p>"}, notWant: []string{"script", "alert"}},
		{name: "onclick", in: `<a href="/x" onclick="steal()">x</a>`, want: []string{`href="/x"`}, notWant: []string{"onclick"}},
		{name: "javascript href", in: `<a href="javascript:alert(1)">x</a>`, notWant: []string{"javascript:"}},
		{name: "iframe", in: `<iframe src="https://evil.example"></iframe>ok`, want: []string{"ok"}, notWant: []string{"iframe"}},
		{name: "form", in: `<form><input name="q"></form>`, notWant: []string{"<form", "<input"}},
		{name: "table attrs", in: `<table class="grid"><tr><td colspan="2" style="text-align: center">a</td></tr></table>`,
			want: []string{`class="grid"`, `colspan="2"`, "text-align"}},
		{name: "formatting", in: `<p><strong>b</strong> <em>i</em> <u>u</u> <mark>m</mark></p>`,
			want: []string{"<strong>", "<em>", "<u>", "<mark>"}},
		{name: "data url image", in: `<img src="data:image/png;base64,AAAA" alt="x">`, notWant: []string{"data:"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tc.in)
			if tc.in == "" && got != "" {
				t.Fatalf("Sanitize(\"\") = %q", got)
			}
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Errorf("missing %q in %q", w, got)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(got, w) {
					t.Errorf("unexpected %q in %q", w, got)
				}
			}
		})
	}
}

func TestPrepareForDisplay(t *testing.T) {
	if got := htmlsanitize.PrepareForDisplay(""); got != "" {
		t.Errorf("empty = %q", got)
	}
	if got := string(htmlsanitize.PrepareForDisplay("Call us\n9-5 & weekends")); got != "<p>Call us<br>9-5 &amp; weekends</p>" {
		t.Errorf("plain = %q", got)
	}
	if got := string(htmlsanitize.PrepareForDisplay(`<b>Hi</b><script>x</script>`)); got != "<b>Hi</b>" {
		t.Errorf("html = %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	cases := map[string]bool{
		"":               true,
		"a > b":          true,
		"a < b":          true,
		"<p>x</p>":       false,
		"price <= 5 > 3": false,
	}
	for in, want := range cases {
		if got := htmlsanitize.IsPlainText(in); got != want {
			t.Errorf("IsPlainText(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMarkdown_RendersAndSanitises(t *testing.T) {
	got := string(htmlsanitize.Markdown("## Outline\n\n- **Week 1**: basics\n\n<script>alert(1)</script>"))
	for _, w := range []string{"<h2", "Outline", "<li>", "<strong>Week 1</strong>"} {
		if !strings.Contains(got, w) {
			t.Errorf("missing %q in %q", w, got)
		}
	}
	if strings.Contains(got, "<script") {
		t.Errorf("script survived: %q", got)
	}
}

func TestMarkdown_Table(t *testing.T) {
	got := string(htmlsanitize.Markdown("| Day | Topic |\n|---|---|\n| 1 | Intro |\n"))
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>Intro</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	if got := htmlsanitize.Markdown("  \n"); got != "" {
		t.Errorf("Markdown(blank) = %q", got)
	}
}
