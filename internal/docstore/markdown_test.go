package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "title and subheading",
			input: "# Title\n## Sub",
			want:  "Title\nSub",
		},
		{
			name:  "all three levels",
			input: "# A\n## B\n### C\nbody",
			want:  "A\nB\nC\nbody",
		},
		{
			name:  "no markers untouched",
			input: "日時: 2026-08-28\n決定事項なし",
			want:  "日時: 2026-08-28\n決定事項なし",
		},
		{
			name:  "bare hash without space kept",
			input: "#hashtag stays",
			want:  "#hashtag stays",
		},
		{
			// Literal substring removal, by design: markers are stripped
			// even mid-line.
			name:  "marker inside a line",
			input: "see section # 4 for details",
			want:  "see section 4 for details",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHeadings(tt.input))
		})
	}
}

func TestDocumentURLDeterministic(t *testing.T) {
	url := DocumentURL("abc123")
	assert.Equal(t, "https://docs.google.com/document/d/abc123", url)

	// Same id, same url, always.
	assert.Equal(t, url, DocumentURL("abc123"))
}
