package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractServiceTag(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled service tag",
			text: "Dell Latitude 5440\nService Tag: ABC1234\nMade in Vietnam",
			want: "ABC1234",
		},
		{
			name: "labeled serial with hash",
			text: "Serial# 5CD1234XYZ",
			want: "5CD1234XYZ",
		},
		{
			name: "s/n label",
			text: "S/N: JKL9876",
			want: "JKL9876",
		},
		{
			name: "lowercase input",
			text: "service tag: abc1234",
			want: "ABC1234",
		},
		{
			name: "bare dell shaped candidate",
			text: "Latitude JX8K2P9 warranty sticker",
			want: "JX8K2P9",
		},
		{
			name: "skips common label words",
			text: "PRODUCT WINDOWS VERSION 7HQ3WN2",
			want: "7HQ3WN2",
		},
		{
			name: "skips pure digit runs",
			text: "P/N 1234567 tag 9FG7H21",
			want: "9FG7H21",
		},
		{
			name: "nothing plausible",
			text: "made in china 2023",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractServiceTag(tt.text))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc1234", "ABC1234"},
		{"ABC-1234", "ABC1234"},
		{" abc 12 34 ", "ABC1234"},
		{"a.b/c#1", "ABC1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTag(tt.in))
	}
}

func TestVerifyTag(t *testing.T) {
	result := VerifyTag("ABC1234", "Service Tag: ABC1234")
	assert.True(t, result.Matches)
	assert.Equal(t, "ABC1234", result.ExtractedTag)

	result = VerifyTag("ABC1234", "Service Tag: XYZ9876")
	assert.False(t, result.Matches)
	assert.Equal(t, "XYZ9876", result.ExtractedTag)

	result = VerifyTag("ABC1234", "no text here")
	assert.False(t, result.Matches)
	assert.Empty(t, result.ExtractedTag)

	// Normalization bridges OCR artifacts
	result = VerifyTag("abc-1234", "Service Tag: ABC1234")
	assert.True(t, result.Matches)
}
