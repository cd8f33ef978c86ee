package ocr

import (
	"regexp"
	"strings"
)

// Result reports whether a photographed service tag matches the expected one.
// ExtractedTag is empty when no plausible tag was found in the text.
type Result struct {
	Matches      bool
	ExtractedTag string
	Message      string
}

var (
	// Tags announced by a label win over bare candidates.
	labeledTagPattern = regexp.MustCompile(`(?i)(?:service\s*tag|serial|s/n|asset\s*tag)\s*[:#]?\s*([A-Z0-9]{5,12})`)
	// Dell service tags are 7 alphanumerics, HP serials 10.
	dellTagPattern = regexp.MustCompile(`\b[A-Z0-9]{7}\b`)
	hpTagPattern   = regexp.MustCompile(`\b[A-Z0-9]{10}\b`)
	digitsOnly     = regexp.MustCompile(`^[0-9]+$`)
)

// Words OCR commonly reads off a label that are not service tags.
var commonWords = map[string]bool{
	"MODEL":   true,
	"SERIAL":  true,
	"SERVICE": true,
	"PRODUCT": true,
	"WINDOWS": true,
	"INTEL":   true,
	"CORE":    true,
	"VERSION": true,
}

// ExtractServiceTag pulls the most plausible service tag out of OCR text.
// Labeled tags are preferred; otherwise the first Dell- or HP-shaped candidate
// that is not a common label word wins. Returns "" when nothing qualifies.
func ExtractServiceTag(text string) string {
	upper := strings.ToUpper(text)

	if m := labeledTagPattern.FindStringSubmatch(upper); m != nil {
		candidate := m[1]
		if !commonWords[candidate] {
			return candidate
		}
	}

	for _, pattern := range []*regexp.Regexp{dellTagPattern, hpTagPattern} {
		for _, candidate := range pattern.FindAllString(upper, -1) {
			if commonWords[candidate] {
				continue
			}
			// Pure digit runs are usually part numbers or dates.
			if digitsOnly.MatchString(candidate) {
				continue
			}
			return candidate
		}
	}

	return ""
}

// NormalizeTag uppercases a tag and strips everything non-alphanumeric so
// OCR artifacts like dashes and spaces do not break comparison.
func NormalizeTag(tag string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(tag) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VerifyTag compares the expected service tag against OCR text.
func VerifyTag(expectedTag, text string) Result {
	extracted := ExtractServiceTag(text)
	if extracted == "" {
		return Result{
			Matches:      false,
			ExtractedTag: "",
			Message:      "no service tag found in image",
		}
	}

	if NormalizeTag(extracted) == NormalizeTag(expectedTag) {
		return Result{
			Matches:      true,
			ExtractedTag: extracted,
			Message:      "service tag matches",
		}
	}

	return Result{
		Matches:      false,
		ExtractedTag: extracted,
		Message:      "service tag does not match the registered asset",
	}
}
