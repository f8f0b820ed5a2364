package jsonextract

import (
	"regexp"
	"strings"
)

// FormatRecords renders records as labelled three-line blocks separated by
// blank lines.
func FormatRecords(records []Record) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, "Name: "+r.Name.String()+"\nRole: "+r.Role.String()+"\nContent: "+r.Content.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatFragments joins fragments with blank lines, without labels.
func FormatFragments(fragments []string) string {
	return strings.Join(fragments, "\n\n")
}

var lastExtension = regexp.MustCompile(`\.[^/.]+$`)

// OutputName derives the name of a saved result from the source file name:
// the last extension is dropped and "_extracted" plus ext is appended.
func OutputName(name, ext string) string {
	return lastExtension.ReplaceAllString(name, "") + "_extracted" + ext
}
