// Package adif reads and writes the ADIF amateur-radio log format.
//
// The reader handles the tagged-field form <NAME:length[:type]>value with
// records terminated by <EOR> and an optional header terminated by <EOH>.
// Field names are case-insensitive and normalized to uppercase.
package adif

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one log entry as a field-name to value mapping.
type Record map[string]string

// Read decodes all records from r. A document that cannot be read at all
// returns an error; individual fields are taken as-is.
func Read(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read adif document: %w", err)
	}
	return parse(string(data))
}

func parse(text string) ([]Record, error) {
	// Skip the header: everything before <EOH>, when present.
	if idx := findTag(text, "EOH"); idx >= 0 {
		text = text[idx:]
	}

	var records []Record
	current := Record{}
	pos := 0

	for {
		open := strings.IndexByte(text[pos:], '<')
		if open < 0 {
			break
		}
		open += pos
		closeIdx := strings.IndexByte(text[open:], '>')
		if closeIdx < 0 {
			break
		}
		closeIdx += open

		tag := text[open+1 : closeIdx]
		pos = closeIdx + 1

		name, length, ok := splitTag(tag)
		if !ok {
			continue
		}

		if name == "EOR" {
			if len(current) > 0 {
				records = append(records, current)
				current = Record{}
			}
			continue
		}
		if name == "EOH" || length < 0 {
			continue
		}

		if pos+length > len(text) {
			return nil, fmt.Errorf("field %s: value length %d exceeds document", name, length)
		}
		current[name] = text[pos : pos+length]
		pos += length
	}

	// A trailing record without <EOR> is tolerated.
	if len(current) > 0 {
		records = append(records, current)
	}
	return records, nil
}

// splitTag parses "NAME:length[:type]" or a bare marker like EOR.
// length is -1 for markers.
func splitTag(tag string) (name string, length int, ok bool) {
	parts := strings.Split(tag, ":")
	name = strings.ToUpper(strings.TrimSpace(parts[0]))
	if name == "" {
		return "", 0, false
	}
	if len(parts) == 1 {
		return name, -1, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || n < 0 {
		return "", 0, false
	}
	return name, n, true
}

// findTag returns the index just past a bare <TAG>, or -1.
func findTag(text, tag string) int {
	upper := strings.ToUpper(text)
	needle := "<" + tag + ">"
	idx := strings.Index(upper, needle)
	if idx < 0 {
		return -1
	}
	return idx + len(needle)
}
