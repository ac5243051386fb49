/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package template

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// Data is the flat key/value mapping substituted into a template. Values are
// scalars as decoded from JSON: string, bool, float64 or nil.
type Data map[string]any

const (
	markerOpen  = "{{"
	markerClose = "}}"
	condOpen    = "{{#"
	condClose   = "{{/"
)

// Render substitutes data into tmpl. It is total: malformed markers, unknown
// variables and unresolved conditional blocks degrade to removal or blank
// output, never an error.
//
// Conditional blocks are resolved before variable markers so that a retained
// body's inner markers are still substituted, and so that substituted values
// are never re-interpreted as block syntax. Keys are processed in sorted
// order to keep the output deterministic for pathological inputs where one
// value injects another key's marker.
func Render(tmpl string, data Data) string {
	keys := maps.Keys(data)
	sort.Strings(keys)

	out := tmpl
	for _, key := range keys {
		out = resolveConditional(out, key, truthy(data[key]))
	}
	out = stripConditionals(out)
	for _, key := range keys {
		out = strings.ReplaceAll(out, markerOpen+key+markerClose, stringify(data[key]))
	}
	return stripMarkers(out)
}

// resolveConditional applies the truthiness of key to every
// {{#key}}BODY{{/key}} block in s: truthy unwraps the block to its body,
// falsy drops the block entirely. Bodies are matched non-greedily up to the
// first matching close tag and may span lines. An open tag without a close
// tag is left in place for the final marker cleanup.
func resolveConditional(s, key string, keep bool) string {
	open := condOpen + key + markerClose
	closing := condClose + key + markerClose
	for {
		start := strings.Index(s, open)
		if start < 0 {
			return s
		}
		bodyStart := start + len(open)
		offset := strings.Index(s[bodyStart:], closing)
		if offset < 0 {
			return s
		}
		end := bodyStart + offset + len(closing)
		if keep {
			s = s[:start] + s[bodyStart:bodyStart+offset] + s[end:]
		} else {
			s = s[:start] + s[end:]
		}
	}
}

// stripConditionals removes well-formed conditional blocks that survived key
// resolution. Their keys were absent from the data mapping, so neither branch
// applies and the whole block is dropped, body included.
func stripConditionals(s string) string {
	from := 0
	for {
		start := strings.Index(s[from:], condOpen)
		if start < 0 {
			return s
		}
		start += from
		nameEnd := strings.Index(s[start+len(condOpen):], markerClose)
		if nameEnd < 0 {
			return s
		}
		name := s[start+len(condOpen) : start+len(condOpen)+nameEnd]
		bodyStart := start + len(condOpen) + nameEnd + len(markerClose)
		closing := condClose + name + markerClose
		offset := strings.Index(s[bodyStart:], closing)
		if offset < 0 {
			// No matching close tag, leave the stray open tag for stripMarkers.
			from = start + len(condOpen)
			continue
		}
		s = s[:start] + s[bodyStart+offset+len(closing):]
		from = start
	}
}

// stripMarkers blanks every remaining {{...}} span. A stray {{ without a
// closing }} stays as-is.
func stripMarkers(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, markerOpen)
		if start < 0 {
			break
		}
		end := strings.Index(s[start+len(markerOpen):], markerClose)
		if end < 0 {
			break
		}
		b.WriteString(s[:start])
		s = s[start+len(markerOpen)+end+len(markerClose):]
	}
	b.WriteString(s)
	return b.String()
}

// truthy implements the loose coercion used for conditional keys: nil, the
// empty string and false are falsy, everything else is truthy. Numeric zero
// is deliberately truthy because it renders as the non-empty string "0".
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	default:
		return true
	}
}

// stringify renders a data value the way it appears in the document. Floats
// drop their fractional part when integral, so a JSON rating of 7 prints as
// "7" rather than "7.000000".
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
