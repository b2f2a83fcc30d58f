package tabular

import (
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"
)

// InsufficientDataError is returned when the input has no usable data line.
type InsufficientDataError struct {
	// HeaderOnly is set when a header line was found but nothing under it.
	HeaderOnly bool
}

func (e *InsufficientDataError) Error() string {
	if e.HeaderOnly {
		return "insufficient data: header found but no data lines below it"
	}
	return "insufficient data: input has no usable data line"
}

// MissingColumnsError is returned when a detected header lacks columns the
// caller needs. Missing holds the exact canonical names so they can be shown
// to the user as-is.
type MissingColumnsError struct {
	Missing []string

	// Suggestions maps a missing column to the closest unrecognized header
	// cell, when one looks similar enough.
	Suggestions map[string]string
}

func (e *MissingColumnsError) Error() string {
	var b strings.Builder
	b.WriteString("missing columns: ")
	b.WriteString(strings.Join(e.Missing, ", "))

	for _, m := range e.Missing {
		if s, ok := e.Suggestions[m]; ok {
			fmt.Fprintf(&b, " (%q looks like %q)", s, m)
		}
	}
	return b.String()
}

// suggestColumns pairs each missing column with the most similar header
// cell that was not recognized, e.g. "Customs Broker" for "Customs broker".
func suggestColumns(missing, candidates []string) map[string]string {
	out := make(map[string]string)
	if len(candidates) == 0 {
		return out
	}

	// closestmatch indexes lowercased n-grams and does not lowercase the
	// query, so both sides are lowercased here and mapped back to the
	// original spelling.
	byLower := make(map[string]string, len(candidates))
	lower := make([]string, 0, len(candidates))
	for _, c := range candidates {
		l := strings.ToLower(c)
		if _, dup := byLower[l]; dup {
			continue
		}
		byLower[l] = c
		lower = append(lower, l)
	}

	cm := closestmatch.New(lower, []int{2, 3})
	for _, m := range missing {
		if match := cm.Closest(strings.ToLower(m)); match != "" {
			if original, ok := byLower[match]; ok {
				out[m] = original
			}
		}
	}
	return out
}
