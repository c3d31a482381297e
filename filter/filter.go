// Package filter decides which tracked media files take part in an import.
package filter

import (
	"archivuelo/database/model"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidFilterValue = errors.New("invalid filter value")

// accepted date formats, all interpreted in local time
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected one of %s", ErrInvalidFilterValue, s, strings.Join(timeLayouts, ", "))
}

type Outcome struct {
	Label  string
	Passed bool
	Reason string
}

type Filter interface {
	Label() string
	Test(f model.MediaFile) Outcome
}

type ExcludeBefore struct {
	Threshold time.Time
}

func NewExcludeBeforeFromString(s string) (*ExcludeBefore, error) {
	t, err := ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("--exclude-before: %w", err)
	}
	return &ExcludeBefore{Threshold: t}, nil
}

func (e *ExcludeBefore) Label() string {
	return "exclude-before " + e.Threshold.Format(timeLayouts[0])
}

func (e *ExcludeBefore) Test(f model.MediaFile) Outcome {
	if f.TimeBirthtime.IsZero() {
		return Outcome{Label: e.Label(), Passed: false, Reason: "no birthtime"}
	}
	if f.TimeBirthtime.Before(e.Threshold) {
		return Outcome{Label: e.Label(), Passed: false, Reason: "created " + f.TimeBirthtime.Format(timeLayouts[0])}
	}
	return Outcome{Label: e.Label(), Passed: true}
}

type ExcludeAfter struct {
	Threshold time.Time
}

func NewExcludeAfterFromString(s string) (*ExcludeAfter, error) {
	t, err := ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("--exclude-after: %w", err)
	}
	return &ExcludeAfter{Threshold: t}, nil
}

func (e *ExcludeAfter) Label() string {
	return "exclude-after " + e.Threshold.Format(timeLayouts[0])
}

func (e *ExcludeAfter) Test(f model.MediaFile) Outcome {
	if f.TimeBirthtime.IsZero() {
		return Outcome{Label: e.Label(), Passed: false, Reason: "no birthtime"}
	}
	if f.TimeBirthtime.After(e.Threshold) {
		return Outcome{Label: e.Label(), Passed: false, Reason: "created " + f.TimeBirthtime.Format(timeLayouts[0])}
	}
	return Outcome{Label: e.Label(), Passed: true}
}

// Set admits a file only when every filter passes. An empty set admits
// everything.
type Set []Filter

type Result struct {
	Admitted bool
	Failed   []Outcome
}

func (r Result) String() string {
	if r.Admitted {
		return "admitted"
	}
	parts := make([]string, 0, len(r.Failed))
	for _, o := range r.Failed {
		if o.Reason != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", o.Label, o.Reason))
		} else {
			parts = append(parts, o.Label)
		}
	}
	return "rejected by " + strings.Join(parts, ", ")
}

func (s Set) Admit(f model.MediaFile) Result {
	for _, flt := range s {
		o := flt.Test(f)
		if !o.Passed {
			return Result{Admitted: false, Failed: []Outcome{o}}
		}
	}
	return Result{Admitted: true}
}

func (s Set) String() string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, len(s))
	for i, f := range s {
		labels[i] = f.Label()
	}
	return strings.Join(labels, " AND ")
}

// FromStrings builds a set from the command line values, empty values are
// ignored.
func FromStrings(excludeBefore string, excludeAfter string) (Set, error) {
	var set Set
	if excludeBefore != "" {
		f, err := NewExcludeBeforeFromString(excludeBefore)
		if err != nil {
			return nil, err
		}
		set = append(set, f)
	}
	if excludeAfter != "" {
		f, err := NewExcludeAfterFromString(excludeAfter)
		if err != nil {
			return nil, err
		}
		set = append(set, f)
	}
	return set, nil
}
