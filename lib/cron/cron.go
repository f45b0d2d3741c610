// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// wildcard marks an unconstrained field.
const wildcard = -1

// Expression is a parsed five-field schedule expression. Use Parse to
// create one, then Next to compute the next run time.
type Expression struct {
	minute  int
	hour    int
	day     int
	month   int
	weekday int
}

// Parse parses a five-field schedule expression (minute, hour,
// day-of-month, month, day-of-week). Each field is either "*" or a
// single integer literal within range: minute 0-59, hour 0-23,
// day 1-31, month 1-12, weekday 0-6 (0 = Sunday). Lists, ranges, and
// steps are not supported.
func Parse(expression string) (Expression, error) {
	fields := strings.Fields(expression)
	if len(fields) != 5 {
		return Expression{}, fmt.Errorf("cron: expected 5 fields, got %d", len(fields))
	}

	minute, err := parseField(fields[0], "minute", 0, 59)
	if err != nil {
		return Expression{}, err
	}
	hour, err := parseField(fields[1], "hour", 0, 23)
	if err != nil {
		return Expression{}, err
	}
	day, err := parseField(fields[2], "day-of-month", 1, 31)
	if err != nil {
		return Expression{}, err
	}
	month, err := parseField(fields[3], "month", 1, 12)
	if err != nil {
		return Expression{}, err
	}
	weekday, err := parseField(fields[4], "day-of-week", 0, 6)
	if err != nil {
		return Expression{}, err
	}

	return Expression{
		minute:  minute,
		hour:    hour,
		day:     day,
		month:   month,
		weekday: weekday,
	}, nil
}

// Next returns the next run time strictly after now, in now's
// location. Each constrained field overwrites the corresponding
// component of now; a day-of-week constraint then advances the date
// forward (0-6 days) to the next matching weekday. If the resulting
// time is not strictly after now, it is bumped forward by one unit of
// the most specific constrained field: weekday adds 7 days, day adds
// one month, hour adds one day, minute adds one hour. A fully
// unconstrained expression runs on the next minute.
//
// This is a single-next-occurrence evaluator, not a recurrence
// calendar. Simultaneous day-of-month and day-of-week constraints are
// not reconciled against each other; see the package documentation.
func (e Expression) Next(now time.Time) time.Time {
	year, month, day := now.Date()
	hour, minute, _ := now.Clock()
	location := now.Location()

	if e.minute != wildcard {
		minute = e.minute
	}
	if e.hour != wildcard {
		hour = e.hour
	}
	if e.day != wildcard {
		day = e.day
	}
	if e.month != wildcard {
		month = time.Month(e.month)
	}

	next := time.Date(year, month, day, hour, minute, 0, 0, location)

	if e.weekday != wildcard {
		offset := (e.weekday - int(next.Weekday()) + 7) % 7
		next = next.AddDate(0, 0, offset)
	}

	if next.After(now) {
		return next
	}

	switch {
	case e.weekday != wildcard:
		return next.AddDate(0, 0, 7)
	case e.day != wildcard:
		return next.AddDate(0, 1, 0)
	case e.hour != wildcard:
		return next.AddDate(0, 0, 1)
	case e.minute != wildcard:
		return next.Add(time.Hour)
	default:
		return next.Add(time.Minute)
	}
}

// parseField parses one field: "*" or a single in-range integer.
func parseField(field, name string, minimum, maximum int) (int, error) {
	if field == "*" {
		return wildcard, nil
	}
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("cron: %s field: invalid value %q", name, field)
	}
	if value < minimum || value > maximum {
		return 0, fmt.Errorf("cron: %s field: value %d out of range [%d-%d]", name, value, minimum, maximum)
	}
	return value, nil
}
