package microcap

import "github.com/etnz/microcap/date"

// Date is re-exported from the date package so that most of the code can
// use microcap.Date without importing two packages.
type Date = date.Date

// Range is re-exported from the date package.
type Range = date.Range

// NewDate returns a normalized Date for the given year, month, and day.
var NewDate = date.New

// Today returns the current date.
var Today = date.Today

// ParseDate parses a Date from a string.
var ParseDate = date.Parse

// NewRange returns the inclusive range between two dates.
var NewRange = date.NewRange
