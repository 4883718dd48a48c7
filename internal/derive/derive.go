// Package derive turns the free-text numeric columns of a crew record into
// values that can be compared, filtered and aggregated.
//
// Every endpoint that needs a derived value goes through this package so the
// listing, detail and metadata responses always agree.
package derive

import (
	"regexp"
	"strconv"

	"github.com/jonboulle/clockwork"
)

var (
	daysPattern    = regexp.MustCompile(`(\d+)\s*d`)
	hoursPattern   = regexp.MustCompile(`(\d+)h`)
	minutesPattern = regexp.MustCompile(`(\d+)m`)
)

// Input is the subset of a crew row the derivations read.
type Input struct {
	BirthYear    *int
	DeathYear    *float64
	TimeInSpace  string
	TotalEVAs    *float64
	TotalEVATime string
}

// Fields holds the derived values of one crew member.
// Age is nil when the birth year is unknown.
type Fields struct {
	Age         *int
	DaysInSpace int
	EVACount    float64
	EVAMinutes  int
}

// AgeOrDefault returns the age, or def when it is unknown.
func (f Fields) AgeOrDefault(def int) int {
	if f.Age == nil {
		return def
	}
	return *f.Age
}

// Compute derives all fields for in against the given calendar year.
func Compute(in Input, currentYear int) Fields {
	return Fields{
		Age:         Age(in.BirthYear, in.DeathYear, currentYear),
		DaysInSpace: DaysInSpace(in.TimeInSpace),
		EVACount:    EVACount(in.TotalEVAs),
		EVAMinutes:  EVAMinutes(in.TotalEVATime),
	}
}

// CurrentYear reads the calendar year from clock.
func CurrentYear(clock clockwork.Clock) int {
	return clock.Now().Year()
}

// Age returns death year (truncated) minus birth year for deceased crew and
// currentYear minus birth year otherwise. A missing or zero birth year yields nil.
func Age(birthYear *int, deathYear *float64, currentYear int) *int {
	if birthYear == nil || *birthYear == 0 {
		return nil
	}

	var age int
	if deathYear != nil && *deathYear != 0 {
		age = int(*deathYear) - *birthYear
	} else {
		age = currentYear - *birthYear
	}
	return &age
}

// DaysInSpace parses the first "<digits>d" group, allowing whitespace before
// the d. "178d" and "178 d" give 178; anything unparseable gives 0.
func DaysInSpace(text string) int {
	return firstInt(daysPattern, text)
}

// EVAMinutes parses "<h>h" and "<m>m" independently and returns h*60+m.
func EVAMinutes(text string) int {
	if text == "" {
		return 0
	}
	return firstInt(hoursPattern, text)*60 + firstInt(minutesPattern, text)
}

// EVACount returns the stored EVA count, 0 when absent.
func EVACount(totalEVAs *float64) float64 {
	if totalEVAs == nil {
		return 0
	}
	return *totalEVAs
}

func firstInt(re *regexp.Regexp, text string) int {
	if text == "" {
		return 0
	}
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}
