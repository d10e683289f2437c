// Package numbers derives the daily numbers shown to signed-in users. Every
// number is a pure function of the calendar date and, for personal numbers,
// the user id and birth date, so repeated calls on the same day agree.
package numbers

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
)

// DateLayout is the wire layout of the date parameter.
const DateLayout = "2006-01-02"

const (
	minNumber = 100000
	maxNumber = 999999
)

// Daily is the power number shared by every user on a date.
type Daily struct {
	Date  time.Time
	Power string
}

// Personal holds the numbers of one user on a date.
type Personal struct {
	Date    time.Time
	Power   string
	Love    string
	Career  string
	Health  string
	Finance string
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD date. An empty string yields the zero time,
// which callers treat as today.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, common.NewValidationError("date", "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// Power returns the six digit number of date.
func Power(date time.Time) Daily {
	date = Day(date)
	return Daily{Date: date, Power: generate(dateSeed(date))}
}

// ForUser returns the personal numbers of userID on date. A zero birth date
// is replaced by the user id in the seed.
func ForUser(userID string, birth, date time.Time) Personal {
	date = Day(date)
	id := idSeed(userID)

	base := dateSeed(date) + id
	if birth.IsZero() {
		base += id
	} else {
		base += dateSeed(birth)
	}

	return Personal{
		Date:    date,
		Power:   generate(dateSeed(date)),
		Love:    generate(base + 1),
		Career:  generate(base + 2),
		Health:  generate(base + 3),
		Finance: generate(base + 4),
	}
}

// dateSeed encodes d as the integer YYYYMMDD.
func dateSeed(d time.Time) uint64 {
	y, m, day := d.Date()
	return uint64(y*10000 + int(m)*100 + day)
}

func idSeed(userID string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(userID))
	return h.Sum64()
}

func generate(seed uint64) string {
	r := rand.New(rand.NewPCG(seed, seed>>32))
	return fmt.Sprintf("%06d", minNumber+r.IntN(maxNumber-minNumber+1))
}
