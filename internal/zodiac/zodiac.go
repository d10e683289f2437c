// Package zodiac maps a birth date to its western zodiac sign.
package zodiac

import "time"

type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// boundary is the first day of a sign. The table is ordered by calendar
// position; Capricorn wraps around the new year.
type boundary struct {
	month time.Month
	day   int
	sign  Sign
}

var boundaries = []boundary{
	{time.January, 20, Aquarius},
	{time.February, 19, Pisces},
	{time.March, 21, Aries},
	{time.April, 20, Taurus},
	{time.May, 21, Gemini},
	{time.June, 21, Cancer},
	{time.July, 23, Leo},
	{time.August, 23, Virgo},
	{time.September, 23, Libra},
	{time.October, 23, Scorpio},
	{time.November, 22, Sagittarius},
	{time.December, 22, Capricorn},
}

// FromDate returns the sign for the month and day of d. Year and time of day
// are ignored.
func FromDate(d time.Time) Sign {
	m, day := d.Month(), d.Day()

	sign := Capricorn
	for _, b := range boundaries {
		if m > b.month || (m == b.month && day >= b.day) {
			sign = b.sign
			continue
		}
		break
	}
	return sign
}

func (s Sign) String() string { return string(s) }

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	for _, b := range boundaries {
		if b.sign == s {
			return true
		}
	}
	return false
}
