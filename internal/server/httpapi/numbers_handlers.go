package httpapi

import (
	"net/http"

	"github.com/burakkoc5/falimatik/internal/server/numbers"
)

type dailyNumbersResponse struct {
	Date        string `json:"date"`
	PowerNumber string `json:"power_number"`
}

type luckyNumbersResponse struct {
	Date          string `json:"date"`
	PowerNumber   string `json:"power_number"`
	LoveNumber    string `json:"love_number"`
	CareerNumber  string `json:"career_number"`
	HealthNumber  string `json:"health_number"`
	FinanceNumber string `json:"finance_number"`
}

func (a *API) handleDailyNumbers(w http.ResponseWriter, r *http.Request) error {
	date, err := numbers.ParseDate(r.URL.Query().Get(queryDate))
	if err != nil {
		return err
	}

	d := a.numbers.Daily(r.Context(), date)
	respondOK(w, "Daily power number retrieved successfully", dailyNumbersResponse{
		Date:        d.Date.Format(numbers.DateLayout),
		PowerNumber: d.Power,
	})
	return nil
}

// handleLuckyNumbers serves the numbers of the session's own user.
func (a *API) handleLuckyNumbers(w http.ResponseWriter, r *http.Request) error {
	id, err := subject(r)
	if err != nil {
		return err
	}
	date, err := numbers.ParseDate(r.URL.Query().Get(queryDate))
	if err != nil {
		return err
	}

	p, err := a.numbers.Personal(r.Context(), id, date)
	if err != nil {
		return err
	}
	respondOK(w, "Lucky numbers calculated successfully", luckyNumbersResponse{
		Date:          p.Date.Format(numbers.DateLayout),
		PowerNumber:   p.Power,
		LoveNumber:    p.Love,
		CareerNumber:  p.Career,
		HealthNumber:  p.Health,
		FinanceNumber: p.Finance,
	})
	return nil
}
