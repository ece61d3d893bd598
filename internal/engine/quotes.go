package engine

import "time"

var quotes = []string{
	"Success is the sum of small efforts, repeated day in and day out.",
	"Don't wait for the perfect moment. Start where you are, with what you have.",
	"Your future is created by what you do today, not tomorrow.",
	"Every day is a new chance to become a better version of yourself.",
	"Small steps still lead to the goal; what matters is moving forward.",
}

// QuoteFor returns the quote shown on the calendar day of t. The same day
// always yields the same quote.
func QuoteFor(t time.Time) string {
	y, m, d := t.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	i := days % int64(len(quotes))
	if i < 0 {
		i += int64(len(quotes))
	}
	return quotes[i]
}

// Quotes returns every quote in rotation order.
func Quotes() []string {
	return append([]string(nil), quotes...)
}
