package scheduler

import "time"

type Quote struct {
	Text   string
	Author string
}

var Quotes = []Quote{
	{Text: "The present moment is the only time over which we have dominion.", Author: "Thich Nhat Hanh"},
	{Text: "Peace comes from within. Do not seek it without.", Author: "Buddha"},
	{Text: "Breathe in peace, breathe out stress.", Author: "Unknown"},
	{Text: "Your calm mind is the ultimate weapon against your challenges.", Author: "Bryant McGill"},
	{Text: "In the midst of movement and chaos, keep stillness inside of you.", Author: "Deepak Chopra"},
	{Text: "The quieter you become, the more you can hear.", Author: "Ram Dass"},
	{Text: "Meditation is not about stopping thoughts, but recognizing that you are more than your thoughts.", Author: "Arianna Huffington"},
	{Text: "Wherever you are, be there totally.", Author: "Eckhart Tolle"},
}

// QuoteOfTheDay rotates through Quotes once per calendar day.
func QuoteOfTheDay(day time.Time) Quote {
	y, m, d := day.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return Quotes[int(days%int64(len(Quotes)))]
}
