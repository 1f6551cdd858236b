package viewmodels

type Birthday struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	SortKey   string `json:"sort_key"`
}

type NewHire struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	HiredAt  string `json:"hired_at"`
	Position string `json:"position,omitempty"`
}

type Anniversary struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	AnniversaryDate string `json:"anniversary_date"`
	AnniversaryAge  string `json:"anniversary_age"`
}

// MoraleWindow is the averaged team morale over one window. Empty windows
// carry zero values and no emotion.
type MoraleWindow struct {
	Average float64 `json:"average"`
	Percent int     `json:"percent"`
	Emotion string  `json:"emotion"`
	Empty   bool    `json:"-"`
}

type TeamMorale struct {
	Yesterday MoraleWindow `json:"yesterday"`
	LastWeek  MoraleWindow `json:"last_week"`
	LastMonth MoraleWindow `json:"last_month"`
}

type MoraleEntry struct {
	Date    string `json:"date"`
	Emotion int    `json:"emotion"`
	Emoji   string `json:"emoji"`
	Comment string `json:"comment,omitempty"`
}

type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type MonthEntries struct {
	Month       int    `json:"month"`
	Occurences  int    `json:"occurences"`
	Translation string `json:"translation"`
}

type Year struct {
	Number int `json:"number"`
}
