package model

// Flags are the parsed CLI options
type Flags struct {
	Message  string
	UserID   string
	Session  string
	Analyze  bool
	Days     int
	Forecast bool
	Focus    string
}
