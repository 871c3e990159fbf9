package models

import "time"

// Session is one recording run over a fixed length×width sensor grid.
// Its key is composite: the owner's cwid plus a per-owner sequential
// session number starting at 1. Numbers are assigned by the repository
// at creation time and never reused.
type Session struct {
	CWID          int    `json:"cwid"`
	SessionNumber int    `json:"session_number"`
	Description   string `json:"description"`
	Length        int    `json:"length"`
	Width         int    `json:"width"`

	// Times is populated on eager reads, creation-order (time ASC).
	Times []SessionTime `json:"-"`
}

// SessionTime is one sampling instant within a session. Every sensor in
// the grid has exactly one SessionValue at each SessionTime.
type SessionTime struct {
	CWID          int            `json:"cwid"`
	SessionNumber int            `json:"session_number"`
	Time          time.Time      `json:"time"`
	Values        []SessionValue `json:"-"`
}

// SessionValue is a single sensor reading. SensorNumber indexes the grid
// row-major in [0, length*width).
type SessionValue struct {
	CWID          int       `json:"cwid"`
	SessionNumber int       `json:"session_number"`
	Time          time.Time `json:"time"`
	SensorNumber  int       `json:"sensor_number"`
	SensorValue   int       `json:"sensor_value"`
}

// SharedSession grants the recipient visibility of another user's session.
// There is no revocation; the row either exists or it does not.
type SharedSession struct {
	SessionCWID   int `json:"session_cwid"`
	SessionNumber int `json:"session_number"`
	ShareToCWID   int `json:"share_to_cwid"`
}

// TimeEntry is the wire form of one sampling instant: a timestamp and a
// dense row-major slice of every sensor's reading at that instant.
type TimeEntry struct {
	Time   time.Time `json:"time"`
	Values []int     `json:"values"`
}

type CreateSessionRequest struct {
	CWID        int         `json:"cwid"`
	Description string      `json:"description"`
	Length      int         `json:"length"`
	Width       int         `json:"width"`
	Data        []TimeEntry `json:"data"`
}

// SessionView is the assembled dense-matrix representation returned to
// API consumers.
type SessionView struct {
	Data   []TimeEntry `json:"data"`
	Length int         `json:"length"`
	Width  int         `json:"width"`
}

// SessionSummary is the listing form: identity and description only, no
// recorded data.
type SessionSummary struct {
	CWID          int    `json:"cwid"`
	SessionNumber int    `json:"session_number"`
	Description   string `json:"description"`
}

type ShareSessionRequest struct {
	SessionCWID   int `json:"session_cwid"`
	SessionNumber int `json:"session_number"`
	ShareToCWID   int `json:"share_to_cwid"`
}
