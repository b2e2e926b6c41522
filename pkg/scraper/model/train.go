package model

import "time"

// StatusKind says what a train was last reported doing at a station.
type StatusKind string

const (
	StatusKindPassing   StatusKind = "passing"
	StatusKindArrival   StatusKind = "arrival"
	StatusKindDeparture StatusKind = "departure"
)

// NoteKind discriminates the stop note variants.
type NoteKind string

const (
	NoteKindTrainNumberChange NoteKind = "trainNumberChange"
	NoteKindDepartsAs         NoteKind = "departsAs"
	NoteKindDetachingWagons   NoteKind = "detachingWagons"
	NoteKindReceivingWagons   NoteKind = "receivingWagons"
)

type TrainScrapeResult struct {
	Rank   string `json:"rank" bson:"rank"`
	Number string `json:"number" bson:"number"`
	// Date in the DD.MM.YYYY format, taken as-is from the result page.
	Date     string       `json:"date" bson:"date"`
	Operator string       `json:"operator" bson:"operator"`
	Groups   []TrainGroup `json:"groups" bson:"groups"`
}

type TrainGroup struct {
	Route    TrainRoute             `json:"route" bson:"route"`
	Status   *TrainStatus           `json:"status,omitempty" bson:"status,omitempty"`
	Stations []TrainStopDescription `json:"stations" bson:"stations"`
}

type TrainRoute struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

type TrainStatus struct {
	Delay   int        `json:"delay" bson:"delay"`
	Station string     `json:"station" bson:"station"`
	State   StatusKind `json:"state" bson:"state"`
}

type TrainStopDescription struct {
	Name string `json:"name" bson:"name"`
	// LinkName is the station slug from the stop's link, usable in a
	// station scrape URL.
	LinkName string `json:"linkName" bson:"linkName"`
	Km       int    `json:"km" bson:"km"`
	// StoppingTime is how long the train waits in the station, in seconds.
	StoppingTime *int             `json:"stoppingTime,omitempty" bson:"stoppingTime,omitempty"`
	Platform     string           `json:"platform,omitempty" bson:"platform,omitempty"`
	Arrival      *TrainStopArrDep `json:"arrival,omitempty" bson:"arrival,omitempty"`
	Departure    *TrainStopArrDep `json:"departure,omitempty" bson:"departure,omitempty"`
	Notes        []TrainStopNote  `json:"notes" bson:"notes"`
}

type TrainStopArrDep struct {
	ScheduleTime time.Time `json:"scheduleTime" bson:"scheduleTime"`
	Status       *Status   `json:"status,omitempty" bson:"status,omitempty"`
}

// Status is a live delay reading. Real reports whether the value came from
// the train itself rather than an estimate.
type Status struct {
	Delay     int  `json:"delay" bson:"delay"`
	Real      bool `json:"real" bson:"real"`
	Cancelled bool `json:"cancelled,omitempty" bson:"cancelled,omitempty"`
}

// TrainStopNote is a tagged union; Kind decides which of the optional
// fields are meaningful.
type TrainStopNote struct {
	Kind   NoteKind `json:"kind" bson:"kind"`
	Rank   string   `json:"rank,omitempty" bson:"rank,omitempty"`
	Number string   `json:"number,omitempty" bson:"number,omitempty"`
	// DepartureDate is set for departsAs notes.
	DepartureDate *time.Time `json:"departureDate,omitempty" bson:"departureDate,omitempty"`
	// Station is set for detachingWagons and receivingWagons notes.
	Station string `json:"station,omitempty" bson:"station,omitempty"`
}
