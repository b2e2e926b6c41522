package model

import "time"

type StationScrapeResult struct {
	StationName string `json:"stationName" bson:"stationName"`
	// Date in the DD.MM.YYYY format, taken as-is from the result page.
	Date       string          `json:"date" bson:"date"`
	Arrivals   []StationArrDep `json:"arrivals,omitempty" bson:"arrivals,omitempty"`
	Departures []StationArrDep `json:"departures,omitempty" bson:"departures,omitempty"`
}

type StationArrDep struct {
	// StoppingTime is in seconds; nil when the site reports it as unknown.
	StoppingTime *int          `json:"stoppingTime,omitempty" bson:"stoppingTime,omitempty"`
	Time         time.Time     `json:"time" bson:"time"`
	Train        StationTrain  `json:"train" bson:"train"`
	Status       StationStatus `json:"status" bson:"status"`
}

type StationTrain struct {
	Rank     string   `json:"rank" bson:"rank"`
	Number   string   `json:"number" bson:"number"`
	Operator string   `json:"operator" bson:"operator"`
	Route    []string `json:"route" bson:"route"`
	// Terminus is the departure station for arrivals and the destination
	// station for departures.
	Terminus      string    `json:"terminus" bson:"terminus"`
	DepartureDate time.Time `json:"departureDate" bson:"departureDate"`
}

type StationStatus struct {
	Delay     int    `json:"delay" bson:"delay"`
	Real      bool   `json:"real" bson:"real"`
	Cancelled bool   `json:"cancelled,omitempty" bson:"cancelled,omitempty"`
	Platform  string `json:"platform,omitempty" bson:"platform,omitempty"`
}
