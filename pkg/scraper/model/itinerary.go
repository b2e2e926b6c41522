package model

import "time"

type Itinerary struct {
	Trains []ItineraryTrain `json:"trains" bson:"trains"`
}

// ItineraryTrain is one leg of an itinerary. Consecutive legs share the
// To/From boundary station.
type ItineraryTrain struct {
	From              string    `json:"from" bson:"from"`
	To                string    `json:"to" bson:"to"`
	IntermediateStops []string  `json:"intermediateStops" bson:"intermediateStops"`
	DepartureDate     time.Time `json:"departureDate" bson:"departureDate"`
	ArrivalDate       time.Time `json:"arrivalDate" bson:"arrivalDate"`
	Km                int       `json:"km" bson:"km"`
	Operator          string    `json:"operator" bson:"operator"`
	TrainRank         string    `json:"trainRank" bson:"trainRank"`
	TrainNumber       string    `json:"trainNumber" bson:"trainNumber"`
}
