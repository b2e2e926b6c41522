// Package registry keeps durable listings of every train and station ever
// observed by a scrape. All writes are idempotent, so concurrent scrapes
// reporting the same entities converge on a single listing each.
package registry

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/exp/slices"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/database"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
)

// collection is the slice of *mongo.Collection the write paths go
// through; tests substitute an in-memory implementation.
type collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

var getCollection = func(name string) collection {
	return database.GetCollection(name)
}

type TrainListing struct {
	ID   primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Rank string             `json:"rank" bson:"rank"`
	// Number is canonical: the purely numeric prefix of the scraped number.
	Number  string `json:"number" bson:"number"`
	Company string `json:"company" bson:"company"`
}

type StationListing struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	StoppedAtBy []string           `json:"stoppedAtBy" bson:"stoppedAtBy"`
}

// maxConcurrentWrites caps in-flight listing updates so one big scrape
// cannot exhaust the store's connection pool.
const maxConcurrentWrites = 4

// Per-kind locks around the check-then-insert sequences. Updates to an
// existing listing go through atomic operators and need no lock.
var trainsMutex sync.Mutex
var stationsMutex sync.Mutex

// CanonicalTrainNumber strips everything from the first non-digit on:
// "1581X" and "1581" are the same train.
func CanonicalTrainNumber(number string) string {
	for i, r := range number {
		if r < '0' || r > '9' {
			return number[:i]
		}
	}
	return number
}

// FoundTrain records that a train exists, inserting a listing on first
// sight. Returns the canonical number either way.
func FoundTrain(rank, number, company string) (string, error) {
	canonical := CanonicalTrainNumber(number)

	trainsMutex.Lock()
	defer trainsMutex.Unlock()

	trainsCollection := getCollection("trainListings")

	err := trainsCollection.FindOne(context.Background(), bson.M{"number": canonical}).Err()
	if err == mongo.ErrNoDocuments {
		_, err = trainsCollection.InsertOne(context.Background(), TrainListing{
			Rank:    rank,
			Number:  canonical,
			Company: company,
		})
	}
	if err != nil {
		return canonical, err
	}

	return canonical, nil
}

// FoundStation records that a station exists, inserting a listing with an
// empty stopped-at set on first sight.
func FoundStation(name string) error {
	stationsMutex.Lock()
	defer stationsMutex.Unlock()

	stationsCollection := getCollection("stationListings")

	err := stationsCollection.FindOne(context.Background(), bson.M{"name": name}).Err()
	if err == mongo.ErrNoDocuments {
		_, err = stationsCollection.InsertOne(context.Background(), StationListing{
			Name:        name,
			StoppedAtBy: []string{},
		})
	}

	return err
}

// FoundTrainAtStation adds the train to the station's stopped-at set. The
// update is an atomic add-to-set, a no-op when already present.
func FoundTrainAtStation(stationName, trainNumber string) error {
	if err := FoundStation(stationName); err != nil {
		return err
	}

	canonical := CanonicalTrainNumber(trainNumber)
	stationsCollection := getCollection("stationListings")

	_, err := stationsCollection.UpdateOne(context.Background(),
		bson.M{"name": stationName},
		bson.M{"$addToSet": bson.M{"stoppedAtBy": canonical}})

	return err
}

// FoundTrainAtStations applies FoundTrainAtStation to every named station,
// a bounded number at a time.
func FoundTrainAtStations(stationNames []string, trainNumber string) error {
	writers := pool.New().WithErrors().WithMaxGoroutines(maxConcurrentWrites)
	for _, stationName := range stationNames {
		stationName := stationName
		writers.Go(func() error {
			return FoundTrainAtStation(stationName, trainNumber)
		})
	}
	return writers.Wait()
}

// OnTrainData reports everything a train scrape reveals: the train itself
// and each station it stops at.
func OnTrainData(result *model.TrainScrapeResult) error {
	canonical, err := FoundTrain(result.Rank, result.Number, result.Operator)
	if err != nil {
		return err
	}

	return FoundTrainAtStations(trainStations(result), canonical)
}

// OnStationData reports the station and every train on its boards.
func OnStationData(result *model.StationScrapeResult) error {
	if err := FoundStation(result.StationName); err != nil {
		return err
	}

	writers := pool.New().WithErrors().WithMaxGoroutines(maxConcurrentWrites)
	for _, entry := range append(append([]model.StationArrDep{}, result.Arrivals...), result.Departures...) {
		train := entry.Train
		writers.Go(func() error {
			canonical, err := FoundTrain(train.Rank, train.Number, train.Operator)
			if err != nil {
				return err
			}
			return FoundTrainAtStation(result.StationName, canonical)
		})
	}
	return writers.Wait()
}

// OnItineraries reports each leg's train and the stations along it.
func OnItineraries(itineraries []model.Itinerary) error {
	for _, itinerary := range itineraries {
		for _, leg := range itinerary.Trains {
			canonical, err := FoundTrain(leg.TrainRank, leg.TrainNumber, leg.Operator)
			if err != nil {
				return err
			}
			if err := FoundTrainAtStations(legStations(leg), canonical); err != nil {
				return err
			}
		}
	}
	return nil
}

// trainStations lists every station name in the scrape, deduplicated,
// preserving first-seen order.
func trainStations(result *model.TrainScrapeResult) []string {
	var names []string
	for _, group := range result.Groups {
		for _, stop := range group.Stations {
			if !slices.Contains(names, stop.Name) {
				names = append(names, stop.Name)
			}
		}
	}
	return names
}

func legStations(leg model.ItineraryTrain) []string {
	names := []string{leg.From}
	names = append(names, leg.IntermediateStops...)
	names = append(names, leg.To)
	return names
}
