package registry

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
)

// memoryStore holds listings for the in-memory collections that stand in
// for Mongo in tests.
type memoryStore struct {
	mutex    sync.Mutex
	trains   []TrainListing
	stations []StationListing
}

type memoryCollection struct {
	store *memoryStore
	name  string
}

func (c *memoryCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	c.store.mutex.Lock()
	defer c.store.mutex.Unlock()

	query := filter.(bson.M)
	switch c.name {
	case "trainListings":
		for _, listing := range c.store.trains {
			if listing.Number == query["number"] {
				return mongo.NewSingleResultFromDocument(listing, nil, nil)
			}
		}
	case "stationListings":
		for _, listing := range c.store.stations {
			if listing.Name == query["name"] {
				return mongo.NewSingleResultFromDocument(listing, nil, nil)
			}
		}
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (c *memoryCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	c.store.mutex.Lock()
	defer c.store.mutex.Unlock()

	switch listing := document.(type) {
	case TrainListing:
		c.store.trains = append(c.store.trains, listing)
	case StationListing:
		c.store.stations = append(c.store.stations, listing)
	}
	return &mongo.InsertOneResult{}, nil
}

func (c *memoryCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	c.store.mutex.Lock()
	defer c.store.mutex.Unlock()

	name := filter.(bson.M)["name"].(string)
	number := update.(bson.M)["$addToSet"].(bson.M)["stoppedAtBy"].(string)
	for i := range c.store.stations {
		if c.store.stations[i].Name != name {
			continue
		}
		for _, existing := range c.store.stations[i].StoppedAtBy {
			if existing == number {
				return &mongo.UpdateResult{MatchedCount: 1}, nil
			}
		}
		c.store.stations[i].StoppedAtBy = append(c.store.stations[i].StoppedAtBy, number)
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &mongo.UpdateResult{}, nil
}

func useMemoryStore(t *testing.T) *memoryStore {
	t.Helper()

	store := &memoryStore{}
	previous := getCollection
	getCollection = func(name string) collection {
		return &memoryCollection{store: store, name: name}
	}
	t.Cleanup(func() { getCollection = previous })

	return store
}

func TestCanonicalTrainNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1581", "1581"},
		{"1581X", "1581"},
		{"1581-2", "1581"},
		{"96A", "96"},
		{"", ""},
		{"X", ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := CanonicalTrainNumber(test.input); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestFoundTrainInsertsOnce(t *testing.T) {
	store := useMemoryStore(t)

	for i := 0; i < 2; i++ {
		canonical, err := FoundTrain("IR", "1581X", "CFR Călători")
		if err != nil {
			t.Fatalf("FoundTrain: %v", err)
		}
		if canonical != "1581" {
			t.Errorf("got canonical %q, want %q", canonical, "1581")
		}
	}

	if len(store.trains) != 1 {
		t.Fatalf("got %d train listings, want 1", len(store.trains))
	}
	if store.trains[0].Number != "1581" {
		t.Errorf("got listing number %q, want %q", store.trains[0].Number, "1581")
	}
}

func TestFoundStationInsertsOnce(t *testing.T) {
	store := useMemoryStore(t)

	for i := 0; i < 2; i++ {
		if err := FoundStation("București Nord"); err != nil {
			t.Fatalf("FoundStation: %v", err)
		}
	}

	if len(store.stations) != 1 {
		t.Fatalf("got %d station listings, want 1", len(store.stations))
	}
	if got := store.stations[0].StoppedAtBy; len(got) != 0 {
		t.Errorf("new listing has stoppedAtBy %v, want empty", got)
	}
}

func TestFoundTrainAtStationsRerunLeavesSetsUnchanged(t *testing.T) {
	store := useMemoryStore(t)

	stations := []string{"București Nord", "Ploiești Sud"}
	for i := 0; i < 2; i++ {
		if err := FoundTrainAtStations(stations, "1581X"); err != nil {
			t.Fatalf("FoundTrainAtStations: %v", err)
		}
	}

	if len(store.stations) != 2 {
		t.Fatalf("got %d station listings, want 2", len(store.stations))
	}
	for _, listing := range store.stations {
		if !reflect.DeepEqual(listing.StoppedAtBy, []string{"1581"}) {
			t.Errorf("station %q has stoppedAtBy %v, want [1581]", listing.Name, listing.StoppedAtBy)
		}
	}
}

func TestTrainStations(t *testing.T) {
	result := &model.TrainScrapeResult{
		Groups: []model.TrainGroup{
			{Stations: []model.TrainStopDescription{
				{Name: "București Nord"},
				{Name: "Ploiești Sud"},
			}},
			// A second group may revisit the shared boundary station.
			{Stations: []model.TrainStopDescription{
				{Name: "Ploiești Sud"},
				{Name: "Constanța"},
			}},
		},
	}

	got := trainStations(result)
	want := []string{"București Nord", "Ploiești Sud", "Constanța"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLegStations(t *testing.T) {
	leg := model.ItineraryTrain{
		From:              "București Nord",
		To:                "Brașov",
		IntermediateStops: []string{"Ploiești Vest", "Predeal"},
	}

	got := legStations(leg)
	want := []string{"București Nord", "Ploiești Vest", "Predeal", "Brașov"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
