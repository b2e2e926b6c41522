package registry

import (
	"context"
	"sort"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/database"
)

// ListTrains returns every train listing, ordered by numeric train number.
func ListTrains() ([]TrainListing, error) {
	cursor, err := database.GetCollection("trainListings").Find(context.Background(), bson.D{})
	if err != nil {
		return nil, err
	}

	trains := []TrainListing{}
	if err := cursor.All(context.Background(), &trains); err != nil {
		return nil, err
	}

	sort.Slice(trains, func(i, j int) bool {
		a, _ := strconv.Atoi(trains[i].Number)
		b, _ := strconv.Atoi(trains[j].Number)
		return a < b
	})

	return trains, nil
}

// ListStations returns every station listing, most-stopped-at first.
func ListStations() ([]StationListing, error) {
	cursor, err := database.GetCollection("stationListings").Find(context.Background(), bson.D{})
	if err != nil {
		return nil, err
	}

	stations := []StationListing{}
	if err := cursor.All(context.Background(), &stations); err != nil {
		return nil, err
	}

	sort.Slice(stations, func(i, j int) bool {
		return len(stations[i].StoppedAtBy) > len(stations[j].StoppedAtBy)
	})

	return stations, nil
}
