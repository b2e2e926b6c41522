// Package datamanager fronts the scrapers with short-lived caches and
// reports everything successfully scraped to the registry.
package datamanager

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/cache"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/registry"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/util"
)

// TTLs are short because delay information is live.
const trainTTL = 30 * time.Second
const stationTTL = 60 * time.Second
const itinerariesTTL = 60 * time.Second

// Cache keys carry the entity identity plus the calendar day of the
// request in the source timezone, so "today" requests made across
// midnight do not alias.
type trainKey struct {
	number string
	day    time.Time
}

type stationKey struct {
	name string
	day  time.Time
}

type itineraryKey struct {
	from string
	to   string
	day  time.Time
}

type DataManager struct {
	loc         *time.Location
	trains      *cache.Cache[trainKey, *model.TrainScrapeResult]
	stations    *cache.Cache[stationKey, *model.StationScrapeResult]
	itineraries *cache.Cache[itineraryKey, []model.Itinerary]
}

func New() (*DataManager, error) {
	// One scraper per entity kind: concurrent requests of the same kind
	// share one client and cookie jar.
	trainScraper, err := scraper.New()
	if err != nil {
		return nil, err
	}
	stationScraper, err := scraper.New()
	if err != nil {
		return nil, err
	}
	itineraryScraper, err := scraper.New()
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		return nil, err
	}

	manager := &DataManager{loc: loc}

	manager.trains = cache.New(trainTTL, func(key trainKey) (*model.TrainScrapeResult, error) {
		result, err := trainScraper.ScrapeTrain(key.number, &key.day)
		if err != nil {
			return nil, err
		}
		if result != nil {
			go reportTrain(result)
		}
		return result, nil
	})

	manager.stations = cache.New(stationTTL, func(key stationKey) (*model.StationScrapeResult, error) {
		result, err := stationScraper.ScrapeStation(key.name, &key.day)
		if err != nil {
			return nil, err
		}
		if result != nil {
			go reportStation(result)
		}
		return result, nil
	})

	manager.itineraries = cache.New(itinerariesTTL, func(key itineraryKey) ([]model.Itinerary, error) {
		result, err := itineraryScraper.ScrapeItineraries(key.from, key.to, &key.day)
		if err != nil {
			return nil, err
		}
		if result != nil {
			go reportItineraries(result)
		}
		return result, nil
	})

	return manager, nil
}

// FetchTrain returns the train's scrape result, nil when the train is
// unknown, or scraper.ErrTrainNotThisDay when it has no run that day.
// A nil date means today.
func (m *DataManager) FetchTrain(trainNumber string, date *time.Time) (*model.TrainScrapeResult, error) {
	return m.trains.Get(trainKey{
		number: strings.TrimSpace(trainNumber),
		day:    m.dayOf(date),
	})
}

// FetchStation returns the station's boards, or nil when the station is
// unknown. A nil date means today.
func (m *DataManager) FetchStation(stationName string, date *time.Time) (*model.StationScrapeResult, error) {
	return m.stations.Get(stationKey{
		name: normalizeStationName(stationName),
		day:  m.dayOf(date),
	})
}

// FetchItineraries returns the candidate itineraries between two stations,
// or nil when the source offers none. A nil date means today.
func (m *DataManager) FetchItineraries(from, to string, date *time.Time) ([]model.Itinerary, error) {
	return m.itineraries.Get(itineraryKey{
		from: normalizeStationName(from),
		to:   normalizeStationName(to),
		day:  m.dayOf(date),
	})
}

// dayOf truncates the requested date (or now) to its calendar day in the
// source timezone.
func (m *DataManager) dayOf(date *time.Time) time.Time {
	moment := time.Now()
	if date != nil {
		moment = *date
	}
	moment = moment.In(m.loc)
	return time.Date(moment.Year(), moment.Month(), moment.Day(), 0, 0, 0, 0, m.loc)
}

// normalizeStationName makes cache keys insensitive to diacritics and
// case, so "Ploiești Sud" and "ploiesti sud" share an entry.
func normalizeStationName(name string) string {
	return strings.ToLower(util.CollapseSpaces(util.FoldDiacritics(name)))
}

// Registry reports run detached: a slow or failing listing write must not
// delay the caller holding fresh scrape data.

func reportTrain(result *model.TrainScrapeResult) {
	start := time.Now()
	if err := registry.OnTrainData(result); err != nil {
		log.Error().Err(err).Str("train", result.Number).Msg("Reporting train to registry")
		return
	}
	log.Debug().Str("train", result.Number).Dur("duration", time.Since(start)).Msg("Reported train to registry")
}

func reportStation(result *model.StationScrapeResult) {
	start := time.Now()
	if err := registry.OnStationData(result); err != nil {
		log.Error().Err(err).Str("station", result.StationName).Msg("Reporting station to registry")
		return
	}
	log.Debug().Str("station", result.StationName).Dur("duration", time.Since(start)).Msg("Reported station to registry")
}

func reportItineraries(itineraries []model.Itinerary) {
	start := time.Now()
	if err := registry.OnItineraries(itineraries); err != nil {
		log.Error().Err(err).Msg("Reporting itineraries to registry")
		return
	}
	log.Debug().Int("itineraries", len(itineraries)).Dur("duration", time.Since(start)).Msg("Reported itineraries to registry")
}
