package scraper

import (
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
)

// ScrapeItineraries fetches the candidate multi-leg itineraries between two
// stations. Returns nil (and no error) when the source offers no results
// region for the pair.
func (s *Scraper) ScrapeItineraries(from, to string, date *time.Time) ([]model.Itinerary, error) {
	query := url.Values{}
	if date != nil {
		query.Set("DepartureDate", s.formatQueryDate(*date))
	}
	// Fixed search knobs mirroring the site's defaults: order by departure,
	// whole day, direct and connecting trains, at least 5 minutes between
	// legs.
	query.Set("OrderingTypeId", "0")
	query.Set("TimeSelectionId", "0")
	query.Set("MinutesInDay", "0")
	query.Set("ConnectionsTypeId", "1")
	query.Set("BetweenTrainsMinimumMinutes", "5")
	query.Set("ChangeStationName", "")

	document, err := s.fetchResultDocument([]string{"Rute-trenuri", from, to}, query, "Itineraries", "GetItineraries")
	if err != nil {
		return nil, err
	}

	return parseItinerariesDocument(document, time.Now().In(s.loc), s.loc)
}

// parseItinerariesDocument walks body>ul>li, one li per candidate
// itinerary. now anchors the year inference for the Ple/Sos fragments.
func parseItinerariesDocument(document *goquery.Document, now time.Time, loc *time.Location) ([]model.Itinerary, error) {
	bodyDivs := document.Find("body").ChildrenFiltered("div")
	if bodyDivs.Length() == 0 {
		return nil, nil
	}

	itineraries := []model.Itinerary{}
	var parseErr error
	document.Find("body").ChildrenFiltered("ul").ChildrenFiltered("li").EachWithBreak(func(_ int, itineraryLi *goquery.Selection) bool {
		itinerary, err := parseItinerary(itineraryLi, now, loc)
		if err != nil {
			parseErr = err
			return false
		}
		itineraries = append(itineraries, *itinerary)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return itineraries, nil
}

// parseItinerary reads one itinerary card. Its leg list alternates station
// markers (even positions) with leg detail blocks (odd positions);
// consecutive markers pairwise-zipped give each leg its from/to.
func parseItinerary(itineraryLi *goquery.Selection, now time.Time, loc *time.Location) (*model.Itinerary, error) {
	cardDivs := childDivs(childDivs(childDivs(childDivs(itineraryLi))))
	detailsDivs := childDivs(childDivs(childDivs(cardDivs.Eq(3))).Eq(1))
	legList := detailsDivs.Eq(0).ChildrenFiltered("ul").ChildrenFiltered("li")

	var stationNames []string
	var legs []model.ItineraryTrain
	var parseErr error
	legList.EachWithBreak(func(index int, legLi *goquery.Selection) bool {
		if index%2 == 0 {
			stationNames = append(stationNames,
				collapsedText(childDivs(childDivs(childDivs(childDivs(legLi)))).Eq(1)))
			return true
		}

		leg, err := parseItineraryLeg(legLi, now, loc)
		if err != nil {
			parseErr = err
			return false
		}
		legs = append(legs, *leg)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	itinerary := &model.Itinerary{Trains: []model.ItineraryTrain{}}
	for index := range legs {
		if index+1 >= len(stationNames) {
			break
		}
		legs[index].From = stationNames[index]
		legs[index].To = stationNames[index+1]
		itinerary.Trains = append(itinerary.Trains, legs[index])
	}

	return itinerary, nil
}

func parseItineraryLeg(legLi *goquery.Selection, now time.Time, loc *time.Location) (*model.ItineraryTrain, error) {
	detailColumns := childDivs(childDivs(legLi))
	leftSideDivs := childDivs(detailColumns.Eq(0))

	departureDate, err := parseDepArr(collapsedText(childDivs(leftSideDivs.Eq(0)).Eq(1)), now, loc)
	if err != nil {
		return nil, err
	}
	arrivalDate, err := parseDepArr(collapsedText(childDivs(leftSideDivs.Eq(3)).Eq(1)), now, loc)
	if err != nil {
		return nil, err
	}

	rightSideDivs := childDivs(childDivs(detailColumns.Eq(1)))
	km, rank, number, err := parseKmRankNumber(
		collapsedText(childDivs(childDivs(rightSideDivs.Eq(0))).Eq(0)))
	if err != nil {
		return nil, err
	}
	// Operator is decoration here; a mismatch leaves it empty.
	operator, _ := parseOperator(collapsedText(childDivs(childDivs(rightSideDivs.Eq(0))).Eq(1)))

	leg := &model.ItineraryTrain{
		IntermediateStops: []string{},
		DepartureDate:     departureDate,
		ArrivalDate:       arrivalDate,
		Km:                km,
		Operator:          operator,
		TrainRank:         rank,
		TrainNumber:       number,
	}

	// Intermediate stops sit at the odd positions of the middle column,
	// interleaved with per-stop detail rows.
	childDivs(leftSideDivs.Eq(2)).Each(func(index int, stopDiv *goquery.Selection) {
		if index%2 != 0 {
			leg.IntermediateStops = append(leg.IntermediateStops, collapsedText(stopDiv))
		}
	})

	return leg, nil
}
