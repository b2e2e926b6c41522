package scraper

import (
	"testing"
	"time"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
)

func TestParseTrainInfo(t *testing.T) {
	rank, number, date, err := parseTrainInfo("IR 1581 în 01.03.2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rank != "IR" || number != "1581" || date != "01.03.2024" {
		t.Errorf("got %q %q %q", rank, number, date)
	}

	if _, _, _, err := parseTrainInfo("garbage"); err == nil {
		t.Error("expected hard failure on malformed train info")
	}
}

func TestParseOperator(t *testing.T) {
	operator, err := parseOperator("Operat de CFR Călători")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operator != "CFR Călători" {
		t.Errorf("got %q", operator)
	}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		from  string
		to    string
	}{
		{"hyphen", "Parcurs tren București Nord-Brașov", "București Nord", "Brașov"},
		{"en dash", "Parcurs tren București Nord–Brașov", "București Nord", "Brașov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := parseRoute(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if route.From != tt.from || route.To != tt.to {
				t.Errorf("got %q -> %q, want %q -> %q", route.From, route.To, tt.from, tt.to)
			}
		})
	}
}

func TestParseStatusLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		delay   int
		station string
		state   model.StatusKind
	}{
		{
			name:    "delayed arrival",
			input:   "5 min întârziere la sosirea în Ploiești Vest.",
			delay:   5,
			station: "Ploiești Vest",
			state:   model.StatusKindArrival,
		},
		{
			name:    "early departure",
			input:   "2 min mai devreme la plecarea din Sinaia.",
			delay:   -2,
			station: "Sinaia",
			state:   model.StatusKindDeparture,
		},
		{
			name:    "on time passing",
			input:   "Fără întârziere la trecerea fără oprire prin Câmpina.",
			delay:   0,
			station: "Câmpina",
			state:   model.StatusKindPassing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := parseStatusLine(tt.input)
			if status == nil {
				t.Fatal("expected a status")
			}
			if status.Delay != tt.delay || status.Station != tt.station || status.State != tt.state {
				t.Errorf("got %+v", status)
			}
		})
	}

	if status := parseStatusLine("something else entirely"); status != nil {
		t.Errorf("mismatch should be soft, got %+v", status)
	}
}

func TestParseKm(t *testing.T) {
	km, err := parseKm("km 397")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km != 397 {
		t.Errorf("got %d", km)
	}

	if _, err := parseKm("397 km"); err == nil {
		t.Error("expected hard failure on malformed km")
	}
}

func TestParseStoppingTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		seconds int
		absent  bool
	}{
		{"minutes", "2 min oprire", 120, false},
		{"seconds", "30 sec oprire", 30, false},
		{"empty is absent", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseStoppingTime(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.absent {
				if result != nil {
					t.Errorf("expected absent, got %d", *result)
				}
				return
			}
			if result == nil || *result != tt.seconds {
				t.Errorf("got %v, want %d", result, tt.seconds)
			}
		})
	}

	if _, err := parseStoppingTime("nonsense"); err == nil {
		t.Error("expected error on non-empty malformed stopping time")
	}
}

func TestParsePlatform(t *testing.T) {
	if platform := parsePlatform("linia 4"); platform != "4" {
		t.Errorf("got %q", platform)
	}
	if platform := parsePlatform(""); platform != "" {
		t.Errorf("empty input should yield no platform, got %q", platform)
	}
}

func TestParseTrainArrDepStatus(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		delay     int
		real      bool
		cancelled bool
	}{
		{"on time", "la timp", 0, true, false},
		{"on time approximate", "la timp*", 0, false, false},
		{"delayed", "+5 min (întârziere)", 5, true, false},
		{"early", "-2 min (mai devreme)", -2, true, false},
		{"delayed approximate", "+12 min (întârziere)*", 12, false, false},
		{"cancelled", "anulat", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := parseTrainArrDepStatus(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status.Delay != tt.delay || status.Real != tt.real || status.Cancelled != tt.cancelled {
				t.Errorf("got %+v", status)
			}
		})
	}

	if _, err := parseTrainArrDepStatus("???"); err == nil {
		t.Error("expected hard failure on malformed status")
	}
}

func TestParseStopNote(t *testing.T) {
	note := parseStopNote("Trenul își schimbă numărul în IR 1582", time.UTC)
	if note == nil || note.Kind != model.NoteKindTrainNumberChange || note.Rank != "IR" || note.Number != "1582" {
		t.Errorf("got %+v", note)
	}

	note = parseStopNote("Trenul pleacă cu numărul R 3009 în 02.03.2024", time.UTC)
	if note == nil || note.Kind != model.NoteKindDepartsAs {
		t.Fatalf("got %+v", note)
	}
	expected := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	if note.DepartureDate == nil || !note.DepartureDate.Equal(expected) {
		t.Errorf("departure date %v, want %v", note.DepartureDate, expected)
	}

	note = parseStopNote("Trenul detașează vagoane pentru stația Galați.", time.UTC)
	if note == nil || note.Kind != model.NoteKindDetachingWagons || note.Station != "Galați" {
		t.Errorf("got %+v", note)
	}

	note = parseStopNote("Trenul primește vagoane de la Constanța.", time.UTC)
	if note == nil || note.Kind != model.NoteKindReceivingWagons || note.Station != "Constanța" {
		t.Errorf("got %+v", note)
	}

	if note = parseStopNote("some unknown advisory", time.UTC); note != nil {
		t.Errorf("unknown notes should be skipped, got %+v", note)
	}
}

func TestParseStationInfo(t *testing.T) {
	name, date, err := parseStationInfo("Bucuresti Nord în 01.03.2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Bucuresti Nord" || date != "01.03.2024" {
		t.Errorf("got %q %q", name, date)
	}
}

func TestParseStationStoppingTime(t *testing.T) {
	if result := parseStationStoppingTime("2 min (începând cu 08:10)"); result == nil || *result != 120 {
		t.Errorf("got %v", result)
	}
	if result := parseStationStoppingTime("30 sec (până la 08:10)"); result == nil || *result != 30 {
		t.Errorf("got %v", result)
	}
	if result := parseStationStoppingTime("necunoscută (stație terminus)"); result != nil {
		t.Errorf("terminus stopping time should be absent, got %v", result)
	}
	if result := parseStationStoppingTime(""); result != nil {
		t.Errorf("empty stopping time should be absent, got %v", result)
	}
}

func TestParseStationStatus(t *testing.T) {
	var status model.StationStatus
	if err := parseStationStatus("la timp", &status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Delay != 0 || !status.Real || status.Cancelled {
		t.Errorf("got %+v", status)
	}

	status = model.StationStatus{}
	if err := parseStationStatus("+7 min (întârziere)*", &status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Delay != 7 || status.Real {
		t.Errorf("got %+v", status)
	}

	status = model.StationStatus{}
	if err := parseStationStatus("anulat", &status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Cancelled {
		t.Errorf("got %+v", status)
	}

	if err := parseStationStatus("???", &status); err == nil {
		t.Error("expected hard failure on malformed station status")
	}
}

func TestParseDepArr(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, loc)

	result, err := parseDepArr("Ple 14 mar. 08:15", now, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := time.Date(2024, time.March, 14, 8, 15, 0, 0, loc)
	if !result.Equal(expected) {
		t.Errorf("got %v, want %v", result, expected)
	}

	// A date far in the past relative to "now minus one day" is assumed to
	// belong to the next year (the source prints no year).
	now = time.Date(2024, time.December, 30, 12, 0, 0, 0, loc)
	result, err = parseDepArr("Sos 2 ian. 06:40", now, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected = time.Date(2025, time.January, 2, 6, 40, 0, 0, loc)
	if !result.Equal(expected) {
		t.Errorf("got %v, want %v", result, expected)
	}

	// Yesterday stays in the current year.
	now = time.Date(2024, time.March, 10, 12, 0, 0, 0, loc)
	result, err = parseDepArr("Sos 9 mar. 23:50", now, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Year() != 2024 {
		t.Errorf("got %v, want year 2024", result)
	}

	if _, err := parseDepArr("Ple 14 xyz. 08:15", now, loc); err == nil {
		t.Error("expected error for unknown month abbreviation")
	}
}

func TestParseKmRankNumber(t *testing.T) {
	km, rank, number, err := parseKmRankNumber("397 km cu IR 1581")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km != 397 || rank != "IR" || number != "1581" {
		t.Errorf("got %d %q %q", km, rank, number)
	}

	if _, _, _, err := parseKmRankNumber("IR 1581"); err == nil {
		t.Error("expected hard failure on malformed km/rank/number")
	}
}
