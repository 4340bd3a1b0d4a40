package main

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
)

var settingsPath = filepath.Join(configPath, "settings.csv")

type settings struct {
	BeatsPerBar         int
	ColorBar            uint32
	ColorBg1            uint32
	ColorBg2            uint32
	ColorFg             uint32
	ColorGhost          uint32
	ColorGrid           uint32
	ColorSelect         uint32
	DefaultPatternBeats int
	DefaultSnap         float64
	DefaultZoom         float64
	DoubleClickMs       int
	Font                string
	FontSize            int
	MessageDuration     int
	MoveThresholdPx     int
	ShiftScrollMult     int
	TrackHeight         int
	UndoBufferSize      int
	WindowHeight        int
	WindowWidth         int
}

// built-in defaults, overridden by records from the config file
func defaultSettings() *settings {
	return &settings{
		BeatsPerBar:         4,
		ColorBar:            0x5a5a72ff,
		ColorBg1:            0x1c1c24ff,
		ColorBg2:            0x24242eff,
		ColorFg:             0xd8d8e0ff,
		ColorGhost:          0x3c4a5aff,
		ColorGrid:           0x30303cff,
		ColorSelect:         0xc0a040ff,
		DefaultPatternBeats: 4,
		DefaultSnap:         1,
		DefaultZoom:         40,
		DoubleClickMs:       500,
		Font:                "RobotoMono-Regular.ttf",
		FontSize:            14,
		MessageDuration:     3,
		MoveThresholdPx:     5,
		ShiftScrollMult:     4,
		TrackHeight:         64,
		UndoBufferSize:      100,
		WindowHeight:        720,
		WindowWidth:         1280,
	}
}

// load settings from the config file, falling back to defaults
func loadSettings(warn func(string)) *settings {
	s := defaultSettings()
	if records, err := readCSV(settingsPath); err == nil {
		s.applyRecords(records, warn)
	} else {
		warn(err.Error())
	}
	return s
}

// apply CSV records of the form "FieldName,value"
func (s *settings) applyRecords(records [][]string, warn func(string)) {
	v := reflect.ValueOf(s).Elem()
	for _, rec := range records {
		success := false
		if len(rec) == 2 {
			if field := v.FieldByName(rec[0]); field.IsValid() {
				switch field.Kind() {
				case reflect.Uint32:
					// colors are written as #rrggbbaa
					if len(rec[1]) > 1 {
						if i, err := strconv.ParseUint(rec[1][1:], 16, 32); err == nil {
							field.SetUint(uint64(i))
							success = true
						}
					}
				case reflect.Int:
					if i, err := strconv.Atoi(rec[1]); err == nil {
						field.SetInt(int64(i))
						success = true
					}
				case reflect.Float64:
					if f, err := strconv.ParseFloat(rec[1], 64); err == nil {
						field.SetFloat(f)
						success = true
					}
				case reflect.String:
					field.SetString(rec[1])
					success = true
				}
			}
		}
		if !success {
			warn(fmt.Sprintf("bad settings record: %v", rec))
		}
	}
}
