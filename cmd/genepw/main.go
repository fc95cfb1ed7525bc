// Command genepw generates a synthetic EnergyPlus weather (EPW) file with a
// sinusoidal annual and diurnal temperature profile. The output parses with
// the same EPW reader the pipeline uses, which makes it suitable as a test
// fixture or for exercising a full batch run without real weather data.
//
// Usage:
//
//	go run ./cmd/genepw \
//	  -out data/weather/synthetic.epw \
//	  -city Calgary -state-prov AB -mean 4.5 -annual-swing 14 -diurnal-swing 5
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"
)

const hoursPerYear = 8760

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated .epw file")
	city := flag.String("city", "Synthville", "site city name")
	stateProv := flag.String("state-prov", "AB", "site state or province code")
	country := flag.String("country", "CAN", "site country code")
	wmo := flag.String("wmo", "999999", "WMO station code")
	lat := flag.Float64("lat", 51.11, "site latitude")
	lon := flag.Float64("lon", -114.02, "site longitude")
	tz := flag.Float64("tz", -7.0, "timezone offset in hours")
	elevation := flag.Float64("elevation", 1084.0, "site elevation in metres")
	year := flag.Int("year", 2019, "calendar year for the data rows (non-leap)")
	mean := flag.Float64("mean", 4.5, "annual mean dry-bulb temperature")
	annualSwing := flag.Float64("annual-swing", 14.0, "seasonal temperature amplitude")
	diurnalSwing := flag.Float64("diurnal-swing", 5.0, "day/night temperature amplitude")
	missingEvery := flag.Int("missing-every", 0, "write the missing sentinel every Nth hour (0 disables)")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	writeHeader(&b, *city, *stateProv, *country, *wmo, *lat, *lon, *tz, *elevation)
	writeRows(&b, *year, *mean, *annualSwing, *diurnalSwing, *missingEvery)

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Printf("wrote %d hourly rows: %s", hoursPerYear, *out)
	return nil
}

func writeHeader(b *strings.Builder, city, stateProv, country, wmo string, lat, lon, tz, elevation float64) {
	fmt.Fprintf(b, "LOCATION,%s,%s,%s,Synthetic,%s,%.2f,%.2f,%.1f,%.1f\n",
		city, stateProv, country, wmo, lat, lon, tz, elevation)
	b.WriteString("DESIGN CONDITIONS,0\n")
	b.WriteString("TYPICAL/EXTREME PERIODS,0\n")
	b.WriteString("GROUND TEMPERATURES,0\n")
	b.WriteString("HOLIDAYS/DAYLIGHT SAVINGS,No,0,0,0\n")
	b.WriteString("COMMENTS 1,generated by genepw\n")
	b.WriteString("COMMENTS 2,\n")
	b.WriteString("DATA PERIODS,1,1,Data,Sunday, 1/ 1,12/31\n")
}

func writeRows(b *strings.Builder, year int, mean, annualSwing, diurnalSwing float64, missingEvery int) {
	ts := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < hoursPerYear; i++ {
		temp := temperature(i, mean, annualSwing, diurnalSwing)
		if missingEvery > 0 && i > 0 && i%missingEvery == 0 {
			temp = 99.9 // EPW missing sentinel
		}
		// EPW counts hours 1-24.
		fmt.Fprintf(b, "%d,%d,%d,%d,60,_,%.1f\n",
			year, int(ts.Month()), ts.Day(), ts.Hour()+1, temp)
		ts = ts.Add(time.Hour)
	}
}

// temperature models a cold-climate profile: coldest in mid-January,
// warmest mid-afternoon.
func temperature(hourOfYear int, mean, annualSwing, diurnalSwing float64) float64 {
	dayOfYear := float64(hourOfYear) / 24.0
	hourOfDay := float64(hourOfYear % 24)

	annual := -annualSwing * math.Cos(2*math.Pi*(dayOfYear-15)/365.0)
	diurnal := -diurnalSwing * math.Cos(2*math.Pi*(hourOfDay-15)/24.0)

	return math.Round((mean+annual+diurnal)*10) / 10
}
