package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/trend"
)

func main() {
	src := series.DefaultSource()
	if len(os.Args) > 1 {
		seed, err := strconv.ParseUint(os.Args[1], 10, 64)
		if err != nil {
			fmt.Println("Usage: debug [seed]")
			os.Exit(1)
		}
		src = series.NewSeededSource(seed)
	}

	now := time.Now()
	s := series.Generate(now, time.Local, src)

	fmt.Println("Series:")
	fmt.Printf("  %-5s %8s %5s %5s %6s %4s\n", "TIME", "TROP", "GLU", "HBA1C", "CREAT", "ALT")
	for _, r := range s {
		fmt.Printf("  %-5s %8.3f %5d %5.1f %6.2f %4d\n", r.Label, r.Troponin, r.Glucose, r.HbA1c, r.Creatinine, r.ALT)
	}

	next := series.Step(s[len(s)-1], now.Add(3*time.Second), time.Local, src)
	s = s.Slide(next)
	fmt.Println()
	fmt.Printf("After one step: %s\n", next.Label)

	tr, err := trend.Compute(s)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Println("Trends:")
	for _, k := range biomarker.Kinds() {
		ch := tr[k]
		fmt.Printf("  %-10s %s %s\n", k, trend.MapArrow(ch.Direction), trend.FormatDelta(k, ch.Delta))
	}

	fmt.Println()
	fmt.Println("Alerts a tick would raise:")
	msgs := alerts.CriticalMessages(next)
	if len(msgs) == 0 {
		fmt.Println("  (none)")
	}
	for _, m := range msgs {
		fmt.Printf("  %s\n", m)
	}
	fmt.Printf("Recommendation: %s\n", alerts.Recommendation(next))

	data, _ := json.Marshal(s)
	fmt.Printf("\nSeries JSON size: %d bytes\n", len(data))
}
