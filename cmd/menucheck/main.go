// menucheck runs the extraction pipeline once and prints the result, either
// from a saved HTML file or from the live page. Handy for checking whether
// the upstream markup still matches the marker table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/elcappfet/menuapi/internal/fetch"
	"github.com/elcappfet/menuapi/internal/parse"
)

func main() {
	var (
		filePath string
		rawURL   string
	)
	flag.StringVar(&filePath, "file", "", "Parse a saved HTML file instead of fetching")
	flag.StringVar(&rawURL, "url", fetch.DefaultMenuURL, "Menu page URL to fetch")
	flag.Parse()

	var htmlText string
	if filePath != "" {
		b, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read file:", err)
			os.Exit(1)
		}
		htmlText = string(b)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
		defer cancel()
		client := &fetch.Client{}
		body, err := client.Get(ctx, rawURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fetch:", err)
			os.Exit(1)
		}
		htmlText = body
	}

	parser := parse.New(rawURL)
	week, err := parser.ExtractWeek(htmlText)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse:", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(week, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "%d jour(s): %v\n", week.Metadata.TotalJours, week.Metadata.JoursDisponibles)
}
