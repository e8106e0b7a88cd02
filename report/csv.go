// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

// Package report renders tally results for download.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/maliknivodhit/digital-ballot-college/models"
)

var columns = []string{"Rank", "Candidate Name", "Department", "Affiliation", "Position", "Votes", "Percentage", "Status"}

// WriteCSV writes a report header followed by one row per tally entry, in
// the result's order. departments maps candidate id to department and may
// be nil.
func WriteCSV(w io.Writer, result models.TallyResult, departments map[string]string) error {
	cw := csv.NewWriter(w)

	title := result.Title
	if title == "" {
		title = "Unknown"
	}

	header := [][]string{
		{"Election Results Report"},
		{"Election:", title},
		{"Total Ballots:", humanize.Comma(int64(result.TotalBallots))},
		{"Generated:", result.ComputedAt.UTC().Format(time.RFC3339)},
		{""},
		columns,
	}
	if err := cw.WriteAll(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, e := range result.Entries {
		status := ""
		if e.Withdrawn {
			status = "Withdrawn"
		}
		row := []string{
			strconv.Itoa(e.Rank),
			e.CandidateName,
			departments[e.CandidateID],
			e.Affiliation,
			e.Position,
			strconv.Itoa(e.VoteCount),
			strconv.FormatFloat(e.Percentage, 'f', 2, 64) + "%",
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Filename returns the download name for an election's report.
func Filename(title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "results"
	}
	return "election-results-" + slug + ".csv"
}
