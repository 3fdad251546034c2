package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"smdb/movie"
)

const noGenres = "(no genres listed)"

// titleYear matches MovieLens titles such as "Heat (1995)".
var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)$`)

type importStats struct {
	Imported int
	Skipped  int
}

// importMovies creates one movie per csv row through svc. Rows the service
// rejects are counted as skipped; infrastructure errors stop the import.
func importMovies(ctx context.Context, svc movie.Service, r io.Reader, limit int) (importStats, error) {
	var stats importStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return stats, err
	}

	for limit <= 0 || stats.Imported < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		m, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			stats.Skipped++
			continue
		}

		res, err := svc.CreateMovie(ctx, m)
		if err != nil {
			return stats, err
		}
		if failure, failed := res.Failure(); failed {
			slog.Debug("skipping movie", "title", m.Title, "reason", failure.Message)
			stats.Skipped++
			continue
		}
		stats.Imported++
	}

	return stats, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 {
		return 0, 0, errors.New("missing title column in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (*movie.Movie, bool) {
	if idxTitle >= len(record) {
		return nil, false
	}

	title, year, ok := splitTitleYear(record[idxTitle])
	if !ok {
		return nil, false
	}

	m := &movie.Movie{Title: title, Year: year}
	if idxGenres >= 0 && idxGenres < len(record) {
		m.Description = describeGenres(record[idxGenres])
	}
	return m, true
}

// splitTitleYear splits "Heat (1995)" into its title and release year.
func splitTitleYear(raw string) (string, int, bool) {
	match := titleYear.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", 0, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return match[1], year, true
}

func describeGenres(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return ""
	}
	return strings.Join(strings.Split(raw, "|"), ", ")
}
