package handling

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseBookListOptions parses the catalog filters. genre_id and author_id accept
// comma separated lists and repeated parameters; the date bounds must come together.
func ParseBookListOptions(r *http.Request) (*structs.BookListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &structs.BookListOptions{}, nil
	}

	opts := &structs.BookListOptions{}
	var err error

	if opts.GenreIDs, err = parseIDList(query["genre_id"], "genre_id"); err != nil {
		return nil, err
	}
	if opts.AuthorIDs, err = parseIDList(query["author_id"], "author_id"); err != nil {
		return nil, err
	}

	start, end := strings.TrimSpace(query.Get("start_date")), strings.TrimSpace(query.Get("end_date"))
	if (start == "") != (end == "") {
		return nil, lib.NewValidationError("date", "start_date and end_date must be provided together")
	}
	if start != "" {
		if opts.StartDate, err = parseDate(start, "start_date"); err != nil {
			return nil, err
		}
		if opts.EndDate, err = parseDate(end, "end_date"); err != nil {
			return nil, err
		}
	}

	return opts, nil
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, lib.NewValidationError(field, "must be a positive integer")
	}
	return id, nil
}

func parseIDList(values []string, field string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, part := range splitAndTrim(v) {
			if part == "" {
				continue
			}
			id, err := ParseIDParam(part, field)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(structs.DateLayout, value)
	if err != nil {
		return time.Time{}, lib.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
