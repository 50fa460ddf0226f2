package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/campusmate/search"
)

// ReadQueries reads one query per line. A line may name its table with a
// "schedule:" or "announcements:" prefix; other lines use dataset. Blank
// lines and lines starting with '#' are skipped.
func ReadQueries(r io.Reader, dataset search.Dataset) ([]Query, error) {
	var queries []Query
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q := Query{Dataset: dataset, Text: line}
		if prefix, text, found := strings.Cut(line, ":"); found {
			switch d := search.Dataset(strings.TrimSpace(prefix)); d {
			case search.DatasetSchedule, search.DatasetAnnouncements:
				q = Query{Dataset: d, Text: strings.TrimSpace(text)}
			}
		}
		queries = append(queries, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	return queries, nil
}
