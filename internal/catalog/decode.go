package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"foodpedia/internal/model"
)

// ctxCheckInterval is how many lines are decoded between cancellation checks.
const ctxCheckInterval = 1000

// decode reads gzipped JSON lines from r. Blank lines are skipped. Any cached
// rating summary in the file is discarded.
func decode(ctx context.Context, r io.Reader, source string) ([]model.Restaurant, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	restaurants := []model.Restaurant{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rs model.Restaurant
		if err := json.Unmarshal([]byte(line), &rs); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid restaurant record: %w", source, lineNo, err)
		}

		rs.ID = strings.TrimSpace(rs.ID)
		rs.Name = strings.TrimSpace(rs.Name)
		if rs.ID == "" || rs.Name == "" {
			return nil, fmt.Errorf("%s:%d: restaurant record requires id and name", source, lineNo)
		}

		rs.Tags = cleanTags(rs.Tags)
		rs.RatingSummary = model.RatingSummary{Breakdown: model.NewBreakdown()}
		restaurants = append(restaurants, rs)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}

	return restaurants, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
