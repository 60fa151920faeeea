package feed

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoFeeds is returned when the subscription list holds no URLs.
var ErrNoFeeds = errors.New("no feeds configured")

// ReadList reads one feed URL per line. Blank lines and lines starting with
// '#' are skipped.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed list: %w", err)
	}
	defer f.Close()

	urls := make([]string, 0, 16)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feed list: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFeeds)
	}
	return urls, nil
}
