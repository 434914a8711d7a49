// internal/music/line.go
package music

import (
	"regexp"
	"strconv"
	"strings"
)

// Line is one piece of information extracted from downloader output.
type Line interface {
	isLine()
}

// CountAnnounced reports how many tracks the playlist holds.
type CountAnnounced struct {
	N int
}

// ItemStarted reports the track currently being fetched.
type ItemStarted struct {
	Name string
}

// ItemFinished reports a track that was downloaded or skipped.
type ItemFinished struct{}

func (CountAnnounced) isLine() {}
func (ItemStarted) isLine()    {}
func (ItemFinished) isLine()   {}

var foundPattern = regexp.MustCompile(`Found (\d+) songs`)

// Classify returns every classification carried by a line, in the order
// they must be applied. Unrecognized lines yield nil.
func Classify(line string) []Line {
	var out []Line

	if m := foundPattern.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out = append(out, CountAnnounced{N: n})
		}
	}

	if strings.Contains(line, `Downloading "`) {
		out = append(out, ItemStarted{Name: quoted(line)})
	}

	if strings.Contains(line, `Downloaded "`) || strings.Contains(line, "Skipping") {
		out = append(out, ItemFinished{})
	}

	return out
}

// quoted returns the text between the first and last double quote.
func quoted(line string) string {
	first := strings.Index(line, `"`)
	last := strings.LastIndex(line, `"`)
	if first < 0 {
		return ""
	}
	if last <= first {
		return line[first+1:]
	}
	return line[first+1 : last]
}
