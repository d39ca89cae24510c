package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jscyril/mediacore/api"
)

var (
	timeTagRe   = regexp.MustCompile(`^\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)
	offsetTagRe = regexp.MustCompile(`^\[offset:\s*([+-]?\d+)\s*\]`)
)

// ParseLRC reads LRC formatted lyrics. A line may carry several time tags;
// [offset:ms] shifts every cue earlier by ms. Untimed lines are ignored and
// cues with equal times keep their file order.
func ParseLRC(r io.Reader) ([]api.LyricCue, error) {
	var cues []api.LyricCue
	offset := 0.0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := offsetTagRe.FindStringSubmatch(line); m != nil {
			ms, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: parse offset: %w", lineNo, err)
			}
			offset = float64(ms) / 1000
			continue
		}

		var stamps []float64
		for {
			m := timeTagRe.FindStringSubmatch(line)
			if m == nil {
				break
			}
			stamps = append(stamps, parseStamp(m[1], m[2], m[3]))
			line = line[len(m[0]):]
		}
		if len(stamps) == 0 {
			continue // metadata tag or plain text
		}

		text := strings.TrimSpace(line)
		for _, s := range stamps {
			cues = append(cues, api.LyricCue{Time: s, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lyrics: %w", err)
	}

	for i := range cues {
		cues[i].Time -= offset
		if cues[i].Time < 0 {
			cues[i].Time = 0
		}
	}
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Time < cues[j].Time })
	return cues, nil
}

func parseStamp(min, sec, frac string) float64 {
	m, _ := strconv.Atoi(min)
	s, _ := strconv.Atoi(sec)
	t := float64(m*60 + s)
	if frac != "" {
		f, _ := strconv.Atoi(frac)
		t += float64(f) / pow10(len(frac))
	}
	return t
}

func pow10(n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// Sorted reports whether cues are in non-decreasing time order.
func Sorted(cues []api.LyricCue) bool {
	return sort.SliceIsSorted(cues, func(i, j int) bool { return cues[i].Time < cues[j].Time })
}
