package model

import (
	"sort"
	"time"
)

// Counter tallies license occurrences within one release channel.
// It marshals to a flat JSON object keyed by license token, which is the
// on-disk summary format.
type Counter map[License]int

// NewCounter creates an empty Counter.
func NewCounter() Counter {
	return make(Counter)
}

// Update increments the count for every given license.
// A multi-license detection increments each member once.
func (c Counter) Update(licenses []License) {
	for _, l := range licenses {
		c[l]++
	}
}

// Count returns the tally for the given license, zero if absent.
func (c Counter) Count(l License) int {
	return c[l]
}

// Total returns the sum of all tallies.
func (c Counter) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// LicenseCount pairs a license with its tally, for ranked listings.
type LicenseCount struct {
	// License is the canonical token.
	License License
	// Count is the number of sampled packages carrying it.
	Count int
}

// MostCommon returns up to n licenses ordered by descending count.
// Ties break lexicographically by license name so the ordering is stable.
// A non-positive n returns the full ranking.
func (c Counter) MostCommon(n int) []LicenseCount {
	ranked := make([]LicenseCount, 0, len(c))
	for l, count := range c {
		ranked = append(ranked, LicenseCount{License: l, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].License < ranked[j].License
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Summary is the complete result of one survey run: one counter per
// release channel plus run metadata. Counters are built incrementally
// over the package sample and written out only after the full sample
// across all channels completes.
type Summary struct {
	// Counters maps each surveyed channel to its license tallies.
	Counters map[Channel]Counter `json:"counters"`

	// Channels lists the surveyed channels in release order, oldest
	// first. Kept separately because map iteration order is undefined.
	Channels []Channel `json:"channels"`

	// SampleSize is the number of packages in the deterministic sample.
	SampleSize int `json:"sample_size"`

	// GeneratedAt records when the survey completed.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewSummary creates a Summary with an empty counter per channel.
func NewSummary(channels []Channel) *Summary {
	counters := make(map[Channel]Counter, len(channels))
	for _, ch := range channels {
		counters[ch] = NewCounter()
	}
	return &Summary{
		Counters: counters,
		Channels: append([]Channel(nil), channels...),
	}
}

// Counter returns the counter for the given channel, or nil if the
// channel was not surveyed.
func (s *Summary) Counter(ch Channel) Counter {
	return s.Counters[ch]
}

// newest and oldest return the boundary channels of the survey.
// Channels are stored oldest first.
func (s *Summary) oldest() Channel {
	if len(s.Channels) == 0 {
		return ChannelUnknown
	}
	return s.Channels[0]
}

func (s *Summary) newest() Channel {
	if len(s.Channels) == 0 {
		return ChannelUnknown
	}
	return s.Channels[len(s.Channels)-1]
}

// TopLicenses returns up to n licenses from the union of all channels,
// ranked by descending count in the newest channel, then by descending
// count in the second-newest, then lexicographically. This mirrors the
// chart ordering: the newest channel decides what is worth plotting.
func (s *Summary) TopLicenses(n int) []License {
	union := NewLicenseSet()
	for _, counter := range s.Counters {
		for l := range counter {
			union.Add(l)
		}
	}

	keys := make([]Channel, 0, 2)
	if ch := s.newest(); ch != ChannelUnknown {
		keys = append(keys, ch)
	}
	if len(s.Channels) > 1 {
		keys = append(keys, s.Channels[len(s.Channels)-2])
	}

	ranked := union.Sorted()
	sort.SliceStable(ranked, func(i, j int) bool {
		for _, ch := range keys {
			ci := s.Counters[ch].Count(ranked[i])
			cj := s.Counters[ch].Count(ranked[j])
			if ci != cj {
				return ci > cj
			}
		}
		return ranked[i] < ranked[j]
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Delta returns the relative change in count for a license between the
// oldest and newest channel: (newest - oldest) / oldest. When the license
// does not occur in the oldest channel the ratio is undefined and Delta
// returns 0.
func (s *Summary) Delta(l License) float64 {
	old := s.Counters[s.oldest()].Count(l)
	if old == 0 {
		return 0
	}
	recent := s.Counters[s.newest()].Count(l)
	return float64(recent-old) / float64(old)
}
