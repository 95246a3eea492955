package domain

import (
	"sort"
	"time"
)

// Snapshot is one immutable, fully built index value covering every
// configured language. It is created complete and then never mutated;
// readers that hold a snapshot reference can keep using it safely while
// later snapshots are published.
type Snapshot struct {
	// ID uniquely identifies this snapshot.
	ID string

	// PublishedAt is when the snapshot was published.
	PublishedAt time.Time

	// Partitions maps language tag to partition.
	Partitions map[string]*Partition
}

// Partition returns the partition for a language tag.
func (s *Snapshot) Partition(lang string) (*Partition, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.Partitions[lang]
	return p, ok
}

// Languages returns the language tags present in the snapshot, sorted.
func (s *Snapshot) Languages() []string {
	if s == nil {
		return nil
	}
	langs := make([]string, 0, len(s.Partitions))
	for lang := range s.Partitions {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
