// Package flamemaker holds the helpers shared by the flame commands:
// seeds, scene files, tone mapping into images and safe file writers.
package flamemaker

import (
	"fmt"
	"math/rand"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Seed hold the primary seed used for random numbers
type Seed struct {
	intSeed int64
}

// Jan 1, 2020 (to make filenames a little smaller)
const epoch2020 = 1577836800

// Init initializes the seed
// `hexSeed` is either the empty string or a hex value
func Init(hexSeed string) (Seed, error) {
	s := Seed{intSeed: time.Now().UnixNano() - epoch2020}
	if hexSeed != "" {
		err := s.SetSeed(hexSeed)
		return s, err
	}
	return s, nil
}

// NewSeed wraps a known seed
func NewSeed(seed int64) Seed {
	return Seed{intSeed: seed}
}

// GetSeed returns the rand initialization seed
func (s Seed) GetSeed() int64 {
	return s.intSeed
}

// SetSeed sets the seed given the file seed part of filename
func (s *Seed) SetSeed(hexSeed string) (err error) {
	v, err := strconv.ParseInt(hexSeed, 16, 64)
	if err != nil {
		return fmt.Errorf("seed %q: %w", hexSeed, err)
	}
	s.intSeed = v
	return nil
}

// Rand returns a new random source starting at the seed.
// Two sources from the same seed produce the same numbers.
func (s Seed) Rand() *rand.Rand {
	return rand.New(rand.NewSource(s.intSeed))
}

// GetFilename returns a string to use for this file
func (s Seed) GetFilename(prefix, ext string) string {
	return fmt.Sprintf("%s%s-%x%s", prefix, getGitHash(), s.intSeed, ext)
}

func getGitHash() string {
	cmdOut, err := exec.Command("git", "rev-parse", "--verify", "HEAD").Output()
	if err != nil {
		return ""
	}
	hash := strings.TrimSpace(string(cmdOut))
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash
}
