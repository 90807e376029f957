// Package tabs is the static feature registry: a read-only mapping from
// numeric tab id to feature descriptor, plus the word list used to
// generate room names when the caller doesn't pick one.
package tabs

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/naivedh/roomgate/internal/models"
)

// DefaultTabID is the tab every new room opens on.
const DefaultTabID = 1

// catalog is fixed at compile time. Ids are sparse on purpose: ranges are
// reserved per feature family (1x core, 10x collaboration, 100x media).
var catalog = map[int]models.Tab{
	1:   {TabID: 1, Name: "Lobby", Icon: "home"},
	2:   {TabID: 2, Name: "Agenda", Icon: "list"},
	10:  {TabID: 10, Name: "Notes", Icon: "edit"},
	11:  {TabID: 11, Name: "Whiteboard", Icon: "pen-tool"},
	100: {TabID: 100, Name: "Stage", Icon: "video"},
	101: {TabID: 101, Name: "Screen Share", Icon: "monitor"},
}

// defaultIDs is the tab set every room starts with.
var defaultIDs = []int{1, 10, 100}

// Lookup returns the descriptor for a tab id.
func Lookup(tabID int) (models.Tab, bool) {
	t, ok := catalog[tabID]
	return t, ok
}

// Defaults returns a fresh copy of the default tab set, in order.
func Defaults() []models.Tab {
	out := make([]models.Tab, 0, len(defaultIDs))
	for _, id := range defaultIDs {
		out = append(out, catalog[id])
	}
	return out
}

var (
	adjectives = []string{
		"amber", "brisk", "calm", "clever", "eager", "fuzzy", "gentle",
		"golden", "happy", "keen", "lively", "mellow", "nimble", "quiet",
		"rapid", "solid", "sunny", "swift", "vivid", "witty",
	}
	nouns = []string{
		"badger", "beacon", "canyon", "comet", "falcon", "glacier",
		"harbor", "lagoon", "maple", "meadow", "otter", "pebble",
		"raven", "reef", "sequoia", "summit", "thicket", "tundra",
		"walrus", "willow",
	}
)

// RandomName generates a room name like "brisk-otter-58". Output always
// passes the room name format check, so callers don't re-validate.
func RandomName() string {
	return fmt.Sprintf("%s-%s-%02d", pick(adjectives), pick(nouns), randInt(100))
}

func pick(words []string) string {
	return words[randInt(len(words))]
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; nothing sensible to degrade to.
		panic(fmt.Sprintf("read random: %v", err))
	}
	return int(v.Int64())
}
