package pipeline

import (
	"container/heap"
	"sort"

	"fanscrape/pkg/facts"
)

// State carries the cross-phase collections of one run. It exists only in
// memory for the duration of a single invocation; there is no resumption
// across restarts.
type State struct {
	// People is every user id observed during the run: story authors and
	// non-guest reviewers in Phase I, favorited authors in Phase III. It
	// grows monotonically and never shrinks.
	People map[string]struct{}
	// Fandoms is the set of fandom strings observed in Phase I.
	Fandoms map[string]struct{}
	// Stories is the input story-id set, frozen before Phase I starts.
	// Phase III uses it purely as a membership filter.
	Stories map[string]struct{}

	stamps stampHeap
}

// NewState freezes the input story ids and returns empty collections.
func NewState(sids []string) *State {
	stories := make(map[string]struct{}, len(sids))
	for _, sid := range sids {
		stories[sid] = struct{}{}
	}
	return &State{
		People:  make(map[string]struct{}),
		Fandoms: make(map[string]struct{}),
		Stories: stories,
	}
}

func (st *State) pushStamp(unix int64, label string) {
	heap.Push(&st.stamps, facts.Stamp{Unix: unix, Label: label})
}

// SortedStamps drains a snapshot of the timestamp heap in ascending time
// order, ties broken by label. The state's own heap is left intact.
func (st *State) SortedStamps() []facts.Stamp {
	snapshot := make(stampHeap, len(st.stamps))
	copy(snapshot, st.stamps)

	out := make([]facts.Stamp, 0, len(snapshot))
	for snapshot.Len() > 0 {
		out = append(out, heap.Pop(&snapshot).(facts.Stamp))
	}
	return out
}

// sortedPeople returns the People set in deterministic order for the
// Phase III loop.
func (st *State) sortedPeople() []string {
	people := make([]string, 0, len(st.People))
	for uid := range st.People {
		people = append(people, uid)
	}
	sort.Strings(people)
	return people
}

// sortedFandoms returns the Fandoms set in deterministic order.
func (st *State) sortedFandoms() []string {
	fandoms := make([]string, 0, len(st.Fandoms))
	for f := range st.Fandoms {
		fandoms = append(fandoms, f)
	}
	sort.Strings(fandoms)
	return fandoms
}

// stampHeap is a min-heap of timeline events keyed on the unix time.
type stampHeap []facts.Stamp

func (h stampHeap) Len() int { return len(h) }

func (h stampHeap) Less(i, j int) bool {
	if h[i].Unix != h[j].Unix {
		return h[i].Unix < h[j].Unix
	}
	return h[i].Label < h[j].Label
}

func (h stampHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *stampHeap) Push(x any) {
	*h = append(*h, x.(facts.Stamp))
}

func (h *stampHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
