// Package pipeline sequences the three scraping phases over one set of
// story ids: Phase I scrapes stories and their reviews, Phase II writes the
// consolidated event timeline, Phase III scrapes the profiles of everyone
// observed along the way.
//
// Failures are handled per item: a story, review listing, or profile that
// cannot be scraped is recorded as a Skip and the run moves on. Only output
// write failures abort a run.
package pipeline

import (
	"fmt"
	"log/slog"
	"strconv"

	"fanscrape/models"
	"fanscrape/pkg/facts"
	"fanscrape/pkg/reviewstore"
	"fanscrape/pkg/scrape"
)

// Run wires the collaborators of one pipeline invocation. There are no
// package-level singletons; construct a Run per invocation and discard it.
type Run struct {
	Scraper        *scrape.Scraper
	Facts          *facts.Writer
	TimestampsPath string
	// Store receives review text for later indexing; nil disables
	// persistence.
	Store *reviewstore.Store
	Log   *slog.Logger
}

// Skip records one item the run gave up on and why.
type Skip struct {
	ID    string // story id or user id
	Stage string // "story", "reviews", "profile"
	Err   error
}

// Summary reports what a phase processed and what it skipped.
type Summary struct {
	Processed int
	Skips     []Skip
}

func (s *Summary) skip(log *slog.Logger, id, stage string, err error) {
	log.Error("skipping item", "id", id, "stage", stage, "error", err)
	s.Skips = append(s.Skips, Skip{ID: id, Stage: stage, Err: err})
}

// PhaseI scrapes every story id in order, accumulating people, fandoms and
// timeline events into the returned state. A story that fails contributes
// nothing, not even to People or Fandoms.
func (r *Run) PhaseI(sids []string) (*State, *Summary, error) {
	state := NewState(sids)
	summary := &Summary{}

	r.Log.Info("starting phase I", "stories", len(sids))

	for i, sid := range sids {
		r.Log.Info("scraping story", "sid", sid, "progress", fmt.Sprintf("%d/%d", i+1, len(sids)))

		story, err := r.Scraper.Story(sid)
		if err != nil {
			summary.skip(r.Log, sid, "story", err)
			continue
		}

		published, updated, err := storyTimes(story)
		if err != nil {
			summary.skip(r.Log, sid, "story", err)
			continue
		}

		state.pushStamp(published, "published"+sid)
		state.pushStamp(updated, "lastupdated"+sid)
		state.People[story.AID] = struct{}{}
		state.Fandoms[story.Fandom] = struct{}{}

		predicates := []string{
			facts.Predicate("author", story.AID, story.SID),
			facts.Predicate("rating", story.SID, story.Rating),
			facts.Predicate("genre", story.SID, story.Genre),
		}
		edges := []string{
			facts.Cytoscape("wrote", "user"+story.AID, "story"+story.SID),
		}
		if err := r.write(predicates, edges); err != nil {
			return nil, nil, err
		}

		if story.HasReviews() {
			if err := r.scrapeReviews(state, story); err != nil {
				summary.skip(r.Log, sid, "reviews", err)
				continue
			}
		}

		summary.Processed++
	}

	r.Log.Info("finished phase I",
		"people", len(state.People),
		"fandoms", len(state.Fandoms),
		"skipped", len(summary.Skips))

	return state, summary, nil
}

// scrapeReviews drains a story's review listing and folds the reviews into
// the run state. The listing is consumed and validated fully before any of
// its facts, timeline events, or People entries are committed, so a listing
// that fails partway contributes nothing.
func (r *Run) scrapeReviews(state *State, story *models.Story) error {
	it := r.Scraper.Reviews(story.SID, *story.ReviewCount)

	type timedReview struct {
		models.Review
		leftAt int64
	}
	var reviews []timedReview
	for {
		review, ok := it.Next()
		if !ok {
			break
		}
		leftAt, err := strconv.ParseInt(review.Timestamp, 10, 64)
		if err != nil {
			return fmt.Errorf("bad review timestamp %q: %w", review.Timestamp, err)
		}
		reviews = append(reviews, timedReview{Review: review, leftAt: leftAt})
	}
	if err := it.Err(); err != nil {
		return err
	}

	var (
		predicates []string
		edges      []string
	)
	for _, review := range reviews {
		state.pushStamp(review.leftAt, review.Reviewer+"_rev_"+story.SID)

		if r.Store != nil {
			if _, err := r.Store.InsertReview(story.SID, review.Review); err != nil {
				r.Log.Error("failed to store review text", "sid", story.SID, "error", err)
			}
		}

		if review.IsGuest() {
			continue
		}
		state.People[review.Reviewer] = struct{}{}
		predicates = append(predicates, facts.Predicate("reviewed", review.Reviewer, story.SID))
		edges = append(edges, facts.Cytoscape("reviewed", "user"+review.Reviewer, "story"+story.SID))
	}

	return r.write(predicates, edges)
}

// PhaseII writes the timeline file: every event gathered in Phase I, one
// line per event, in ascending timestamp order. The state's own collection
// is untouched.
func (r *Run) PhaseII(state *State) error {
	stamps := state.SortedStamps()
	r.Log.Info("starting phase II", "events", len(stamps))

	if err := facts.WriteStamps(r.TimestampsPath, stamps); err != nil {
		return fmt.Errorf("phase II: %w", err)
	}
	return nil
}

// PhaseIII scrapes the profile of every person observed in Phase I and
// emits liked/favoriteAuthor facts, restricted to the stories and people of
// this run: favorites pointing outside the observed sets are silently
// dropped.
func (r *Run) PhaseIII(state *State) (*Summary, error) {
	summary := &Summary{}

	// Membership checks run against the Phase I people; favorited authors
	// discovered below join People only after emission so the closed-world
	// filter does not depend on iteration order.
	phaseOnePeople := state.sortedPeople()
	known := make(map[string]struct{}, len(phaseOnePeople))
	for _, uid := range phaseOnePeople {
		known[uid] = struct{}{}
	}

	fandoms := state.sortedFandoms()

	r.Log.Info("starting phase III", "people", len(phaseOnePeople), "fandoms", len(fandoms))

	var favored []string
	for i, uid := range phaseOnePeople {
		r.Log.Info("scraping profile", "uid", uid, "progress", fmt.Sprintf("%d/%d", i+1, len(phaseOnePeople)))

		profile, err := r.Scraper.Profile(uid)
		if err != nil {
			summary.skip(r.Log, uid, "profile", err)
			continue
		}

		var (
			predicates []string
			edges      []string
		)

		for _, fandom := range fandoms {
			score := scrape.RelativeLikes(profile.FavoriteStories, profile.FavoritesByFandom, fandom)
			r.Log.Debug("relative likes", "uid", uid, "fandom", fandom, "score", score)

			for _, sid := range profile.FavoritesByFandom[fandom] {
				if _, ok := state.Stories[sid]; !ok {
					continue
				}
				predicates = append(predicates, facts.Predicate("liked", uid, sid))
				edges = append(edges, facts.Cytoscape("liked", "user"+uid, "story"+sid))
			}
		}

		for _, author := range profile.FavoriteAuthors {
			if _, ok := known[author]; !ok {
				continue
			}
			predicates = append(predicates, facts.Predicate("favoriteAuthor", uid, author))
			edges = append(edges, facts.Cytoscape("favAuthor", "user"+uid, "user"+author))
			favored = append(favored, author)
		}

		if err := r.write(predicates, edges); err != nil {
			return nil, err
		}
		summary.Processed++
	}

	for _, author := range favored {
		state.People[author] = struct{}{}
	}

	r.Log.Info("finished phase III", "processed", summary.Processed, "skipped", len(summary.Skips))
	return summary, nil
}

// Execute runs the three phases back to back over the given story ids.
func (r *Run) Execute(sids []string) error {
	state, phase1, err := r.PhaseI(sids)
	if err != nil {
		return err
	}

	if err := r.PhaseII(state); err != nil {
		return err
	}

	phase3, err := r.PhaseIII(state)
	if err != nil {
		return err
	}

	r.Log.Info("run complete",
		"stories", phase1.Processed,
		"profiles", phase3.Processed,
		"skipped", len(phase1.Skips)+len(phase3.Skips))
	return nil
}

func (r *Run) write(predicates, edges []string) error {
	if err := r.Facts.AppendFacts(predicates); err != nil {
		return fmt.Errorf("writing facts: %w", err)
	}
	if err := r.Facts.AppendEdges(edges); err != nil {
		return fmt.Errorf("writing edges: %w", err)
	}
	return nil
}

func storyTimes(story *models.Story) (int64, int64, error) {
	published, err := strconv.ParseInt(story.Published, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad published timestamp %q: %w", story.Published, err)
	}
	updated, err := strconv.ParseInt(story.Updated, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad updated timestamp %q: %w", story.Updated, err)
	}
	return published, updated, nil
}
