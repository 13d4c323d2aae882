package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mjarlund/fableday-tui/internal/api"
	"github.com/mjarlund/fableday-tui/internal/story"
)

// Repository is the slice of the story service the controller consumes.
// *api.Client satisfies it.
type Repository interface {
	Story(ctx context.Context, id string) (story.Snapshot, error)
	Chapters(ctx context.Context, id string) ([]story.Chapter, error)
	SubmitDay(ctx context.Context, id string, emotion story.Emotion, recap bool, seed *int64) (api.DayResult, error)
	SubmitEnding(ctx context.Context, id string) (story.Ending, error)
}

// Controller owns the view of one open story: snapshot, chapter list,
// derived ending, and the current selection. All remote results reach the
// visible state through a full reload, so the local view always equals a
// server-confirmed record and never an extrapolated one. One instance per
// open story; instances share nothing.
type Controller struct {
	repo Repository
	log  *slog.Logger
	errs *Reporter

	mu         sync.Mutex
	storyID    string
	snap       story.Snapshot
	hasSnap    bool
	chapters   []story.Chapter
	ending     *story.Ending
	selection  story.Selection
	op         Operation
	started    time.Time
	wantEnding bool
}

// New builds an idle controller for the given story.
func New(repo Repository, storyID string, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		repo:      repo,
		log:       log.With("session", uuid.NewString()[:8]),
		errs:      NewReporter(),
		storyID:   storyID,
		selection: story.NoSelection(),
		op:        OpNone,
	}
}

// State returns a copy of the current visible state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		StoryID:     c.storyID,
		HasSnapshot: c.hasSnap,
		Snapshot:    c.snap,
		Chapters:    c.chapters,
		Ending:      c.ending,
		Selection:   c.selection,
		Op:          c.op,
		Started:     c.started,
		Errors:      c.errs.All(),
	}
}

// Load fetches the snapshot and chapter list and applies them as one unit.
// On failure, previously loaded content is kept untouched.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.claim(OpLoading, nil); err != nil {
		return err
	}
	defer c.finish()
	return c.reload(ctx)
}

// AdvanceDay submits the next day under the given emotional stance, then
// reloads. The submission response itself is never applied to local state.
func (c *Controller) AdvanceDay(ctx context.Context, emotion story.Emotion, recap bool, seed *int64) error {
	err := c.claim(OpAdvancing, func() error {
		if !c.hasSnap {
			return ErrNoSnapshot
		}
		if !c.snap.CanAdvance() {
			return ErrStoryComplete
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer c.finish()

	if _, err := c.repo.SubmitDay(ctx, c.storyID, emotion, recap, seed); err != nil {
		c.errs.Report(SlotAdvance, err)
		c.log.Warn("day submission failed", "story", c.storyID, "err", err)
		return err
	}
	c.errs.Report(SlotAdvance, nil)

	c.setOp(OpLoading)
	return c.reload(ctx)
}

// GenerateEnding asks the service to close the story. Valid only once the
// story is finished or overran its planned days, and only while no ending
// exists yet. On success the reload lands on the ending.
func (c *Controller) GenerateEnding(ctx context.Context) error {
	err := c.claim(OpEnding, func() error {
		if !c.hasSnap {
			return ErrNoSnapshot
		}
		if !c.snap.EndingDue() {
			return ErrStoryOpen
		}
		if c.ending != nil {
			return ErrEndingExists
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer c.finish()

	end, err := c.repo.SubmitEnding(ctx, c.storyID)
	if err != nil {
		c.errs.Report(SlotEnding, err)
		c.log.Warn("ending submission failed", "story", c.storyID, "err", err)
		return err
	}
	c.mu.Lock()
	c.ending = &end
	c.wantEnding = true
	c.mu.Unlock()
	c.errs.Report(SlotEnding, nil)

	c.setOp(OpLoading)
	return c.reload(ctx)
}

// Select overrides the default selection until the next reload, which
// re-applies the default rule. Unresolvable selections fall back to the
// most recent chapter.
func (c *Controller) Select(sel story.Selection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = story.NormalizeSelection(sel, c.chapters, c.ending)
}

// DismissError clears one reporter slot without touching session state.
func (c *Controller) DismissError(slot Slot) { c.errs.Dismiss(slot) }

// claim takes the single in-flight slot, running guard under the same lock
// so eligibility and busy checks are one atomic decision. A second request
// while one is running is refused here, before any remote call is made.
func (c *Controller) claim(op Operation, guard func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.op != OpNone {
		return ErrBusy
	}
	if guard != nil {
		if err := guard(); err != nil {
			return err
		}
	}
	c.op = op
	c.started = time.Now()
	return nil
}

func (c *Controller) setOp(op Operation) {
	c.mu.Lock()
	c.op = op
	c.mu.Unlock()
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.op = OpNone
	c.started = time.Time{}
	c.mu.Unlock()
}

// reload fetches the snapshot and chapter list concurrently, projects the
// records, and applies everything in one locked write. The caller must
// already hold the in-flight claim. A failure leaves prior content intact
// and fills the load error slot.
func (c *Controller) reload(ctx context.Context) error {
	var (
		snap    story.Snapshot
		records []story.Chapter
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = c.repo.Story(gctx, c.storyID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = c.repo.Chapters(gctx, c.storyID)
		return err
	})
	if err := g.Wait(); err != nil {
		c.errs.Report(SlotLoad, err)
		c.log.Warn("reload failed", "story", c.storyID, "err", err)
		return err
	}

	chapters, ending := story.Project(records)

	c.mu.Lock()
	if ending == nil {
		// An ending already derived this session survives reloads even
		// when the record list does not carry it yet.
		ending = c.ending
	}
	c.snap = snap
	c.hasSnap = true
	c.chapters = chapters
	c.ending = ending
	c.selection = story.DefaultSelection(chapters, ending, c.wantEnding)
	c.wantEnding = false
	c.mu.Unlock()

	c.errs.Report(SlotLoad, nil)
	c.log.Debug("reload applied", "story", c.storyID, "chapters", len(chapters), "ending", ending != nil)
	return nil
}
