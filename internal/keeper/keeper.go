// Package keeper orchestrates the pet lifecycle engine against the
// store: it serializes access per guild, applies decay on every load,
// runs the periodic sweep, and fans out death/hatch notifications.
package keeper

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"mascotd/internal/pet"
	"mascotd/internal/store"
)

// ErrPetDead is returned for care actions while the pet is inside its
// death grace window. The engine itself does not guard this; the
// keeper does, so direct engine use in tests stays unconstrained.
var ErrPetDead = errors.New("pet is dead")

// Notifier receives notable lifecycle transitions.
type Notifier interface {
	Notify(e Event)
}

// Event describes a death or hatch for notification delivery.
type Event struct {
	GuildID   int64  `json:"guild_id"`
	Kind      string `json:"event"` // "died" or "hatched"
	PetName   string `json:"name"`
	LastWords string `json:"last_words,omitempty"`
}

// Keeper owns the read-modify-write sequence around pet state.
type Keeper struct {
	db       *store.DB
	rules    pet.Rules
	notifier Notifier

	mu     sync.Mutex
	guilds map[int64]*sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand

	stopCh chan struct{}
}

// New creates a Keeper. notifier may be nil.
func New(db *store.DB, rules pet.Rules, notifier Notifier) *Keeper {
	return &Keeper{
		db:       db,
		rules:    rules,
		notifier: notifier,
		guilds:   make(map[int64]*sync.Mutex),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		stopCh:   make(chan struct{}),
	}
}

// guildLock returns the mutex serializing one guild's record. Command
// handlers and the sweep race on the same row otherwise; different
// guilds stay fully parallel.
func (k *Keeper) guildLock(guildID int64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.guilds[guildID]
	if !ok {
		m = &sync.Mutex{}
		k.guilds[guildID] = m
	}
	return m
}

// Status is a decayed snapshot of one guild's pet.
type Status struct {
	Pet       pet.Pet
	Result    pet.Result
	Dead      bool
	SpriteKey string
	Line      string
}

// Status loads (or creates) the guild's pet, applies decay, persists
// the outcome, and returns a snapshot.
func (k *Keeper) Status(guildID int64) (*Status, error) {
	lock := k.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	p, res, err := k.loadAndDecay(guildID, now)
	if err != nil {
		return nil, err
	}

	st := &Status{
		Pet:       *p,
		Result:    res,
		Dead:      p.IsDead(now),
		SpriteKey: p.SpriteKey(),
	}
	if st.Dead {
		st.SpriteKey = "gravestone"
		st.Line = "...zzz..."
	} else {
		st.Line = k.say(p)
	}
	return st, nil
}

// Care applies one care action for a caretaker. Returns ErrPetDead if
// the pet is inside its grace window.
func (k *Keeper) Care(guildID, userID int64, kind string) (*Status, error) {
	lock := k.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	p, res, err := k.loadAndDecay(guildID, now)
	if err != nil {
		return nil, err
	}
	if p.IsDead(now) {
		return nil, ErrPetDead
	}

	switch kind {
	case store.ActionFeed:
		k.rules.Feed(p)
	case store.ActionPlay:
		k.rules.Play(p)
	case store.ActionClean:
		k.rules.Clean(p)
	default:
		return nil, fmt.Errorf("unknown care action %q", kind)
	}
	p.LastCaretakerID = userID

	if err := k.db.SavePet(p); err != nil {
		return nil, fmt.Errorf("save pet: %w", err)
	}
	if err := k.db.RecordCareAction(guildID, userID, kind); err != nil {
		return nil, fmt.Errorf("record care action: %w", err)
	}

	return &Status{Pet: *p, Result: res, SpriteKey: p.SpriteKey(), Line: k.say(p)}, nil
}

// Rename sets the pet's name.
func (k *Keeper) Rename(guildID, userID int64, name string) (*Status, error) {
	lock := k.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	p, res, err := k.loadAndDecay(guildID, now)
	if err != nil {
		return nil, err
	}

	p.Rename(name)
	p.LastCaretakerID = userID
	if err := k.db.SavePet(p); err != nil {
		return nil, fmt.Errorf("save pet: %w", err)
	}
	return &Status{Pet: *p, Result: res, Dead: p.IsDead(now), SpriteKey: p.SpriteKey()}, nil
}

// Override is the operator/debug surface: any non-nil field is applied,
// bounded by the engine's clamps.
type Override struct {
	BornAt     *time.Time
	Checkpoint *int
	Form       *string
	Hunger     *int // deltas
	Happiness  *int
	Hygiene    *int
	Sleep      *int
}

// Admin applies operator overrides to a guild's pet.
func (k *Keeper) Admin(guildID int64, o Override) (*Status, error) {
	lock := k.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	p, res, err := k.loadAndDecay(guildID, now)
	if err != nil {
		return nil, err
	}

	if o.BornAt != nil {
		p.SetBornAt(*o.BornAt)
	}
	if o.Checkpoint != nil || o.Form != nil {
		cp := p.LastCheckpoint
		if o.Checkpoint != nil {
			cp = *o.Checkpoint
		}
		form := pet.Form("")
		if o.Form != nil {
			form = pet.Form(*o.Form)
		}
		p.ForceCheckpoint(cp, form)
	}
	var dh, dp, dg, ds int
	if o.Hunger != nil {
		dh = *o.Hunger
	}
	if o.Happiness != nil {
		dp = *o.Happiness
	}
	if o.Hygiene != nil {
		dg = *o.Hygiene
	}
	if o.Sleep != nil {
		ds = *o.Sleep
	}
	if dh != 0 || dp != 0 || dg != 0 || ds != 0 {
		p.AdjustVitals(dh, dp, dg, ds)
	}

	if err := k.db.SavePet(p); err != nil {
		return nil, fmt.Errorf("save pet: %w", err)
	}
	return &Status{Pet: *p, Result: res, Dead: p.IsDead(now), SpriteKey: p.SpriteKey()}, nil
}

// loadAndDecay is the shared load -> transition -> persist sequence.
// Callers must hold the guild lock.
func (k *Keeper) loadAndDecay(guildID int64, now time.Time) (*pet.Pet, pet.Result, error) {
	p, err := k.db.GetPet(guildID)
	if err != nil {
		return nil, pet.Result{}, fmt.Errorf("load pet: %w", err)
	}
	if p == nil {
		p = pet.New(guildID, now)
		if err := k.db.SavePet(p); err != nil {
			return nil, pet.Result{}, fmt.Errorf("create pet: %w", err)
		}
		return p, pet.Result{}, nil
	}

	res := k.rules.ApplyDecay(p, now)
	if err := k.db.SavePet(p); err != nil {
		return nil, pet.Result{}, fmt.Errorf("save pet: %w", err)
	}
	k.report(p, res)
	return p, res, nil
}

// report records death attribution and fans out notifications.
func (k *Keeper) report(p *pet.Pet, res pet.Result) {
	if res.Died {
		if err := k.db.RecordDeath(p.GuildID, p.LastCaretakerID); err != nil {
			log.Printf("record death for guild %d: %v", p.GuildID, err)
		}
	}
	if k.notifier == nil {
		return
	}
	if res.Hatched {
		k.notifier.Notify(Event{GuildID: p.GuildID, Kind: "hatched", PetName: p.Name})
	}
	if res.Died {
		k.notifier.Notify(Event{GuildID: p.GuildID, Kind: "died", PetName: p.Name, LastWords: p.LastWords})
	}
}

func (k *Keeper) say(p *pet.Pet) string {
	k.rngMu.Lock()
	defer k.rngMu.Unlock()
	return p.SayLine(k.rng)
}

// TopCaretakers proxies the leaderboard query.
func (k *Keeper) TopCaretakers(guildID int64, limit int) ([]store.CaretakerRank, error) {
	return k.db.TopCaretakers(guildID, limit)
}

// TopKillers proxies the death-attribution query.
func (k *Keeper) TopKillers(guildID int64, limit int) ([]store.KillerRank, error) {
	return k.db.TopKillers(guildID, limit)
}

// InactiveCaretakers proxies the inactivity query.
func (k *Keeper) InactiveCaretakers(guildID int64, cutoff time.Time, limit int) ([]store.InactiveCaretaker, error) {
	return k.db.InactiveCaretakers(guildID, cutoff, limit)
}
