package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lifeplanner/internal/storage"
)

// Clock returns the current time.
type Clock func() time.Time

// Listener is told which collection changed after every successful mutation.
type Listener interface {
	Changed(kind Kind)
}

type ListenerFunc func(kind Kind)

func (f ListenerFunc) Changed(kind Kind) { f(kind) }

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.now = c }
}

// WithLocation sets the time zone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithListener(l Listener) Option {
	return func(s *Service) { s.listeners = append(s.listeners, l) }
}

// Service owns the three planner collections and the storage they persist to.
type Service struct {
	kv  storage.KV
	now Clock
	loc *time.Location
	log *zap.Logger
	ids idSource

	lmu       sync.Mutex
	listeners []Listener

	tasks  *TaskList
	habits *HabitList
	goals  *GoalList
}

// Open builds a Service and loads every collection from kv.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Service, error) {
	s := &Service{
		kv:  kv,
		now: time.Now,
		loc: time.Local,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = &TaskList{c: newCollection(s, storage.KeyTasks, KindTasks, cloneTask)}
	s.habits = &HabitList{c: newCollection(s, storage.KeyHabits, KindHabits, cloneHabit)}
	s.goals = &GoalList{c: newCollection(s, storage.KeyGoals, KindGoals, cloneGoal)}

	if err := s.loadAll(ctx); err != nil {
		return nil, err
	}

	s.log.Debug("planner loaded",
		zap.Int("tasks", s.tasks.Len()),
		zap.Int("habits", s.habits.Len()),
		zap.Int("goals", s.goals.Len()))
	return s, nil
}

// loadAll reads the three collections from storage and seeds the id source
// from every stored record.
func (s *Service) loadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.tasks.c.load(gctx) })
	g.Go(func() error { return s.habits.c.load(gctx) })
	g.Go(func() error { return s.goals.c.load(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}

	for _, t := range s.tasks.c.snapshot() {
		s.ids.observe(t.ID)
	}
	for _, h := range s.habits.c.snapshot() {
		s.ids.observe(h.ID)
	}
	for _, gl := range s.goals.c.snapshot() {
		s.ids.observe(gl.ID)
	}
	return nil
}

// Reload re-reads every collection from storage, picking up writes made by
// another process, and signals every kind. On error the collections that
// did load keep their new contents.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.loadAll(ctx); err != nil {
		return err
	}
	s.log.Debug("planner reloaded")
	for _, k := range []Kind{KindTasks, KindHabits, KindGoals, KindTheme} {
		s.notify(k)
	}
	return nil
}

func (s *Service) Tasks() *TaskList   { return s.tasks }
func (s *Service) Habits() *HabitList { return s.habits }
func (s *Service) Goals() *GoalList   { return s.goals }

// Subscribe registers l for change signals.
func (s *Service) Subscribe(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Service) notify(kind Kind) {
	s.lmu.Lock()
	ls := append([]Listener(nil), s.listeners...)
	s.lmu.Unlock()
	for _, l := range ls {
		l.Changed(kind)
	}
}

// Now returns the service clock's time in its configured location.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Today is the current calendar date string habits are credited under.
func (s *Service) Today() string {
	return s.Now().Format(DateLayout)
}

// idSource hands out creation-time ids: Unix milliseconds, bumped past the
// last id handed out so two records created in the same millisecond differ.
type idSource struct {
	mu   sync.Mutex
	last int64
}

func (g *idSource) observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}

func (g *idSource) next(t time.Time) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := t.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
