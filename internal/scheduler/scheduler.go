package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/job-radar/internal/model"
	"github.com/job-radar/internal/storage"
)

// Scheduler keeps one cron entry per enabled saved search and fires the
// runner on schedule.
type Scheduler struct {
	cron       *cron.Cron
	searchRepo *storage.SearchRepository
	runner     *SearchRunner
	entryMap   map[string]cron.EntryID
	mu         sync.RWMutex
	running    bool
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewScheduler(searchRepo *storage.SearchRepository, runner *SearchRunner) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		searchRepo: searchRepo,
		runner:     runner,
		entryMap:   make(map[string]cron.EntryID),
	}
}

// Start loads enabled searches and begins dispatching.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	searches, err := s.searchRepo.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to load saved searches: %w", err)
	}

	for _, search := range searches {
		if err := s.scheduleSearch(*search); err != nil {
			log.Printf("Failed to schedule search %s: %v", search.ID, err)
		}
	}

	s.cron.Start()
	s.running = true

	log.Printf("Scheduler started with %d saved searches", len(searches))
	return nil
}

// Stop stops dispatching and waits for in-flight runs started by cron.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.running = false
	log.Println("Scheduler stopped")
}

// AddSearch registers a newly created search.
func (s *Scheduler) AddSearch(search model.SavedSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scheduleSearch(search)
}

// UpdateSearch replaces the cron entry after an edit.
func (s *Scheduler) UpdateSearch(search model.SavedSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entryMap[search.ID]; ok {
		s.cron.Remove(entryID)
		delete(s.entryMap, search.ID)
	}

	if search.Status == model.SearchStatusEnabled {
		return s.scheduleSearch(search)
	}

	return nil
}

func (s *Scheduler) RemoveSearch(searchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entryMap[searchID]; ok {
		s.cron.Remove(entryID)
		delete(s.entryMap, searchID)
	}
}

// TriggerSearch runs a search immediately, outside its schedule.
func (s *Scheduler) TriggerSearch(ctx context.Context, searchID, triggeredBy string) (*model.ScrapeRun, error) {
	search, err := s.searchRepo.GetByID(ctx, searchID)
	if err != nil {
		return nil, err
	}
	if search == nil {
		return nil, fmt.Errorf("saved search not found")
	}
	if search.Status == model.SearchStatusRunning {
		return nil, fmt.Errorf("search is already running")
	}

	return s.runner.Run(ctx, *search, triggeredBy)
}

// GetNextRun returns the next scheduled fire time for a search.
func (s *Scheduler) GetNextRun(searchID string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entryID, ok := s.entryMap[searchID]; ok {
		entry := s.cron.Entry(entryID)
		if !entry.Next.IsZero() {
			return &entry.Next
		}
	}
	return nil
}

// GetScheduledSearches returns the IDs currently registered with cron.
func (s *Scheduler) GetScheduledSearches() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id := range s.entryMap {
		ids = append(ids, id)
	}
	return ids
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) scheduleSearch(search model.SavedSearch) error {
	if search.Status != model.SearchStatusEnabled {
		return nil
	}

	schedule := normalizeCronSchedule(search.Schedule)

	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(s.ctx, 30*time.Minute)
		defer cancel()

		current, err := s.searchRepo.GetByID(ctx, search.ID)
		if err != nil || current == nil {
			log.Printf("Search %s not found, removing from scheduler", search.ID)
			s.RemoveSearch(search.ID)
			return
		}

		if current.Status == model.SearchStatusRunning {
			log.Printf("Search %s is already running, skipping scheduled run", search.ID)
			return
		}
		if current.Status != model.SearchStatusEnabled {
			return
		}

		if _, err := s.runner.Run(ctx, *current, "schedule"); err != nil {
			log.Printf("Search %s run failed: %v", search.ID, err)
		}
	})

	if err != nil {
		return fmt.Errorf("invalid cron expression '%s': %w", search.Schedule, err)
	}

	s.entryMap[search.ID] = entryID
	return nil
}

// normalizeCronSchedule expands shortcuts and pads 5-field expressions
// with a seconds field, since the parser runs with seconds enabled.
func normalizeCronSchedule(schedule string) string {
	switch schedule {
	case "@hourly":
		return "0 0 * * * *"
	case "@daily":
		return "0 0 0 * * *"
	case "@weekly":
		return "0 0 0 * * 0"
	case "@monthly":
		return "0 0 0 1 * *"
	}

	if len(splitCronParts(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}

func splitCronParts(schedule string) []string {
	var parts []string
	current := ""
	for _, r := range schedule {
		if r == ' ' || r == '\t' {
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
		} else {
			current += string(r)
		}
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}
