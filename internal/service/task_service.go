package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// TaskService owns the task collection. Mutations are write-through: the
// updated collection is persisted first, and the in-memory state only changes
// when the write succeeded, so a persistence failure leaves both copies as
// they were.
type TaskService interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, input domain.TaskUpdate) (*domain.Task, error)
	ToggleCompleted(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	List(filter domain.TaskFilter) []domain.Task
	Stats() domain.TaskStats
}

// TaskOptions control first-run behavior.
type TaskOptions struct {
	// SeedDemoTasks populates the built-in demo tasks when no collection
	// has ever been persisted. An existing empty collection is left empty.
	SeedDemoTasks bool
}

type taskService struct {
	store repository.KV
	opts  TaskOptions

	mu    sync.Mutex
	tasks []domain.Task
}

func NewTaskService(store repository.KV, opts TaskOptions) TaskService {
	return &taskService{store: store, opts: opts}
}

// Init loads the persisted collection, seeding demo tasks on first run.
func (s *taskService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, repository.KeyTasks)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		if !s.opts.SeedDemoTasks {
			s.tasks = nil
			return nil
		}
		seeded := demoTasks(time.Now().UTC())
		if err := s.persist(ctx, seeded); err != nil {
			return err
		}
		s.tasks = seeded
		return nil
	}

	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return fmt.Errorf("decode tasks: %w", err)
	}
	s.tasks = tasks
	return nil
}

func (s *taskService) Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}

	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Completed:   false,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Most recently created first.
	next := make([]domain.Task, 0, len(s.tasks)+1)
	next = append(next, task)
	next = append(next, s.tasks...)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.tasks = next
	return &task, nil
}

func (s *taskService) Update(ctx context.Context, id string, input domain.TaskUpdate) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	next := make([]domain.Task, len(s.tasks))
	copy(next, s.tasks)

	// Mutable fields only; id and createdAt survive every edit.
	next[idx].Title = title
	next[idx].Description = strings.TrimSpace(input.Description)
	next[idx].Priority = priority
	next[idx].Completed = input.Completed

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.tasks = next
	task := next[idx]
	return &task, nil
}

func (s *taskService) ToggleCompleted(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	next := make([]domain.Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx].Completed = !next[idx].Completed

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.tasks = next
	task := next[idx]
	return &task, nil
}

// Delete removes the task with the given id. A missing id is an error, not
// a no-op, matching the update/toggle contract.
func (s *taskService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrTaskNotFound
	}

	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// List computes a fresh filtered view; it never mutates or caches. The three
// predicates combine with AND.
func (s *taskService) List(filter domain.TaskFilter) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.ToLower(strings.TrimSpace(filter.Text))

	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if text != "" &&
			!strings.Contains(strings.ToLower(t.Title), text) &&
			!strings.Contains(strings.ToLower(t.Description), text) {
			continue
		}
		if filter.Priority != "" && filter.Priority != "all" && t.Priority != filter.Priority {
			continue
		}
		switch filter.Status {
		case domain.StatusFilterCompleted:
			if !t.Completed {
				continue
			}
		case domain.StatusFilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (s *taskService) Stats() domain.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.TaskStats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		}
		if t.Priority == domain.PriorityHigh {
			stats.HighPriority++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// persist writes the collection through to the durable store. Callers hold
// the mutex and must not update s.tasks unless this returns nil.
func (s *taskService) persist(ctx context.Context, tasks []domain.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.store.Put(ctx, repository.KeyTasks, raw); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func (s *taskService) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func demoTasks(now time.Time) []domain.Task {
	return []domain.Task{
		{
			ID:          uuid.NewString(),
			Title:       "Complete Frontend Assignment",
			Description: "Build a scalable web app with authentication and dashboard",
			Completed:   false,
			Priority:    domain.PriorityHigh,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Setup Authentication System",
			Description: "Implement login, register, and logout functionality",
			Completed:   true,
			Priority:    domain.PriorityHigh,
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Design Dashboard UI",
			Description: "Create a modern, responsive dashboard interface",
			Completed:   true,
			Priority:    domain.PriorityMedium,
			CreatedAt:   now.Add(-48 * time.Hour),
		},
	}
}
