// Package memory is an in-memory stand-in for the postgres repositories.
// The service and HTTP tests run against it; it mirrors the postgres
// semantics (generated ids, not-found errors, filter ordering) closely
// enough that the service layer cannot tell the difference.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/teachly/classtrack/internal/model"
	"github.com/teachly/classtrack/internal/schedule"
)

type Store struct {
	mu            sync.RWMutex
	students      map[int64]*model.Student
	classes       map[int64]*model.ClassSchedule
	nextStudentID int64
	nextClassID   int64
}

func NewStore() *Store {
	return &Store{
		students: make(map[int64]*model.Student),
		classes:  make(map[int64]*model.ClassSchedule),
	}
}

// Students returns the student-registry view of the store.
func (s *Store) Students() *StudentStore { return &StudentStore{s: s} }

// Classes returns the schedule-repository view of the store.
func (s *Store) Classes() *ClassStore { return &ClassStore{s: s} }

func cloneStudent(src *model.Student) *model.Student {
	cp := *src
	if src.PriceAmount != nil {
		p := *src.PriceAmount
		cp.PriceAmount = &p
	}
	if src.DurationMinutes != nil {
		d := *src.DurationMinutes
		cp.DurationMinutes = &d
	}
	return &cp
}

func cloneClass(src *model.ClassSchedule) *model.ClassSchedule {
	cp := *src
	return &cp
}

type StudentStore struct {
	s *Store
}

func (st *StudentStore) Create(_ context.Context, s *model.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	st.s.nextStudentID++
	s.ID = st.s.nextStudentID
	s.CreatedAt = time.Now().UTC()
	st.s.students[s.ID] = cloneStudent(s)
	return nil
}

func (st *StudentStore) GetByID(_ context.Context, id int64) (*model.Student, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	s, ok := st.s.students[id]
	if !ok {
		return nil, fmt.Errorf("student %d: %w", id, model.ErrNotFound)
	}
	return cloneStudent(s), nil
}

func (st *StudentStore) GetByIDs(_ context.Context, ids []int64) ([]*model.Student, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	var out []*model.Student
	for _, id := range ids {
		if s, ok := st.s.students[id]; ok {
			out = append(out, cloneStudent(s))
		}
	}
	sortStudents(out)
	return out, nil
}

func (st *StudentStore) List(_ context.Context) ([]*model.Student, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	out := make([]*model.Student, 0, len(st.s.students))
	for _, s := range st.s.students {
		out = append(out, cloneStudent(s))
	}
	sortStudents(out)
	return out, nil
}

func (st *StudentStore) Update(_ context.Context, s *model.Student) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	existing, ok := st.s.students[s.ID]
	if !ok {
		return fmt.Errorf("student %d: %w", s.ID, model.ErrNotFound)
	}
	s.CreatedAt = existing.CreatedAt
	st.s.students[s.ID] = cloneStudent(s)
	return nil
}

func (st *StudentStore) Delete(_ context.Context, id int64) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.students[id]; !ok {
		return fmt.Errorf("student %d: %w", id, model.ErrNotFound)
	}
	delete(st.s.students, id)
	return nil
}

func sortStudents(students []*model.Student) {
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].ID < students[j].ID
	})
}

type ClassStore struct {
	s *Store
}

func (cs *ClassStore) Create(_ context.Context, c *model.ClassSchedule) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	cs.s.nextClassID++
	c.ID = cs.s.nextClassID
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cs.s.classes[c.ID] = cloneClass(c)
	return nil
}

func (cs *ClassStore) GetByID(_ context.Context, id int64) (*model.ClassSchedule, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()

	c, ok := cs.s.classes[id]
	if !ok {
		return nil, fmt.Errorf("class %d: %w", id, model.ErrNotFound)
	}
	return cloneClass(c), nil
}

func (cs *ClassStore) Update(_ context.Context, c *model.ClassSchedule) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	existing, ok := cs.s.classes[c.ID]
	if !ok {
		return fmt.Errorf("class %d: %w", c.ID, model.ErrNotFound)
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	cs.s.classes[c.ID] = cloneClass(c)
	return nil
}

func (cs *ClassStore) Delete(_ context.Context, id int64) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	if _, ok := cs.s.classes[id]; !ok {
		return fmt.Errorf("class %d: %w", id, model.ErrNotFound)
	}
	delete(cs.s.classes, id)
	return nil
}

func (cs *ClassStore) ListByDate(ctx context.Context, date string) ([]*model.ClassSchedule, error) {
	return cs.ListByFilter(ctx, model.FilterSpec{DateFrom: date, DateTo: date})
}

func (cs *ClassStore) ListByFilter(_ context.Context, spec model.FilterSpec) ([]*model.ClassSchedule, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()

	all := make([]*model.ClassSchedule, 0, len(cs.s.classes))
	for _, c := range cs.s.classes {
		all = append(all, cloneClass(c))
	}
	return schedule.ApplyFilter(all, spec), nil
}
