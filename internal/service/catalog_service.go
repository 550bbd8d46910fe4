// Package service holds the business operations behind the web pages.
// Services depend on small repository interfaces so that handlers never
// touch SQL and tests can swap the store.
package service

import (
	"context"
	"math/rand"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// HomeSampleSize is the number of teachers shown on the home page.
const HomeSampleSize = 6

// TeacherStore is the read side of the teachers table.
type TeacherStore interface {
	ListAll(ctx context.Context) ([]model.Teacher, error)
	ListByRating(ctx context.Context) ([]model.Teacher, error)
	ListByGoal(ctx context.Context, goalID uint64) ([]model.Teacher, error)
	GetByID(ctx context.Context, id uint64) (*model.Teacher, error)
}

// GoalStore is the read side of the goals table.
type GoalStore interface {
	ListAll(ctx context.Context) ([]model.Goal, error)
	GetByKey(ctx context.Context, key string) (*model.Goal, error)
}

// TimetableStore is the read side of the timetables table.
type TimetableStore interface {
	ListByTeacher(ctx context.Context, teacherID uint64) ([]model.Timetable, error)
}

// CatalogService serves the read-only pages.
type CatalogService struct {
	teachers TeacherStore
	goals    GoalStore
	slots    TimetableStore
	shuffle  func(n int, swap func(i, j int))
}

// NewCatalogService wires a CatalogService.
func NewCatalogService(teachers TeacherStore, goals GoalStore, slots TimetableStore) *CatalogService {
	return &CatalogService{teachers: teachers, goals: goals, slots: slots, shuffle: rand.Shuffle}
}

// Home is the data of the landing page.
type Home struct {
	Teachers []model.Teacher
	Goals    []model.Goal
}

// Home returns all goals and up to HomeSampleSize teachers in random order.
func (s *CatalogService) Home(ctx context.Context) (*Home, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.shuffle(len(teachers), func(i, j int) { teachers[i], teachers[j] = teachers[j], teachers[i] })
	if len(teachers) > HomeSampleSize {
		teachers = teachers[:HomeSampleSize]
	}
	return &Home{Teachers: teachers, Goals: goals}, nil
}

// GoalPage is the data of the per-goal listing.
type GoalPage struct {
	Goal     model.Goal
	Teachers []model.Teacher
}

// Goal returns the goal with key and its teachers, best rated first.
// It returns repository.ErrGoalNotFound for an unknown key.
func (s *CatalogService) Goal(ctx context.Context, key string) (*GoalPage, error) {
	g, err := s.goals.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teachers.ListByGoal(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return &GoalPage{Goal: *g, Teachers: teachers}, nil
}

// Profile is the data of a teacher profile.
type Profile struct {
	Teacher  model.Teacher
	Schedule []DaySchedule
	FullDays []string
}

// Profile returns a teacher with its weekly availability.  It returns
// repository.ErrTeacherNotFound for an unknown id.
func (s *CatalogService) Profile(ctx context.Context, id uint64) (*Profile, error) {
	t, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListByTeacher(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{Teacher: *t, Schedule: BuildSchedule(slots), FullDays: FullDays(slots)}, nil
}

// Teacher returns a single teacher.
func (s *CatalogService) Teacher(ctx context.Context, id uint64) (*model.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

// All is the data of the full listing.
type All struct {
	Teachers []model.Teacher
	Goals    []model.Goal
}

// All returns every teacher best rated first, plus all goals.
func (s *CatalogService) All(ctx context.Context) (*All, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teachers.ListByRating(ctx)
	if err != nil {
		return nil, err
	}
	return &All{Teachers: teachers, Goals: goals}, nil
}
