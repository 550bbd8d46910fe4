// Package seed loads the initial catalog (goals, teachers, weekly
// timetables) into an empty store.  It is run once by cmd/seed and is
// never used while serving requests.
package seed

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/tutor-booking/internal/model"
	"github.com/iliyamo/tutor-booking/internal/repository"
)

//go:embed data.yaml
var defaultData []byte

// ErrNotEmpty is returned when the store already holds teachers and the
// caller did not ask to overwrite them.
var ErrNotEmpty = errors.New("store already seeded")

// Dataset is the document format of data.yaml.
type Dataset struct {
	Goals    []GoalData    `yaml:"goals"`
	Teachers []TeacherData `yaml:"teachers"`
}

// GoalData describes one goal.
type GoalData struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// TeacherData describes one teacher.  Free maps weekday key -> time key
// -> whether the slot is open.
type TeacherData struct {
	Name    string                     `yaml:"name"`
	About   string                     `yaml:"about"`
	Rating  *float64                   `yaml:"rating"`
	Picture string                     `yaml:"picture"`
	Price   int                        `yaml:"price"`
	Goals   []string                   `yaml:"goals"`
	Free    map[string]map[string]bool `yaml:"free"`
}

// Load decodes and checks a dataset.
func Load(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Default returns the dataset embedded in the binary.
func Default() (*Dataset, error) {
	return Load(bytes.NewReader(defaultData))
}

// Validate checks cross references: teacher goals must be declared and
// timetable days must be weekday keys.
func (ds *Dataset) Validate() error {
	known := make(map[string]bool, len(ds.Goals))
	for _, g := range ds.Goals {
		if g.Key == "" || g.Label == "" {
			return fmt.Errorf("goal %q: key and label are required", g.Key)
		}
		known[g.Key] = true
	}
	for _, t := range ds.Teachers {
		if t.Name == "" {
			return errors.New("teacher without name")
		}
		if t.Price <= 0 {
			return fmt.Errorf("teacher %q: price is required", t.Name)
		}
		for _, g := range t.Goals {
			if !known[g] {
				return fmt.Errorf("teacher %q: unknown goal %q", t.Name, g)
			}
		}
		for day := range t.Free {
			if !model.IsWeekday(day) {
				return fmt.Errorf("teacher %q: unknown day %q", t.Name, day)
			}
		}
	}
	return nil
}

// Stats reports what Seed inserted.
type Stats struct {
	Goals    int
	Teachers int
	Slots    int
}

// Seeder writes a Dataset through the repositories in one transaction.
type Seeder struct {
	db       *sql.DB
	goals    *repository.GoalRepo
	teachers *repository.TeacherRepo
	slots    *repository.TimetableRepo
	log      *zap.Logger
}

// NewSeeder wires a Seeder on db.
func NewSeeder(db *sql.DB, log *zap.Logger) *Seeder {
	return &Seeder{
		db:       db,
		goals:    repository.NewGoalRepo(db),
		teachers: repository.NewTeacherRepo(db),
		slots:    repository.NewTimetableRepo(db),
		log:      log,
	}
}

// Seed inserts ds.  When the store already has teachers it returns
// ErrNotEmpty, unless force is set, in which case goals, teachers, their
// timetables and their bookings are deleted first.  Requests are kept.
func (s *Seeder) Seed(ctx context.Context, ds *Dataset, force bool) (Stats, error) {
	var st Stats
	n, err := s.teachers.Count(ctx)
	if err != nil {
		return st, err
	}
	if n > 0 && !force {
		return st, ErrNotEmpty
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return st, fmt.Errorf("begin seed tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if n > 0 {
		s.log.Warn("wiping existing catalog", zap.Int("teachers", n))
		for _, table := range []string{"bookings", "timetables", "teachers_goals", "teachers", "goals"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return st, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	byKey := make(map[string]model.Goal, len(ds.Goals))
	for _, gd := range ds.Goals {
		g := model.Goal{Key: gd.Key, Label: gd.Label}
		if err := s.goals.CreateTx(ctx, tx, &g); err != nil {
			return st, err
		}
		byKey[g.Key] = g
		st.Goals++
	}

	for _, td := range ds.Teachers {
		t := model.Teacher{
			Name:    td.Name,
			About:   td.About,
			Rating:  td.Rating,
			Picture: td.Picture,
			Price:   td.Price,
		}
		for _, key := range td.Goals {
			t.Goals = append(t.Goals, byKey[key])
		}
		if err := s.teachers.CreateTx(ctx, tx, &t); err != nil {
			return st, err
		}
		slots := timetableOf(t.ID, td.Free)
		if err := s.slots.CreateBulkTx(ctx, tx, slots); err != nil {
			return st, err
		}
		st.Teachers++
		st.Slots += len(slots)
	}

	if err := tx.Commit(); err != nil {
		return st, fmt.Errorf("commit seed: %w", err)
	}
	committed = true
	s.log.Info("catalog seeded",
		zap.Int("goals", st.Goals),
		zap.Int("teachers", st.Teachers),
		zap.Int("slots", st.Slots))
	return st, nil
}

// timetableOf flattens the free map into rows ordered by weekday and time
// so that insertion order matches display order.
func timetableOf(teacherID uint64, free map[string]map[string]bool) []model.Timetable {
	var out []model.Timetable
	for _, d := range model.Weekdays {
		times := free[d.Key]
		keys := make([]string, 0, len(times))
		for k := range times {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return model.TimeMinutes(keys[i]) < model.TimeMinutes(keys[j])
		})
		for _, k := range keys {
			out = append(out, model.Timetable{TeacherID: teacherID, Day: d.Key, Time: k, Free: times[k]})
		}
	}
	return out
}
