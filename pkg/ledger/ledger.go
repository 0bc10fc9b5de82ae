package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/atsam3x/sam3hal/pkg/resolve"
)

// LedgerVersion is the current version of the ledger file format.
const LedgerVersion = 1

// Ledger is the activation record of one build.
type Ledger struct {
	// Version is the ledger file format version.
	Version int `json:"version"`

	// BuildID identifies the build (UUID), assigned on the first record.
	BuildID string `json:"build_id"`

	// SavedAt is when the ledger was last saved.
	SavedAt time.Time `json:"saved_at"`

	Variant     string   `json:"variant"`
	Tags        []string `json:"tags"`
	PAC         string   `json:"pac"`
	RuntimeShim bool     `json:"runtime_shim,omitempty"`

	// Fingerprint is the activation fingerprint every unit must match.
	Fingerprint string `json:"fingerprint"`

	// Units lists the compile units that recorded the activation.
	Units []Unit `json:"units,omitempty"`
}

// Unit is one compile unit's record.
type Unit struct {
	Name       string    `json:"name"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Selection returns the selection the ledger was opened with.
func (l *Ledger) Selection() resolve.Selection {
	return resolve.Selection{Variant: l.Variant, WantsRuntime: l.RuntimeShim}
}

// HasUnit reports whether the named unit has recorded.
func (l *Ledger) HasUnit(name string) bool {
	return slices.ContainsFunc(l.Units, func(u Unit) bool { return u.Name == name })
}

// Store manages a ledger file. Writers in any process serialize on an
// advisory lock file next to the ledger, and every save replaces the file
// atomically, so readers never see a partial ledger.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore creates a store for the ledger at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// LockPath returns the path of the lock file guarding the ledger.
func (s *Store) LockPath() string {
	return s.path + ".lock"
}

// lock takes the in-process and the cross-process lock.
func (s *Store) lock() (unlock func(), err error) {
	s.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	fl := flock.New(s.LockPath())
	if err := fl.Lock(); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	return func() {
		_ = fl.Unlock()
		s.mu.Unlock()
	}, nil
}

// Record adds unit's activation to the ledger, opening it if needed.
// Recording an activation equal to the ledger's is idempotent; any other
// activation fails with resolve.ErrConflictingVariants and leaves the
// ledger unchanged.
func (s *Store) Record(unit string, act resolve.Activation) (*Ledger, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	l, err := s.load()
	if err != nil {
		return nil, err
	}

	fp := act.Fingerprint()
	if l == nil {
		l = &Ledger{
			BuildID:     uuid.NewString(),
			Variant:     act.Variant.ID,
			Tags:        act.Tags.BuildTags(),
			PAC:         act.PAC().Name,
			RuntimeShim: act.RuntimeShim,
			Fingerprint: fp,
		}
	} else if l.Fingerprint != fp {
		return nil, fmt.Errorf("unit %s: %w", unit,
			&resolve.ConflictingVariantsError{Selections: []resolve.Selection{l.Selection(), act.Selection()}})
	}

	if !l.HasUnit(unit) {
		l.Units = append(l.Units, Unit{Name: unit, RecordedAt: s.now()})
	}
	l.SavedAt = time.Time{}
	if err := s.save(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Save persists the ledger to disk.
func (s *Store) Save(l *Ledger) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return s.save(l)
}

// save writes l to a temporary file in the ledger's directory and renames
// it over the ledger.
func (s *Store) save(l *Ledger) error {
	l.Version = LedgerVersion
	if l.SavedAt.IsZero() {
		l.SavedAt = s.now()
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Load reads the ledger from disk without taking the lock.
// Returns nil, nil if the file doesn't exist (no unit has recorded yet).
func (s *Store) Load() (*Ledger, error) {
	return s.load()
}

func (s *Store) load() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	l := &Ledger{}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	if l.Version > LedgerVersion {
		return nil, fmt.Errorf("%s: ledger version %d is newer than supported %d", s.path, l.Version, LedgerVersion)
	}
	return l, nil
}

// Reset removes the ledger file, starting a new build.
func (s *Store) Reset() error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
