package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"healthsystem/internal/domain/entity"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/internal/infrastructure/session"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeDB stands in for the request broker. Repositories are faked too, so it
// only has to track transaction outcomes.
type fakeDB struct {
	commits   int
	rollbacks int
}

func (f *fakeDB) QueryMany(ctx context.Context, sql string, args ...any) ([]database.Row, error) {
	return nil, nil
}

func (f *fakeDB) QueryOne(ctx context.Context, sql string, args ...any) (database.Row, error) {
	return nil, database.ErrNoRows
}

func (f *fakeDB) Execute(ctx context.Context, sql string, args ...any) (database.Result, error) {
	return database.Result{}, nil
}

func (f *fakeDB) CallProcedure(ctx context.Context, name string, args ...any) error {
	return nil
}

func (f *fakeDB) WithinTransaction(ctx context.Context, fn func(q database.Querier) error) error {
	if err := fn(f); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

func scoped(db *fakeDB) context.Context {
	return database.WithBroker(context.Background(), db)
}

type fakeUserRepo struct {
	byEmail      map[string]*entity.User
	created      []*entity.User
	lastLogins   []int64
	createErr    error
	lastLoginErr error
	nextID       int64
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: map[string]*entity.User{}, nextID: 100}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, q database.Querier, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	r.created = append(r.created, user)
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, q database.Querier, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, q database.Querier, id int64) error {
	if r.lastLoginErr != nil {
		return r.lastLoginErr
	}
	r.lastLogins = append(r.lastLogins, id)
	return nil
}

type fakePatientRepo struct {
	created []*entity.Patient
	byID    map[int64]*entity.Patient
}

func (r *fakePatientRepo) Create(ctx context.Context, q database.Querier, patient *entity.Patient) error {
	patient.ID = int64(len(r.created) + 1)
	r.created = append(r.created, patient)
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Patient, error) {
	return r.byID[id], nil
}

func (r *fakePatientRepo) FindAll(ctx context.Context, q database.Querier) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.created {
		out = append(out, *p)
	}
	return out, nil
}

type fakePhysicianRepo struct {
	created  []*entity.Physician
	listings []entity.PhysicianListing
	total    int64
	lastPage entity.Page
}

func (r *fakePhysicianRepo) Create(ctx context.Context, q database.Querier, physician *entity.Physician) error {
	physician.ID = int64(len(r.created) + 1)
	r.created = append(r.created, physician)
	return nil
}

func (r *fakePhysicianRepo) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Physician, error) {
	return nil, nil
}

func (r *fakePhysicianRepo) FindPage(ctx context.Context, q database.Querier, page entity.Page) ([]entity.PhysicianListing, error) {
	r.lastPage = page
	return r.listings, nil
}

func (r *fakePhysicianRepo) Count(ctx context.Context, q database.Querier) (int64, error) {
	return r.total, nil
}

// fakeClinicRepo resolves upserts against existing clinics by name and address.
type fakeClinicRepo struct {
	existing []entity.Clinic
	nextID   int64
}

func (r *fakeClinicRepo) Create(ctx context.Context, q database.Querier, clinic *entity.Clinic) error {
	r.nextID++
	clinic.ID = r.nextID
	r.existing = append(r.existing, *clinic)
	return nil
}

func (r *fakeClinicRepo) Upsert(ctx context.Context, q database.Querier, clinic *entity.Clinic) error {
	for _, c := range r.existing {
		if c.Name == clinic.Name && c.Address == clinic.Address {
			clinic.ID = c.ID
			return nil
		}
	}
	return r.Create(ctx, q, clinic)
}

func (r *fakeClinicRepo) FindByID(ctx context.Context, q database.Querier, id int64) (*entity.Clinic, error) {
	return nil, nil
}

func (r *fakeClinicRepo) FindAll(ctx context.Context, q database.Querier) ([]entity.Clinic, error) {
	return r.existing, nil
}

type fakeWorksAtRepo struct {
	created   []*entity.WorksAt
	createErr error
}

func (r *fakeWorksAtRepo) Create(ctx context.Context, q database.Querier, w *entity.WorksAt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, w)
	return nil
}

func (r *fakeWorksAtRepo) FindByPhysician(ctx context.Context, q database.Querier, physicianID int64) ([]entity.WorksAt, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	patient database.Row
}

func (r *fakeProfileRepo) FindPatientProfile(ctx context.Context, q database.Querier, patientID int64) (database.Row, error) {
	return r.patient, nil
}

func (r *fakeProfileRepo) FindPhysicianProfile(ctx context.Context, q database.Querier, physicianID int64) (database.Row, error) {
	return nil, nil
}

type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) LogCreate(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *fakeAudit) LogUpdate(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *fakeAudit) LogDelete(ctx context.Context, q database.Querier, userID *int64, action string, entityName string, entityID int64, oldValue interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

type fakeSessions struct {
	created []*session.Session
	deleted []string
}

func (s *fakeSessions) Create(ctx context.Context, user *entity.User, remember bool, ttl time.Duration) (*session.Session, error) {
	sess := &session.Session{
		ID:          "sess-1",
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		ReferenceID: user.ReferenceID,
		Remember:    remember,
		ExpiresAt:   time.Now().Add(ttl),
	}
	s.created = append(s.created, sess)
	return sess, nil
}

func (s *fakeSessions) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeThrottle struct {
	blocked  bool
	failures int
	resets   int
}

var errThrottled = errors.New("throttled")

func (t *fakeThrottle) Allow(ctx context.Context, email string) error {
	if t.blocked {
		return errThrottled
	}
	return nil
}

func (t *fakeThrottle) RegisterFailure(ctx context.Context, email string) { t.failures++ }

func (t *fakeThrottle) Reset(ctx context.Context, email string) { t.resets++ }
