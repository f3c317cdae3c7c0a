package impl

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Hand-rolled fakes ---

// memoryUserRepo is an in-memory UserRepository used to exercise the service
// without a database.
type memoryUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return domainerrors.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *memoryUserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		copied := *r.users[id]
		users = append(users, &copied)
	}

	return users, nil
}

// passthroughTxManager runs the function directly against the shared repo.
type passthroughTxManager struct {
	repo *memoryUserRepo
}

func (m *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *passthroughTxManager) UserRepo() repository.UserRepository {
	return m.repo
}

// fakeHasher makes hashes recognizable without bcrypt's cost.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues a fixed token and is never asked to verify here.
type fakeTokenService struct{}

func (fakeTokenService) Issue(int64) (string, error) { return "test-token", nil }
func (fakeTokenService) Verify(string) (int64, error) { return 0, domainerrors.ErrTokenMalformed }
func (fakeTokenService) TTL() time.Duration { return time.Hour }

func newTestService(t *testing.T) (usecase.AccountUsecase, *memoryUserRepo) {
	t.Helper()

	repo := newMemoryUserRepo()

	return NewAccountService(AccountServiceParams{
		TxManager:    &passthroughTxManager{repo: repo},
		UserRepo:     repo,
		Hasher:       fakeHasher{},
		TokenService: fakeTokenService{},
		Logger:       slog.New(slog.DiscardHandler),
	}), repo
}

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: "budi_santoso",
		Email:    "budi@example.com",
		Password: "Str0ng!pass",
		Nama:     "Budi Santoso",
	}
}

// --- Register ---

func TestAccountService_Register(t *testing.T) {
	svc, repo := newTestService(t)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, "budi_santoso", out.User.Username)
	assert.Equal(t, "budi@example.com", out.User.Email)
	assert.Equal(t, "Budi Santoso", out.User.FullName)
	assert.False(t, out.User.CreatedAt.IsZero())

	stored := repo.users[1]
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:Str0ng!pass", stored.PasswordHash)
}

func TestAccountService_Register_ValidationFailure(t *testing.T) {
	svc, repo := newTestService(t)

	input := validRegisterInput()
	input.Username = "ab"       // too short
	input.Password = "weakpass" // no upper, digit or special

	_, err := svc.Register(context.Background(), input)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	fields := validationErr.Fields()
	assert.False(t, fields["username"])
	assert.True(t, fields["email"])
	assert.False(t, fields["password"])
	assert.True(t, fields["nama"])
	assert.Empty(t, repo.users)
}

func TestAccountService_Register_UsernameTaken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Username = "other_user"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

// --- Login ---

func TestAccountService_Login(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), usecase.LoginInput{
		Username: "budi_santoso",
		Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "test-token", out.AccessToken)
	assert.Equal(t, "budi_santoso", out.User.Username)
}

func TestAccountService_Login_FailuresIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), usecase.LoginInput{
		Username: "no_such_user",
		Password: "Str0ng!pass",
	})
	_, badPassErr := svc.Login(context.Background(), usecase.LoginInput{
		Username: "budi_santoso",
		Password: "Wr0ng!pass!",
	})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, badPassErr, domainerrors.ErrInvalidCredentials)
	// The two failure modes must not be tellable apart.
	assert.Equal(t, unknownErr.Error(), badPassErr.Error())
}

// --- ListUsers ---

func TestAccountService_ListUsers(t *testing.T) {
	svc, _ := newTestService(t)

	views, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)

	_, err = svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	second := validRegisterInput()
	second.Username = "siti_aminah"
	second.Email = "siti@example.com"
	second.Nama = "Siti Aminah"
	_, err = svc.Register(context.Background(), second)
	require.NoError(t, err)

	views, err = svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "budi_santoso", views[0].Username)
	assert.Equal(t, "siti_aminah", views[1].Username)
}

// --- UpdateUser ---

func TestAccountService_UpdateUser_Partial(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	newNama := "Budi S."
	view, err := svc.UpdateUser(context.Background(), out.User.ID, usecase.UpdateUserInput{
		Nama: &newNama,
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", view.FullName)
	assert.Equal(t, "budi_santoso", view.Username)
	assert.Equal(t, "budi@example.com", view.Email)
}

func TestAccountService_UpdateUser_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	newNama := "Nobody"
	_, err := svc.UpdateUser(context.Background(), 999, usecase.UpdateUserInput{Nama: &newNama})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_UpdateUser_ConflictWithOtherUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	second := validRegisterInput()
	second.Username = "siti_aminah"
	second.Email = "siti@example.com"
	out, err := svc.Register(context.Background(), second)
	require.NoError(t, err)

	taken := "budi_santoso"
	_, err = svc.UpdateUser(context.Background(), out.User.ID, usecase.UpdateUserInput{Username: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)

	takenEmail := "budi@example.com"
	_, err = svc.UpdateUser(context.Background(), out.User.ID, usecase.UpdateUserInput{Email: &takenEmail})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_UpdateUser_KeepsOwnUniqueValues(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	// Resubmitting the user's own username and email is not a conflict.
	sameUsername := "budi_santoso"
	sameEmail := "budi@example.com"
	view, err := svc.UpdateUser(context.Background(), out.User.ID, usecase.UpdateUserInput{
		Username: &sameUsername,
		Email:    &sameEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, "budi_santoso", view.Username)
}

func TestAccountService_UpdateUser_ValidatesMergedProfile(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	badEmail := "not-an-email"
	_, err = svc.UpdateUser(context.Background(), out.User.ID, usecase.UpdateUserInput{Email: &badEmail})

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, validationErr.Fields()["email"])
	assert.True(t, validationErr.Fields()["username"])
}

// --- DeleteUser ---

func TestAccountService_DeleteUser(t *testing.T) {
	svc, repo := newTestService(t)

	out, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), out.User.ID))
	assert.Empty(t, repo.users)

	err = svc.DeleteUser(context.Background(), out.User.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

// countingHasher records how often Hash runs.
type countingHasher struct {
	calls int
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.calls++

	return "hashed:" + password, nil
}

func (h *countingHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func TestAccountService_Register_ConflictSkipsHashing(t *testing.T) {
	repo := newMemoryUserRepo()
	hasher := &countingHasher{}
	svc := NewAccountService(AccountServiceParams{
		TxManager:    &passthroughTxManager{repo: repo},
		UserRepo:     repo,
		Hasher:       hasher,
		TokenService: fakeTokenService{},
		Logger:       slog.New(slog.DiscardHandler),
	})

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.Equal(t, 1, hasher.calls)

	// A registration doomed by a uniqueness conflict must not pay for
	// hashing at all.
	dup := validRegisterInput()
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	require.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	assert.Equal(t, 1, hasher.calls)
}
