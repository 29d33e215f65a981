package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/go-catalog-server/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	lock     sync.RWMutex
	users    map[int64]*users.User
	emailIds map[string]int64 // email to user id
	nextID   int64
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[int64]*users.User),
		emailIds: make(map[string]int64),
		nextID:   1,
	}
}

func (ur *FakeUserRepo) Insert(_ context.Context, name, email, passwordHash string, role users.RoleType) (int64, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, exists := ur.emailIds[email]; exists {
		return 0, users.DuplicateEmailErr
	}

	id := ur.nextID
	ur.nextID++

	ur.users[id] = &users.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	ur.emailIds[email] = id
	return id, nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, users.NotFoundErr
	}
	return copyUser(ur.users[id]), nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, users.NotFoundErr
	}
	return copyUser(user), nil
}

func (ur *FakeUserRepo) List(_ context.Context) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.User, 0, len(ur.users))
	for _, u := range ur.users {
		list = append(list, copyUser(u))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// SetRole mutates a stored user's role directly, bypassing the service
// layer. Tests use it to simulate an out-of-band role change.
func (ur *FakeUserRepo) SetRole(id int64, role users.RoleType) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if u, ok := ur.users[id]; ok {
		u.Role = role
	}
}

// Delete removes a user, simulating an account deleted behind an
// outstanding token.
func (ur *FakeUserRepo) Delete(id int64) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if u, ok := ur.users[id]; ok {
		delete(ur.emailIds, u.Email)
		delete(ur.users, id)
	}
}

func copyUser(u *users.User) *users.User {
	c := *u
	return &c
}
