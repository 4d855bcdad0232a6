package auth

import (
	"slices"
	"sync"
	"time"

	"github.com/mockario/mockario/internal/id"
)

// User is an authentication principal. Password holds the hashed form and is
// empty on every value handed out by UserStore except Snapshot.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Password  string    `json:"password,omitempty" yaml:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Redacted returns u without its password.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

// Identity returns the id and username of u.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

// Identity is the caller identity attached to an authenticated request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserStore holds users keyed by id with unique usernames.
type UserStore struct {
	mu        sync.RWMutex
	byID      map[string]*User
	order     []string
	hasher    PasswordHasher
	listeners []func()

	now   func() time.Time
	newID func() string
}

// NewUserStore creates an empty store that hashes passwords with h.
// A nil hasher selects bcrypt.
func NewUserStore(h PasswordHasher) *UserStore {
	if h == nil {
		h = BcryptHasher{}
	}
	return &UserStore{
		byID:   make(map[string]*User),
		hasher: h,
		now:    time.Now,
		newID:  id.UUID,
	}
}

// Hasher returns the password hasher in use.
func (s *UserStore) Hasher() PasswordHasher {
	return s.hasher
}

// OnChange registers fn to run after every mutation.
func (s *UserStore) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *UserStore) notify() {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// Create adds a user. It fails with ErrMissingCredentials when either field
// is empty and with ErrUserExists when the username is taken.
func (s *UserStore) Create(username, password string) (User, error) {
	if username == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	if s.findLocked(username) != nil {
		s.mu.Unlock()
		return User{}, ErrUserExists
	}
	u := &User{
		ID:        s.newID(),
		Username:  username,
		Password:  hash,
		CreatedAt: s.now(),
	}
	s.byID[u.ID] = u
	s.order = append(s.order, u.ID)
	s.mu.Unlock()

	s.notify()
	return u.Redacted(), nil
}

// Validate checks a username and password pair and returns the redacted
// user on success.
func (s *UserStore) Validate(username, password string) (User, bool) {
	s.mu.RLock()
	u := s.findLocked(username)
	var found User
	if u != nil {
		found = *u
	}
	s.mu.RUnlock()

	if u == nil || !s.hasher.Verify(password, found.Password) {
		return User{}, false
	}
	return found.Redacted(), true
}

func (s *UserStore) findLocked(username string) *User {
	for _, uid := range s.order {
		if u := s.byID[uid]; u.Username == username {
			return u
		}
	}
	return nil
}

// Get returns the redacted user with the given id.
func (s *UserStore) Get(userID string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[userID]
	if !ok {
		return User{}, false
	}
	return u.Redacted(), true
}

// List returns all users, redacted, in creation order.
func (s *UserStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.order))
	for _, uid := range s.order {
		out = append(out, s.byID[uid].Redacted())
	}
	return out
}

// Delete removes a user by id. Returns true if deleted, false if not found.
func (s *UserStore) Delete(userID string) bool {
	s.mu.Lock()
	if _, ok := s.byID[userID]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.byID, userID)
	if i := slices.Index(s.order, userID); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// Clear deletes every user and returns how many were removed.
func (s *UserStore) Clear() int {
	s.mu.Lock()
	n := len(s.order)
	s.byID = make(map[string]*User)
	s.order = nil
	s.mu.Unlock()

	if n > 0 {
		s.notify()
	}
	return n
}

// Count returns the number of users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns every user including the stored password hash.
func (s *UserStore) Snapshot() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.order))
	for _, uid := range s.order {
		out = append(out, *s.byID[uid])
	}
	return out
}

// Restore replaces the store contents with previously saved users. Later
// entries that repeat an id or username are dropped.
func (s *UserStore) Restore(users []User) {
	s.mu.Lock()
	s.byID = make(map[string]*User, len(users))
	s.order = make([]string, 0, len(users))
	for _, u := range users {
		if u.ID == "" || u.Username == "" {
			continue
		}
		if _, dup := s.byID[u.ID]; dup || s.findLocked(u.Username) != nil {
			continue
		}
		s.byID[u.ID] = &u
		s.order = append(s.order, u.ID)
	}
	s.mu.Unlock()
}
