// Package userdb manages the user database: a JSON file holding an array of
// {username, password} records, with passwords stored as bcrypt hashes.
package userdb

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxCredentialLength is the longest accepted username or password.
const MaxCredentialLength = 20

type record struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Store reads and writes the user database file. The file is re-read on
// every lookup so external edits take effect without a restart.
type Store struct {
	mu       sync.Mutex
	filename string
}

// Open validates the database file and returns a store over it.
func Open(filename string) (*Store, error) {
	s := &Store{filename: filename}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() ([]record, error) {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return nil, fmt.Errorf("user database: %w", err)
	}
	var users []record
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("user database %s is not a JSON array of user records: %w", s.filename, err)
	}
	for _, u := range users {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("user database %s contains an invalid user record", s.filename)
		}
	}
	return users, nil
}

func (s *Store) save(users []record) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filename, data, 0644)
}

// Register adds a new user with a hashed password. It reports false with a
// nil error when the username is already taken.
func (s *Store) Register(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username == username {
			return false, nil
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	users = append(users, record{Username: username, Password: string(hash)})
	if err := s.save(users); err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether a username is registered.
func (s *Store) Exists(username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// Authenticate checks a username and password against the stored records.
func (s *Store) Authenticate(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username == username {
			err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
			return err == nil, nil
		}
	}
	return false, nil
}
