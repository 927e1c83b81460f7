package auth

import (
	"os"
	"time"
)

// Environment variables read by EnvironmentStore
const (
	EnvNIDAut    = "CAFECRAWLER_NID_AUT"
	EnvNIDSes    = "CAFECRAWLER_NID_SES"
	EnvUserAgent = "CAFECRAWLER_USER_AGENT"
)

// EnvironmentStore exposes one read-only account built from environment variables
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(*Account) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment account under whatever name is asked for
func (e *EnvironmentStore) Retrieve(name string) (*Account, error) {
	aut, ses := os.Getenv(EnvNIDAut), os.Getenv(EnvNIDSes)
	if aut == "" || ses == "" {
		return nil, ErrCredentialsNotFound
	}

	if name == "" {
		name = "env"
	}

	return &Account{
		Name:      name,
		NIDAut:    aut,
		NIDSes:    ses,
		UserAgent: os.Getenv(EnvUserAgent),
		// zero time so a stored copy of the same name wins in List
		LastModified: time.Time{},
	}, nil
}

// List returns the environment account if both cookies are set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(string) error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists(string) bool {
	return os.Getenv(EnvNIDAut) != "" && os.Getenv(EnvNIDSes) != ""
}
