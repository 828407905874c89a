package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Imdachu/imf-gadget/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory sqlite database for one test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", ""))
	db, err := database.Open("sqlite", dsn, "silent")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestCredentials(t *testing.T, db *gorm.DB, secret string) *CredentialManager {
	t.Helper()
	m, err := NewCredentialManager(db, CredentialOptions{
		Secret:     []byte(secret),
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	return m
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return p.err
}

func (p *recordingPublisher) Subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}
