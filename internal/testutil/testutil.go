package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/database"
	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/pkg/crypto"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a private in-memory SQLite database with foreign keys
// enforced and the full schema migrated. It is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps every goroutine on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// Clock hands out strictly increasing times, one second apart.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// TestSetup holds the common dependencies for repository and handler tests.
type TestSetup struct {
	DB        *gorm.DB
	Service   *crm.Service
	Clock     *Clock
	Encryptor *crypto.Encryptor
}

// NewTestSetup wires a service over a fresh database with a fake clock and an
// ephemeral encryption key.
func NewTestSetup(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	enc, err := crypto.NewEphemeralEncryptor()
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}
	clock := NewClock()

	return &TestSetup{
		DB:        db,
		Service:   crm.NewService(db, enc, nil).WithClock(clock.Now),
		Clock:     clock,
		Encryptor: enc,
	}
}

// CreateTestAgency creates an agency with a unique subdomain.
func CreateTestAgency(t *testing.T, svc *crm.Service, name string) *models.Agency {
	t.Helper()

	agency, err := svc.CreateAgency(TestContext(t), crm.CreateAgencyInput{
		Name:      name,
		Subdomain: "agency-" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("failed to create test agency: %v", err)
	}
	return agency
}

// CreateTestUser creates a staff user in the given agency.
func CreateTestUser(t *testing.T, svc *crm.Service, agency *models.Agency) *models.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user, err := svc.CreateUser(TestContext(t), crm.CreateUserInput{
		ClerkID:   "user_" + suffix,
		AgencyID:  agency.ID,
		Email:     "test-" + suffix + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleStaff,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestContact creates a contact owned by the agency and created by user.
func CreateTestContact(t *testing.T, svc *crm.Service, agency *models.Agency, user *models.User, first, last string) *models.Contact {
	t.Helper()

	contact, err := svc.CreateContact(TestContext(t), crm.CreateContactInput{
		AgencyID:  agency.ID,
		FirstName: first,
		LastName:  last,
		CreatedBy: user.ID,
	})
	if err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}

// AuthenticatedRequest creates an HTTP request with a JSON body and, when
// token is set, a bearer token.
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
