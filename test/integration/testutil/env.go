package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/session"
)

const (
	AdminUID   = "integration-admin"
	AdminEmail = "integration@pilavtour.uz"

	DefaultHealthCheckTimeout = 30 * time.Second
)

// TestEnv points at a running admin service and its database. The session
// secret must match the service's so tests can mint admin sessions.
type TestEnv struct {
	MongoURI      string
	DatabaseName  string
	ServerURL     string
	SessionSecret string
}

func NewTestEnv() *TestEnv {
	serverPort := getEnv("TEST_SERVER_PORT", "8080")

	return &TestEnv{
		MongoURI:      getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName:  getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:     getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort)),
		SessionSecret: getEnv("TEST_SESSION_SECRET", os.Getenv(config.EnvSessionSecret)),
	}
}

// Setup empties the database, allow-lists the test admin and returns a
// client carrying that admin's session.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Client) {
	t.Helper()

	if e.SessionSecret == "" {
		t.Skip("TEST_SESSION_SECRET or SESSION_SECRET is required for integration tests")
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)
	mongo.Insert(t, "admins", AdminDoc())

	sessions, err := session.NewManager(e.SessionSecret, time.Hour, config.SessionIssuer)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	token, err := sessions.Issue(AdminUID, AdminEmail)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	client := NewClient(e.ServerURL, token.Value)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)

	return mongo, client
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
