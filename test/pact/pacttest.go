//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	// The order service consumes two upstream providers and is itself a
	// provider to the storefront.
	OrderServiceName      = "order-service"
	UserDirectoryProvider = "user-directory"
	BookInventoryProvider = "book-inventory"
	StorefrontConsumer    = "storefront-web"

	StateUserExists   = "user with id 1 exists"
	StateUserMissing  = "no user with id 404"
	StateItemExists   = "inventory item with id 10 exists"
	StateItemMissing  = "no inventory item with id 404"
	StateItemWritable = "inventory accepts item updates"
	StateOrderExists  = "an order with bookings exists for user 1"
	StateOrdersEmpty  = "no orders exist"
)

const (
	ExistingUserID int64 = 1
	MissingUserID  int64 = 404

	ExistingItemID int64 = 10
	MissingItemID  int64 = 404

	MissingOrderID int64 = 999
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for a consumer/provider pair.
func PactFile(t testing.TB, consumer, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), consumer+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload provides stable directory test data for pact interactions.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"userId":    ExistingUserID,
		"username":  "amrita",
		"firstName": "Amrita",
		"lastName":  "Rao",
		"email":     "amrita.rao@example.com",
		"phone":     "+1234567890",
	}
}

// ExampleItemPayload provides stable inventory test data for pact interactions.
func ExampleItemPayload() map[string]any {
	return map[string]any{
		"bookInventoryId": ExistingItemID,
		"stock":           5,
		"deliveryInDays":  2,
		"bookId": map[string]any{
			"bookId": int64(100),
			"title":  "The Go Programming Language",
			"price":  10.0,
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
