package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/surplus/internal/cli"
)

// runCLI executes the surplus CLI with the given args against a fresh
// command tree, capturing stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "surplus.db")
}

func addProviderArgs(db string) []string {
	return []string{
		"--db", db, "provider", "add",
		"--id", "1", "--name", "Greenway Deli", "--type", "Restaurant",
		"--address", "1 Main St", "--city", "Austin", "--contact", "555-0100",
	}
}

func TestInit_CreatesDatabase(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, "--db", db, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "schema ready")

	_, statErr := os.Stat(db)
	assert.NoError(t, statErr)

	// Rerun is a no-op.
	_, err = runCLI(t, "--db", db, "init")
	require.NoError(t, err)
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "--format", "xml", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_InvalidDriver(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "--driver", "postgres", "init")
	require.Error(t, err)
}

func TestProvider_AddAndList(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, addProviderArgs(db)...)
	require.NoError(t, err)
	assert.Contains(t, out, "added provider 1")

	out, err = runCLI(t, "--db", db, "provider", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Greenway Deli")
	assert.Contains(t, out, "Austin")
}

func TestProvider_AddDuplicateFails(t *testing.T) {
	db := tempDB(t)

	_, err := runCLI(t, addProviderArgs(db)...)
	require.NoError(t, err)

	_, err = runCLI(t, addProviderArgs(db)...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

func TestProvider_AddMissingFlags(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "provider", "add", "--id", "1")
	require.Error(t, err)
}

func TestProvider_UpdateNotFound(t *testing.T) {
	db := tempDB(t)

	args := []string{
		"--db", db, "provider", "update",
		"--id", "42", "--name", "Nobody", "--type", "Cafe",
		"--address", "9 X St", "--city", "Austin", "--contact", "555-0000",
	}
	_, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
	assert.Contains(t, err.Error(), "provider 42 not found")
}

func TestProvider_DeleteTwice(t *testing.T) {
	db := tempDB(t)

	_, err := runCLI(t, addProviderArgs(db)...)
	require.NoError(t, err)

	out, err := runCLI(t, "--db", db, "provider", "delete", "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted provider 1")

	_, err = runCLI(t, "--db", db, "provider", "delete", "--id", "1")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

func TestJSONEnvelope(t *testing.T) {
	db := tempDB(t)

	out, err := runCLI(t, append(addProviderArgs(db), "--format", "json")...)
	require.NoError(t, err)

	var resp cli.CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Empty(t, resp.Error)
	require.NotNil(t, resp.Data)

	provider, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Greenway Deli", provider["name"])
}

func TestListing_RequiresProvider(t *testing.T) {
	db := tempDB(t)

	args := []string{
		"--db", db, "listing", "add",
		"--id", "1", "--name", "Bread", "--quantity", "10", "--expiry", "2025-06-01",
		"--provider", "7", "--provider-type", "Restaurant",
		"--location", "Downtown", "--food-type", "Bakery", "--meal-type", "Breakfast",
	}
	_, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

func TestReport_List(t *testing.T) {
	out, err := runCLI(t, "--db", tempDB(t), "report", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "total-listed-quantity")
	assert.Contains(t, out, "provider-contacts")
	assert.Contains(t, out, "requires --city")
}

func TestReport_Unknown(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "report", "bogus")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}

func TestReport_CityRequired(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "report", "provider-contacts")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
	assert.Contains(t, err.Error(), "--city")
}

func TestReport_TotalOnEmptyLedger(t *testing.T) {
	out, err := runCLI(t, "--db", tempDB(t), "report", "total-listed-quantity")
	require.NoError(t, err)
	assert.Contains(t, out, "total_quantity")
	assert.Contains(t, out, "0")
}

func TestReport_EmptyDataset(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "report", "top-claim-status")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
	assert.Contains(t, err.Error(), "empty dataset")
}

const seedFixture = `providers:
  - {id: 1, name: "Greenway Deli", type: "Restaurant", address: "1 Main St", city: "Austin", contact: "555-0100"}
  - {id: 2, name: "Corner Mart", type: "Grocery", address: "2 Oak Ave", city: "Dallas", contact: "555-0101"}
receivers:
  - {id: 1, name: "City Shelter", type: "NGO", city: "Austin", contact: "555-0200"}
listings:
  - {id: 1, food_name: "Bread", quantity: 10, expiry_date: "2025-06-01", provider_id: 1,
     provider_type: "Restaurant", location: "Downtown", food_type: "Bakery", meal_type: "Breakfast"}
claims:
  - {id: 1, food_id: 1, receiver_id: 1, status: "Completed", timestamp: "2025-06-01 10:00:00"}
`

func TestSeed_AppliesFixture(t *testing.T) {
	db := tempDB(t)
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedFixture), 0o644))

	out, err := runCLI(t, "--db", db, "seed", seedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 providers, 1 receivers, 1 listings, 1 claims")

	out, err = runCLI(t, "--db", db, "report", "total-listed-quantity")
	require.NoError(t, err)
	assert.Contains(t, out, "10")
}

func TestSeed_MissingFile(t *testing.T) {
	_, err := runCLI(t, "--db", tempDB(t), "seed", "/nonexistent/seed.yaml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}

func TestSeed_BadReference(t *testing.T) {
	db := tempDB(t)
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	bad := "claims:\n  - {id: 1, food_id: 9, receiver_id: 9, status: \"Pending\", timestamp: \"2025-06-01 10:00:00\"}\n"
	require.NoError(t, os.WriteFile(seedPath, []byte(bad), 0o644))

	_, err := runCLI(t, "--db", db, "seed", seedPath)
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(cli.NewExitError(cli.ExitCommandError, "boom")))
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(assert.AnError))
}
