package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestForecastCommand(t *testing.T) {
	out, err := runCommand(t,
		"forecast", "--region", "Ashanti", "--seed", "42", "--as-of", "2024-06-10")
	require.NoError(t, err)

	var obs map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &obs))
	assert.Equal(t, "Ashanti", obs["region_id"])
	assert.Len(t, obs["days"], 7)

	// Same seed and date produce identical output.
	again, err := runCommand(t,
		"forecast", "--region", "Ashanti", "--seed", "42", "--as-of", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestForecastCommand_Errors(t *testing.T) {
	_, err := runCommand(t, "forecast")
	require.Error(t, err) // --region is required

	_, err = runCommand(t, "forecast", "--region", "Atlantis")
	require.Error(t, err)

	_, err = runCommand(t, "forecast", "--region", "Ashanti", "--as-of", "June")
	require.Error(t, err)
}

func TestRecommendCommand(t *testing.T) {
	out, err := runCommand(t,
		"recommend", "--region", "Ashanti", "--farm-size", "3",
		"--experience", "6", "--previous-crops", "Maize",
		"--seed", "42", "--top", "3")
	require.NoError(t, err)

	var scores []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &scores))
	require.Len(t, scores, 3)
	assert.Contains(t, scores[0], "crop_id")
	assert.Contains(t, scores[0], "overall")
}

func TestReportCommand(t *testing.T) {
	out, err := runCommand(t,
		"report", "--farmer-id", "farmer-1", "--region", "Ashanti",
		"--allocate", "Cocoa=2.0", "--allocate", "Maize=1.0",
		"--experience", "6", "--seed", "42")
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "farmer-1", report["farmer_id"])
	assert.Len(t, report["crops"], 2)
}

func TestParseAllocations(t *testing.T) {
	allocs, err := parseAllocations([]string{"Cocoa=2.5", " Maize = 1 "})
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, "Cocoa", allocs[0].CropID)
	assert.Equal(t, 2.5, allocs[0].Hectares)
	assert.Equal(t, "Maize", allocs[1].CropID)
	assert.Equal(t, 1.0, allocs[1].Hectares)

	_, err = parseAllocations([]string{"Cocoa"})
	require.Error(t, err)

	_, err = parseAllocations([]string{"Cocoa=lots"})
	require.Error(t, err)
}

func TestCropsCommand(t *testing.T) {
	out, err := runCommand(t, "crops", "--json")
	require.NoError(t, err)

	var ref map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &ref))
	assert.Len(t, ref["crops"], 6)
	assert.NotEmpty(t, ref["regions"])
}
