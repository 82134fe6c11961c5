package tutil

import (
	"os"
	"strings"
)

// IsIntegrationTest is true when PC_TEST=integration, which marks a run with a
// MySQL server available.
func IsIntegrationTest() bool {
	testType := os.Getenv("PC_TEST")
	return strings.ToLower(testType) == "integration"
}
