package e2e

import (
	"fmt"
	"strings"
	"testing"
)

func TestVersionFlagOutputsInjectedVersion(t *testing.T) {
	t.Parallel()

	injectedVersion := "e2e-smoke"
	repoRoot, binaryPath := buildCLIBinary(t, fmt.Sprintf("-X github.com/getlawrence/autodoc/cmd.Version=%s", injectedVersion))

	for _, args := range [][]string{{"--version"}, {"version"}} {
		output, err := runCLI(t, binaryPath, repoRoot, args...)
		if err != nil {
			t.Fatalf("running %v failed: %v\n%s", args, err, output)
		}
		if !strings.Contains(output, injectedVersion) {
			t.Fatalf("expected %v output to contain %q, got: %q", args, injectedVersion, output)
		}
	}
}
