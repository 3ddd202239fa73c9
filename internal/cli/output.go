// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayKeySummary].
//
//   - Format* and Render* functions return a formatted string without
//     performing I/O.
//     Examples: [FormatCryptStats], [RenderKeySummary].
//
//   - Write* functions write data to files on the filesystem.
//     They handle directory setup and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/rsacalc/internal/format"
	"github.com/agbru/rsacalc/internal/ui"
)

// OutputConfig holds configuration for encrypt and decrypt output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for stdout).
	OutputFile string
	// Quiet mode suppresses everything but the result.
	Quiet bool
	// Text marks the result as text, so a trailing newline is added when it
	// is printed to a terminal stream.
	Text bool
}

// CryptStats describes a finished encrypt or decrypt run.
type CryptStats struct {
	Operation   string
	InputBytes  int
	OutputBytes int
	Blocks      int
	Duration    time.Duration
}

// WriteResultToFile writes data to path, creating parent directories.
//
// Parameters:
//   - path: The destination file. Empty means no write.
//   - data: The bytes to write.
//
// Returns:
//   - error: An error if the directory or the file cannot be written.
func WriteResultToFile(path string, data []byte) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResult writes data to the configured destination. Results written
// to a file are announced on out unless quiet.
func DisplayResult(out io.Writer, data []byte, config OutputConfig) error {
	if config.OutputFile != "" {
		if err := WriteResultToFile(config.OutputFile, data); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
				ui.ColorSuccess(), ui.ColorAccent(), config.OutputFile, ui.ColorReset())
		}
		return nil
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	if config.Text && (len(data) == 0 || data[len(data)-1] != '\n') {
		_, err := io.WriteString(out, "\n")
		return err
	}
	return nil
}

// FormatCryptStats renders the one-line summary printed after encrypt and
// decrypt in verbose mode.
func FormatCryptStats(s CryptStats) string {
	return fmt.Sprintf("%s: %s bytes in, %s bytes out, %d block(s) in %s",
		s.Operation,
		format.FormatNumberString(fmt.Sprint(s.InputBytes)),
		format.FormatNumberString(fmt.Sprint(s.OutputBytes)),
		s.Blocks,
		format.FormatExecutionDuration(s.Duration))
}

// DisplayCryptStats writes FormatCryptStats in the secondary color.
func DisplayCryptStats(out io.Writer, s CryptStats) {
	fmt.Fprintln(out, ui.Colorize(ui.ColorMuted(), FormatCryptStats(s)))
}
