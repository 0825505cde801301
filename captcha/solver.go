// Package captcha supplies booking.Solver implementations. The site's
// captcha is not solved automatically; Manual hands the image to the user
// and reads the code back. An OCR-backed solver can be plugged in behind
// the same interface.
package captcha

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/transit-helpers/thsr-helper/booking"
)

// Manual writes the captcha image to disk, prompts, and reads the code
// from In.
type Manual struct {
	In  io.Reader
	Out io.Writer
	Dir string
}

var _ booking.Solver = (*Manual)(nil)

// NewManual returns a solver prompting on stdout and reading stdin.
func NewManual() *Manual {
	return &Manual{In: os.Stdin, Out: os.Stdout, Dir: os.TempDir()}
}

// Solve saves the image and blocks until the user enters the code.
func (m *Manual) Solve(img []byte) (string, error) {
	path := filepath.Join(m.Dir, "thsr-captcha.png")
	if err := os.WriteFile(path, img, 0o600); err != nil {
		return "", fmt.Errorf("write captcha image: %w", err)
	}
	fmt.Fprintf(m.Out, "captcha image saved to %s\nenter the verification code: ", path)
	scanner := bufio.NewScanner(m.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read code: %w", err)
		}
		return "", fmt.Errorf("read code: no input")
	}
	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return "", fmt.Errorf("empty verification code")
	}
	return code, nil
}
