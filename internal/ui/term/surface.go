// Package term is the plain-terminal implementation of the ui interfaces.
// It is deliberately dumb: every widget operation prints lines or records a
// little state, and the console command loop decides when to re-print.
package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chemstack/chemconsole/internal/ui"
)

type Surface struct {
	in  *bufio.Reader
	out io.Writer

	navOrder   []string
	navVisible map[string]bool
	navLabels  map[string]string
	navActive  string
	userInfo   string
}

func NewSurface(in io.Reader, out io.Writer) *Surface {
	return &Surface{
		in:         bufio.NewReader(in),
		out:        out,
		navVisible: make(map[string]bool),
		navLabels:  make(map[string]string),
	}
}

// RegisterNav declares a sidebar entry; order of registration is sidebar
// order.
func (s *Surface) RegisterNav(id, label string) {
	if _, ok := s.navLabels[id]; !ok {
		s.navOrder = append(s.navOrder, id)
	}
	s.navLabels[id] = label
}

// VisibleNav lists the ids the current role may navigate to.
func (s *Surface) VisibleNav() []string {
	var out []string
	for _, id := range s.navOrder {
		if s.navVisible[id] {
			out = append(out, id)
		}
	}
	return out
}

func (s *Surface) Alert(level ui.Level, message string) {
	fmt.Fprintf(s.out, "[%s] %s\n", level, message)
}

func (s *Surface) Confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (s *Surface) ShowLogin() {
	fmt.Fprintln(s.out, "-- not logged in; use: login <username> --")
}

func (s *Surface) ShowMain() {
	if s.userInfo != "" {
		fmt.Fprintf(s.out, "-- %s --\n", s.userInfo)
	}
}

func (s *Surface) SetLoginError(message string) {
	if message != "" {
		fmt.Fprintf(s.out, "login error: %s\n", message)
	}
}

func (s *Surface) SetUserInfo(text string) {
	s.userInfo = text
}

func (s *Surface) HideAllViews() {}

func (s *Surface) ShowView(id string) {
	fmt.Fprintln(s.out)
}

func (s *Surface) SetHeading(text string) {
	fmt.Fprintf(s.out, "=== %s ===\n", text)
}

func (s *Surface) SetNavActive(id string) {
	s.navActive = id
}

func (s *Surface) SetNavVisible(id string, visible bool) {
	s.navVisible[id] = visible
}

// ReadLine exposes the shared input reader to the command loop and the
// form prompts, so typed-ahead input stays ordered.
func (s *Surface) ReadLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Surface) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
