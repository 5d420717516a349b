package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/shopspring/decimal"
)

// clearToken, typed at an edit prompt, removes an optional value.
const clearToken = "-"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetRequiredText asks until a non-empty answer is given.
func GetRequiredText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	return askUntil(reader, prompt, w, func(s string) (string, error) {
		if s == "" {
			return "", fmt.Errorf("%w: a value is required", common.ErrValidation)
		}
		return s, nil
	})
}

// GetOptionalText returns nil for an empty answer.
func GetOptionalText(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, prompt+" (optional)", w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// GetDate asks for a YYYY-MM-DD date until one parses.
func GetDate(reader *bufio.Reader, prompt string, w io.Writer) (timex.Date, error) {
	return askUntil(reader, prompt+" (YYYY-MM-DD)", w, parseDate)
}

// GetMonths asks for a positive whole number of months.
func GetMonths(reader *bufio.Reader, prompt string, w io.Writer) (int, error) {
	return askUntil(reader, prompt, w, parseMonths)
}

// GetPrice asks for an optional non-negative amount. Empty means no price.
func GetPrice(reader *bufio.Reader, prompt string, w io.Writer) (*decimal.Decimal, error) {
	return askUntil(reader, prompt+" (optional)", w, func(s string) (*decimal.Decimal, error) {
		if s == "" {
			return nil, nil
		}
		return parsePrice(s)
	})
}

// GetConfirm asks a yes/no question; anything but y/yes is no.
func GetConfirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// pipedPrompts swallows prompts when input does not come from a terminal.
type pipedPrompts struct{}

func (pipedPrompts) Write(p []byte) (int, error) { return len(p), nil }

// askUntil repeats the prompt until parse accepts the answer or reading
// fails. Parse errors are shown to the user. With pipedPrompts the first
// parse error is returned instead, so later answers keep their positions.
func askUntil[T any](reader *bufio.Reader, prompt string, w io.Writer, parse func(string) (T, error)) (T, error) {
	var zero T
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return zero, err
		}
		v, err := parse(s)
		if err == nil {
			return v, nil
		}
		if _, piped := w.(pipedPrompts); piped {
			return zero, err
		}
		fmt.Fprintln(w, err)
	}
}

func parseDate(s string) (timex.Date, error) {
	d, err := timex.ParseDate(s)
	if err != nil {
		return timex.Date{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return d, nil
}

func parseMonths(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: warranty period must be a whole number of months, at least 1", common.ErrValidation)
	}
	return n, nil
}

func parsePrice(s string) (*decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil || p.IsNegative() {
		return nil, fmt.Errorf("%w: price must be a non-negative number", common.ErrValidation)
	}
	return &p, nil
}
