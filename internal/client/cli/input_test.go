package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	got, err := GetSimpleText(in, "Name?", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(in, "Name?", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	got, err := GetMultiline(readerFromLines("a", "b", "", "rest"), "Enter text", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetMultiline_EOF(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("only line")), "Enter text", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func TestGetRequiredText_Retries(t *testing.T) {
	var out bytes.Buffer
	got, err := GetRequiredText(readerFromLines("", "  ", "Apple"), "Brand", &out)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got)
	assert.Equal(t, 2, strings.Count(out.String(), "a value is required"))
}

func TestGetOptionalText(t *testing.T) {
	r := readerFromLines("", "555-0100")

	got, err := GetOptionalText(r, "Phone", io.Discard)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = GetOptionalText(r, "Phone", io.Discard)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "555-0100", *got)
}

func TestGetDate(t *testing.T) {
	got, err := GetDate(readerFromLines("15/01/2024", "2024-01-15"), "Purchase date", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, timex.NewDate(2024, time.January, 15), got)

	_, err = GetDate(readerFromLines("tomorrow"), "Purchase date", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetMonths(t *testing.T) {
	got, err := GetMonths(readerFromLines("0", "-3", "twelve", "12"), "Period", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestGetPrice(t *testing.T) {
	got, err := GetPrice(readerFromLines(""), "Price", io.Discard)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = GetPrice(readerFromLines("-1", "abc", "$199.99"), "Price", io.Discard)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "199.99", got.String())
}

func TestAskUntil_PipedFailsOnFirstBadAnswer(t *testing.T) {
	r := readerFromLines("15/01/2024", "2024-01-15")

	_, err := GetDate(r, "Purchase date", pipedPrompts{})
	require.ErrorIs(t, err, common.ErrValidation)

	got, err := GetSimpleText(r, "next", pipedPrompts{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got, "the following answer is left for the next prompt")
}

func TestGetConfirm(t *testing.T) {
	tests := map[string]bool{"y": true, "YES": true, "n": false, "": false, "maybe": false}
	for in, want := range tests {
		got, err := GetConfirm(readerFromLines(in), "Sure?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}
