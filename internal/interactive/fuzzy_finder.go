// Package interactive holds the terminal pickers used when a command is run without an ID.
package interactive

import (
	"os"
	"strconv"
	"strings"

	"pinctl/pkg/logging"

	"github.com/ktr0731/go-fuzzyfinder"
)

// HeightEnv sets how many rows the picker shows
const HeightEnv = "PINCTL_SELECTOR_HEIGHT"

const (
	defaultRows = 10
	maxRows     = 20
	// prompt, header and border
	frameRows = 5
)

// displayRows returns how many applications the picker lists at once
func displayRows() int {
	heightStr := strings.TrimSpace(os.Getenv(HeightEnv))
	if heightStr == "" {
		return defaultRows
	}

	height, err := strconv.Atoi(heightStr)
	if err != nil || height < 1 {
		logging.LogWarn("Invalid %s value '%s', using default of %d", HeightEnv, heightStr, defaultRows)
		return defaultRows
	}

	if height > maxRows {
		logging.LogWarn("%s of %d is too large, limiting to %d", HeightEnv, height, maxRows)
		return maxRows
	}

	return height
}

// pickerHeight is the full finder height: the listed rows plus its frame
func pickerHeight() int {
	return displayRows() + frameRows
}

// FuzzyFind shows items in a bordered finder with a preview pane and returns the chosen index.
func FuzzyFind(items interface{}, itemFunc func(i int) string, header string, previewFunc func(i, w, h int) string) (int, error) {
	return fuzzyfinder.Find(items,
		itemFunc,
		fuzzyfinder.WithCursorPosition(fuzzyfinder.CursorPositionBottom),
		fuzzyfinder.WithPromptString("🔍 Filter applications > "),
		fuzzyfinder.WithHeader(header),
		fuzzyfinder.WithMode(fuzzyfinder.ModeSmart),
		fuzzyfinder.WithHeight(pickerHeight()),
		fuzzyfinder.WithHorizontalAlignment(fuzzyfinder.AlignLeft),
		fuzzyfinder.WithBorder(),
		fuzzyfinder.WithPreviewWindow(previewFunc),
	)
}
