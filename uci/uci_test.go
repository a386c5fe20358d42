//////////////////////////////////////////////////////
// uci_test.go
//////////////////////////////////////////////////////

package uci_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/uci"
)

func TestUCIHandshake(t *testing.T) {
	var out bytes.Buffer
	loop := uci.NewLoop(engine.NewSearchState(1<<10), &out)
	loop.Run(context.Background(), strings.NewReader("uci\nisready\nquit\n"))

	got := out.String()
	assert.Contains(t, got, "id name Piston")
	assert.Contains(t, got, "uciok")
	assert.Contains(t, got, "readyok")
}

func TestPositionStartposWithMoves(t *testing.T) {
	var out bytes.Buffer
	loop := uci.NewLoop(engine.NewSearchState(1<<10), &out)
	loop.Run(context.Background(), strings.NewReader(
		"position startpos moves e2e4 e7e5\ngo perft 1\nquit\n"))

	got := out.String()
	require.Contains(t, got, "Nodes searched:")
}

func TestGoPerftReportsDivideAndTotal(t *testing.T) {
	var out bytes.Buffer
	loop := uci.NewLoop(engine.NewSearchState(1<<10), &out)
	loop.Run(context.Background(), strings.NewReader("go perft 1\nquit\n"))

	got := out.String()
	assert.Contains(t, got, "Nodes searched: 20")
}

func TestSecondConcurrentSearchIsRejected(t *testing.T) {
	var out bytes.Buffer
	state := engine.NewSearchState(1 << 10)
	require.True(t, state.TryAcquire())
	defer state.Release()

	loop := uci.NewLoop(state, &out)
	loop.Run(context.Background(), strings.NewReader("go movetime 10\nquit\n"))

	assert.Contains(t, out.String(), "A search is already in progress!")
}
