package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessage_AppendsLine(t *testing.T) {
	dir := t.TempDir()
	ev := SaleConfirmedEvent{
		SaleID:       12,
		HoldID:       "h-1",
		BuyerName:    "Ana",
		BuyerContact: "+54 11",
		SeatIDs:      []uint64{3, 4},
		TotalCents:   5000000,
		ConfirmedAt:  time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(dir, body))
	require.NoError(t, handleMessage(dir, body))

	data, err := os.ReadFile(filepath.Join(dir, SalesLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[2026-03-01T20:00:00Z] Sale confirmed | sale_id=12 | hold_id=h-1 | buyer="Ana" | contact="+54 11" | total=5000000 cents | seats=[3,4]`, lines[0])
}

func TestHandleMessage_RejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, handleMessage(dir, []byte("not json")))
	assert.Error(t, handleMessage(dir, []byte(`{"sale_id":0}`)))

	_, err := os.Stat(filepath.Join(dir, SalesLogFile))
	assert.True(t, os.IsNotExist(err))
}
