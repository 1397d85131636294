package bot

import (
	"fmt"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLedgerContainsAfterAdd(t *testing.T) {
	ledger := NewLedger(10)

	assert.Equal(t, false, ledger.Contains("https://example.com/a"))

	ledger.Add("https://example.com/a")

	assert.Equal(t, true, ledger.Contains("https://example.com/a"))
	assert.Equal(t, 1, ledger.Len())
}

func TestLedgerIgnoresDuplicatesAndEmptyIDs(t *testing.T) {
	ledger := NewLedger(10)

	ledger.Add("a")
	ledger.Add("a")
	ledger.Add("")

	assert.Equal(t, 1, ledger.Len())
}

func TestLedgerEvictsOldestFirst(t *testing.T) {
	ledger := NewLedger(3)

	for i := 0; i < 4; i++ {
		ledger.Add(fmt.Sprintf("id-%d", i))
	}

	assert.Equal(t, 3, ledger.Len())
	assert.Equal(t, false, ledger.Contains("id-0"))
	assert.Equal(t, true, ledger.Contains("id-1"))
	assert.Equal(t, true, ledger.Contains("id-3"))
}

func TestLedgerNeverExceedsCap(t *testing.T) {
	ledger := NewLedger(DefaultLedgerCap)

	for i := 0; i < DefaultLedgerCap*3; i++ {
		ledger.Add(fmt.Sprintf("id-%d", i))
	}

	assert.Equal(t, DefaultLedgerCap, ledger.Len())
}
