package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

const (
	NOT_CONNECTED = "Wallet not connected"

	CONTROL_CREATE   = "Create bank"
	CONTROL_REFRESH  = "Refresh banks"
	CONTROL_DEPOSIT  = "Deposit 0.1"
	CONTROL_WITHDRAW = "Withdraw All"
)

var lamportsPerSol = decimal.NewFromUint64(solana.LAMPORTS_PER_SOL)

// Sol converts lamports for display.
func Sol(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Div(lamportsPerSol)
}

// Render writes the current state. Without a wallet only the placeholder is
// written.
func (p *View) Render(w io.Writer) error {
	if p.GetWallet() == nil {
		_, err := fmt.Fprintln(w, NOT_CONNECTED)
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s]\n", CONTROL_CREATE, CONTROL_REFRESH)
	if pending := p.pendingOperations(); len(pending) > 0 {
		fmt.Fprintf(&sb, "pending: %s\n", strings.Join(pending, ", "))
	}
	for i, record := range p.GetBanks() {
		fmt.Fprintf(&sb, "\n#%d %s\n", i, record.Name)
		fmt.Fprintf(&sb, "   address: %s\n", record.Address)
		fmt.Fprintf(&sb, "   owner:   %s\n", record.Owner)
		fmt.Fprintf(&sb, "   balance: %d (%s SOL)\n", record.Balance, Sol(record.Balance).String())
		fmt.Fprintf(&sb, "   [%s] [%s]\n", CONTROL_DEPOSIT, CONTROL_WITHDRAW)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (p *View) pendingOperations() []string {
	var pending []string
	for _, op := range Operations {
		if p.Status(op).Status == STATUS_PENDING {
			pending = append(pending, string(op))
		}
	}
	return pending
}
