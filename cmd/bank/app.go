package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bankgo/bank"
	"bankgo/view"
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrUsage       = errors.Errorf("usage")
	ErrUnknownBank = errors.Errorf("bank not found")
)

type app struct {
	view    *view.View
	factory view.ClientFactory
	in      io.Reader
	out     io.Writer
	log     *logrus.Logger
}

// execute runs one command and renders the view afterwards. Operation errors
// are already logged by the view and only decide the exit status here.
func (p *app) execute(ctx context.Context, command string, args []string) error {
	switch command {
	case "interactive":
		return p.interactive(ctx)
	case "ix":
		if err := p.printInstruction(ctx, args); err != nil {
			p.log.WithError(err).Error("build instruction failed")
			return err
		}
		return nil
	}
	err := p.run(ctx, command, args)
	if errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownBank) {
		p.log.WithError(err).Error(command)
	}
	if renderErr := p.view.Render(p.out); renderErr != nil {
		return renderErr
	}
	return err
}

func (p *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "list", "refresh":
		return p.view.List(ctx)
	case "create":
		_, err := p.view.Create(ctx)
		return err
	case "deposit", "withdraw":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s <index|address>", ErrUsage, command)
		}
		record, err := p.resolveBank(ctx, args[0])
		if err != nil {
			return err
		}
		if command == "deposit" {
			_, err = p.view.Deposit(ctx, record.Address)
		} else {
			_, err = p.view.Withdraw(ctx, record.Address, record.Balance)
		}
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

// resolveBank accepts an index into the displayed list or a bank address.
// The list is fetched first when it is empty.
func (p *app) resolveBank(ctx context.Context, arg string) (view.BankRecord, error) {
	if len(p.view.GetBanks()) == 0 {
		if err := p.view.List(ctx); err != nil {
			return view.BankRecord{}, err
		}
	}
	if idx, err := strconv.Atoi(arg); err == nil {
		banks := p.view.GetBanks()
		if idx < 0 || idx >= len(banks) {
			return view.BankRecord{}, fmt.Errorf("%w: index %d", ErrUnknownBank, idx)
		}
		return banks[idx], nil
	}
	address, err := solana.PublicKeyFromBase58(arg)
	if err != nil {
		return view.BankRecord{}, fmt.Errorf("%w: %s", ErrUnknownBank, arg)
	}
	record, found := p.view.FindBank(address)
	if !found {
		return view.BankRecord{}, fmt.Errorf("%w: %s", ErrUnknownBank, address)
	}
	return record, nil
}

func (p *app) printInstruction(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: ix <create|deposit|withdraw> [index|address]", ErrUsage)
	}
	wallet := p.view.GetWallet()
	if wallet == nil {
		return view.ErrWalletNotConnected
	}
	client, err := p.factory(wallet)
	if err != nil {
		return err
	}
	var ix solana.Instruction
	switch args[0] {
	case "create":
		address, err := client.GetBankAccountPublicKey()
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "bank: %s\n", address)
		ix, err = client.GetCreateIx(bank.BankName(wallet.GetPublicKey()))
		if err != nil {
			return err
		}
	case "deposit", "withdraw":
		if len(args) != 2 {
			return fmt.Errorf("%w: ix %s <index|address>", ErrUsage, args[0])
		}
		record, err := p.resolveBank(ctx, args[1])
		if err != nil {
			return err
		}
		if args[0] == "deposit" {
			ix, err = client.GetDepositIx(record.Address, bank.DEPOSIT_AMOUNT)
		} else {
			ix, err = client.GetWithdrawIx(record.Address, bank.WithdrawAmount(record.Balance))
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown instruction %q", ErrUsage, args[0])
	}
	if stringer, ok := ix.(fmt.Stringer); ok {
		fmt.Fprintln(p.out, stringer.String())
	}
	data, err := ix.Data()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "data: %x\n", data)
	return nil
}

func (p *app) interactive(ctx context.Context) error {
	if err := p.execute(ctx, "list", nil); err != nil {
		p.log.WithError(err).Debug("initial list failed")
	}
	scanner := bufio.NewScanner(p.in)
	fmt.Fprint(p.out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if fields[0] == "quit" || fields[0] == "exit" {
				return nil
			}
			_ = p.execute(ctx, fields[0], fields[1:])
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(p.out, "> ")
	}
	return scanner.Err()
}
