package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	go_bank "bankgo"
	"bankgo/addresses"
	"bankgo/bank"
	banktypes "bankgo/bank/types"
	"bankgo/blockhashSubscriber"
	"bankgo/config"
	"bankgo/connection"
	"bankgo/lib/logger"
	"bankgo/metrics"
	"bankgo/priorityFee"
	"bankgo/tx"
	"bankgo/view"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: bank [flags] <command> [args]

commands:
  list                       fetch and show every bank
  create                     open the wallet's bank
  deposit <index|address>    deposit 0.1 SOL
  withdraw <index|address>   withdraw everything above the rent reserve
  ix <create|deposit|withdraw> [index|address]
                             print the instruction without sending it
  interactive                read commands from stdin

flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "Path to config file (yaml, json or toml)")
	env := flag.String("env", "", "Cluster preset: localnet, devnet, mainnet-beta")
	keypair := flag.String("keypair", "", "Path to a solana-keygen keypair file")
	rpcEndpoint := flag.String("rpc", "", "RPC endpoint URL, overrides the preset")
	programId := flag.String("program", "", "Bank program id, overrides the preset")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	overrides := map[string]interface{}{}
	for key, value := range map[string]string{
		"env":          *env,
		"keypair":      *keypair,
		"rpc.endpoint": *rpcEndpoint,
		"program_id":   *programId,
	} {
		if value != "" {
			overrides[key] = value
		}
	}
	settings, err := config.Load(*configPath, overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.Init(settings.Log.Level, settings.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector("bank")
	if settings.Metrics.Addr != "" {
		go serveMetrics(log, settings.Metrics.Addr, collector)
	}

	var wallet go_bank.IWallet
	if loaded, err := go_bank.LoadWallet(settings.Keypair); err != nil {
		log.WithError(err).Warn("no wallet loaded")
	} else {
		wallet = loaded
	}

	services, err := createStack(ctx, settings, wallet, log)
	if err != nil {
		log.WithError(err).Error("setup failed")
		os.Exit(2)
	}
	defer services.close()

	bankView := view.CreateView(view.ViewConfig{
		Wallet:        wallet,
		Factory:       services.factory,
		Logger:        log,
		Metrics:       collector,
		GuardInFlight: settings.GuardInFlight,
	})
	cli := &app{
		view:    bankView,
		factory: services.factory,
		in:      os.Stdin,
		out:     os.Stdout,
		log:     log,
	}
	if err := cli.execute(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		services.close()
		os.Exit(1)
	}
}

type stack struct {
	factory     view.ClientFactory
	blockhashes *blockhashSubscriber.BlockHashSubscriber
	priorityFee *priorityFee.PriorityFeeSubscriber
}

// createStack wires the connection and the optional pollers shared by every
// client the view builds.
func createStack(ctx context.Context, settings *config.Settings, wallet go_bank.IWallet, log *logrus.Logger) (*stack, error) {
	manager := connection.CreateManager()
	connectionId := manager.AddConfig(settings.ConnectionConfig())
	rpcClient, err := manager.GetRpc(connectionId)
	if err != nil {
		return nil, err
	}
	result := &stack{}

	var blockhashes tx.IBlockhashSource
	if settings.BlockhashPollMs > 0 {
		commitment := rpc.CommitmentType(settings.Commitment)
		result.blockhashes = blockhashSubscriber.CreateBlockHashSubscriber(blockhashSubscriber.BlockHashSubscriberConfig{
			Connection:       rpcClient,
			Commitment:       &commitment,
			UpdateIntervalMs: &settings.BlockhashPollMs,
			Logger:           log,
		})
		result.blockhashes.Subscribe(ctx)
		blockhashes = result.blockhashes
	}

	var feeSource go_bank.IPriorityFeeSource
	if settings.PriorityFee.Method != "none" {
		var feeAddresses []solana.PublicKey
		if wallet != nil {
			if address, err := addresses.GetBankAccountPublicKey(settings.ProgramPublicKey(), wallet.GetPublicKey()); err == nil {
				feeAddresses = append(feeAddresses, address)
			}
		}
		result.priorityFee, err = priorityFee.CreatePriorityFeeSubscriber(priorityFee.PriorityFeeSubscriberConfig{
			Connection:            rpcClient,
			FrequencyMs:           settings.PriorityFee.FrequencyMs,
			Addresses:             feeAddresses,
			PriorityFeeMethod:     priorityFee.PriorityFeeMethod(settings.PriorityFee.Method),
			HeliusRpcUrl:          settings.PriorityFee.HeliusUrl,
			HeliusPriorityLevel:   priorityFee.HeliusPriorityLevel(settings.PriorityFee.HeliusLevel),
			MaxFeeMicroLamports:   settings.PriorityFee.MaxFeeMicroLamports,
			PriorityFeeMultiplier: settings.PriorityFee.Multiplier,
			Logger:                log,
		})
		if err != nil {
			result.close()
			return nil, err
		}
		result.priorityFee.Subscribe(ctx)
		feeSource = result.priorityFee
	}

	opts := settings.ConfirmOptions()
	result.factory = func(wallet go_bank.IWallet) (banktypes.IBankClient, error) {
		return bank.CreateBankClient(banktypes.BankClientConfig{
			Connection:       manager,
			ConnectionId:     connectionId,
			Wallet:           wallet,
			ProgramId:        settings.ProgramPublicKey(),
			Opts:             &opts,
			TxParams:         settings.TxParams(feeSource),
			ConfirmTimeoutMs: settings.ConfirmTimeoutMs,
			Blockhashes:      blockhashes,
		}), nil
	}
	return result, nil
}

func (p *stack) close() {
	if p.blockhashes != nil {
		p.blockhashes.Unsubscribe()
	}
	if p.priorityFee != nil {
		p.priorityFee.Unsubscribe()
	}
}

func serveMetrics(log *logrus.Logger, addr string, collector *metrics.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	log.WithField("addr", addr).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("metrics server stopped")
	}
}
