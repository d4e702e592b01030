package main

import (
	"context"
	"flag"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/zeromicro/go-zero/core/conf"

	"frantik-client-sol/internal/config"
	"frantik-client-sol/internal/svc"
	"frantik-client-sol/pkg/logger"
)

var configFile = flag.String("f", "etc/fracker.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		panic(err)
	}
	defer logger.Sync()

	serviceContext, err := svc.NewServiceContext(&c)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("Starting fracker scan, program=%s, frack_house=%s",
		serviceContext.Deriver.Program, serviceContext.Deriver.FrackHouse)

	meta, err := serviceContext.Scanner.Scan(ctx)
	if err != nil {
		logger.Errorf("scan failed: %v", err)
		return
	}

	if meta.OperatingConfig != nil {
		logger.Infof("operating config: admin=%s, central_fee_bps=%d, seller_fee_bps=%d",
			meta.OperatingConfig.CentralAdmin,
			meta.OperatingConfig.CentralFeeBasisPoints,
			meta.OperatingConfig.SellerFeeBasisPoints)
	}
	for vault, m := range meta.ManagersByVault {
		logger.Infof("fraction manager %s: vault=%s, status=%s, validated=%d",
			m.Pubkey, vault, m.Record.State.Status, m.Record.State.SafetyConfigItemsValidated)
	}
	logger.Infof("scan complete: pages=%d, caches=%d, managers=%d",
		len(meta.Pages), len(meta.VaultCaches), len(meta.ManagersByVault))
}
