package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"

	"github.com/iov-one/remittance/app"
	"github.com/iov-one/remittance/store"
	"github.com/iov-one/remittance/x/vault"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	conf, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	opts, err := conf.genesis()
	if err != nil {
		log.Fatalf("cannot build genesis: %s", err)
	}

	ledger, err := app.NewLedger(conf.ChainID, store.MemStore(), vault.NewRecordingPaymaster(), opts)
	if err != nil {
		log.Fatalf("cannot initialize ledger: %s", err)
	}

	srv := NewServer(ledger, NewMetrics())
	logged := handlers.LoggingHandler(os.Stdout, srv.Router())

	log.Printf("remitd %q listening on %s", conf.ChainID, conf.ListenAddr)
	log.Fatal(http.ListenAndServe(conf.ListenAddr, logged))
}
