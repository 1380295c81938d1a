package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/api"
	"github.com/fulldump/telesync/api/apitoolsv1"
	"github.com/fulldump/telesync/configuration"
	"github.com/fulldump/telesync/database"
	"github.com/fulldump/telesync/service"
)

var VERSION = "dev"

func Bootstrap(c *configuration.Configuration) (start, stop func()) {

	err := c.Params().Validate()
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	db := database.NewDatabase(&database.Config{
		Dir:    c.Dir,
		Logger: log.New(os.Stdout, "DATABASE: ", log.LstdFlags),
	})

	s := service.NewService(db, &service.Config{
		Defaults: c.Params(),
		Workers:  c.Workers,
		Logger:   log.New(os.Stdout, "ALIGN: ", log.LstdFlags),
	})

	b := api.Build(s, VERSION, apitoolsv1.Limits{
		MaxBins:     c.MaxBins,
		MaxCapacity: c.MaxCapacity,
	})
	if c.AccessLog {
		b.WithInterceptors(api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)))
	}
	b.WithInterceptors(
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
		api.InterceptorUnavailable(db),
	)

	server := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	log.Println("listening on", c.HttpAddr)

	stop = func() {
		db.Stop()
		server.Shutdown(context.Background())
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			fmt.Println("Signal received", sig.String())
			stop()
		}
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				fmt.Println(err.Error())
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := server.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				fmt.Println(err.Error())
			}
		}()

		wg.Wait()
	}

	return
}
