package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/mdouchement/tastybites/internal/config"
	"github.com/mdouchement/tastybites/internal/database"
	"github.com/mdouchement/tastybites/internal/logger"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/mdouchement/tastybites/internal/server"
	"github.com/mdouchement/tastybites/internal/token"
	"github.com/mdouchement/tastybites/pkg/stormcodec"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg        string
	collection string
)

func main() {
	c := &coral.Command{
		Use:     "tastybites",
		Short:   "Tasty Bites restaurant backend",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	seedCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	seedCmd.Flags().StringVarP(&collection, "collection", "", "", "Target collection (menu, review, users, carts)")
	seedCmd.MarkFlagRequired("collection")
	c.AddCommand(seedCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func open(ctx context.Context, konf *config.Config) (database.Client, error) {
	switch konf.Database.Driver {
	case config.DriverMongo:
		return database.MongoOpen(ctx, konf.Database.MongoURI(), konf.Database.Name)
	default:
		codec, err := stormcodec.ByName(konf.Database.Codec)
		if err != nil {
			return nil, err
		}
		return database.StormOpen(konf.Database.Path, codec)
	}
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}
			if konf.Database.Driver != config.DriverStorm {
				return errors.Errorf("init is not supported by the %s driver", konf.Database.Driver)
			}

			codec, err := stormcodec.ByName(konf.Database.Codec)
			if err != nil {
				return err
			}

			return database.StormInit(konf.Database.Path, codec)
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}
			if konf.Database.Driver != config.DriverStorm {
				return errors.Errorf("reindex is not supported by the %s driver", konf.Database.Driver)
			}

			codec, err := stormcodec.ByName(konf.Database.Codec)
			if err != nil {
				return err
			}

			return database.StormReIndex(konf.Database.Path, codec)
		},
	}

	//
	seedCmd = &coral.Command{
		Use:   "seed <file.json>",
		Short: "Import a JSON array of documents into a collection",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "could not read seed file")
			}

			var documents []*model.Document
			if err = json.Unmarshal(payload, &documents); err != nil {
				return errors.Wrap(err, "could not parse seed file")
			}

			ctx := context.Background()
			db, err := open(ctx, konf)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			n, err := db.Import(ctx, collection, documents)
			if err != nil {
				return err
			}

			log.Printf("%d documents imported into %s\n", n, collection)
			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}
			if err = konf.Validate(); err != nil {
				return err
			}

			l, err := logger.New(konf.Log.Level, konf.Log.File)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := open(ctx, konf)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			engine := server.EchoEngine(server.IOC{
				Version:  version,
				Database: db,
				Tokens:   token.NewService(konf.Token.Secret, token.WithExpirationTime(konf.Token.TTL)),
				Logger:   l,
			})
			server.PrintRoutes(engine)

			go func() {
				<-ctx.Done()

				shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := engine.Shutdown(shutdown); err != nil {
					l.WithError(err).Error("could not shutdown server")
				}
			}()

			address := konf.Address
			message := "could not run server"
			l.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					l.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return serve(engine.Server.Serve(listener), message)
			}
			return serve(engine.Start(address), message)
		},
	}
)

// serve ignores the error returned once the server has been shut down.
func serve(err error, message string) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, message)
}
