package main

import (
	"fmt"
	"log"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/tastybites/internal/model"
	"github.com/mdouchement/tastybites/pkg/stormcodec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// go run tools/mkadmin/main.go tastybites.db chef@tastybites.example

var codec string

func main() {
	c := &cobra.Command{
		Use:   "mkadmin <database> <email>",
		Short: "Grant the admin role to a user of the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			mu, err := stormcodec.ByName(codec)
			if err != nil {
				return err
			}

			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], storm.Codec(mu))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			users := db.From(model.CollectionUsers)

			// Fetch user
			var user model.Document
			err = users.Select(q.Eq("Email", args[1])).First(&user)
			if err != nil {
				if err == storm.ErrNotFound {
					fmt.Println("No account for this email")
					return nil
				}
				return errors.Wrap(err, "find user by mail")
			}

			fmt.Println("User found:", user.ID)

			if user.IsAdmin() {
				fmt.Println("Already an admin")
				return nil
			}

			user.Role = model.RoleAdmin
			if err = users.Save(&user); err != nil {
				return errors.Wrap(err, "save user")
			}
			fmt.Println("User promoted")

			return nil
		},
	}
	c.Flags().StringVarP(&codec, "codec", "", "msgpack", "Storm codec (msgpack, json, cbor, binc)")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
