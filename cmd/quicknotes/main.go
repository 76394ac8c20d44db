package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/server"
	"github.com/mdouchement/quicknotes/internal/vault"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const dbname = "quicknotes.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "quicknotes",
		Short:   "Self-hosted notes server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	c.AddCommand(hashCmd)

	if err := c.Execute(); err != nil {
		logrus.Fatalf("%+v", err)
	}
}

func konf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	err := k.Load(file.Provider(cfg), yaml.Parser())
	return k, errors.Wrap(err, "could not load configuration")
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

// seedUser is one entry of the `users` configuration list.
type seedUser struct {
	Email    string `koanf:"email"`
	Name     string `koanf:"name"`
	Password string `koanf:"password"`
}

func seed(db database.Client, users []seedUser) error {
	for _, entry := range users {
		u, err := db.FindUserByMail(entry.Email)
		if err != nil && !db.IsNotFound(err) {
			return errors.Wrap(err, "could not get access to database")
		}
		if u != nil {
			continue
		}

		user := &model.User{
			Email: entry.Email,
			Name:  entry.Name,
		}
		user.Password, err = argon2.GenerateFromPasswordString(entry.Password, argon2.Default)
		if err != nil {
			return errors.Wrap(err, "could not hash seed password")
		}
		user.PasswordUpdatedAt = time.Now().Unix()

		if err := db.Save(user); err != nil {
			return errors.Wrap(err, "could not persist seed user")
		}
		logrus.Infof("Seeded user %s", user.Email)
	}
	return nil
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database and seed the configured users",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			name := dbnameWithPath(k.String("database_path"))
			if err := database.StormInit(name); err != nil {
				return err
			}

			var users []seedUser
			if err := k.Unmarshal("users", &users); err != nil {
				return errors.Wrap(err, "could not read seed users")
			}

			db, err := database.StormOpen(name)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			return seed(db, users)
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(k.String("database_path")))
		},
	}

	//
	hashCmd = &coral.Command{
		Use:   "hash PASSWORD",
		Short: "Hash a password for the seed users configuration",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			hash, err := argon2.GenerateFromPasswordString(args[0], argon2.Default)
			if err != nil {
				return errors.Wrap(err, "could not hash password")
			}

			fmt.Println(hash)
			return nil
		},
	}

	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			k, err := konf()
			if err != nil {
				return err
			}

			if k.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			db, err := database.StormOpen(dbnameWithPath(k.String("database_path")))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			vlt, err := vault.New(k.String("vault_path"))
			if err != nil {
				return errors.Wrap(err, "could not open vault")
			}

			engine := server.EchoEngine(server.Controller{
				Version:                    version,
				Database:                   db,
				Vault:                      vlt,
				NoRegistration:             k.Bool("no_registration"),
				SigningKey:                 k.MustBytes("secret_key"),
				AccessTokenExpirationTime:  k.MustDuration("session.access_token_ttl"),
				RefreshTokenExpirationTime: k.MustDuration("session.refresh_token_ttl"),
			})
			server.PrintRoutes(engine)

			address := k.String("address")
			logrus.Infof("Server listening on %s", address)
			return errors.Wrap(engine.Start(address), "could not run server")
		},
	}
)
