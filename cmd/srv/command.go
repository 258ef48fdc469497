package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Lorekeeper"
	app.Usage = "Campaign management backend"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to the TOML config file, environment variables override it",
			EnvVars: []string{"CONFIG_FILE"},
			Value:   "config.toml",
		},
	}
	app.Before = s.before
	app.After = s.after
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves all campaign endpoints and the metrics.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Versioned migrator to apply after the automigration, e.g. 0001",
				},
			},
			Description: `Used to create or update the tables, then to apply a versioned migrator once.`,
		},
		{
			Action:   s.startCreateUser,
			Name:     "user",
			Usage:    "Create a user",
			Category: "Operator",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Required: true},
				&cli.StringFlag{Name: "email"},
				&cli.BoolFlag{Name: "admin", Usage: "Grant the global admin role"},
			},
		},
		{
			Action:   s.startGenerateToken,
			Name:     "token",
			Usage:    "Generate an access token for a user",
			Category: "Operator",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Usage: "User id", Required: true},
			},
		},
	}

	s.app = app
}
