// Command scrapekit inspects serialized page-object fixture directories
// and moves them in and out of a pebble fixture store.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scrapekit/scrapekit/fsdata"
	"github.com/scrapekit/scrapekit/pkg/log"
	"github.com/scrapekit/scrapekit/stores/pebble"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := log.New()

	app := cli.NewApp()
	app.Name = "scrapekit"
	app.Usage = "inspect and manage serialized page-object fixtures"

	dbFlag := cli.StringFlag{
		Name:     "db",
		Usage:    "path to the pebble fixture store",
		Required: true,
	}

	app.Commands = []cli.Command{
		{
			Name:      "ls",
			Usage:     "list the serialized leaves in a fixture directory",
			ArgsUsage: "<dir>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("expected exactly one directory argument")
				}
				tree, err := fsdata.Read(c.Args().Get(0))
				if err != nil {
					return err
				}
				for typeName, leaf := range tree {
					for key, value := range leaf {
						fmt.Printf("%s\t%s\t%d bytes\n", typeName, key, len(value))
					}
				}
				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "import every fixture directory under a root into the store",
			ArgsUsage: "<root>",
			Flags:     []cli.Flag{dbFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return errors.New("expected exactly one root directory argument")
				}
				root := c.Args().Get(0)

				store, err := pebble.Open(c.String("db"))
				if err != nil {
					return err
				}
				defer store.Close()

				entries, err := os.ReadDir(root)
				if err != nil {
					return err
				}

				var g errgroup.Group
				for _, e := range entries {
					if !e.IsDir() {
						continue
					}
					name := e.Name()
					dir := filepath.Join(root, name)
					// Fixture layout keeps inputs in a subdirectory; bare
					// serialized directories are accepted as-is.
					if _, err := os.Stat(filepath.Join(dir, "inputs")); err == nil {
						dir = filepath.Join(dir, "inputs")
					}
					g.Go(func() error {
						tree, err := fsdata.Read(dir)
						if err != nil {
							return fmt.Errorf("read %s: %w", dir, err)
						}
						if err := store.Put(name, tree); err != nil {
							return err
						}
						logger.Info().Str("fixture", name).Int("types", len(tree)).Msg("imported")
						return nil
					})
				}
				return g.Wait()
			},
		},
		{
			Name:      "export",
			Usage:     "export a stored fixture into a directory",
			ArgsUsage: "<name> <dir>",
			Flags:     []cli.Flag{dbFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return errors.New("expected name and directory arguments")
				}
				name, dir := c.Args().Get(0), c.Args().Get(1)

				store, err := pebble.Open(c.String("db"))
				if err != nil {
					return err
				}
				defer store.Close()

				tree, err := store.Get(name)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				if err := fsdata.Write(tree, dir); err != nil {
					return err
				}
				logger.Info().Str("fixture", name).Str("dir", dir).Msg("exported")
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}
