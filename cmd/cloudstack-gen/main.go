package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/logger"
)

const (
	appName    = "cloudstack-gen"
	appVersion = "1.0.0"
	appDesc    = "Generates a typed CloudStack API client from the listApis metadata of a management server"
)

// -v is taken by --verbose
func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		logger.Error("%v", err)
		logger.Close()
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      appName,
		Usage:     appDesc,
		Version:   appVersion,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.yaml",
				EnvVars: []string{"CSGEN_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging (DEBUG level)",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Read a captured listApis response instead of calling the management server",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Disable progress bars",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "generate the client library and documentation",
				Action: runGenerate,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lang",
						Usage: "Override generation.language",
					},
					&cli.StringSliceFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Override output.formats (php,xlsx,docx,html,openapi)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Override output.dir",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Override generation.workers",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "print the generated artifacts of a single method",
				ArgsUsage: "<method>",
				Action:    runShow,
			},
			{
				Name:      "dump",
				Usage:     "print normalized method descriptors and response schemas",
				ArgsUsage: "[method...]",
				Action:    runDump,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Print YAML instead of JSON",
					},
				},
			},
		},
	}

	return app
}

func printBanner(w io.Writer) {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                   CLOUDSTACK-GEN v%s                   ║
║          CloudStack API client generator (listApis)       ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Fprintf(w, banner, appVersion)
}
