package troll

import (
	"context"
	"fmt"

	"github.com/paularlott/cli"

	"netradar/internal/config"
	"netradar/internal/log"
	trollmsg "netradar/internal/troll"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "troll",
		Usage:       "Send a UDP troll message to a device",
		Description: "Transmit the message as one UDP datagram per port, fire-and-forget",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "ip", Required: true},
			&cli.StringArg{Name: "message", Required: true},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "ports",
				Usage:        "Comma separated UDP ports",
				EnvVars:      []string{"RADAR_TROLL_PORTS"},
				DefaultValue: config.DefaultTrollPorts,
			},
			&cli.StringFlag{
				Name:         "log-level",
				Usage:        "Log level (debug, info, warn, error)",
				EnvVars:      []string{"RADAR_LOG_LEVEL"},
				DefaultValue: "info",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			log.Configure(cmd.GetString("log-level"), "console")

			ports, err := config.ParsePorts(cmd.GetString("ports"))
			if err != nil {
				return err
			}

			ip := cmd.GetStringArg("ip")
			message := cmd.GetStringArg("message")

			results, err := trollmsg.Send(ip, message, ports)
			if err != nil {
				return err
			}

			fmt.Print(trollmsg.Report(ip, ip, results))
			return nil
		},
	}
}
