package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/linkreach/invoicer/internal/client/paypal"
	"github.com/linkreach/invoicer/internal/config"
	"github.com/linkreach/invoicer/internal/display"
	"github.com/linkreach/invoicer/internal/invoice"
	"github.com/linkreach/invoicer/internal/logger"
	"github.com/linkreach/invoicer/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine when the environment is already set.
		fmt.Fprintf(os.Stderr, "notice: .env file not loaded: %v\n", err)
	}

	logger.Init(os.Getenv("STAGE"))
	defer logger.Sync() //nolint:errcheck

	app := &cli.App{
		Name:  "invoicer",
		Usage: "create and send PayPal invoices for outreach services",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "path to the JSON input document (default: stdin)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "preview",
				Usage: "validate and render an invoice without submitting it",
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					doc, err := readDocument(c)
					if err != nil {
						return err
					}
					result := svc.Preview(c.Context, doc)
					if !result.Success {
						return printFailure(result.Error, result.Details)
					}
					fmt.Println(result.Rendered)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a draft invoice remotely",
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					doc, err := readDocument(c)
					if err != nil {
						return err
					}
					return printJSON(svc.Create(c.Context, doc))
				},
			},
			{
				Name:  "send",
				Usage: "email a previously created invoice",
				Flags: sendFlags(),
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					return printJSON(svc.Send(c.Context, c.String("id"), sendOptions(c)))
				},
			},
			{
				Name:  "create-send",
				Usage: "create an invoice and email it after a short delay",
				Flags: sendFlags(),
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					doc, err := readDocument(c)
					if err != nil {
						return err
					}
					return printJSON(svc.CreateAndSend(c.Context, doc, sendOptions(c)))
				},
			},
			{
				Name:  "list",
				Usage: "list invoices",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "page-size", Value: 20},
					&cli.BoolFlag{Name: "total", Usage: "request the total item count"},
				},
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					return printJSON(svc.List(c.Context, service.ListOptions{
						Page:          c.Int("page"),
						PageSize:      c.Int("page-size"),
						TotalRequired: c.Bool("total"),
					}))
				},
			},
			{
				Name:  "cancel",
				Usage: "cancel a sent invoice",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "reason"},
				},
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					return printJSON(svc.Cancel(c.Context, c.String("id"), c.String("reason")))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newService() (*service.InvoiceService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := paypal.NewClient(cfg.PayPal.ClientID, cfg.PayPal.Secret,
		paypal.WithLogger(logger.Log),
		paypal.WithBaseURL(cfg.PayPal.BaseURL),
	)

	return service.NewInvoiceService(client, cfg.Business,
		service.WithDisplay(display.NewRenderer()),
		service.WithLogger(logger.Log),
	), nil
}

func sendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "invoice id (send only)"},
		&cli.StringFlag{Name: "subject"},
		&cli.StringFlag{Name: "note"},
		&cli.StringSliceFlag{Name: "cc", Usage: "additional recipient email"},
		&cli.BoolFlag{Name: "no-notify-recipient", Usage: "suppress the recipient email"},
		&cli.BoolFlag{Name: "notify-invoicer", Usage: "also email the invoicer"},
	}
}

func sendOptions(c *cli.Context) service.SendOptions {
	opts := service.SendOptions{
		Subject:              c.String("subject"),
		Note:                 c.String("note"),
		AdditionalRecipients: c.StringSlice("cc"),
	}
	if c.Bool("no-notify-recipient") {
		f := false
		opts.NotifyRecipient = &f
	}
	if c.Bool("notify-invoicer") {
		t := true
		opts.NotifyInvoicer = &t
	}
	return opts
}

func readDocument(c *cli.Context) (*invoice.Document, error) {
	var data []byte
	var err error

	if path := c.String("file"); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input document: %w", err)
	}

	var doc invoice.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse input document: %w", err)
	}
	return &doc, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printFailure(msg, details string) error {
	if details != "" {
		return fmt.Errorf("%s: %s", msg, details)
	}
	return fmt.Errorf("%s", msg)
}
