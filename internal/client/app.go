// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/privylocker/privy-locker/internal/logger"
	"github.com/privylocker/privy-locker/internal/service"
	"github.com/privylocker/privy-locker/models"
)

// App dispatches CLI commands to the client service layer.
type App struct {
	services *service.ClientServices
	logger   *logger.Logger
}

// NewApp constructs the CLI application.
func NewApp(services *service.ClientServices, logger *logger.Logger) *App {
	return &App{
		services: services,
		logger:   logger,
	}
}

// Run executes one CLI command with its remaining arguments.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "upload":
		return a.upload(ctx, args)
	case "list":
		return a.list(ctx, args)
	case "hide":
		return a.hide(ctx, args)
	case "download":
		return a.download(ctx, args)
	case "share":
		return a.share(ctx, args)
	case "revoke":
		return a.revoke(ctx, args)
	case "status":
		return a.status(ctx, args)
	case "disclose":
		return a.disclose(ctx, args)
	case "", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Println(`Usage: privy-locker-client [global flags] <command> [command flags]

Commands:
  upload    -file <path> -label <name> -field <value> -passphrase <p>
  list
  hide      -document <address>
  download  -document <address> -passphrase <p> -out <path>
  share     -document <address> -verifier <identity> [-ttl <seconds>]
  revoke    -share <address>
  status    -share <address>
  disclose  -share <address> -proof <value>`)
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	file := fs.String("file", "", "path of the document file")
	label := fs.String("label", "", "display label for the document")
	field := fs.String("field", "", "confidential field ciphertext")
	passphrase := fs.String("passphrase", "", "sealing passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.services.Locker.Authenticate(ctx); err != nil {
		return err
	}

	doc, err := a.services.Locker.UploadDocument(ctx, *file, *label, []byte(*field), *passphrase)
	if err != nil {
		return err
	}

	fmt.Printf("document registered at %s (index %d)\n", doc.Address, doc.Index)
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	if err := a.services.Locker.Authenticate(ctx); err != nil {
		return err
	}

	docs, err := a.services.Locker.Dashboard(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tLABEL\tINDEX\tCREATED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", doc.Address, doc.Fingerprint, doc.Index, doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *App) hide(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hide", flag.ContinueOnError)
	document := fs.String("document", "", "document address to hide")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := models.ParseAddress(*document)
	if err != nil {
		return err
	}

	if err := a.services.Locker.HideDocument(ctx, addr); err != nil {
		return err
	}

	fmt.Printf("document %s hidden from this device\n", addr)
	return nil
}

func (a *App) download(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	document := fs.String("document", "", "document address")
	passphrase := fs.String("passphrase", "", "sealing passphrase")
	out := fs.String("out", "", "output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := models.ParseAddress(*document)
	if err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("missing -out path")
	}

	if err := a.services.Locker.Authenticate(ctx); err != nil {
		return err
	}

	docs, err := a.services.Locker.Dashboard(ctx)
	if err != nil {
		return err
	}

	var target *models.Document
	for i := range docs {
		if docs[i].Address == addr {
			target = &docs[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("document %s not found in dashboard", addr)
	}

	plaintext, err := a.services.Locker.DownloadDocument(ctx, *target, *passphrase)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("document written to %s (%d bytes)\n", *out, len(plaintext))
	return nil
}

func (a *App) share(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	document := fs.String("document", "", "document address to share")
	verifier := fs.String("verifier", "", "verifier identity key")
	ttl := fs.Int64("ttl", 0, "session lifetime in seconds (0 = server default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := models.ParseAddress(*document)
	if err != nil {
		return err
	}

	if err := a.services.Locker.Authenticate(ctx); err != nil {
		return err
	}

	session, err := a.services.Locker.ShareDocument(ctx, addr, models.Identity(*verifier), *ttl)
	if err != nil {
		return err
	}

	fmt.Printf("share created at %s, expires %s\n", session.Address, session.ExpiresAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) revoke(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	share := fs.String("share", "", "share session address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := models.ParseAddress(*share)
	if err != nil {
		return err
	}

	if err := a.services.Locker.Authenticate(ctx); err != nil {
		return err
	}

	if err := a.services.Locker.RevokeShare(ctx, addr); err != nil {
		return err
	}

	fmt.Printf("share %s revoked\n", addr)
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	share := fs.String("share", "", "share session address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := models.ParseAddress(*share)
	if err != nil {
		return err
	}

	resp, err := a.services.Locker.VerifyShare(ctx, addr)
	if err != nil {
		return err
	}

	fmt.Printf("status: %s\n", resp.Status)
	if resp.Status != models.ShareStatusNotFound {
		fmt.Printf("owner: %s\nverifier: %s\ndocument: %s\nexpires: %s\n",
			resp.Owner, resp.Verifier, resp.Document, resp.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) disclose(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("disclose", flag.ContinueOnError)
	share := fs.String("share", "", "share session address")
	proof := fs.String("proof", "", "signed proof-of-identity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr, err := models.ParseAddress(*share)
	if err != nil {
		return err
	}

	plaintext, err := a.services.Locker.RequestDisclosure(ctx, addr, []byte(*proof))
	if err != nil {
		return err
	}

	fmt.Printf("disclosed value: %s\n", plaintext)
	return nil
}
