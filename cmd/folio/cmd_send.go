package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"folio/internal/clock"
	"folio/internal/contact"
	"folio/internal/contact/transport"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sendFields contact.Fields

// sendCmd submits one contact message without the page
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact message through the configured transport",
	Long: `Runs one contact submission headless: the fields are validated the same
way the form validates them, then sent through contact.transport.

Example:
  folio send --name "Ada" --email ada@example.com --message "Hello!"`,
	Args: cobra.NoArgs,
	RunE: sendMessage,
}

func init() {
	sendCmd.Flags().StringVar(&sendFields.Name, "name", "", "Your name")
	sendCmd.Flags().StringVar(&sendFields.Email, "email", "", "Your email address")
	sendCmd.Flags().StringVar(&sendFields.Message, "message", "", "Your message")
}

func sendMessage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Contact.GetSendBudget())
	defer cancel()

	sender, err := transport.New(cfg.Contact, logger.Named("contact"), clock.Real())
	if err != nil {
		return err
	}

	form := contact.NewForm(sender, contact.WithLogger(logger.Named("contact")))
	defer form.Close()
	form.SetFields(sendFields)

	state, err := form.Submit(ctx)
	var invalid *contact.ValidationError
	if errors.As(err, &invalid) {
		for _, name := range []string{contact.FieldName, contact.FieldEmail, contact.FieldMessage} {
			if hint := invalid.Hint(name); hint != "" {
				fmt.Fprintf(os.Stderr, "  --%s: %s\n", name, hint)
			}
		}
		return err
	}

	if msg := form.Message(); msg != "" {
		fmt.Println(msg)
	}
	if state != contact.Success {
		logger.Debug("send failed", zap.Stringer("state", state), zap.Error(err))
		return err
	}
	return nil
}
