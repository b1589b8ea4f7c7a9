package notify

import (
	"fmt"
	"log/slog"
)

// Notifier delivers a message to an address. The transport is deliberately
// opaque so an email or SMS provider can be swapped in.
type Notifier interface {
	Notify(address, subject, body string) error
}

// LogNotifier writes notifications to the structured log. Used until a real
// delivery provider is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(address, subject, body string) error {
	n.logger.Info("notification sent",
		"to", address,
		"subject", subject,
		"body", body,
	)
	return nil
}

// ResetPasswordMessage builds the reset email with the link embedding the
// token.
func ResetPasswordMessage(baseURL, token string) (subject, body string) {
	subject = "Reset Password"
	body = "You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n" +
		"Please click on the following link, or paste this into your browser to complete the process:\n\n" +
		fmt.Sprintf("%s/reset-password/%s\n\n", baseURL, token) +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"
	return subject, body
}

// PasswordChangedMessage builds the confirmation sent after a successful
// reset.
func PasswordChangedMessage() (subject, body string) {
	subject = "Password Changed"
	body = "You are receiving this email because you changed your password. \n\n" +
		"If you did not request this change, please contact us immediately."
	return subject, body
}
