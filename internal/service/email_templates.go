package service

import "fmt"

func greeting(name string) string {
	if name == "" {
		return "Hi,"
	}
	return fmt.Sprintf("Hi %s,", name)
}

func passwordResetEmailTemplate(name, resetURL, ttl, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`%s

You requested to reset your password. Choose a new one with this link:
%s

This link expires in %s and can only be used once. Requesting another link replaces this one.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, greeting(name), resetURL, ttl, appName)

	return subject, body
}

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`%s

Your account is ready. Start sharing videos: %s

Best,
The %s Team`, greeting(name), appURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`%s

Your account has been permanently deleted from %s, together with the videos you uploaded.

If you didn't request this deletion, please contact our support team immediately, though we won't be able to recover your account.

Best,
The %s Team`, greeting(name), appName, appName)

	return subject, body
}
