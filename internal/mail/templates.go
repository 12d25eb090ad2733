package mail

import "fmt"

// Templates mirror the transactional emails the storefront sends. The
// HTML is deliberately plain; most mail clients strip anything fancier.

func MagicLinkHTML(appName, link, email string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Sign in to %s</h2>
  <p>Hi %s,</p>
  <p>Click the button below to continue. The link expires soon, so don't sit on it.</p>
  <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#111;color:#fff;text-decoration:none;border-radius:6px;">Continue</a></p>
  <p>If you didn't request this, you can safely ignore this email.</p>
</body>
</html>`, appName, email, link)
}

func NewsletterWelcomeHTML(appName, email, unsubscribeLink string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Welcome to the %s newsletter!</h2>
  <p>Thanks for subscribing with <strong>%s</strong>. Expect new arrivals and the occasional deal.</p>
  <p style="font-size:12px;color:#666;">Changed your mind? <a href="%s">Unsubscribe</a> any time.</p>
</body>
</html>`, appName, email, unsubscribeLink)
}

func NewsletterGoodbyeHTML(appName, email string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>You've unsubscribed</h2>
  <p><strong>%s</strong> will no longer receive %s newsletters.</p>
</body>
</html>`, email, appName)
}

func NewsletterIssueHTML(content, unsubscribeLink string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  %s
  <hr style="margin-top:32px;border:none;border-top:1px solid #eee;">
  <p style="font-size:12px;color:#666;"><a href="%s">Unsubscribe</a> from these emails.</p>
</body>
</html>`, content, unsubscribeLink)
}
