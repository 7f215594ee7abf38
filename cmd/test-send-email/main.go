package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sapliy/contractplus/internal/contract"
	"github.com/sapliy/contractplus/internal/notification"
)

// Sends one framed reminder email for a sample contract, end to end through
// Resend. Useful for verifying the API key and the rendered template.
func main() {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Fatal("RESEND_API_KEY is not set")
	}

	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = "onboarding@resend.dev"
	}

	to := os.Getenv("CONTACT_EMAIL")
	if to == "" {
		log.Fatal("CONTACT_EMAIL is not set")
	}

	now := time.Now().UTC()
	sample := &contract.Contract{
		Name:        "Sample Service Agreement",
		Description: "Test contract used to verify email delivery.",
		StartDate:   now.Format("2006-01-02 15:04:05"),
		EndDate:     now.AddDate(0, 0, 14).Format("2006-01-02 15:04:05"),
		Status:      contract.StatusActive,
	}

	framing, err := notification.Frame(notification.KindWeeklyReminder, sample, "", notification.DefaultSubject, now)
	if err != nil {
		log.Fatalf("Failed to frame notification: %v", err)
	}

	sender := notification.NewResendSender(apiKey, from)
	if err := sender.Send(context.Background(), []string{to}, notification.DefaultSubject, framing.BodyHTML, framing.BodyText); err != nil {
		log.Fatalf("Failed to send email: %v", err)
	}

	fmt.Println("Email sent successfully!")
}
