package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Mailer struct {
	client *ses.Client
	from   string
}

func NewMailer() (*Mailer, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &Mailer{
		client: ses.NewFromConfig(cfg),
		from:   os.Getenv("SES_EMAIL"),
	}, nil
}

// generic SES sender
func (m *Mailer) sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.from),
	}

	_, err := m.client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendInviteEmail shares a workspace invite code with a partner.
func (m *Mailer) SendInviteEmail(to string, senderName string, code string) error {
	subject := fmt.Sprintf("%s invited you to their task workspace", senderName)
	body := fmt.Sprintf("Your invite code is: %s\n\nSign in and enter it under \"Join a workspace\" to pair up.", code)
	return m.sendEmail(to, subject, body)
}
