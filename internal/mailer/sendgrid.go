package mailer

import (
	"context"
	"fmt"

	"nuffjamz/pkg/client"
)

const sendGridBaseURL = "https://api.sendgrid.com"

// SendGridGateway delivers mail through the SendGrid v3 REST API.
type SendGridGateway struct {
	http *client.HttpClient
}

func NewSendGridGateway(apiKey string) *SendGridGateway {
	httpClient := client.NewHttpClient(sendGridBaseURL)
	httpClient.SetHeader("Authorization", "Bearer "+apiKey)
	return &SendGridGateway{http: httpClient}
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPayload struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

func (g *SendGridGateway) Send(ctx context.Context, email Email) error {
	payload := sendGridPayload{
		Personalizations: []sendGridPersonalization{
			{To: []sendGridAddress{{Email: email.To}}},
		},
		From:    sendGridAddress{Email: email.From},
		Subject: email.Subject,
		Content: []sendGridContent{
			{Type: "text/plain", Value: email.Body},
		},
	}

	resp, err := g.http.POST(ctx, "/v3/mail/send", payload)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, string(resp.Body))
	}

	return nil
}
