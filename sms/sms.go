// Package sms dispatches transactional SMS through the SMSIndiaHub HTTP API.
// Without an API key the gateway runs in dev mode and logs the message
// instead of sending it.
package sms

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

const gatewayURL = "https://cloud.smsindiahub.in/vendorsms/pushsms.aspx"

type Gateway struct {
	apiKey   string
	senderID string
	client   *http.Client
}

func NewGateway() *Gateway {
	return &Gateway{
		apiKey:   os.Getenv("SMSINDIAHUB_API_KEY"),
		senderID: os.Getenv("SMSINDIAHUB_SENDER_ID"),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers text to a 10-digit mobile number.
func (g *Gateway) Send(phone, text string) error {
	if g.apiKey == "" {
		log.Printf("[sms] dev mode, would send to %s: %s", phone, text)
		return nil
	}

	params := url.Values{}
	params.Set("APIKey", g.apiKey)
	params.Set("sid", g.senderID)
	params.Set("msisdn", "91"+phone)
	params.Set("msg", text)
	params.Set("fl", "0")

	resp, err := g.client.Get(gatewayURL + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}

// OTPMessage formats the standard OTP text.
func OTPMessage(code string) string {
	return fmt.Sprintf("Your Majdoor Sathi verification code is %s. Valid for 5 minutes.", code)
}
