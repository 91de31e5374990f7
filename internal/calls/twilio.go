package calls

import (
	"context"
	"fmt"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"
)

type callCreator interface {
	CreateCall(params *openapi.CreateCallParams) (*openapi.ApiV2010Call, error)
}

// TwilioProvider places calls through Twilio, reading the task with inline
// TwiML. Twilio does not deliver transcripts to the webhook.
type TwilioProvider struct {
	api  callCreator
	from string
}

func NewTwilioProvider(accountSID, authToken, from string) *TwilioProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioProvider{api: client.Api, from: from}
}

func (p *TwilioProvider) PlaceCall(ctx context.Context, call Call) (string, error) {
	twimlResult, err := twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: call.Task},
	})
	if err != nil {
		return "", fmt.Errorf("error building twiml: %w", err)
	}

	params := &openapi.CreateCallParams{}
	params.SetTo(call.PhoneNumber)
	params.SetFrom(p.from)
	params.SetTwiml(twimlResult)
	params.SetRecord(call.Record)
	if call.AnsweringMachineDetection {
		params.SetMachineDetection("Enable")
	}

	resp, err := p.api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("error creating twilio call: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
